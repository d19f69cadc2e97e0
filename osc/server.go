package osc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// HandlerFunc is called for every packet a Server decodes.
type HandlerFunc func(p Packet, addr net.Addr)

// Server represents an OSC server. The server listens on Addr for incoming OSC
// packets and hands each decoded packet to Handler.
type Server struct {
	Addr        string
	Handler     HandlerFunc
	ReadTimeout time.Duration

	// Codec decodes incoming packets. Nil means the default codec.
	Codec *Codec
	// Logger receives read and decode failures. Nil means slog.Default().
	Logger *slog.Logger
	// MaxInFlight bounds the number of concurrently running handlers of a
	// datagram server. Zero means no limit.
	MaxInFlight int
}

var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, MaxPacketSize)
		return &b
	},
}

// ListenAndServe serves OSC over UDP on addr until the listener fails.
func ListenAndServe(addr string, handler HandlerFunc) error {
	s := &Server{Addr: addr, Handler: handler}
	return s.ListenAndServe(context.Background())
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *Server) codec() *Codec {
	if s.Codec == nil {
		return defaultCodec
	}
	return s.Codec
}

// ListenAndServe listens on s.Addr over UDP and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.ListenPacket("udp", s.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	return s.Serve(ctx, ln)
}

// Serve reads packets from c and dispatches every decoded one to the handler in
// its own goroutine. Undecodable datagrams are logged and dropped. Serve closes
// c and returns nil once ctx is done; it returns the error that stopped it
// otherwise.
func (s *Server) Serve(ctx context.Context, c net.PacketConn) error {
	g, ctx := errgroup.WithContext(ctx)

	var handlers errgroup.Group
	if s.MaxInFlight > 0 {
		handlers.SetLimit(s.MaxInFlight)
	}

	g.Go(func() error {
		<-ctx.Done()
		return c.Close()
	})

	g.Go(func() error {
		defer handlers.Wait()
		for {
			p, addr, err := s.readFromConnection(c)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if isDecodeError(err) {
					s.logger().Warn("osc: dropping packet", "from", addr, "err", err)
					continue
				}
				var ne net.Error
				if errors.As(err, &ne) && ne.Timeout() {
					continue
				}
				return err
			}
			handlers.Go(func() error {
				s.serve(p, addr)
				return nil
			})
		}
	})

	return serveResult(ctx, g.Wait())
}

// ServeStream accepts connections from ln and reads framed packets from each
// until it closes. Packets from one connection are handled in order.
func (s *Server) ServeStream(ctx context.Context, ln net.Listener, f Framing) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		var conns sync.WaitGroup
		defer conns.Wait()
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			conns.Add(1)
			go func() {
				defer conns.Done()
				s.serveConn(ctx, conn, f)
			}()
		}
	})

	return serveResult(ctx, g.Wait())
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn, f Framing) {
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	log := s.logger().With("from", conn.RemoteAddr())
	log.Debug("osc: stream connected")

	// A bad frame leaves the stream out of sync, a bad packet inside a good
	// frame only loses that packet.
	r := NewStreamReader(conn, f)
	for {
		frame, err := r.ReadFrame()
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Warn("osc: closing stream", "err", err)
			}
			return
		}
		p, err := s.codec().ParsePacket(frame)
		if err != nil {
			log.Warn("osc: dropping packet", "err", err)
			continue
		}
		s.serve(p, conn.RemoteAddr())
	}
}

func (s *Server) serve(p Packet, a net.Addr) {
	defer func() {
		if err := recover(); err != nil {
			buf := make([]byte, 64<<10)
			buf = buf[:runtime.Stack(buf, false)]
			s.logger().Error("osc: panic in handler", "from", a, "panic", err, "stack", string(buf))
		}
	}()
	if s.Handler != nil {
		s.Handler(p, a)
	}
}

// ReceivePacket reads and decodes a single packet from c.
func (s *Server) ReceivePacket(c net.PacketConn) (Packet, net.Addr, error) {
	return s.readFromConnection(c)
}

// readFromConnection retrieves OSC packets.
func (s *Server) readFromConnection(c net.PacketConn) (Packet, net.Addr, error) {
	if s.ReadTimeout != 0 {
		if err := c.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
			return nil, nil, err
		}
	}

	b := bufPool.Get().(*[]byte)
	defer bufPool.Put(b)

	n, a, err := c.ReadFrom(*b)
	if err != nil {
		return nil, a, err
	}

	// Decoding copies everything it keeps, so the buffer can go back to the pool.
	p, err := s.codec().ParsePacket((*b)[:n])
	return p, a, err
}

func isDecodeError(err error) bool {
	return errors.Is(err, ErrMalformed) || errors.Is(err, ErrUnexpectedType) || errors.Is(err, ErrInternal)
}

// serveResult turns the cancellation that stopped a server into a clean
// return.
func serveResult(ctx context.Context, err error) error {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, net.ErrClosed)) {
		return nil
	}
	return err
}
