package osc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/Lobaro/slip"
)

// MaxStreamPacketSize bounds a single packet read from a stream.
const MaxStreamPacketSize = 1 << 20

// Framing selects how packets are delimited on a byte stream such as TCP.
type Framing int

const (
	// FramingSLIP delimits packets with SLIP (RFC 1055), as OSC 1.1 does.
	FramingSLIP Framing = iota
	// FramingSize prefixes every packet with its big-endian 32 bit size, as
	// OSC 1.0 does.
	FramingSize
)

func (f Framing) String() string {
	switch f {
	case FramingSLIP:
		return "slip"
	case FramingSize:
		return "size"
	}
	return fmt.Sprintf("Framing(%d)", int(f))
}

// ParseFraming returns the Framing named s ("slip" or "size").
func ParseFraming(s string) (Framing, error) {
	switch strings.ToLower(s) {
	case "slip":
		return FramingSLIP, nil
	case "size":
		return FramingSize, nil
	}
	return 0, fmt.Errorf("unknown framing %q", s)
}

// StreamReader reads framed packets from a byte stream.
type StreamReader struct {
	// Codec decodes the packets. Nil means the default codec.
	Codec *Codec

	framing Framing
	slip    *slip.Reader
	r       *bufio.Reader
}

// NewStreamReader returns a StreamReader reading from r.
func NewStreamReader(r io.Reader, f Framing) *StreamReader {
	sr := &StreamReader{framing: f}
	if f == FramingSLIP {
		sr.slip = slip.NewReader(r)
	} else {
		sr.r = bufio.NewReader(r)
	}
	return sr
}

// ReadFrame returns the bytes of the next packet.
func (sr *StreamReader) ReadFrame() ([]byte, error) {
	if sr.framing == FramingSLIP {
		return sr.readSLIP()
	}

	var size [bit32Size]byte
	if _, err := io.ReadFull(sr.r, size[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(size[:])
	if n > MaxStreamPacketSize {
		return nil, malformed("stream packet claims %d bytes", n)
	}
	frame := make([]byte, n)
	if _, err := io.ReadFull(sr.r, frame); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return frame, nil
}

func (sr *StreamReader) readSLIP() ([]byte, error) {
	var frame []byte
	for {
		p, isPrefix, err := sr.slip.ReadPacket()
		if err != nil {
			return nil, err
		}
		frame = append(frame, p...)
		if len(frame) > MaxStreamPacketSize {
			return nil, malformed("stream packet exceeds %d bytes", MaxStreamPacketSize)
		}
		if isPrefix {
			continue
		}
		// Back to back END bytes produce empty frames; skip them.
		if len(frame) == 0 {
			continue
		}
		return frame, nil
	}
}

// ReadPacket reads and decodes the next packet.
func (sr *StreamReader) ReadPacket() (Packet, error) {
	frame, err := sr.ReadFrame()
	if err != nil {
		return nil, err
	}
	codec := sr.Codec
	if codec == nil {
		codec = defaultCodec
	}
	return codec.ParsePacket(frame)
}

// StreamWriter writes framed packets to a byte stream.
type StreamWriter struct {
	// Codec encodes the packets. Nil means the default codec.
	Codec *Codec

	framing Framing
	slip    *slip.Writer
	w       io.Writer
}

// NewStreamWriter returns a StreamWriter writing to w.
func NewStreamWriter(w io.Writer, f Framing) *StreamWriter {
	sw := &StreamWriter{framing: f, w: w}
	if f == FramingSLIP {
		sw.slip = slip.NewWriter(w)
	}
	return sw
}

// WriteFrame writes one already encoded packet.
func (sw *StreamWriter) WriteFrame(b []byte) error {
	if sw.framing == FramingSLIP {
		return sw.slip.WritePacket(b)
	}
	if len(b) > MaxStreamPacketSize {
		return encodeErr("stream packet of %d bytes exceeds %d", len(b), MaxStreamPacketSize)
	}
	frame := make([]byte, bit32Size, bit32Size+len(b))
	binary.BigEndian.PutUint32(frame, uint32(len(b)))
	_, err := sw.w.Write(append(frame, b...))
	return err
}

// WritePacket encodes p and writes it as one frame.
func (sw *StreamWriter) WritePacket(p Packet) error {
	codec := sw.Codec
	if codec == nil {
		codec = defaultCodec
	}
	b, err := codec.Encode(p)
	if err != nil {
		return err
	}
	return sw.WriteFrame(b)
}

// StreamClient sends and receives packets over a TCP connection.
type StreamClient struct {
	conn net.Conn
	r    *StreamReader
	w    *StreamWriter
}

// DialStream connects to a stream server at addr.
func DialStream(addr string, f Framing) (*StreamClient, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewStreamClient(conn, f), nil
}

// NewStreamClient wraps an established connection.
func NewStreamClient(conn net.Conn, f Framing) *StreamClient {
	return &StreamClient{
		conn: conn,
		r:    NewStreamReader(conn, f),
		w:    NewStreamWriter(conn, f),
	}
}

// SetCodec makes the client encode and decode with codec.
func (c *StreamClient) SetCodec(codec *Codec) {
	c.r.Codec = codec
	c.w.Codec = codec
}

// Send writes p to the server.
func (c *StreamClient) Send(p Packet) error {
	return c.w.WritePacket(p)
}

// Receive reads the next packet from the server.
func (c *StreamClient) Receive() (Packet, error) {
	return c.r.ReadPacket()
}

// Close closes the connection.
func (c *StreamClient) Close() error {
	return c.conn.Close()
}
