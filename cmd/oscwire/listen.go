package main

import (
	"net"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/chabad360/oscwire/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listenFlags struct {
	addr        string
	framing     string
	timeout     time.Duration
	maxInFlight int
}

// listenCmd prints every packet it receives until interrupted.
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print the packets sent to an address",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTransport(listenFlags.framing)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		log := stderrLogger()
		var mu sync.Mutex
		out := cmd.OutOrStdout()
		s := &osc.Server{
			Addr:        listenFlags.addr,
			ReadTimeout: listenFlags.timeout,
			Codec:       config.codec(),
			Logger:      log,
			MaxInFlight: listenFlags.maxInFlight,
			Handler: func(p osc.Packet, from net.Addr) {
				mu.Lock()
				defer mu.Unlock()
				log.Debug("packet", "from", from)
				printPacket(out, p, 0)
			},
		}

		log.Info("listening", "addr", listenFlags.addr, "transport", t)
		if !t.stream {
			return errors.Wrap(s.ListenAndServe(ctx), "serving")
		}
		ln, err := net.Listen("tcp", listenFlags.addr)
		if err != nil {
			return err
		}
		return errors.Wrap(s.ServeStream(ctx, ln, t.framing), "serving")
	},
}

func init() {
	flags := listenCmd.Flags()
	flags.StringVar(&listenFlags.addr, "addr", "127.0.0.1:8765", "listen address")
	flags.StringVar(&listenFlags.framing, "framing", "udp", "transport: udp, slip or size")
	flags.DurationVar(&listenFlags.timeout, "timeout", 0, "read timeout per datagram (0 waits forever)")
	flags.IntVar(&listenFlags.maxInFlight, "max-in-flight", 0, "maximum concurrent handlers (0 is unlimited)")
	RootCmd.AddCommand(listenCmd)
}
