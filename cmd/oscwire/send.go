package main

import (
	"github.com/chabad360/oscwire/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var sendFlags struct {
	addr    string
	framing string
	bundle  bool
}

// sendCmd sends one message to a server.
var sendCmd = &cobra.Command{
	Use:   "send ADDRESS [ARG...]",
	Short: "Send a message to an OSC server",
	Long:  "Send a message to an OSC server. Arguments are written as for encode.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTransport(sendFlags.framing)
		if err != nil {
			return err
		}
		p, err := messageFromArgs(args)
		if err != nil {
			return err
		}
		if sendFlags.bundle {
			p = osc.NewBundle(p)
		}

		log := stderrLogger().With("addr", sendFlags.addr, "transport", t)
		if t.stream {
			c, err := osc.DialStream(sendFlags.addr, t.framing)
			if err != nil {
				return errors.Wrap(err, "connecting")
			}
			defer c.Close()
			c.SetCodec(config.codec())
			if err := c.Send(p); err != nil {
				return errors.Wrap(err, "sending")
			}
		} else {
			c, err := osc.Dial(sendFlags.addr)
			if err != nil {
				return errors.Wrap(err, "connecting")
			}
			defer c.Close()
			c.Codec = config.codec()
			if err := c.Send(p); err != nil {
				return errors.Wrap(err, "sending")
			}
		}
		log.Debug("sent", "packet", p)
		return nil
	},
}

func init() {
	flags := sendCmd.Flags()
	flags.StringVar(&sendFlags.addr, "addr", "127.0.0.1:8765", "server address")
	flags.StringVar(&sendFlags.framing, "framing", "udp", "transport: udp, slip or size")
	flags.BoolVar(&sendFlags.bundle, "bundle", false, "wrap the message in an immediate bundle")
	RootCmd.AddCommand(sendCmd)
}
