package main

import (
	"encoding/hex"
	"fmt"

	"github.com/chabad360/oscwire/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var encodeFlags struct {
	bundle bool
	raw    bool
}

// encodeCmd prints the wire form of one message.
var encodeCmd = &cobra.Command{
	Use:   "encode ADDRESS [ARG...]",
	Short: "Print the encoded bytes of a message",
	Long: `Print the encoded bytes of a message as hex.

Arguments are written as tag:value (i:255, h:-1, f:0.5, d:1e-9, s:text,
S:symbol, c:x, b:0a0b0c, t:1, m:00903c7f), as a bare tag (T, F, N, I), or
between [ and ] to build an array. Untagged words become an int32, a float32
or a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := messageFromArgs(args)
		if err != nil {
			return err
		}
		if encodeFlags.bundle {
			p = osc.NewBundle(p)
		}
		b, err := config.codec().Encode(p)
		if err != nil {
			return errors.Wrap(err, "encoding")
		}
		if encodeFlags.raw {
			_, err = cmd.OutOrStdout().Write(b)
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(b))
		return err
	},
}

func init() {
	encodeCmd.Flags().BoolVar(&encodeFlags.bundle, "bundle", false, "wrap the message in an immediate bundle")
	encodeCmd.Flags().BoolVar(&encodeFlags.raw, "raw", false, "write raw bytes instead of hex")
	RootCmd.AddCommand(encodeCmd)
}

func messageFromArgs(args []string) (osc.Packet, error) {
	values, err := parseArguments(args[1:])
	if err != nil {
		return nil, errors.Wrap(err, "parsing arguments")
	}
	return osc.NewMessage(args[0], values...), nil
}
