package main

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var decodeRaw bool

// decodeCmd prints the packet held by hex on the command line or by stdin.
var decodeCmd = &cobra.Command{
	Use:   "decode [HEX...]",
	Short: "Decode a packet and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		if len(args) > 0 {
			b, err := hex.DecodeString(strings.Join(strings.Fields(strings.Join(args, " ")), ""))
			if err != nil {
				return errors.Wrap(err, "reading hex")
			}
			data = b
		} else {
			in, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return errors.Wrap(err, "reading stdin")
			}
			data = in
			if !decodeRaw {
				if data, err = hex.DecodeString(strings.Join(strings.Fields(string(in)), "")); err != nil {
					return errors.Wrap(err, "reading hex")
				}
			}
		}

		p, err := config.codec().ParsePacket(data)
		if err != nil {
			return errors.Wrap(err, "decoding")
		}
		printPacket(cmd.OutOrStdout(), p, 0)
		return nil
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeRaw, "raw", false, "read raw bytes from stdin instead of hex")
	RootCmd.AddCommand(decodeCmd)
}
