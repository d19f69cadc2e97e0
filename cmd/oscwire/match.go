package main

import (
	"fmt"

	"github.com/chabad360/oscwire/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// matchCmd reports which addresses an address pattern selects.
var matchCmd = &cobra.Command{
	Use:   "match PATTERN ADDRESS...",
	Short: "Match addresses against an address pattern",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := osc.CompilePattern(args[0])
		if err != nil {
			return err
		}
		matched := 0
		for _, addr := range args[1:] {
			ok := p.Match(addr)
			if ok {
				matched++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", addr, ok)
		}
		if matched == 0 {
			return errors.Errorf("%s matches none of the addresses", p)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(matchCmd)
}
