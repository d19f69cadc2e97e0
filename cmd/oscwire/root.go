package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chabad360/oscwire/osc"
	"github.com/spf13/cobra"
)

// Config holds the flags shared by every command.
type Config struct {
	MaxDepth int
	LogLevel string
}

var config Config

// RootCmd is the oscwire command.
var RootCmd = &cobra.Command{
	Use:          "oscwire",
	Short:        "Encode, decode and route Open Sound Control packets",
	SilenceUsage: true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.IntVar(&config.MaxDepth, "max-depth", osc.DefaultMaxDepth, "maximum bundle and array nesting")
	flags.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func (c Config) codec() *osc.Codec {
	return &osc.Codec{MaxDepth: c.MaxDepth}
}

func (c Config) logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func stderrLogger() *slog.Logger {
	return config.logger(os.Stderr)
}

// printPacket writes p to w, one line per message, indenting bundle contents.
func printPacket(w io.Writer, p osc.Packet, depth int) {
	indent := strings.Repeat("\t", depth)
	switch p := p.(type) {
	case *osc.Message:
		fmt.Fprintf(w, "%s%s\n", indent, p)
	case *osc.Bundle:
		if p.Timetag.IsImmediate() {
			fmt.Fprintf(w, "%s#bundle immediate (%d elements)\n", indent, len(p.Elements))
		} else {
			fmt.Fprintf(w, "%s#bundle %s (%d elements)\n", indent, p.Timetag.Time().UTC().Format("2006-01-02T15:04:05.000000000Z"), len(p.Elements))
		}
		for _, e := range p.Elements {
			printPacket(w, e, depth+1)
		}
	}
}
