package main

import (
	"strings"

	"github.com/chabad360/oscwire/osc"
)

// transport is "udp" or a stream framing over TCP.
type transport struct {
	stream  bool
	framing osc.Framing
}

func parseTransport(s string) (transport, error) {
	if strings.EqualFold(s, "udp") {
		return transport{}, nil
	}
	f, err := osc.ParseFraming(s)
	if err != nil {
		return transport{}, err
	}
	return transport{stream: true, framing: f}, nil
}

func (t transport) String() string {
	if !t.stream {
		return "udp"
	}
	return "tcp/" + t.framing.String()
}
