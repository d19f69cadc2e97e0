package osc

import (
	"fmt"
	"time"
)

// Bundle represents an OSC bundle. It consists of the OSC-string "#bundle"
// followed by an OSC Time Tag, followed by zero or more OSC bundle/message
// elements. The OSC-timetag is a 64-bit fixed point time tag. See
// http://opensoundcontrol.org/spec-1_0.html for more information.
type Bundle struct {
	Timetag  Timetag
	Elements []Packet
}

// Verify that Bundle implements the Packet interface.
var _ Packet = (*Bundle)(nil)

func (*Bundle) packet() {}

// NewBundle returns a bundle to be processed immediately, holding elems.
func NewBundle(elems ...Packet) *Bundle {
	return &Bundle{Timetag: NewImmediateTimetag(), Elements: elems}
}

// NewBundleWithTime returns an empty bundle scheduled for t.
func NewBundleWithTime(t time.Time) *Bundle {
	return &Bundle{Timetag: NewTimetagFromTime(t)}
}

// NewBundleFromData returns a new OSC bundle created from the parsed data.
func NewBundleFromData(data []byte) (*Bundle, error) {
	return defaultCodec.DecodeBundle(data)
}

// Append appends an OSC bundle or OSC message to the bundle.
func (b *Bundle) Append(pck Packet) error {
	switch t := pck.(type) {
	default:
		return fmt.Errorf("unsupported OSC packet type: only Bundle and Message are supported")

	case *Bundle:
		if t == nil {
			return fmt.Errorf("Append: nil bundle")
		}
	case *Message:
		if t == nil {
			return fmt.Errorf("Append: nil message")
		}
	}

	b.Elements = append(b.Elements, pck)
	return nil
}

// Equal reports whether b and o hold equal elements in the same order. The
// time tags are not compared.
func (b *Bundle) Equal(o *Bundle) bool {
	if b == nil || o == nil {
		return b == o
	}
	if len(b.Elements) != len(o.Elements) {
		return false
	}
	for i, e := range b.Elements {
		switch x := e.(type) {
		case *Message:
			y, ok := o.Elements[i].(*Message)
			if !ok || !x.Equal(y) {
				return false
			}
		case *Bundle:
			y, ok := o.Elements[i].(*Bundle)
			if !ok || !x.Equal(y) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sizeHint estimates the encoded size of b so encoding rarely reallocates.
func (b *Bundle) sizeHint() int {
	if b == nil {
		return 0
	}
	n := bundleHeaderSize
	for _, e := range b.Elements {
		n += bit32Size
		switch t := e.(type) {
		case *Message:
			if t == nil {
				continue
			}
			n += paddedStringSize(len(t.Address)) + paddedStringSize(len(t.Arguments)+1) + 8*len(t.Arguments)
		case *Bundle:
			n += t.sizeHint()
		}
	}
	return n
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (b *Bundle) MarshalBinary() ([]byte, error) {
	return defaultCodec.EncodeBundle(b)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (b *Bundle) UnmarshalBinary(data []byte) error {
	bb, err := defaultCodec.DecodeBundle(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	*b = *bb
	return nil
}
