package osc

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Packet is a Message or a Bundle. No other type implements it.
type Packet interface {
	encoding.BinaryMarshaler
	packet()
}

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Messages implements the Packet interface.
var _ Packet = (*Message)(nil)

func (*Message) packet() {}

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// NewMessageFromData decodes a message with the default registry.
func NewMessageFromData(data []byte) (*Message, error) {
	return defaultCodec.DecodeMessage(data)
}

// Clear removes the address and all arguments.
func (m *Message) Clear() {
	m.Address = ""
	m.Arguments = m.Arguments[:0]
}

// Append appends the given arguments to the arguments list. Nothing is
// appended if any of them can't be encoded with DefaultRegistry; use
// Codec.Append for types registered elsewhere.
func (m *Message) Append(args ...interface{}) error {
	return defaultCodec.Append(m, args...)
}

// Match returns true, if the OSC address pattern of the OSC Message matches the given
// address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	p, err := CompilePattern(m.Address)
	if err != nil {
		return false
	}
	return p.Match(addr)
}

// TypeTags returns the type tag string, including the leading ','. User types
// resolve through DefaultRegistry; see Codec.TypeTags.
func (m *Message) TypeTags() (string, error) {
	return defaultCodec.TypeTags(m)
}

// Equal reports whether m and o have the same address and arguments. Floats
// compare by bit pattern, so a NaN argument equals itself.
func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Address == o.Address && argumentsEqual(m.Arguments, o.Arguments)
}

func argumentsEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !argumentEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func argumentEqual(a, b interface{}) bool {
	switch x := a.(type) {
	case float32:
		y, ok := b.(float32)
		return ok && math.Float32bits(x) == math.Float32bits(y)
	case float64:
		y, ok := b.(float64)
		return ok && math.Float64bits(x) == math.Float64bits(y)
	case []byte:
		y, ok := b.([]byte)
		return ok && bytes.Equal(x, y)
	case []interface{}:
		y, ok := b.([]interface{})
		return ok && argumentsEqual(x, y)
	}
	return reflect.DeepEqual(a, b)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.Address)

	tags, err := m.TypeTags()
	if err != nil || len(m.Arguments) == 0 {
		return sb.String()
	}

	sb.WriteByte(' ')
	sb.WriteString(tags)
	for _, arg := range m.Arguments {
		sb.WriteByte(' ')
		writeArgument(&sb, arg)
	}

	return sb.String()
}

func writeArgument(sb *strings.Builder, arg interface{}) {
	switch arg := arg.(type) {
	case nil:
		sb.WriteString("Nil")
	case []byte:
		fmt.Fprintf(sb, "blob(%d)", len(arg))
	case Timetag:
		fmt.Fprintf(sb, "%d", arg.TimeTag())
	case Symbol:
		fmt.Fprintf(sb, "'%s", string(arg))
	case Char:
		fmt.Fprintf(sb, "%q", rune(arg))
	case MIDI:
		fmt.Fprintf(sb, "midi(%d %d %d %d)", arg.Port, arg.Status, arg.Data1, arg.Data2)
	case Impulse:
		sb.WriteString("Impulse")
	case []interface{}:
		sb.WriteByte('[')
		for i, v := range arg {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeArgument(sb, v)
		}
		sb.WriteByte(']')
	default:
		fmt.Fprintf(sb, "%v", arg)
	}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (m *Message) MarshalBinary() ([]byte, error) {
	return defaultCodec.EncodeMessage(m)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (m *Message) UnmarshalBinary(data []byte) error {
	msg, err := defaultCodec.DecodeMessage(data)
	if err != nil {
		return fmt.Errorf("UnmarshalBinary: %w", err)
	}
	*m = *msg
	return nil
}
