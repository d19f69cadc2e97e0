package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DefaultMaxDepth bounds how deeply bundles, and arrays inside a message, may
// nest when a Codec doesn't set MaxDepth.
const DefaultMaxDepth = 32

// Codec encodes and decodes packets against one type registry. The zero value
// uses DefaultRegistry and DefaultMaxDepth. A Codec is safe for concurrent use.
type Codec struct {
	// Types resolves user argument types. Nil means DefaultRegistry.
	Types *Registry
	// MaxDepth caps bundle and array nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

var defaultCodec = &Codec{}

func (c *Codec) registry() *Registry {
	if c == nil || c.Types == nil {
		return DefaultRegistry
	}
	return c.Types
}

func (c *Codec) maxDepth() int {
	if c == nil || c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// PacketKind classifies the first bytes of a packet.
type PacketKind int

const (
	KindUnrecognized PacketKind = iota
	KindMessage
	KindBundle
)

func (k PacketKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindBundle:
		return "bundle"
	}
	return "unrecognized"
}

// Sniff peeks at data and reports what kind of packet it holds without
// parsing it.
func Sniff(data []byte) PacketKind {
	switch {
	case bytes.HasPrefix(data, []byte(bundleHeader)):
		return KindBundle
	case len(data) > 0 && data[0] == '/':
		return KindMessage
	}
	return KindUnrecognized
}

////
// Encoding
////

// Encode serializes a message or a bundle.
func (c *Codec) Encode(p Packet) ([]byte, error) {
	return c.appendPacket(nil, p, 1)
}

// EncodeMessage serializes m.
func (c *Codec) EncodeMessage(m *Message) ([]byte, error) {
	return c.appendMessage(nil, m)
}

// EncodeBundle serializes b and every element in it.
func (c *Codec) EncodeBundle(b *Bundle) ([]byte, error) {
	return c.appendBundle(make([]byte, 0, b.sizeHint()), b, 1)
}

func (c *Codec) appendPacket(dst []byte, p Packet, depth int) ([]byte, error) {
	switch t := p.(type) {
	case *Message:
		return c.appendMessage(dst, t)
	case *Bundle:
		return c.appendBundle(dst, t, depth)
	}
	return nil, encodeErr("unsupported packet type: %T", p)
}

func (c *Codec) newWriter() *Writer {
	return &Writer{types: c.registry(), maxDepth: c.maxDepth()}
}

// Append appends args to m if every one of them can be encoded with c.
func (c *Codec) Append(m *Message, args ...interface{}) error {
	w := c.newWriter()
	for _, a := range args {
		if err := w.WriteValue(a); err != nil {
			return fmt.Errorf("Append: %w", err)
		}
	}
	m.Arguments = append(m.Arguments, args...)
	return nil
}

// TypeTags returns the type tag string c would encode m with, including the
// leading ','.
func (c *Codec) TypeTags(m *Message) (string, error) {
	if m == nil {
		return "", fmt.Errorf("TypeTags: message is nil")
	}
	w := c.newWriter()
	for _, arg := range m.Arguments {
		if err := w.WriteValue(arg); err != nil {
			return "", fmt.Errorf("TypeTags: %w", err)
		}
	}
	return "," + w.Tags(), nil
}

func (c *Codec) appendMessage(dst []byte, m *Message) ([]byte, error) {
	if m == nil {
		return nil, encodeErr("nil message")
	}
	if len(m.Address) == 0 || m.Address[0] != '/' {
		return nil, encodeErr("address %q must begin with '/'", m.Address)
	}
	if err := checkString(m.Address); err != nil {
		return nil, err
	}

	w := c.newWriter()
	for i, arg := range m.Arguments {
		if err := w.WriteValue(arg); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}

	tags := "," + string(w.tags)
	size := paddedStringSize(len(m.Address)) + paddedStringSize(len(tags)) + len(w.data)
	if cap(dst)-len(dst) < size {
		grown := make([]byte, len(dst), len(dst)+size)
		copy(grown, dst)
		dst = grown
	}

	dst = appendPaddedString(dst, m.Address)
	dst = appendPaddedString(dst, tags)
	return append(dst, w.data...), nil
}

func (c *Codec) appendBundle(dst []byte, b *Bundle, depth int) ([]byte, error) {
	if b == nil {
		return nil, encodeErr("nil bundle")
	}
	if depth > c.maxDepth() {
		return nil, encodeErr("bundles nested deeper than %d", c.maxDepth())
	}

	dst = append(dst, bundleHeader...)
	dst = binary.BigEndian.AppendUint64(dst, uint64(b.Timetag))

	for i, elem := range b.Elements {
		// Reserve the size field and fill it in once the element is written.
		at := len(dst)
		dst = append(dst, 0, 0, 0, 0)

		var err error
		if dst, err = c.appendPacket(dst, elem, depth+1); err != nil {
			return nil, fmt.Errorf("bundle element %d: %w", i, err)
		}
		binary.BigEndian.PutUint32(dst[at:], uint32(len(dst)-at-bit32Size))
	}

	return dst, nil
}

////
// Decoding
////

// ParsePacket decodes a message or a bundle, whichever data holds.
func (c *Codec) ParsePacket(data []byte) (Packet, error) {
	return c.parsePacket(data, 1)
}

func (c *Codec) parsePacket(data []byte, depth int) (Packet, error) {
	switch Sniff(data) {
	case KindMessage:
		return c.DecodeMessage(data)
	case KindBundle:
		return c.decodeBundle(data, depth)
	}
	return nil, malformed("packet is neither a message nor a bundle")
}

// DecodeMessage decodes one message. data must hold exactly the message.
func (c *Codec) DecodeMessage(data []byte) (*Message, error) {
	if len(data)%bit32Size != 0 {
		return nil, malformed("message length %d isn't a multiple of 4", len(data))
	}
	if len(data) == 0 || data[0] != '/' {
		return nil, malformed("message doesn't begin with '/'")
	}

	r := &Reader{buf: data, types: c.registry(), maxDepth: c.maxDepth()}

	addr, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading address: %w", err)
	}
	m := &Message{Address: addr}

	// Messages from OSC 1.0 era senders may stop after the address.
	if r.Len() == 0 {
		return m, nil
	}

	tags, err := r.ReadString()
	if err != nil {
		return nil, fmt.Errorf("reading type tags: %w", err)
	}
	if len(tags) == 0 || tags[0] != ',' {
		return nil, malformed("type tag string %q doesn't begin with ','", tags)
	}

	for i := 1; i < len(tags); {
		if tags[i] == ',' {
			i++
			continue
		}
		v, n, err := r.ReadValue(tags[i:])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%c): %w", len(m.Arguments), tags[i], err)
		}
		m.Arguments = append(m.Arguments, v)
		i += n
	}

	if r.Len() != 0 {
		return nil, malformed("%d bytes left after the last argument", r.Len())
	}
	return m, nil
}

// DecodeBundle decodes a bundle and, recursively, all of its elements.
func (c *Codec) DecodeBundle(data []byte) (*Bundle, error) {
	return c.decodeBundle(data, 1)
}

func (c *Codec) decodeBundle(data []byte, depth int) (*Bundle, error) {
	if depth > c.maxDepth() {
		return nil, malformed("bundles nested deeper than %d", c.maxDepth())
	}
	if len(data) < bundleHeaderSize {
		return nil, malformed("bundle is too short: %d bytes", len(data))
	}
	if len(data)%bit32Size != 0 {
		return nil, malformed("bundle length %d isn't a multiple of 4", len(data))
	}
	if !bytes.Equal(data[:len(bundleHeader)], []byte(bundleHeader)) {
		return nil, malformed("invalid bundle start tag %q", data[:len(bundleHeader)])
	}

	r := &Reader{buf: data, pos: len(bundleHeader)}
	tt, _ := r.ReadUint64()
	b := &Bundle{Timetag: Timetag(tt)}

	for r.Len() > 0 {
		size, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("bundle element %d: %w", len(b.Elements), err)
		}
		if int64(size) > int64(r.Len()) {
			return nil, malformed("bundle element %d claims %d bytes, %d left", len(b.Elements), size, r.Len())
		}
		elem, _ := r.ReadBytes(int(size))

		p, err := c.parsePacket(elem, depth+1)
		if err != nil {
			return nil, fmt.Errorf("bundle element %d: %w", len(b.Elements), err)
		}
		b.Elements = append(b.Elements, p)
	}

	return b, nil
}

////
// Package level helpers
////

// EncodeMessage serializes a message with the given address and arguments.
func EncodeMessage(addr string, args ...interface{}) ([]byte, error) {
	return defaultCodec.EncodeMessage(NewMessage(addr, args...))
}

// EncodeBundle serializes a bundle with the given time tag and elements.
func EncodeBundle(tt Timetag, elems ...Packet) ([]byte, error) {
	return defaultCodec.EncodeBundle(&Bundle{Timetag: tt, Elements: elems})
}

// ParsePacket decodes a message or a bundle with the default registry.
func ParsePacket(data []byte) (Packet, error) {
	return defaultCodec.ParsePacket(data)
}
