package osc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
)

// Reader is a cursor over an encoded OSC buffer. Every read either succeeds and
// advances the cursor past what it consumed, or fails and leaves the cursor
// where it was.
type Reader struct {
	buf      []byte
	pos      int
	types    *Registry
	depth    int
	maxDepth int
}

// NewReader returns a Reader over b that resolves type tags with the default
// registry.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b, types: DefaultRegistry, maxDepth: DefaultMaxDepth}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// Offset returns the cursor position.
func (r *Reader) Offset() int {
	return r.pos
}

func (r *Reader) need(n int, what string) error {
	if n < 0 || r.Len() < n {
		return malformed("%s needs %d bytes at offset %d, %d left", what, n, r.pos, r.Len())
	}
	return nil
}

// ReadUint32 reads a big-endian 32 bit word.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(bit32Size, "uint32"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += bit32Size
	return v, nil
}

// ReadUint64 reads a big-endian 64 bit word.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.need(bit64Size, "uint64"); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += bit64Size
	return v, nil
}

// ReadInt32 reads a big-endian two's complement 32 bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a big-endian two's complement 64 bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a big-endian IEEE 754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a big-endian IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadBytes returns the next n bytes. The result aliases the buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n, "raw bytes"); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadString reads a NUL terminated ASCII string padded to a 4 byte boundary.
func (r *Reader) ReadString() (string, error) {
	rest := r.buf[r.pos:]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return "", malformed("string at offset %d is not NUL terminated", r.pos)
	}
	n := paddedStringSize(end)
	if n > len(rest) {
		return "", malformed("string at offset %d needs %d bytes, %d left", r.pos, n, len(rest))
	}
	if !allZero(rest[end:n]) {
		return "", malformed("string at offset %d has non-NUL padding", r.pos)
	}
	if !isASCII(rest[:end]) {
		return "", malformed("string at offset %d is not ASCII", r.pos)
	}
	s := string(rest[:end])
	r.pos += n
	return s, nil
}

// ReadBlob reads a length-prefixed blob and its padding. The returned slice is
// a copy.
func (r *Reader) ReadBlob() ([]byte, error) {
	if err := r.need(bit32Size, "blob size"); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(r.buf[r.pos:])
	if size > MaxPacketSize {
		return nil, malformed("blob at offset %d claims %d bytes", r.pos, size)
	}
	blobLen := int(size)
	total := bit32Size + blobLen + padBytesNeeded(blobLen)
	if err := r.need(total, "blob"); err != nil {
		return nil, err
	}
	start := r.pos + bit32Size
	if !allZero(r.buf[start+blobLen : r.pos+total]) {
		return nil, malformed("blob at offset %d has non-NUL padding", r.pos)
	}
	blob := make([]byte, blobLen)
	copy(blob, r.buf[start:])
	r.pos += total
	return blob, nil
}

// ReadValue decodes one argument whose type tags start at tags[0]. It returns
// the value and the number of type tags it consumed.
func (r *Reader) ReadValue(tags string) (interface{}, int, error) {
	if len(tags) == 0 {
		return nil, 0, internalErr("ReadValue called without type tags")
	}

	switch TypeTag(tags[0]) {
	case TypeInt32:
		v, err := r.ReadInt32()
		return v, 1, err
	case TypeFloat32:
		v, err := r.ReadFloat32()
		return v, 1, err
	case TypeString:
		v, err := r.ReadString()
		return v, 1, err
	case TypeBlob:
		v, err := r.ReadBlob()
		return v, 1, err
	case TypeInt64:
		v, err := r.ReadInt64()
		return v, 1, err
	case TypeTimeTag:
		v, err := r.ReadUint64()
		return Timetag(v), 1, err
	case TypeFloat64:
		v, err := r.ReadFloat64()
		return v, 1, err
	case TypeSymbol:
		v, err := r.ReadString()
		return Symbol(v), 1, err
	case TypeChar:
		v, err := r.ReadUint32()
		if err != nil {
			return nil, 1, err
		}
		if v >= 0x80 {
			r.pos -= bit32Size
			return nil, 1, malformed("char %#x at offset %d is not ASCII", v, r.pos)
		}
		return Char(v), 1, nil
	case TypeMIDI:
		b, err := r.ReadBytes(bit32Size)
		if err != nil {
			return nil, 1, err
		}
		return MIDI{Port: b[0], Status: b[1], Data1: b[2], Data2: b[3]}, 1, nil
	case TypeTrue:
		return true, 1, nil
	case TypeFalse:
		return false, 1, nil
	case TypeNil:
		return nil, 1, nil
	case TypeImpulse:
		return Impulse{}, 1, nil
	case TypeArrayOpen:
		return r.readArray(tags)
	}

	return r.readRegistered(tags)
}

func (r *Reader) readArray(tags string) (interface{}, int, error) {
	if r.depth >= r.maxDepth {
		return nil, 0, malformed("arrays nested deeper than %d", r.maxDepth)
	}
	r.depth++
	defer func() { r.depth-- }()

	start := r.pos
	arr := []interface{}{}
	for i := 1; i < len(tags); {
		switch tags[i] {
		case byte(TypeArrayClose):
			return arr, i + 1, nil
		case ',', 0:
			i++
			continue
		}
		v, n, err := r.ReadValue(tags[i:])
		if err != nil {
			r.pos = start
			return nil, 0, err
		}
		arr = append(arr, v)
		i += n
	}
	r.pos = start
	return nil, 0, malformed("unterminated array in type tags %q", tags)
}

// readRegistered hands tags to the user types claiming tags[0], in
// registration order. A type that breaks the decode contract is skipped.
func (r *Reader) readRegistered(tags string) (interface{}, int, error) {
	candidates := r.types.resolveUser(tags[0])
	if len(candidates) == 0 {
		return nil, 0, &UnexpectedTypeError{Tag: tags[0]}
	}

	if candidates[0].Identity().Kind == Variadic {
		if r.depth >= r.maxDepth {
			return nil, 0, malformed("%q values nested deeper than %d", tags[0], r.maxDepth)
		}
		r.depth++
		defer func() { r.depth-- }()
	}

	start := r.pos
	var lastErr error
	for _, d := range candidates {
		v, n, err := d.Decode(r, tags)
		if err == nil {
			err = d.Identity().checkDecoded(tags, n)
		}
		if err == nil {
			return v, n, nil
		}
		r.pos = start
		if !errors.Is(err, ErrInternal) {
			return nil, 0, err
		}
		lastErr = err
	}
	return nil, 0, lastErr
}
