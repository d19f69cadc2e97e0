package osc

import (
	"encoding/binary"
	"math"
)

// Writer builds the type tag string and the argument payload of a message in
// two separate regions. Message encoding concatenates them behind the address.
type Writer struct {
	tags     []byte
	data     []byte
	types    *Registry
	depth    int
	maxDepth int
}

// NewWriter returns an empty Writer that encodes user types with the default
// registry.
func NewWriter() *Writer {
	return &Writer{types: DefaultRegistry, maxDepth: DefaultMaxDepth}
}

// Tags returns the type tags written so far, without the leading ','.
func (w *Writer) Tags() string {
	return string(w.tags)
}

// Payload returns the argument bytes written so far.
func (w *Writer) Payload() []byte {
	return w.data
}

// Tag appends one type tag character.
func (w *Writer) Tag(c byte) {
	w.tags = append(w.tags, c)
}

// WriteUint32 appends a big-endian 32 bit word.
func (w *Writer) WriteUint32(v uint32) {
	w.data = binary.BigEndian.AppendUint32(w.data, v)
}

// WriteUint64 appends a big-endian 64 bit word.
func (w *Writer) WriteUint64(v uint64) {
	w.data = binary.BigEndian.AppendUint64(w.data, v)
}

func (w *Writer) WriteInt32(v int32)     { w.WriteUint32(uint32(v)) }
func (w *Writer) WriteInt64(v int64)     { w.WriteUint64(uint64(v)) }
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteBytes appends b verbatim. The caller keeps the payload 4 byte aligned.
func (w *Writer) WriteBytes(b []byte) {
	w.data = append(w.data, b...)
}

// WriteString appends str as an OSC-string: the ASCII bytes followed by one to
// four NULs.
func (w *Writer) WriteString(str string) error {
	if err := checkString(str); err != nil {
		return err
	}
	w.data = appendPaddedString(w.data, str)
	return nil
}

// WriteBlob appends the big-endian size of b, b itself and zero to three NULs.
func (w *Writer) WriteBlob(b []byte) error {
	if len(b) > MaxPacketSize {
		return encodeErr("blob of %d bytes exceeds %d", len(b), MaxPacketSize)
	}
	w.WriteUint32(uint32(len(b)))
	w.data = append(w.data, b...)
	for i := padBytesNeeded(len(b)); i > 0; i-- {
		w.data = append(w.data, 0)
	}
	return nil
}

// WriteValue appends the type tags and payload for v. Built-in Go types are
// encoded directly, anything else goes to the registry.
func (w *Writer) WriteValue(v interface{}) error {
	switch t := v.(type) {
	case int32:
		w.Tag(byte(TypeInt32))
		w.WriteInt32(t)
	case float32:
		w.Tag(byte(TypeFloat32))
		w.WriteFloat32(t)
	case string:
		w.Tag(byte(TypeString))
		return w.WriteString(t)
	case []byte:
		w.Tag(byte(TypeBlob))
		return w.WriteBlob(t)
	case int64:
		w.Tag(byte(TypeInt64))
		w.WriteInt64(t)
	case Timetag:
		w.Tag(byte(TypeTimeTag))
		w.WriteUint64(uint64(t))
	case float64:
		w.Tag(byte(TypeFloat64))
		w.WriteFloat64(t)
	case Symbol:
		w.Tag(byte(TypeSymbol))
		return w.WriteString(string(t))
	case Char:
		if t < 0 || t >= 0x80 {
			return encodeErr("char %q is not ASCII", rune(t))
		}
		w.Tag(byte(TypeChar))
		w.WriteUint32(uint32(t))
	case MIDI:
		w.Tag(byte(TypeMIDI))
		w.data = append(w.data, t.Port, t.Status, t.Data1, t.Data2)
	case bool:
		if t {
			w.Tag(byte(TypeTrue))
		} else {
			w.Tag(byte(TypeFalse))
		}
	case nil:
		w.Tag(byte(TypeNil))
	case Impulse:
		w.Tag(byte(TypeImpulse))
	case []interface{}:
		return w.writeArray(t)
	default:
		return w.writeRegistered(v)
	}
	return nil
}

func (w *Writer) writeArray(arr []interface{}) error {
	if w.depth >= w.maxDepth {
		return encodeErr("arrays nested deeper than %d", w.maxDepth)
	}
	w.depth++
	defer func() { w.depth-- }()

	w.Tag(byte(TypeArrayOpen))
	for _, v := range arr {
		if err := w.WriteValue(v); err != nil {
			return err
		}
	}
	w.Tag(byte(TypeArrayClose))
	return nil
}

func (w *Writer) writeRegistered(v interface{}) error {
	d := w.types.encoderFor(v)
	if d == nil {
		return encodeErr("unsupported type: %T", v)
	}
	id := d.Identity()
	if id.Kind == Variadic {
		if w.depth >= w.maxDepth {
			return encodeErr("%q values nested deeper than %d", id.Tags, w.maxDepth)
		}
		w.depth++
		defer func() { w.depth-- }()
	}

	tagMark, dataMark := len(w.tags), len(w.data)
	if err := d.Encode(w, v); err != nil {
		return err
	}
	if err := id.checkEncoded(w.tags[tagMark:]); err != nil {
		return err
	}
	if n := len(w.data) - dataMark; n%4 != 0 {
		w.tags, w.data = w.tags[:tagMark], w.data[:dataMark]
		return internalErr("%q encoder wrote %d bytes, not a multiple of 4", id.Tags, n)
	}
	return nil
}
