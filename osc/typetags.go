package osc

import "fmt"

// TypeTag is a single character of an OSC type tag string.
type TypeTag byte

const (
	TypeInt32      TypeTag = 'i'
	TypeFloat32    TypeTag = 'f'
	TypeString     TypeTag = 's'
	TypeBlob       TypeTag = 'b'
	TypeInt64      TypeTag = 'h'
	TypeTimeTag    TypeTag = 't'
	TypeFloat64    TypeTag = 'd'
	TypeSymbol     TypeTag = 'S'
	TypeChar       TypeTag = 'c'
	TypeMIDI       TypeTag = 'm'
	TypeTrue       TypeTag = 'T'
	TypeFalse      TypeTag = 'F'
	TypeNil        TypeTag = 'N'
	TypeImpulse    TypeTag = 'I'
	TypeArrayOpen  TypeTag = '['
	TypeArrayClose TypeTag = ']'
	TypeInvalid    TypeTag = 0
)

// Symbol is the alternate OSC string type, tagged 'S'.
type Symbol string

// Char is a single ASCII character, sent as a 32 bit word.
type Char rune

// MIDI is a four byte MIDI message: port id, status byte and two data bytes.
type MIDI struct {
	Port, Status, Data1, Data2 byte
}

// Impulse carries no data; it is the "bang" (or Infinitum in OSC 1.0).
type Impulse struct{}

// ToTypeTag returns the OSC TypeTag for a built-in argument type. Arrays
// report their opening tag. Returns TypeInvalid for anything else.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := arg.(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case int64:
		return TypeInt64
	case float64:
		return TypeFloat64
	case Timetag:
		return TypeTimeTag
	case Symbol:
		return TypeSymbol
	case Char:
		return TypeChar
	case MIDI:
		return TypeMIDI
	case Impulse:
		return TypeImpulse
	case []interface{}:
		return TypeArrayOpen
	default:
		return TypeInvalid
	}
}

// TagKind says how a type picks its type tag characters.
type TagKind uint8

const (
	// Atomic types always use one fixed tag.
	Atomic TagKind = iota + 1
	// Variable types pick one tag out of a small set depending on the value.
	Variable
	// Variadic types open with one tag, then the tags of their children,
	// then a closing tag.
	Variadic
)

func (k TagKind) String() string {
	switch k {
	case Atomic:
		return "atomic"
	case Variable:
		return "variable"
	case Variadic:
		return "variadic"
	}
	return fmt.Sprintf("TagKind(%d)", uint8(k))
}

// TagIdentity is the set of type tag characters a type claims. For Variadic
// identities Tags holds the opening and the closing tag, in that order.
type TagIdentity struct {
	Kind TagKind
	Tags string
}

// AtomicTag returns the identity of a type always tagged c.
func AtomicTag(c byte) TagIdentity {
	return TagIdentity{Kind: Atomic, Tags: string([]byte{c})}
}

// VariableTags returns the identity of a type tagged with one of tags.
func VariableTags(tags string) TagIdentity {
	return TagIdentity{Kind: Variable, Tags: tags}
}

// VariadicTags returns the identity of a type wrapping its children in open
// and close.
func VariadicTags(open, close byte) TagIdentity {
	return TagIdentity{Kind: Variadic, Tags: string([]byte{open, close})}
}

// Claims reports whether a type tag string element c starts a value of this
// identity.
func (id TagIdentity) Claims(c byte) bool {
	switch id.Kind {
	case Atomic, Variable:
		for i := 0; i < len(id.Tags); i++ {
			if id.Tags[i] == c {
				return true
			}
		}
	case Variadic:
		return len(id.Tags) == 2 && id.Tags[0] == c
	}
	return false
}

// Span returns how many tags of tags, which must begin with the opening tag,
// belong to one variadic value including both brackets. Nested runs of the
// same brackets are skipped. ok is false when the run is never closed.
func (id TagIdentity) Span(tags string) (n int, ok bool) {
	if id.Kind != Variadic || len(id.Tags) != 2 || len(tags) == 0 || tags[0] != id.Tags[0] {
		return 0, false
	}
	depth := 0
	for i := 0; i < len(tags); i++ {
		switch tags[i] {
		case id.Tags[0]:
			depth++
		case id.Tags[1]:
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func (id TagIdentity) validate() error {
	switch id.Kind {
	case Atomic:
		if len(id.Tags) != 1 {
			return internalErr("atomic identity needs exactly one tag, got %q", id.Tags)
		}
	case Variable:
		if len(id.Tags) == 0 {
			return internalErr("variable identity needs at least one tag")
		}
	case Variadic:
		if len(id.Tags) != 2 || id.Tags[0] == id.Tags[1] {
			return internalErr("variadic identity needs distinct open and close tags, got %q", id.Tags)
		}
	default:
		return internalErr("unknown tag kind %v", id.Kind)
	}
	for i := 0; i < len(id.Tags); i++ {
		if c := id.Tags[i]; c == ',' || c == 0 || c >= 0x80 {
			return fmt.Errorf("%w: %q is reserved", ErrTagConflict, c)
		}
	}
	return nil
}

// checkEncoded verifies the tags an Encode call produced.
func (id TagIdentity) checkEncoded(tags []byte) error {
	switch id.Kind {
	case Atomic, Variable:
		if len(tags) == 1 && id.Claims(tags[0]) {
			return nil
		}
	case Variadic:
		if n, ok := id.Span(string(tags)); ok && n == len(tags) {
			return nil
		}
	}
	return internalErr("%s type %q wrote type tags %q", id.Kind, id.Tags, tags)
}

// checkDecoded verifies the number of tags a Decode call claims to have consumed.
func (id TagIdentity) checkDecoded(tags string, n int) error {
	switch id.Kind {
	case Atomic, Variable:
		if n == 1 {
			return nil
		}
	case Variadic:
		if n >= 2 && n <= len(tags) && tags[n-1] == id.Tags[1] {
			return nil
		}
	}
	return internalErr("%s type %q consumed %d of type tags %q", id.Kind, id.Tags, n, tags)
}
