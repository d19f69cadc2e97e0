package osc

import (
	"fmt"
	"sync"
)

// TypeDescriptor describes how one OSC argument type is tagged and
// serialized. Implementations must be safe for concurrent use.
type TypeDescriptor interface {
	// Identity returns the type tag characters the type claims.
	Identity() TagIdentity
	// Accepts reports whether v is a value of this type.
	Accepts(v interface{}) bool
	// Encode writes the type tags and payload of v.
	Encode(w *Writer, v interface{}) error
	// Decode reads one value whose type tags start at tags[0] and returns it
	// with the number of tags consumed.
	Decode(r *Reader, tags string) (interface{}, int, error)
}

// builtinType is the descriptor of one of the built-in argument types. Codec
// paths encode and decode built-ins directly; these exist so Resolve can
// report them.
type builtinType struct {
	id TagIdentity
}

func (b builtinType) Identity() TagIdentity { return b.id }

func (b builtinType) Accepts(v interface{}) bool {
	got := ToTypeTag(v)
	return got != TypeInvalid && b.id.Claims(byte(got))
}

func (b builtinType) Encode(w *Writer, v interface{}) error {
	if !b.Accepts(v) {
		return internalErr("%T is not a %q value", v, b.id.Tags)
	}
	return w.WriteValue(v)
}

func (b builtinType) Decode(r *Reader, tags string) (interface{}, int, error) {
	if len(tags) == 0 || !b.id.Claims(tags[0]) {
		return nil, 0, internalErr("type tags %q are not %q", tags, b.id.Tags)
	}
	return r.ReadValue(tags)
}

var builtinTypes = []builtinType{
	{AtomicTag(byte(TypeInt32))},
	{AtomicTag(byte(TypeFloat32))},
	{AtomicTag(byte(TypeString))},
	{AtomicTag(byte(TypeBlob))},
	{AtomicTag(byte(TypeInt64))},
	{AtomicTag(byte(TypeTimeTag))},
	{AtomicTag(byte(TypeFloat64))},
	{AtomicTag(byte(TypeSymbol))},
	{AtomicTag(byte(TypeChar))},
	{AtomicTag(byte(TypeMIDI))},
	{VariableTags(string([]byte{byte(TypeTrue), byte(TypeFalse)}))},
	{AtomicTag(byte(TypeNil))},
	{AtomicTag(byte(TypeImpulse))},
	{VariadicTags(byte(TypeArrayOpen), byte(TypeArrayClose))},
}

// builtinClaims marks every tag character owned by a built-in type.
var builtinClaims = func() (claims [256]bool) {
	for _, b := range builtinTypes {
		for i := 0; i < len(b.id.Tags); i++ {
			claims[b.id.Tags[i]] = true
		}
	}
	return claims
}()

// Registry maps type tags to argument types. The built-in types are always
// present and always take precedence; user types are added with Register.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	user  []TypeDescriptor
	byTag map[byte][]TypeDescriptor
}

// DefaultRegistry is used by the package level functions and by Message and
// Bundle marshalling.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding only the built-in types.
func NewRegistry() *Registry {
	return &Registry{byTag: make(map[byte][]TypeDescriptor)}
}

// RegisterType adds d to the default registry.
func RegisterType(d TypeDescriptor) error {
	return DefaultRegistry.Register(d)
}

// Register adds a user type. A type with the same identity as an earlier user
// type replaces it. Claiming a tag owned by a built-in or by a different user
// type fails with ErrTagConflict.
func (r *Registry) Register(d TypeDescriptor) error {
	if d == nil {
		return internalErr("Register: nil descriptor")
	}
	id := d.Identity()
	if err := id.validate(); err != nil {
		return fmt.Errorf("Register: %w", err)
	}
	for i := 0; i < len(id.Tags); i++ {
		if builtinClaims[id.Tags[i]] {
			return fmt.Errorf("Register: %w: %q is a built-in tag", ErrTagConflict, id.Tags[i])
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	replace := -1
	for i, u := range r.user {
		uid := u.Identity()
		if uid == id {
			replace = i
			continue
		}
		for j := 0; j < len(id.Tags); j++ {
			for k := 0; k < len(uid.Tags); k++ {
				if id.Tags[j] == uid.Tags[k] {
					return fmt.Errorf("Register: %w: %q is claimed by %s type %q", ErrTagConflict, id.Tags[j], uid.Kind, uid.Tags)
				}
			}
		}
	}

	if replace >= 0 {
		r.user[replace] = d
	} else {
		r.user = append(r.user, d)
	}
	r.reindex()
	return nil
}

// reindex rebuilds byTag from user. Callers hold mu.
func (r *Registry) reindex() {
	r.byTag = make(map[byte][]TypeDescriptor, len(r.user))
	for _, d := range r.user {
		id := d.Identity()
		tags := id.Tags
		if id.Kind == Variadic {
			tags = tags[:1]
		}
		for i := 0; i < len(tags); i++ {
			r.byTag[tags[i]] = append(r.byTag[tags[i]], d)
		}
	}
}

// Resolve returns every type that can start decoding at tag c, built-ins first.
func (r *Registry) Resolve(c byte) []TypeDescriptor {
	var out []TypeDescriptor
	for _, b := range builtinTypes {
		if b.id.Claims(c) {
			out = append(out, b)
		}
	}
	return append(out, r.resolveUser(c)...)
}

func (r *Registry) resolveUser(c byte) []TypeDescriptor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds := r.byTag[c]
	if len(ds) == 0 {
		return nil
	}
	return append([]TypeDescriptor(nil), ds...)
}

// encoderFor returns the first user type accepting v, or nil.
func (r *Registry) encoderFor(v interface{}) TypeDescriptor {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.user {
		if d.Accepts(v) {
			return d
		}
	}
	return nil
}
