package osc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for any structural violation in encoded data:
	// short buffers, bad padding, non-ASCII text or overrunning lengths.
	ErrMalformed = errors.New("osc: malformed data")

	// ErrUnexpectedType is returned when no registered type claims a type tag.
	ErrUnexpectedType = errors.New("osc: unexpected type tag")

	// ErrInternal is returned when a registered type breaks the encode/decode contract.
	ErrInternal = errors.New("osc: internal inconsistency")

	// ErrEncode is returned when a value or address can't be represented on the wire.
	ErrEncode = errors.New("osc: cannot encode")

	// ErrTagConflict is returned by Register when a tag is already claimed.
	ErrTagConflict = errors.New("osc: type tag already registered")
)

// UnexpectedTypeError reports the type tag no registered type claimed.
type UnexpectedTypeError struct {
	Tag byte
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("osc: unexpected type tag %q", e.Tag)
}

// Is makes errors.Is(err, ErrUnexpectedType) hold.
func (e *UnexpectedTypeError) Is(target error) bool {
	return target == ErrUnexpectedType
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrMalformed}, args...)...)
}

func encodeErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrEncode}, args...)...)
}

func internalErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInternal}, args...)...)
}
