package introspect

import (
	"errors"
	"fmt"
)

// Sentinel errors. InvalidInputError and MemberIntrospectionError unwrap
// to these so callers can use errors.Is.
var (
	// ErrInvalidInput is returned when the root object is absent or has no
	// named members.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMemberIntrospection is returned when a single member cannot be read
	// or classified.
	ErrMemberIntrospection = errors.New("member introspection failed")

	// ErrNoSuchMember is returned by ReadMember for a name that Members did
	// not list.
	ErrNoSuchMember = errors.New("no such member")
)

// InvalidInputError reports a root object that cannot be described.
// It is fatal to the call: no partial report is produced.
type InvalidInputError struct {
	// Reason says what was wrong with the input.
	Reason string
}

// Error implements error.
func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// Unwrap returns ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// MemberIntrospectionError reports one member that could not be read.
// The reporter recovers it locally and emits a fallback entry.
type MemberIntrospectionError struct {
	// Member is the name of the failing member.
	Member string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *MemberIntrospectionError) Error() string {
	return fmt.Sprintf("member %q: %v", e.Member, e.Err)
}

// Unwrap returns both the sentinel and the cause.
func (e *MemberIntrospectionError) Unwrap() []error {
	return []error{ErrMemberIntrospection, e.Err}
}

// memberError wraps err for the named member unless it already is one.
func memberError(name string, err error) *MemberIntrospectionError {
	var mie *MemberIntrospectionError
	if errors.As(err, &mie) {
		return mie
	}
	return &MemberIntrospectionError{Member: name, Err: err}
}
