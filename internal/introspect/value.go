package introspect

import "fmt"

// Kind classifies a member of a described object.
type Kind int

const (
	// KindScalar is a string, number or boolean.
	KindScalar Kind = iota

	// KindSequence is an ordered collection (slice, array, JSON array).
	KindSequence

	// KindMapping is a keyed collection (map, JSON object).
	KindMapping

	// KindCallable is a method or function-typed member.
	KindCallable

	// KindOpaque is anything else: a nested object, nil, or an unknown type.
	KindOpaque
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindCallable:
		return "callable"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name so JSON reports stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Member is a named member of an object as listed by Describable.Members.
// Kind is the declared kind; the value read later decides the final
// classification of data members.
type Member struct {
	Name string
	Kind Kind
}

// Value is a classified member value. The set of implementations is closed:
// Scalar, Sequence, Mapping, Callable and Opaque.
type Value interface {
	// Kind returns the classification of the value.
	Kind() Kind

	// Type returns the type tag shown in reports.
	Type() string

	isValue()
}

// Scalar is a string, number or boolean rendered by its literal.
type Scalar struct {
	TypeTag string
	Literal string
}

// Sequence is an ordered collection. Only the first element is sampled:
// ElemType is the type tag of element 0, and Sample describes it when the
// element is itself an object.
type Sequence struct {
	TypeTag  string
	Len      int
	ElemType string
	Sample   Describable
}

// Mapping is a keyed collection. Keys holds every key in natural iteration
// order; the reporter truncates the preview.
type Mapping struct {
	TypeTag string
	Keys    []string
	Nested  Describable
}

// Callable is a method or function member. Known is false when the
// parameter list could not be discovered.
type Callable struct {
	TypeTag   string
	Signature string
	Known     bool
	Doc       string
}

// Opaque is any value that is not classified further. Nested describes the
// value when it is an object the reporter may recurse into.
type Opaque struct {
	TypeTag string
	Nested  Describable
}

func (Scalar) Kind() Kind   { return KindScalar }
func (Sequence) Kind() Kind { return KindSequence }
func (Mapping) Kind() Kind  { return KindMapping }
func (Callable) Kind() Kind { return KindCallable }
func (Opaque) Kind() Kind   { return KindOpaque }

func (v Scalar) Type() string   { return v.TypeTag }
func (v Sequence) Type() string { return v.TypeTag }
func (v Mapping) Type() string  { return v.TypeTag }
func (v Callable) Type() string { return v.TypeTag }
func (v Opaque) Type() string   { return v.TypeTag }

func (Scalar) isValue()   {}
func (Sequence) isValue() {}
func (Mapping) isValue()  {}
func (Callable) isValue() {}
func (Opaque) isValue()   {}
