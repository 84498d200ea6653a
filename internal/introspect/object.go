package introspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Getter is a lazily computed member of an Object. It runs when the member
// is read; a returned error marks the member unavailable in the report.
// An untyped func() (any, error) literal passed to Set is treated the same.
type Getter func() (any, error)

// Object is an ordered, map-backed Describable. Members keep the order in
// which they were first set, so mapping previews of nested Objects follow
// insertion order.
//
// Values may be nil, strings, booleans, numbers (including json.Number),
// []any, nested *Object, a Getter, a pre-classified Value (for example a
// Callable with unknown arity) or any other Go value, which is classified
// by reflection.
type Object struct {
	typeName string
	names    []string
	values   map[string]any
}

// NewObject creates an empty Object reported under typeName.
func NewObject(typeName string) *Object {
	return &Object{
		typeName: typeName,
		values:   make(map[string]any),
	}
}

// Set stores a member value and returns the Object for chaining.
// Setting an existing name replaces the value and keeps its position.
func (o *Object) Set(name string, value any) *Object {
	if _, ok := o.values[name]; !ok {
		o.names = append(o.names, name)
	}
	o.values[name] = value
	return o
}

// Get returns the raw stored value of a member.
func (o *Object) Get(name string) (any, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.names))
	copy(keys, o.names)
	return keys
}

// Len returns the number of members.
func (o *Object) Len() int {
	return len(o.names)
}

// TypeName implements Describable.
func (o *Object) TypeName() string {
	return o.typeName
}

// Members implements Describable. Getters are not run; their declared
// kind is opaque until read.
func (o *Object) Members() []Member {
	members := make([]Member, 0, len(o.names))
	for _, name := range o.names {
		members = append(members, Member{Name: name, Kind: declaredKind(o.values[name])})
	}
	return members
}

// ReadMember implements Describable.
func (o *Object) ReadMember(name string) (Value, error) {
	v, ok := o.values[name]
	if !ok {
		return nil, &MemberIntrospectionError{Member: name, Err: ErrNoSuchMember}
	}
	if g := asGetter(v); g != nil {
		got, err := g()
		if err != nil {
			return nil, &MemberIntrospectionError{Member: name, Err: err}
		}
		v = got
	}
	return classifyAny(v), nil
}

// declaredKind classifies a stored value without running getters.
func declaredKind(v any) Kind {
	if asGetter(v) != nil {
		return KindOpaque
	}
	switch x := v.(type) {
	case Value:
		return x.Kind()
	default:
		return classifyAny(v).Kind()
	}
}

// asGetter returns v as a Getter when it is one, typed or not.
func asGetter(v any) Getter {
	switch g := v.(type) {
	case Getter:
		return g
	case func() (any, error):
		return g
	default:
		return nil
	}
}

// classifyAny maps a loosely typed value onto the Value variants using the
// JSON type vocabulary: object, array, string, number, bool, null.
func classifyAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Opaque{TypeTag: "null"}
	case Value:
		return x
	case string:
		return Scalar{TypeTag: "string", Literal: x}
	case bool:
		return Scalar{TypeTag: "bool", Literal: strconv.FormatBool(x)}
	case json.Number:
		return Scalar{TypeTag: "number", Literal: x.String()}
	case []any:
		seq := Sequence{TypeTag: "array", Len: len(x)}
		if len(x) > 0 {
			seq.ElemType = tagOfAny(x[0])
			if obj, ok := x[0].(*Object); ok && obj != nil {
				seq.Sample = obj
			} else if x[0] != nil {
				seq.Sample = describableOf(reflect.ValueOf(x[0]))
			}
		}
		return seq
	case *Object:
		if x == nil {
			return Opaque{TypeTag: "null"}
		}
		return Mapping{TypeTag: "object", Keys: x.Keys(), Nested: x}
	}

	rv := reflect.ValueOf(v)
	if isNumberKind(rv.Kind()) {
		lit, _ := scalarLiteral(rv) //nolint:errcheck // numeric kinds always format
		return Scalar{TypeTag: "number", Literal: lit}
	}
	return classify(rv)
}

// tagOfAny returns the type tag of a sampled element.
func tagOfAny(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case Value:
		return x.Type()
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case *Object:
		return "object"
	}
	rv := reflect.ValueOf(v)
	if isNumberKind(rv.Kind()) {
		return "number"
	}
	return rv.Type().String()
}

// isNumberKind reports whether k is an integer, float or complex kind.
func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// errNotJSONObject is returned by FromJSON when the document root is not an object.
var errNotJSONObject = errors.New("JSON document root is not an object")

// FromJSON decodes a JSON object into an Object, keeping key order.
// Nested objects become *Object (type "object"), arrays become []any and
// numbers stay json.Number so their literal text is preserved.
func FromJSON(typeName string, data []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotJSONObject
	}

	obj, err := decodeObject(dec, typeName)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return obj, nil
}

// decodeObject reads members up to the closing brace; the opening brace has
// already been consumed.
func decodeObject(dec *json.Decoder, typeName string) (*Object, error) {
	obj := NewObject(typeName)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeValue reads one JSON value.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		return decodeObject(dec, "object")
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}
