package introspect

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// nilTag is the type tag reported for nil pointers, interfaces and maps.
const nilTag = "nil"

// Reflect returns a reflection-backed Describable for a Go struct, a
// pointer to a struct, or a map with string keys.
//
// Exported fields are data members; exported methods of the pointer method
// set and exported func-typed fields are callable members. Unexported
// identifiers are never listed. Methods are never called.
func Reflect(v any) (Describable, error) {
	if v == nil {
		return nil, &InvalidInputError{Reason: "object is nil"}
	}
	return reflectValue(reflect.ValueOf(v))
}

// reflectValue builds a Describable from a reflect.Value.
func reflectValue(rv reflect.Value) (Describable, error) {
	for rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, &InvalidInputError{Reason: "object is nil"}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("object is a nil %s", rv.Type())}
		}
		if rv.Elem().Kind() == reflect.Struct {
			return &reflected{ptr: rv, typ: rv.Elem().Type()}, nil
		}
		return reflectValue(rv.Elem())
	case reflect.Struct:
		if d := nestedOf(rv); d != nil {
			return d, nil
		}
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%s is not readable", rv.Type())}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("%s has non-string keys", rv.Type())}
		}
		if rv.IsNil() {
			return nil, &InvalidInputError{Reason: fmt.Sprintf("object is a nil %s", rv.Type())}
		}
		return &reflectedMap{m: rv}, nil
	default:
		return nil, &InvalidInputError{Reason: fmt.Sprintf("%s has no named members", rv.Type())}
	}
}

// reflected describes a struct through a pointer to it.
type reflected struct {
	ptr reflect.Value
	typ reflect.Type
}

// TypeName implements Describable.
func (r *reflected) TypeName() string {
	return r.typ.String()
}

// Members implements Describable.
func (r *reflected) Members() []Member {
	seen := make(map[string]bool)
	members := make([]Member, 0, r.typ.NumField())

	for _, sf := range reflect.VisibleFields(r.typ) {
		if sf.Anonymous || !sf.IsExported() || seen[sf.Name] {
			continue
		}
		seen[sf.Name] = true
		members = append(members, Member{Name: sf.Name, Kind: kindOfType(sf.Type)})
	}

	pt := r.ptr.Type()
	for i := range pt.NumMethod() {
		m := pt.Method(i)
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		members = append(members, Member{Name: m.Name, Kind: KindCallable})
	}

	return members
}

// ReadMember implements Describable.
func (r *reflected) ReadMember(name string) (Value, error) {
	if m, ok := r.ptr.Type().MethodByName(name); ok {
		return Callable{
			TypeTag:   "method",
			Signature: signature(m.Type, 1),
			Known:     true,
			Doc:       lookupDoc(r.typ, name),
		}, nil
	}

	sf, ok := r.typ.FieldByName(name)
	if !ok || !sf.IsExported() {
		return nil, &MemberIntrospectionError{Member: name, Err: ErrNoSuchMember}
	}

	// Promoted fields behind a nil embedded pointer cannot be reached.
	fv, err := r.ptr.Elem().FieldByIndexErr(sf.Index)
	if err != nil {
		return nil, &MemberIntrospectionError{Member: name, Err: err}
	}

	if fv.Kind() == reflect.Func {
		return Callable{
			TypeTag:   "func",
			Signature: signature(fv.Type(), 0),
			Known:     true,
			Doc:       lookupDoc(r.typ, name),
		}, nil
	}
	return classify(fv), nil
}

// MemberDoc implements Documented.
func (r *reflected) MemberDoc(name string) string {
	return lookupDoc(r.typ, name)
}

// reflectedMap describes a map with string keys; each key is a member.
type reflectedMap struct {
	m reflect.Value
}

// TypeName implements Describable.
func (r *reflectedMap) TypeName() string {
	return r.m.Type().String()
}

// Members implements Describable.
func (r *reflectedMap) Members() []Member {
	keys := r.m.MapKeys()
	members := make([]Member, 0, len(keys))
	for _, k := range keys {
		members = append(members, Member{
			Name: k.String(),
			Kind: kindOfValue(r.m.MapIndex(k)),
		})
	}
	return members
}

// ReadMember implements Describable.
func (r *reflectedMap) ReadMember(name string) (Value, error) {
	key := reflect.ValueOf(name).Convert(r.m.Type().Key())
	v := r.m.MapIndex(key)
	if !v.IsValid() {
		return nil, &MemberIntrospectionError{Member: name, Err: ErrNoSuchMember}
	}
	return classify(v), nil
}

// classify maps a reflected value onto the closed Value variants.
func classify(v reflect.Value) Value {
	if !v.IsValid() {
		return Opaque{TypeTag: nilTag}
	}
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Opaque{TypeTag: nilTag}
		}
		v = v.Elem()
	}

	t := v.Type()
	if d := describableOf(v); d != nil {
		return Opaque{TypeTag: t.String(), Nested: d}
	}
	if lit, ok := scalarLiteral(v); ok {
		return Scalar{TypeTag: t.String(), Literal: lit}
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		seq := Sequence{TypeTag: t.String(), Len: v.Len()}
		if seq.Len > 0 {
			first := v.Index(0)
			seq.ElemType = elemTag(first)
			seq.Sample = nestedOf(first)
		}
		return seq
	case reflect.Map:
		m := Mapping{TypeTag: t.String(), Keys: mapKeys(v)}
		if t.Key().Kind() == reflect.String && !v.IsNil() {
			m.Nested = &reflectedMap{m: v}
		}
		return m
	case reflect.Pointer:
		if v.IsNil() {
			return Opaque{TypeTag: nilTag}
		}
		if v.Elem().Kind() == reflect.Struct {
			return Opaque{TypeTag: t.String(), Nested: &reflected{ptr: v, typ: t.Elem()}}
		}
		return classify(v.Elem())
	case reflect.Struct:
		return Opaque{TypeTag: t.String(), Nested: nestedOf(v)}
	case reflect.Func:
		return Callable{TypeTag: "func", Signature: signature(t, 0), Known: true}
	default:
		return Opaque{TypeTag: t.String()}
	}
}

// scalarLiteral formats strings, numbers and booleans without calling any
// method on the value.
func scalarLiteral(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Complex64, reflect.Complex128:
		return strconv.FormatComplex(v.Complex(), 'f', -1, 128), true
	case reflect.String:
		return v.String(), true
	default:
		return "", false
	}
}

// kindOfType returns the declared kind of a static type.
func kindOfType(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return KindScalar
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMapping
	case reflect.Func:
		return KindCallable
	default:
		return KindOpaque
	}
}

// kindOfValue is kindOfType of the dynamic type behind interfaces.
func kindOfValue(v reflect.Value) Kind {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return KindOpaque
		}
		v = v.Elem()
	}
	return kindOfType(v.Type())
}

// elemTag returns the type tag of a sampled sequence element.
func elemTag(v reflect.Value) string {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nilTag
		}
		return v.Elem().Type().String()
	}
	return v.Type().String()
}

// nestedOf returns a Describable for struct values (or pointers to them)
// so the reporter can recurse when depth allows. Other values yield nil.
func nestedOf(v reflect.Value) Describable {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if d := describableOf(v); d != nil {
		return d
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return nil
		}
		return &reflected{ptr: v, typ: v.Elem().Type()}
	case reflect.Struct:
		if v.CanAddr() {
			return &reflected{ptr: v.Addr(), typ: v.Type()}
		}
		if !v.CanInterface() {
			return nil
		}
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return &reflected{ptr: p, typ: v.Type()}
	default:
		return nil
	}
}

// describableOf returns v as a Describable when its type implements the
// interface, so it is described through its own members.
func describableOf(v reflect.Value) Describable {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
	}
	d, _ := v.Interface().(Describable) //nolint:errcheck // nil when not Describable
	return d
}

// mapKeys returns the formatted keys of a map in sorted order. Go maps
// have no stable iteration order, so sorting is their natural order here.
func mapKeys(m reflect.Value) []string {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = formatKey(k)
	}
	return out
}

// lessKey orders numeric keys numerically and everything else by text.
func lessKey(a, b reflect.Value) bool {
	if a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		}
	}
	return formatKey(a) < formatKey(b)
}

// formatKey renders a map key.
func formatKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if lit, ok := scalarLiteral(k); ok {
		return lit
	}
	if k.CanInterface() {
		return fmt.Sprintf("%v", k.Interface())
	}
	return k.Type().String()
}

// signature renders a func type's parameters and results, skipping the
// first skip inputs (the receiver of a method expression).
func signature(t reflect.Type, skip int) string {
	var sb strings.Builder

	sb.WriteString("(")
	for i := skip; i < t.NumIn(); i++ {
		if i > skip {
			sb.WriteString(", ")
		}
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			sb.WriteString("..." + in.Elem().String())
			continue
		}
		sb.WriteString(in.String())
	}
	sb.WriteString(")")

	switch t.NumOut() {
	case 0:
	case 1:
		sb.WriteString(" " + t.Out(0).String())
	default:
		outs := make([]string, t.NumOut())
		for i := range t.NumOut() {
			outs[i] = t.Out(i).String()
		}
		sb.WriteString(" (" + strings.Join(outs, ", ") + ")")
	}

	return sb.String()
}
