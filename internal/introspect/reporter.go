package introspect

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Default reporter settings.
const (
	// DefaultMaxDepth renders only the root object's own members.
	DefaultMaxDepth = 1

	// DefaultKeyPreviewLimit is the number of mapping keys shown before
	// the preview is truncated.
	DefaultKeyPreviewLimit = 10

	// DefaultPrivatePrefix marks members hidden from reports.
	DefaultPrivatePrefix = "_"

	// TruncationMarker ends a truncated key preview.
	TruncationMarker = "..."

	// UnavailableMarker flags a member that could not be read.
	UnavailableMarker = "<unavailable>"
)

// options holds reporter settings.
type options struct {
	maxDepth        int
	keyPreviewLimit int
	privatePrefix   string
}

// Option configures Describe.
type Option func(*options)

// WithMaxDepth sets how many object levels are rendered. Values below 1
// are ignored.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxDepth = n
		}
	}
}

// WithKeyPreviewLimit sets the number of mapping keys shown. Negative
// values are ignored; zero shows only the truncation marker.
func WithKeyPreviewLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.keyPreviewLimit = n
		}
	}
}

// WithPrivatePrefix sets the name prefix of hidden members. An empty
// prefix hides nothing.
func WithPrivatePrefix(prefix string) Option {
	return func(o *options) {
		o.privatePrefix = prefix
	}
}

// Report is the surface of one object: callable members then data members,
// each sorted by name.
type Report struct {
	// TypeName is the type tag of the described object.
	TypeName string `json:"type"`

	// Callables lists methods and function members.
	Callables []Entry `json:"callables"`

	// Data lists every other member.
	Data []Entry `json:"data"`
}

// Entry is one reported member.
type Entry struct {
	// Name is the member name.
	Name string `json:"name"`

	// Kind is the member classification.
	Kind Kind `json:"kind"`

	// Type is the type tag of the value.
	Type string `json:"type,omitempty"`

	// Signature is the parameter and result list of a callable.
	// Empty with SignatureKnown false means the arity is unknown.
	Signature string `json:"signature,omitempty"`

	// SignatureKnown reports whether Signature was discovered.
	SignatureKnown bool `json:"signature_known,omitempty"`

	// Doc is the trimmed documentation of a callable.
	Doc string `json:"doc,omitempty"`

	// Value is the literal of a scalar.
	Value string `json:"value,omitempty"`

	// Length is the element count of a sequence.
	Length int `json:"length,omitempty"`

	// ElemType is the type tag of a sequence's first element.
	ElemType string `json:"elem_type,omitempty"`

	// Keys is the key preview of a mapping.
	Keys []string `json:"keys,omitempty"`

	// Truncated reports that Keys was cut at the preview limit.
	Truncated bool `json:"truncated,omitempty"`

	// Unavailable reports that the member could not be read.
	Unavailable bool `json:"unavailable,omitempty"`

	// Error is the read failure of an unavailable member.
	Error string `json:"error,omitempty"`

	// Nested is the report of a nested object when depth allows.
	Nested *Report `json:"nested,omitempty"`
}

// Describe reports the public surface of obj. obj is either a Describable
// or a value accepted by Reflect. A nil obj fails with *InvalidInputError.
//
// Describe never invokes callable members. A member that cannot be read is
// reported with Unavailable set instead of failing the call.
func Describe(obj any, opts ...Option) (*Report, error) {
	o := options{
		maxDepth:        DefaultMaxDepth,
		keyPreviewLimit: DefaultKeyPreviewLimit,
		privatePrefix:   DefaultPrivatePrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	d, err := asDescribable(obj)
	if err != nil {
		return nil, err
	}
	return describe(d, &o, 1), nil
}

// asDescribable returns obj as a Describable, rejecting nil and typed nil.
func asDescribable(obj any) (Describable, error) {
	if obj == nil {
		return nil, &InvalidInputError{Reason: "object is nil"}
	}
	if d, ok := obj.(Describable); ok {
		rv := reflect.ValueOf(obj)
		switch rv.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
			if rv.IsNil() {
				return nil, &InvalidInputError{Reason: fmt.Sprintf("object is a nil %s", rv.Type())}
			}
		}
		return d, nil
	}
	return Reflect(obj)
}

// describe builds the report for d at the given depth.
func describe(d Describable, o *options, depth int) *Report {
	// Sort a copy; d may hand out its own slice.
	members := slices.Clone(d.Members())
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})

	r := &Report{
		TypeName:  d.TypeName(),
		Callables: make([]Entry, 0),
		Data:      make([]Entry, 0),
	}

	var prev string
	for i, m := range members {
		if i > 0 && m.Name == prev {
			continue
		}
		prev = m.Name
		if o.privatePrefix != "" && strings.HasPrefix(m.Name, o.privatePrefix) {
			continue
		}

		v, err := readMember(d, m.Name)
		if err != nil {
			entry := Entry{
				Name:        m.Name,
				Kind:        m.Kind,
				Unavailable: true,
				Error:       err.Error(),
			}
			if m.Kind == KindCallable {
				r.Callables = append(r.Callables, entry)
			} else {
				r.Data = append(r.Data, entry)
			}
			continue
		}

		if c, ok := v.(Callable); ok {
			r.Callables = append(r.Callables, callableEntry(d, m.Name, c))
			continue
		}
		r.Data = append(r.Data, dataEntry(m.Name, v, o, depth))
	}

	return r
}

// readMember reads one member, converting a panic into a member error.
func readMember(d Describable, name string) (v Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = &MemberIntrospectionError{Member: name, Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	v, err = d.ReadMember(name)
	if err != nil {
		return nil, memberError(name, err)
	}
	if v == nil {
		return nil, &MemberIntrospectionError{Member: name, Err: ErrNoSuchMember}
	}
	return v, nil
}

// callableEntry renders a callable member.
func callableEntry(d Describable, name string, c Callable) Entry {
	doc := c.Doc
	if doc == "" {
		if dd, ok := d.(Documented); ok {
			doc = dd.MemberDoc(name)
		}
	}
	return Entry{
		Name:           name,
		Kind:           KindCallable,
		Type:           c.TypeTag,
		Signature:      c.Signature,
		SignatureKnown: c.Known,
		Doc:            strings.TrimSpace(doc),
	}
}

// dataEntry renders a data member, recursing into nested objects while
// depth is below the limit.
func dataEntry(name string, v Value, o *options, depth int) Entry {
	entry := Entry{
		Name: name,
		Kind: v.Kind(),
		Type: v.Type(),
	}

	var nested Describable
	switch x := v.(type) {
	case Scalar:
		entry.Value = x.Literal
	case Sequence:
		entry.Length = x.Len
		if x.Len > 0 {
			entry.ElemType = x.ElemType
			nested = x.Sample
		}
	case Mapping:
		entry.Keys, entry.Truncated = previewKeys(x.Keys, o.keyPreviewLimit)
		nested = x.Nested
	case Opaque:
		nested = x.Nested
	}

	if nested != nil && depth < o.maxDepth {
		entry.Nested = describe(nested, o, depth+1)
	}
	return entry
}

// previewKeys returns at most limit keys and whether any were dropped.
func previewKeys(keys []string, limit int) ([]string, bool) {
	if len(keys) <= limit {
		out := make([]string, len(keys))
		copy(out, keys)
		return out, false
	}
	out := make([]string, limit)
	copy(out, keys[:limit])
	return out, true
}

// Entries returns the total number of reported members, excluding nested
// reports.
func (r *Report) Entries() int {
	return len(r.Callables) + len(r.Data)
}

// UnavailableMembers returns the names of members that could not be read.
func (r *Report) UnavailableMembers() []string {
	var names []string
	for _, group := range [][]Entry{r.Callables, r.Data} {
		for _, e := range group {
			if e.Unavailable {
				names = append(names, e.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Lines renders the report as text lines.
func (r *Report) Lines() []string {
	var lines []string
	r.appendLines(&lines, "")
	return lines
}

// String renders the report as newline-terminated text.
func (r *Report) String() string {
	lines := r.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// appendLines writes the report with every line prefixed by indent.
func (r *Report) appendLines(lines *[]string, indent string) {
	add := func(format string, args ...any) {
		*lines = append(*lines, indent+fmt.Sprintf(format, args...))
	}

	add("CALLABLE MEMBERS (%d)", len(r.Callables))
	if len(r.Callables) == 0 {
		add("  (none)")
	}
	for _, e := range r.Callables {
		switch {
		case e.Unavailable:
			add("  %s() %s", e.Name, UnavailableMarker)
		case e.SignatureKnown:
			add("  %s%s", e.Name, e.Signature)
		default:
			add("  %s()", e.Name)
		}
		if e.Doc != "" {
			add("    Description: %s", oneLine(e.Doc))
		}
	}

	add("DATA MEMBERS (%d)", len(r.Data))
	if len(r.Data) == 0 {
		add("  (none)")
	}
	for _, e := range r.Data {
		if e.Unavailable {
			add("  %s: %s", e.Name, UnavailableMarker)
			add("    Reason: %s", oneLine(e.Error))
			continue
		}

		add("  %s: %s", e.Name, e.Type)
		switch e.Kind {
		case KindScalar:
			add("    Value: %s", scalarText(e.Value))
		case KindSequence:
			add("    Length: %d", e.Length)
			if e.Length > 0 {
				add("    Item Type: %s", e.ElemType)
			}
		case KindMapping:
			keys := e.Keys
			if e.Truncated {
				keys = append(append([]string{}, keys...), TruncationMarker)
			}
			add("    Keys: [%s]", strings.Join(keys, ", "))
		}
		if e.Nested != nil {
			e.Nested.appendLines(lines, indent+"    ")
		}
	}
}

// scalarText keeps multi-line strings on one line.
func scalarText(s string) string {
	if strings.ContainsAny(s, "\n\r") {
		return strconv.Quote(s)
	}
	return s
}

// oneLine collapses whitespace runs so documentation stays on one line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
