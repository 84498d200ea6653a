package introspect

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// findEntry returns the named entry from a group.
func findEntry(t *testing.T, entries []Entry, name string) Entry {
	t.Helper()

	for _, e := range entries {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("entry %q not found", name)
	return Entry{}
}

// entryNames returns the names of a group in report order.
func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// TestDescribeDataMembers checks ordering and classification of simple members.
func TestDescribeDataMembers(t *testing.T) {
	t.Parallel()

	obj := NewObject("league").
		Set("c", []any{}).
		Set("b", "x").
		Set("a", 1)

	rep, err := Describe(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("lists data members in lexicographic order", func(t *testing.T) {
		t.Parallel()

		got := strings.Join(entryNames(rep.Data), ",")
		if got != "a,b,c" {
			t.Errorf("expected order a,b,c, got %s", got)
		}
	})

	t.Run("scalar values are printed as literals", func(t *testing.T) {
		t.Parallel()

		if v := findEntry(t, rep.Data, "a").Value; v != "1" {
			t.Errorf("expected a=1, got %q", v)
		}
		if v := findEntry(t, rep.Data, "b").Value; v != "x" {
			t.Errorf("expected b=x, got %q", v)
		}
	})

	t.Run("empty sequence has count 0 and no type tag", func(t *testing.T) {
		t.Parallel()

		c := findEntry(t, rep.Data, "c")
		if c.Kind != KindSequence {
			t.Errorf("expected sequence, got %s", c.Kind)
		}
		if c.Length != 0 {
			t.Errorf("expected length 0, got %d", c.Length)
		}
		if c.ElemType != "" {
			t.Errorf("expected no element type, got %q", c.ElemType)
		}
		if strings.Contains(rep.String(), "Item Type") {
			t.Error("expected no Item Type line for an empty sequence")
		}
	})

	t.Run("no callables", func(t *testing.T) {
		t.Parallel()

		if len(rep.Callables) != 0 {
			t.Errorf("expected no callables, got %d", len(rep.Callables))
		}
	})
}

// TestDescribeSequenceSampling checks that only the first element is typed.
func TestDescribeSequenceSampling(t *testing.T) {
	t.Parallel()

	t.Run("object sequence reports count and first element type", func(t *testing.T) {
		t.Parallel()

		obj := NewObject("holder").Set("nums", []any{1, "two", 3.5})

		rep, err := Describe(obj)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		e := findEntry(t, rep.Data, "nums")
		if e.Length != 3 {
			t.Errorf("expected length 3, got %d", e.Length)
		}
		if e.ElemType != "number" {
			t.Errorf("expected first element type number, got %q", e.ElemType)
		}
		out := rep.String()
		if strings.Contains(out, "two") || strings.Contains(out, "3.5") {
			t.Errorf("expected elements not to be printed, got:\n%s", out)
		}
	})

	t.Run("reflected slice reports the Go element type", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(&struct{ Nums []int }{Nums: []int{1, 2, 3}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		e := findEntry(t, rep.Data, "Nums")
		if e.Length != 3 || e.ElemType != "int" {
			t.Errorf("expected length 3 of int, got %d of %q", e.Length, e.ElemType)
		}
	})

	t.Run("heterogeneous sequence is not flagged", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(&struct{ Items []any }{Items: []any{"a", 1}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		e := findEntry(t, rep.Data, "Items")
		if e.Unavailable {
			t.Error("expected heterogeneous sequence to be reported normally")
		}
		if e.ElemType != "string" {
			t.Errorf("expected sampled type string, got %q", e.ElemType)
		}
	})
}

// TestDescribeMappingPreview checks key preview truncation.
func TestDescribeMappingPreview(t *testing.T) {
	t.Parallel()

	inner := NewObject("object")
	for i := range 15 {
		inner.Set(fmt.Sprintf("k%02d", i), i)
	}
	obj := NewObject("settings").Set("scoring", inner)

	t.Run("default limit shows 10 keys and a marker", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		e := findEntry(t, rep.Data, "scoring")
		if len(e.Keys) != 10 {
			t.Fatalf("expected 10 keys, got %d", len(e.Keys))
		}
		if !e.Truncated {
			t.Error("expected truncation flag")
		}
		if e.Keys[0] != "k00" || e.Keys[9] != "k09" {
			t.Errorf("expected keys in insertion order, got %v", e.Keys)
		}
		if !strings.Contains(rep.String(), "k09, ...]") {
			t.Errorf("expected truncation marker after the 10th key, got:\n%s", rep.String())
		}
	})

	t.Run("custom limit", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj, WithKeyPreviewLimit(5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := len(findEntry(t, rep.Data, "scoring").Keys); got != 5 {
			t.Errorf("expected 5 keys, got %d", got)
		}
	})

	t.Run("small mapping is not truncated", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(&struct{ Divisions map[int]string }{
			Divisions: map[int]string{1: "East", 0: "West"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		e := findEntry(t, rep.Data, "Divisions")
		if e.Truncated {
			t.Error("expected no truncation")
		}
		if strings.Join(e.Keys, ",") != "0,1" {
			t.Errorf("expected sorted keys 0,1, got %v", e.Keys)
		}
	})
}

// TestDescribeFailingMember checks per-member graceful degradation.
func TestDescribeFailingMember(t *testing.T) {
	t.Parallel()

	errLazy := errors.New("lazy property failed")

	newObj := func() *Object {
		return NewObject("team").
			Set("alpha", "ok").
			Set("broken", Getter(func() (any, error) { return nil, errLazy })).
			Set("crashing", Getter(func() (any, error) { panic("boom") })).
			Set("zeta", 3)
	}

	rep, err := Describe(newObj())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("entry count is unchanged", func(t *testing.T) {
		t.Parallel()

		if rep.Entries() != 4 {
			t.Errorf("expected 4 entries, got %d", rep.Entries())
		}
	})

	t.Run("failing members are marked unavailable", func(t *testing.T) {
		t.Parallel()

		got := strings.Join(rep.UnavailableMembers(), ",")
		if got != "broken,crashing" {
			t.Errorf("expected broken,crashing unavailable, got %s", got)
		}
		broken := findEntry(t, rep.Data, "broken")
		if !strings.Contains(broken.Error, errLazy.Error()) {
			t.Errorf("expected cause in error, got %q", broken.Error)
		}
		if !strings.Contains(rep.String(), "broken: "+UnavailableMarker) {
			t.Errorf("expected fallback line, got:\n%s", rep.String())
		}
	})

	t.Run("other members are still reported", func(t *testing.T) {
		t.Parallel()

		if v := findEntry(t, rep.Data, "zeta").Value; v != "3" {
			t.Errorf("expected zeta=3, got %q", v)
		}
	})

	t.Run("direct read error unwraps to sentinel and cause", func(t *testing.T) {
		t.Parallel()

		_, err := newObj().ReadMember("broken")
		if !errors.Is(err, ErrMemberIntrospection) {
			t.Errorf("expected ErrMemberIntrospection, got %v", err)
		}
		if !errors.Is(err, errLazy) {
			t.Errorf("expected cause to be wrapped, got %v", err)
		}
	})
}

// TestDescribeDeterminism checks that repeated reports are byte-identical.
func TestDescribeDeterminism(t *testing.T) {
	t.Parallel()

	type standing struct {
		Team   string
		Points map[string]float64
		Weeks  []int
	}
	value := &standing{
		Team:   "Gridiron Gurus",
		Points: map[string]float64{"w3": 101.5, "w1": 99.2, "w2": 120, "w4": 88.8},
		Weeks:  []int{1, 2, 3, 4},
	}

	first, err := Describe(value)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for range 20 {
		again, err := Describe(value)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.String() != first.String() {
			t.Fatalf("expected identical output\nfirst:\n%s\nagain:\n%s", first.String(), again.String())
		}
	}
}

// TestDescribePrivateMembers checks that reserved-prefix members are hidden.
func TestDescribePrivateMembers(t *testing.T) {
	t.Parallel()

	obj := NewObject("league").
		Set("_cache", map[string]int{"a": 1}).
		Set("_refresh", Callable{TypeTag: "method"}).
		Set("name", "League")

	t.Run("default prefix hides members in both sections", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rep.Entries() != 1 {
			t.Errorf("expected only name to be reported, got %d entries", rep.Entries())
		}
		if strings.Contains(rep.String(), "_cache") || strings.Contains(rep.String(), "_refresh") {
			t.Errorf("expected private members to be hidden, got:\n%s", rep.String())
		}
	})

	t.Run("empty prefix hides nothing", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj, WithPrivatePrefix(""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rep.Entries() != 3 {
			t.Errorf("expected 3 entries, got %d", rep.Entries())
		}
	})
}

// TestDescribeInvalidInput checks the nil root cases.
func TestDescribeInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		obj  any
	}{
		{name: "untyped nil", obj: nil},
		{name: "typed nil Object", obj: (*Object)(nil)},
		{name: "nil struct pointer", obj: (*struct{ A int })(nil)},
		{name: "value without members", obj: 42},
		{name: "map with int keys", obj: map[int]string{1: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := Describe(tt.obj)
			if rep != nil {
				t.Error("expected no partial report")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			var iie *InvalidInputError
			if !errors.As(err, &iie) {
				t.Errorf("expected *InvalidInputError, got %T", err)
			}
		})
	}
}

// TestDescribeCallables checks callable rendering.
func TestDescribeCallables(t *testing.T) {
	t.Parallel()

	obj := NewObject("league").
		Set("refresh", Callable{TypeTag: "method", Signature: "(week int)", Known: true, Doc: "\n  Refresh the league.\n "}).
		Set("mystery", Callable{TypeTag: "method"}).
		Set("name", "League")

	rep, err := Describe(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("callables come first and are sorted", func(t *testing.T) {
		t.Parallel()

		if got := strings.Join(entryNames(rep.Callables), ","); got != "mystery,refresh" {
			t.Errorf("expected mystery,refresh, got %s", got)
		}
		out := rep.String()
		if strings.Index(out, "CALLABLE MEMBERS") > strings.Index(out, "DATA MEMBERS") {
			t.Error("expected callable section before data section")
		}
	})

	t.Run("unknown arity renders a placeholder", func(t *testing.T) {
		t.Parallel()

		if !strings.Contains(rep.String(), "  mystery()\n") {
			t.Errorf("expected placeholder signature, got:\n%s", rep.String())
		}
	})

	t.Run("documentation is trimmed", func(t *testing.T) {
		t.Parallel()

		if doc := findEntry(t, rep.Callables, "refresh").Doc; doc != "Refresh the league." {
			t.Errorf("expected trimmed doc, got %q", doc)
		}
		if !strings.Contains(rep.String(), "refresh(week int)\n    Description: Refresh the league.") {
			t.Errorf("expected signature and description, got:\n%s", rep.String())
		}
	})
}

// TestDescribeDepth checks nested reports.
func TestDescribeDepth(t *testing.T) {
	t.Parallel()

	child := NewObject("object").Set("id", 7)
	obj := NewObject("league").
		Set("settings", child).
		Set("teams", []any{NewObject("object").Set("name", "A")})

	t.Run("default depth does not recurse", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, e := range rep.Data {
			if e.Nested != nil {
				t.Errorf("expected no nested report for %s", e.Name)
			}
		}
	})

	t.Run("depth 2 describes nested objects and sampled elements", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj, WithMaxDepth(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		settings := findEntry(t, rep.Data, "settings")
		if settings.Nested == nil {
			t.Fatal("expected nested report for settings")
		}
		if v := findEntry(t, settings.Nested.Data, "id").Value; v != "7" {
			t.Errorf("expected nested id=7, got %q", v)
		}
		teams := findEntry(t, rep.Data, "teams")
		if teams.Nested == nil {
			t.Fatal("expected nested report for the first team")
		}
		if !strings.Contains(rep.String(), "\n      name: string") {
			t.Errorf("expected indented nested member, got:\n%s", rep.String())
		}
	})

	t.Run("invalid depth is ignored", func(t *testing.T) {
		t.Parallel()

		rep, err := Describe(obj, WithMaxDepth(0))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if findEntry(t, rep.Data, "settings").Nested != nil {
			t.Error("expected default depth to apply")
		}
	})
}

// TestKindString covers kind names.
func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindScalar, "scalar"},
		{KindSequence, "sequence"},
		{KindMapping, "mapping"},
		{KindCallable, "callable"},
		{KindOpaque, "opaque"},
		{Kind(42), "kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if got := tt.kind.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// fixedMembers is a Describable that hands out its own member slice.
type fixedMembers struct {
	members []Member
}

func (f *fixedMembers) TypeName() string  { return "fixed" }
func (f *fixedMembers) Members() []Member { return f.members }
func (f *fixedMembers) ReadMember(name string) (Value, error) {
	return Scalar{TypeTag: "string", Literal: name}, nil
}

// TestDescribeLeavesMembersUntouched checks that sorting does not reorder
// the object's own members.
func TestDescribeLeavesMembersUntouched(t *testing.T) {
	t.Parallel()

	d := &fixedMembers{members: []Member{
		{Name: "b", Kind: KindScalar},
		{Name: "a", Kind: KindScalar},
	}}

	rep, err := Describe(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(entryNames(rep.Data), ","); got != "a,b" {
		t.Errorf("expected report order a,b, got %s", got)
	}
	if d.members[0].Name != "b" || d.members[1].Name != "a" {
		t.Errorf("expected member slice b,a to be kept, got %+v", d.members)
	}
}

type holder struct {
	Child  *Object
	Custom Describable
	List   []Describable
}

// TestDescribeNestedDescribable checks that fields holding a Describable
// are described through their members, not their Go methods.
func TestDescribeNestedDescribable(t *testing.T) {
	t.Parallel()

	h := &holder{
		Child:  NewObject("child").Set("alpha", 1),
		Custom: &fixedMembers{members: []Member{{Name: "beta", Kind: KindScalar}}},
		List:   []Describable{NewObject("item").Set("gamma", true)},
	}

	rep, err := Describe(h, WithMaxDepth(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := findEntry(t, rep.Data, "Child")
	if child.Nested == nil {
		t.Fatal("expected nested report for Child")
	}
	if len(child.Nested.Callables) != 0 {
		t.Errorf("expected no Go methods of Object, got %+v", child.Nested.Callables)
	}
	if v := findEntry(t, child.Nested.Data, "alpha").Value; v != "1" {
		t.Errorf("expected alpha=1, got %q", v)
	}

	custom := findEntry(t, rep.Data, "Custom")
	if custom.Nested == nil {
		t.Fatal("expected nested report for Custom")
	}
	if v := findEntry(t, custom.Nested.Data, "beta").Value; v != "beta" {
		t.Errorf("expected beta, got %q", v)
	}

	list := findEntry(t, rep.Data, "List")
	if list.Nested == nil {
		t.Fatal("expected nested report for the first element")
	}
	if v := findEntry(t, list.Nested.Data, "gamma").Value; v != "true" {
		t.Errorf("expected gamma=true, got %q", v)
	}
}
