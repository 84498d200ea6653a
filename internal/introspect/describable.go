package introspect

import (
	"reflect"
	"sync"
)

// Describable is the capability the reporter needs from an object: a list
// of named members and a way to read one of them.
//
// Implementations must not invoke callable members from ReadMember. For a
// callable member, ReadMember returns a Callable describing its signature.
type Describable interface {
	// TypeName returns the type tag of the object itself.
	TypeName() string

	// Members lists the object's members in any order.
	Members() []Member

	// ReadMember classifies the named member's current value.
	ReadMember(name string) (Value, error)
}

// Documented is implemented by Describables that can attach documentation
// to their members. An empty string means no documentation.
type Documented interface {
	MemberDoc(name string) string
}

// docRegistry maps a struct type to its member documentation.
var docRegistry sync.Map // map[reflect.Type]map[string]string

// RegisterDocs attaches member documentation to the struct type of sample.
// Reflection-backed Describables of that type (or a pointer to it) report
// the text next to the member. It is meant to be called from init.
func RegisterDocs(sample any, docs map[string]string) {
	t := reflect.TypeOf(sample)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return
	}
	copied := make(map[string]string, len(docs))
	for k, v := range docs {
		copied[k] = v
	}
	docRegistry.Store(t, copied)
}

// lookupDoc returns the registered documentation for a member of t.
func lookupDoc(t reflect.Type, name string) string {
	docs, ok := docRegistry.Load(t)
	if !ok {
		return ""
	}
	return docs.(map[string]string)[name] //nolint:forcetypeassert // only RegisterDocs stores values
}
