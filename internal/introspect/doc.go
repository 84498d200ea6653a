// Package introspect reports the public surface of arbitrary objects.
//
// The reporter walks an object's members and renders a deterministic
// summary: callable members with their signatures, then data members
// classified as scalar, sequence, mapping or opaque. It never invokes a
// callable member and never mutates the object it describes.
//
// Objects are reached through the Describable interface. Two
// implementations are provided:
//   - Reflect: a reflection-backed view of Go structs and string-keyed maps
//   - Object: an ordered, map-backed object such as decoded raw JSON
//
// # Usage
//
//	rep, err := introspect.Describe(league,
//	    introspect.WithMaxDepth(2),
//	    introspect.WithKeyPreviewLimit(10),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(rep.String())
//
// A member whose value cannot be read is reported in place with an
// unavailable marker; one failing member never aborts the whole report.
package introspect
