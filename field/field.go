// Package field gives uniform access to the fields of a type definition,
// whatever shape they were declared in.
package field

import (
	"strconv"

	"github.com/seitarof/gen-derive/syntax"
)

// Named returns the fields of item when it is a struct with named fields.
// Positional and empty structs, enums and unions report false.
func Named(item syntax.Item) ([]syntax.Field, bool) {
	if item.Kind != syntax.KindStruct {
		return nil, false
	}
	switch item.Fields.Shape {
	case syntax.Grouped:
		out := make([]syntax.Field, len(item.Fields.List))
		copy(out, item.Fields.List)
		return out, true
	case syntax.Positional, syntax.Empty:
		return nil, false
	default:
		return nil, false
	}
}

// Ref is the expression a generator uses to reach a field: its name for
// grouped fields, its zero-based index for positional ones.
type Ref struct {
	Name  string
	Index int
}

// IsIndex reports whether the reference is positional.
func (r Ref) IsIndex() bool {
	return r.Name == ""
}

// String renders the reference on its own, e.g. `id` or `0`.
func (r Ref) String() string {
	if r.IsIndex() {
		return strconv.Itoa(r.Index)
	}
	return r.Name
}

// Access renders the reference applied to recv, e.g. `self.id` or `self.0`.
func (r Ref) Access(recv string) string {
	return recv + "." + r.String()
}

// Member pairs a field with the reference that reaches it.
type Member struct {
	Ref   Ref
	Field syntax.Field
}

// Normalize returns one Member per field in declaration order so that a
// generator can emit a single template for every shape. Empty field lists
// yield an empty slice.
func Normalize(fields syntax.Fields) []Member {
	switch fields.Shape {
	case syntax.Grouped:
		out := make([]Member, 0, len(fields.List))
		for _, f := range fields.List {
			out = append(out, Member{Ref: Ref{Name: f.Name, Index: f.Index}, Field: f})
		}
		return out
	case syntax.Positional:
		out := make([]Member, 0, len(fields.List))
		for i, f := range fields.List {
			out = append(out, Member{Ref: Ref{Index: i}, Field: f})
		}
		return out
	default:
		return []Member{}
	}
}
