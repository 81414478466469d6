// Package syntax defines the tree that derive tools analyze: a type
// definition (struct, enum or union), its fields and variants, and the raw
// annotations attached to each of them.
//
// Values in this package are treated as immutable by every consumer. Front
// ends build them once; analysis functions only read them and return fresh
// values.
package syntax

import (
	"fmt"
	"go/token"
)

// Kind is the category of a type definition.
type Kind int

const (
	KindStruct Kind = iota
	KindEnum
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindUnion:
		return "union"
	default:
		return fmt.Sprintf("?%d?", int(k))
	}
}

// Shape describes how the fields of a struct or variant are declared. All
// fields of one definition share a single shape.
type Shape int

const (
	// Grouped fields are declared with names.
	Grouped Shape = iota
	// Positional fields are identified only by their position.
	Positional
	// Empty means the definition declares no fields at all.
	Empty
)

func (s Shape) String() string {
	switch s {
	case Grouped:
		return "grouped"
	case Positional:
		return "positional"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("?%d?", int(s))
	}
}

// Attribute is one raw annotation node as it appeared in source, for example
// `derive(skip, rename = "id")`. It is parsed on demand by package attr.
type Attribute struct {
	Text string
	Pos  token.Position
}

// Field is a single field of a struct or enum variant.
type Field struct {
	// Name is empty for positional fields.
	Name string
	// Index is the zero-based declaration position.
	Index int
	// Type is the declared type expression as written in source.
	Type  string
	Attrs []Attribute
	// Pos locates the field in source so generated code can point
	// diagnostics back at it. It is carried through unchanged.
	Pos token.Position
}

// Fields is an ordered field list together with its shape.
type Fields struct {
	Shape Shape
	List  []Field
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.List)
}

// Validate reports whether the field list is consistent with its shape.
func (f Fields) Validate() error {
	switch f.Shape {
	case Grouped:
		for i, fld := range f.List {
			if fld.Name == "" {
				return fmt.Errorf("field %d has no name in grouped field list", i)
			}
		}
	case Positional:
		for i, fld := range f.List {
			if fld.Name != "" {
				return fmt.Errorf("field %d is named %q in positional field list", i, fld.Name)
			}
		}
	case Empty:
		if len(f.List) > 0 {
			return fmt.Errorf("empty field list has %d fields", len(f.List))
		}
	default:
		return fmt.Errorf("unknown field shape %v", f.Shape)
	}
	return nil
}

// GroupedFields builds a named field list. Indexes are assigned from
// declaration order.
func GroupedFields(fields ...Field) Fields {
	return Fields{Shape: Grouped, List: indexed(fields, false)}
}

// PositionalFields builds a positional field list. Names are cleared and
// indexes are assigned from declaration order.
func PositionalFields(fields ...Field) Fields {
	return Fields{Shape: Positional, List: indexed(fields, true)}
}

// EmptyFields returns the field list of a definition without fields.
func EmptyFields() Fields {
	return Fields{Shape: Empty}
}

func indexed(fields []Field, clearNames bool) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		f.Index = i
		if clearNames {
			f.Name = ""
		}
		out[i] = f
	}
	return out
}

// Variant is one alternative of an enum.
type Variant struct {
	Name   string
	Attrs  []Attribute
	Fields Fields
	Pos    token.Position
}

// Item is a type definition: the root of the tree handed to analysis.
type Item struct {
	Name  string
	Kind  Kind
	Attrs []Attribute
	// Fields is only meaningful for KindStruct.
	Fields Fields
	// Variants is only meaningful for KindEnum.
	Variants []Variant
	Pos      token.Position
}

// Variant returns the variant with the given name.
func (it Item) Variant(name string) (Variant, bool) {
	for _, v := range it.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}
