// Package match synthesizes pattern-match arms for enum variants.
//
// Arms are rendered in the pattern syntax of the generation target:
//
//	E::B { x, y } => { body }
//	E::A(v0, v1) => { let variant = (v0, v1); body }
//	E::C => { body }
//
// Positional bindings are named after their position only, so the same
// variant always yields the same text.
package match

import (
	"strconv"
	"strings"

	"github.com/seitarof/gen-derive/syntax"
)

// Aggregate is the name under which the fields of a positional variant are
// exposed together as one tuple value.
const Aggregate = "variant"

// Binding returns the name bound to the positional field at index i.
func Binding(i int) string {
	return "v" + strconv.Itoa(i)
}

// IsPositional reports whether the fields of v are positional.
func IsPositional(v syntax.Variant) bool {
	return v.Fields.Shape == syntax.Positional
}

// Bindings returns the names a clause for v binds, in field order.
func Bindings(v syntax.Variant) []string {
	switch v.Fields.Shape {
	case syntax.Grouped:
		out := make([]string, 0, len(v.Fields.List))
		for _, f := range v.Fields.List {
			out = append(out, f.Name)
		}
		return out
	case syntax.Positional:
		out := make([]string, 0, len(v.Fields.List))
		for i := range v.Fields.List {
			out = append(out, Binding(i))
		}
		return out
	default:
		return nil
	}
}

// Clause returns one match arm that recognizes v, binds every field of it and
// then runs body, which is inlined verbatim.
func Clause(enumName string, v syntax.Variant, body string) string {
	var b strings.Builder
	b.WriteString(enumName)
	b.WriteString("::")
	b.WriteString(v.Name)

	names := Bindings(v)
	switch v.Fields.Shape {
	case syntax.Grouped:
		if len(names) == 0 {
			b.WriteString(" {}")
		} else {
			b.WriteString(" { ")
			b.WriteString(strings.Join(names, ", "))
			b.WriteString(" }")
		}
		b.WriteString(" => { ")
	case syntax.Positional:
		b.WriteString("(")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(") => { let ")
		b.WriteString(Aggregate)
		b.WriteString(" = ")
		b.WriteString(tuple(names))
		b.WriteString("; ")
	default:
		b.WriteString(" => { ")
	}
	b.WriteString(body)
	b.WriteString(" }")
	return b.String()
}

// tuple renders names as a tuple expression. A single element keeps its
// trailing comma so the value stays a tuple.
func tuple(names []string) string {
	if len(names) == 1 {
		return "(" + names[0] + ",)"
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// Arms returns one clause per variant of an enum, in declaration order. body
// supplies the fragment for each variant. Items that are not enums report
// false.
func Arms(item syntax.Item, body func(syntax.Variant) string) ([]string, bool) {
	if item.Kind != syntax.KindEnum {
		return nil, false
	}
	out := make([]string, 0, len(item.Variants))
	for _, v := range item.Variants {
		out = append(out, Clause(item.Name, v, body(v)))
	}
	return out, true
}
