package analyzer

import (
	"github.com/seitarof/gen-derive/attr"
	"github.com/seitarof/gen-derive/field"
	"github.com/seitarof/gen-derive/syntax"
)

// Receiver is the name members are accessed through in a Plan.
const Receiver = "self"

// Plan holds everything the core operations report for one item.
type Plan struct {
	Item        syntax.Item
	Annotations Annotations
	// Named lists the field names when the item has grouped struct fields.
	Named    []string
	HasNamed bool
	// Members is the normalized field list of a struct item.
	Members  []Member
	Variants []VariantPlan
	// Arms holds one match clause per variant of an enum item.
	Arms        []string
	Diagnostics []Diagnostic
}

// Fielded reports whether the item carries a field list of its own.
func (p Plan) Fielded() bool {
	return p.Item.Kind == syntax.KindStruct
}

// Annotations are the lookup results for one annotated node.
type Annotations struct {
	Flags   []Flag
	Keys    []Key
	Entries []attr.Entry
}

// IsZero reports whether nothing was looked up or found.
func (a Annotations) IsZero() bool {
	return len(a.Flags) == 0 && len(a.Keys) == 0 && len(a.Entries) == 0
}

type Flag struct {
	Name string
	Set  bool
}

type Key struct {
	Name  string
	Value string
	Found bool
}

type Member struct {
	Ref         field.Ref
	Access      string
	Field       syntax.Field
	Annotations Annotations
}

type VariantPlan struct {
	Name        string
	Shape       syntax.Shape
	Positional  bool
	Bindings    []string
	Members     []Member
	Annotations Annotations
}

// DiagnosticKind classifies a problem that tolerant analysis skipped over.
type DiagnosticKind int

const (
	MalformedAnnotation DiagnosticKind = iota
	InvalidFields
)

type Diagnostic struct {
	Kind DiagnosticKind
	Msg  string
}

func (d Diagnostic) String() string {
	return d.Msg
}
