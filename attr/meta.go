package attr

import (
	"fmt"
	"go/token"
)

// Meta is a parsed annotation: a bare path, a path with a parenthesized list
// of nested entries, or a path bound to a literal.
type Meta interface {
	Path() string
	Pos() token.Position
	meta()
}

// Word is a bare path, such as `skip`.
type Word struct {
	Name string
	pos  token.Position
}

func (w *Word) Path() string        { return w.Name }
func (w *Word) Pos() token.Position { return w.pos }
func (*Word) meta()                 {}

// List is a path followed by nested entries, such as `derive(skip, rename = "x")`.
type List struct {
	Name   string
	Nested []Nested
	pos    token.Position
}

func (l *List) Path() string        { return l.Name }
func (l *List) Pos() token.Position { return l.pos }
func (*List) meta()                 {}

// NameValue is a path bound to a literal, such as `rename = "x"`.
type NameValue struct {
	Name string
	Lit  Lit
	pos  token.Position
}

func (nv *NameValue) Path() string        { return nv.Name }
func (nv *NameValue) Pos() token.Position { return nv.pos }
func (*NameValue) meta()                  {}

// Nested is one element of a List. Exactly one of Meta and Lit is set.
type Nested struct {
	Meta Meta
	Lit  *Lit
}

// LitKind is the kind of a literal.
type LitKind int

const (
	LitString LitKind = iota
	LitInt
	LitFloat
	LitChar
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitChar:
		return "char"
	case LitBool:
		return "bool"
	default:
		return fmt.Sprintf("?%d?", int(k))
	}
}

// Lit is a literal value in an annotation.
type Lit struct {
	Kind LitKind
	// Raw is the literal as written.
	Raw string
	// Value is the decoded string for LitString and Raw for everything else.
	Value string
	pos   token.Position
}

// Pos returns the location of the literal.
func (l Lit) Pos() token.Position {
	return l.pos
}

// Entry is a flag or key/value entry found inside a namespace list.
type Entry struct {
	Name string
	// Value is nil for flags.
	Value *Lit
	Pos   token.Position
}

// IsFlag reports whether the entry is a bare flag.
func (e Entry) IsFlag() bool {
	return e.Value == nil
}

// ParseError reports an annotation that does not follow the annotation
// grammar.
type ParseError struct {
	Pos token.Position
	Msg string
}

func (e *ParseError) Error() string {
	return withPos(e.Pos, e.Msg)
}

// ValueError reports a key whose value is not a string literal. It is only
// produced in Strict mode.
type ValueError struct {
	Namespace string
	Key       string
	Lit       Lit
}

func (e *ValueError) Error() string {
	return withPos(e.Lit.pos, fmt.Sprintf("%s(%s): value is a %s literal, want string", e.Namespace, e.Key, e.Lit.Kind))
}

func withPos(pos token.Position, msg string) string {
	if !pos.IsValid() {
		return msg
	}
	return fmt.Sprintf("%s: %s", pos, msg)
}
