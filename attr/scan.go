// Package attr extracts configuration from annotation lists.
//
// An annotation list is scanned in declaration order. Only annotations of the
// form namespace(entry, entry, ...) whose namespace matches the one asked for
// are considered, and entries are either bare flags (`skip`) or key/value
// pairs (`rename = "id"`). The first matching entry wins; later annotations
// are never inspected.
//
// The package-level functions are tolerant: annotations that do not parse,
// annotations of other namespaces and keys bound to non-string literals are
// skipped. A Scanner in Strict mode reports malformed annotations and
// non-string values for the requested key instead.
package attr

import "github.com/seitarof/gen-derive/syntax"

// Mode controls how a Scanner treats problems found while scanning.
type Mode int

const (
	// Tolerant skips malformed annotations and non-string values.
	Tolerant Mode = iota
	// Strict reports them as errors.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "tolerant"
}

// Scanner scans annotation lists. The zero value is a tolerant scanner.
type Scanner struct {
	Mode Mode
}

// HasFlag reports whether a bare flag named flag appears in a namespace list
// of attrs.
func HasFlag(namespace string, attrs []syntax.Attribute, flag string) bool {
	ok, _ := Scanner{}.Flag(namespace, attrs, flag)
	return ok
}

// Value returns the string value of the first key/value entry named key in a
// namespace list of attrs.
func Value(namespace string, attrs []syntax.Attribute, key string) (string, bool) {
	v, ok, _ := Scanner{}.Lookup(namespace, attrs, key)
	return v, ok
}

// Flag is HasFlag honoring the scanner's mode. In Strict mode a malformed
// annotation met before a match is returned as a *ParseError.
func (s Scanner) Flag(namespace string, attrs []syntax.Attribute, flag string) (bool, error) {
	for _, a := range attrs {
		list, err := s.list(namespace, a)
		if err != nil {
			return false, err
		}
		if list == nil {
			continue
		}
		for _, n := range list.Nested {
			if w, ok := n.Meta.(*Word); ok && w.Name == flag {
				return true, nil
			}
		}
	}
	return false, nil
}

// Lookup is Value honoring the scanner's mode. In Strict mode a malformed
// annotation met before a match is returned as a *ParseError and a key bound
// to a non-string literal as a *ValueError.
func (s Scanner) Lookup(namespace string, attrs []syntax.Attribute, key string) (string, bool, error) {
	for _, a := range attrs {
		list, err := s.list(namespace, a)
		if err != nil {
			return "", false, err
		}
		if list == nil {
			continue
		}
		for _, n := range list.Nested {
			nv, ok := n.Meta.(*NameValue)
			if !ok || nv.Name != key {
				continue
			}
			if nv.Lit.Kind == LitString {
				return nv.Lit.Value, true, nil
			}
			if s.Mode == Strict {
				return "", false, &ValueError{Namespace: namespace, Key: key, Lit: nv.Lit}
			}
		}
	}
	return "", false, nil
}

// list parses a and returns it when it is a list in namespace.
func (s Scanner) list(namespace string, a syntax.Attribute) (*List, error) {
	m, err := Parse(a)
	if err != nil {
		if s.Mode == Strict {
			return nil, err
		}
		return nil, nil
	}
	l, ok := m.(*List)
	if !ok || l.Name != namespace {
		return nil, nil
	}
	return l, nil
}

// Entries returns every flag and key/value entry of the namespace lists in
// attrs, in declaration order. Malformed annotations are skipped; nested
// lists and bare literals are not entries.
func Entries(namespace string, attrs []syntax.Attribute) []Entry {
	var out []Entry
	for _, a := range attrs {
		l, _ := Scanner{}.list(namespace, a)
		if l == nil {
			continue
		}
		for _, n := range l.Nested {
			switch m := n.Meta.(type) {
			case *Word:
				out = append(out, Entry{Name: m.Name, Pos: m.pos})
			case *NameValue:
				lit := m.Lit
				out = append(out, Entry{Name: m.Name, Value: &lit, Pos: m.pos})
			}
		}
	}
	return out
}

// Check parses every annotation in attrs and returns the parse errors, so
// tools can warn about annotations that tolerant lookups skip.
func Check(attrs []syntax.Attribute) []error {
	var errs []error
	for _, a := range attrs {
		if _, err := Parse(a); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
