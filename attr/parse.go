package attr

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/seitarof/gen-derive/syntax"
)

// Parse parses the text of one annotation node. The grammar is
//
//	meta   = path | path "(" [ nested { "," nested } [ "," ] ] ")" | path "=" lit
//	path   = ident { "." ident }
//	nested = meta | lit
//
// where lit is a Go string, raw string, int, float or char literal, or one of
// true and false. String escapes follow Go, not Rust: "\u0041" is accepted,
// "\u{41}" is a parse error.
func Parse(a syntax.Attribute) (Meta, error) {
	p := newParser(a)
	p.next()
	if p.tok == scanner.EOF && p.err == nil {
		return nil, p.errorf("empty annotation")
	}
	m, err := p.parseMeta()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %s after annotation", p.describe())
	}
	return m, nil
}

type parser struct {
	s    scanner.Scanner
	base token.Position
	err  error

	tok  rune
	text string
	pos  token.Position
}

func newParser(a syntax.Attribute) *parser {
	p := &parser{base: a.Pos}
	p.s.Init(strings.NewReader(a.Text))
	p.s.Mode = scanner.GoTokens
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = errors.New(msg)
		}
	}
	return p
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	p.pos = p.position(p.s.Position)
}

// position maps a position inside the annotation text onto the source file.
func (p *parser) position(sp scanner.Position) token.Position {
	if !p.base.IsValid() {
		return token.Position{Line: sp.Line, Column: sp.Column}
	}
	pos := p.base
	if sp.Line <= 1 {
		pos.Column += sp.Column - 1
	} else {
		pos.Line += sp.Line - 1
		pos.Column = sp.Column
	}
	return pos
}

func (p *parser) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if p.err != nil {
		msg = p.err.Error()
	}
	return &ParseError{Pos: p.pos, Msg: msg}
}

func (p *parser) describe() string {
	switch p.tok {
	case scanner.EOF:
		return "end of annotation"
	case scanner.Ident:
		return fmt.Sprintf("identifier %q", p.text)
	case scanner.String, scanner.RawString, scanner.Int, scanner.Float, scanner.Char:
		return fmt.Sprintf("literal %s", p.text)
	default:
		return fmt.Sprintf("%q", p.text)
	}
}

func (p *parser) parseMeta() (Meta, error) {
	pos := p.pos
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	switch p.tok {
	case '(':
		p.next()
		list := &List{Name: path, pos: pos}
		for p.tok != ')' {
			n, err := p.parseNested()
			if err != nil {
				return nil, err
			}
			list.Nested = append(list.Nested, n)
			if p.tok == ',' {
				p.next()
				continue
			}
			if p.tok != ')' {
				return nil, p.errorf("expected \",\" or \")\", found %s", p.describe())
			}
		}
		p.next()
		if p.err != nil {
			return nil, p.errorf("")
		}
		return list, nil
	case '=':
		p.next()
		lit, err := p.parseLit()
		if err != nil {
			return nil, err
		}
		return &NameValue{Name: path, Lit: lit, pos: pos}, nil
	default:
		if p.err != nil {
			return nil, p.errorf("")
		}
		return &Word{Name: path, pos: pos}, nil
	}
}

func (p *parser) parsePath() (string, error) {
	if p.err != nil || p.tok != scanner.Ident || isBool(p.text) {
		return "", p.errorf("expected identifier, found %s", p.describe())
	}
	parts := []string{p.text}
	p.next()
	for p.tok == '.' {
		p.next()
		if p.err != nil || p.tok != scanner.Ident {
			return "", p.errorf("expected identifier after \".\", found %s", p.describe())
		}
		parts = append(parts, p.text)
		p.next()
	}
	return strings.Join(parts, "."), nil
}

func (p *parser) parseNested() (Nested, error) {
	if p.tok == scanner.Ident && !isBool(p.text) {
		m, err := p.parseMeta()
		if err != nil {
			return Nested{}, err
		}
		return Nested{Meta: m}, nil
	}
	lit, err := p.parseLit()
	if err != nil {
		return Nested{}, err
	}
	return Nested{Lit: &lit}, nil
}

func (p *parser) parseLit() (Lit, error) {
	if p.err != nil {
		return Lit{}, p.errorf("")
	}
	lit := Lit{Raw: p.text, Value: p.text, pos: p.pos}
	switch p.tok {
	case scanner.String, scanner.RawString:
		v, err := strconv.Unquote(p.text)
		if err != nil {
			return Lit{}, p.errorf("invalid string literal %s", p.text)
		}
		lit.Kind = LitString
		lit.Value = v
	case scanner.Int:
		lit.Kind = LitInt
	case scanner.Float:
		lit.Kind = LitFloat
	case scanner.Char:
		lit.Kind = LitChar
	case scanner.Ident:
		if !isBool(p.text) {
			return Lit{}, p.errorf("expected literal, found %s", p.describe())
		}
		lit.Kind = LitBool
	default:
		return Lit{}, p.errorf("expected literal, found %s", p.describe())
	}
	p.next()
	if p.err != nil {
		return Lit{}, p.errorf("")
	}
	return lit, nil
}

func isBool(s string) bool {
	return s == "true" || s == "false"
}
