// Package defs reads type definitions from YAML files. It covers trees that
// Go source cannot express, such as positional fields.
//
//	items:
//	  - name: E
//	    kind: enum
//	    attrs: ['derive(debug)']
//	    variants:
//	      - name: A
//	        fields: [{type: i32}, {type: i32}]
//	      - name: B
//	        fields: [{name: x, type: i32}]
//	      - name: C
package defs

import (
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/gen-derive/syntax"
)

// Error reports an invalid definition together with its location.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Reader loads definition files.
type Reader interface {
	LoadFile(path string) ([]syntax.Item, error)
}

type readerImpl struct{}

// NewReader returns default definition reader.
func NewReader() Reader {
	return &readerImpl{}
}

func (r *readerImpl) LoadFile(path string) ([]syntax.Item, error) {
	return LoadFile(path)
}

// LoadFile reads and converts the definitions in path.
func LoadFile(path string) ([]syntax.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	return Parse(path, data)
}

// Parse converts YAML definitions. filename is only used for positions.
func Parse(filename string, data []byte) ([]syntax.Item, error) {
	var doc fileDef
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML definitions: %w", err)
	}

	c := converter{filename: filename}
	items := make([]syntax.Item, 0, len(doc.Items))
	for _, it := range doc.Items {
		item, err := c.item(it)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// node records where a YAML mapping started.
type node struct {
	Line, Column int
}

type fileDef struct {
	Items []itemDef `yaml:"items"`
}

type itemDef struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Shape    string       `yaml:"shape"`
	Attrs    []attrDef    `yaml:"attrs"`
	Fields   []fieldDef   `yaml:"fields"`
	Variants []variantDef `yaml:"variants"`

	at node
}

type variantDef struct {
	Name   string     `yaml:"name"`
	Shape  string     `yaml:"shape"`
	Attrs  []attrDef  `yaml:"attrs"`
	Fields []fieldDef `yaml:"fields"`

	at node
}

type fieldDef struct {
	Name  string    `yaml:"name"`
	Type  string    `yaml:"type"`
	Attrs []attrDef `yaml:"attrs"`

	at node
}

type attrDef struct {
	Text string
	at   node
}

func (d *itemDef) UnmarshalYAML(value *yaml.Node) error {
	type plain itemDef
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.at = node{Line: value.Line, Column: value.Column}
	return nil
}

func (d *variantDef) UnmarshalYAML(value *yaml.Node) error {
	type plain variantDef
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.at = node{Line: value.Line, Column: value.Column}
	return nil
}

func (d *fieldDef) UnmarshalYAML(value *yaml.Node) error {
	type plain fieldDef
	if err := value.Decode((*plain)(d)); err != nil {
		return err
	}
	d.at = node{Line: value.Line, Column: value.Column}
	return nil
}

func (d *attrDef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: annotation must be a string", value.Line)
	}
	d.Text = value.Value
	d.at = node{Line: value.Line, Column: value.Column}
	return nil
}

type converter struct {
	filename string
}

func (c converter) pos(n node) token.Position {
	return token.Position{Filename: c.filename, Line: n.Line, Column: n.Column}
}

func (c converter) errorf(n node, format string, args ...interface{}) error {
	return &Error{Pos: c.pos(n), Msg: fmt.Sprintf(format, args...)}
}

func (c converter) item(d itemDef) (syntax.Item, error) {
	if strings.TrimSpace(d.Name) == "" {
		return syntax.Item{}, c.errorf(d.at, "item has no name")
	}
	item := syntax.Item{
		Name:  d.Name,
		Attrs: c.attrs(d.Attrs),
		Pos:   c.pos(d.at),
	}

	switch strings.ToLower(d.Kind) {
	case "", "struct":
		item.Kind = syntax.KindStruct
		if len(d.Variants) > 0 {
			return syntax.Item{}, c.errorf(d.at, "struct %s declares variants", d.Name)
		}
		fields, err := c.fields(d.at, d.Shape, d.Fields)
		if err != nil {
			return syntax.Item{}, err
		}
		item.Fields = fields
	case "enum":
		item.Kind = syntax.KindEnum
		item.Fields = syntax.EmptyFields()
		if len(d.Fields) > 0 {
			return syntax.Item{}, c.errorf(d.at, "enum %s declares fields; declare them on its variants", d.Name)
		}
		for _, vd := range d.Variants {
			v, err := c.variant(vd)
			if err != nil {
				return syntax.Item{}, err
			}
			item.Variants = append(item.Variants, v)
		}
	case "union":
		item.Kind = syntax.KindUnion
		fields, err := c.fields(d.at, d.Shape, d.Fields)
		if err != nil {
			return syntax.Item{}, err
		}
		item.Fields = fields
	default:
		return syntax.Item{}, c.errorf(d.at, "unknown kind %q for %s", d.Kind, d.Name)
	}
	return item, nil
}

func (c converter) variant(d variantDef) (syntax.Variant, error) {
	if strings.TrimSpace(d.Name) == "" {
		return syntax.Variant{}, c.errorf(d.at, "variant has no name")
	}
	fields, err := c.fields(d.at, d.Shape, d.Fields)
	if err != nil {
		return syntax.Variant{}, err
	}
	return syntax.Variant{
		Name:   d.Name,
		Attrs:  c.attrs(d.Attrs),
		Fields: fields,
		Pos:    c.pos(d.at),
	}, nil
}

// fields builds a field list. Without an explicit shape it is inferred: no
// fields is empty, all named is grouped, none named is positional.
func (c converter) fields(owner node, shape string, defs []fieldDef) (syntax.Fields, error) {
	list := make([]syntax.Field, 0, len(defs))
	named := 0
	for _, d := range defs {
		if d.Name != "" {
			named++
		}
		list = append(list, syntax.Field{
			Name:  d.Name,
			Type:  d.Type,
			Attrs: c.attrs(d.Attrs),
			Pos:   c.pos(d.at),
		})
	}

	s, err := c.shape(owner, shape, len(defs), named)
	if err != nil {
		return syntax.Fields{}, err
	}
	switch s {
	case syntax.Grouped:
		return syntax.GroupedFields(list...), nil
	case syntax.Positional:
		return syntax.PositionalFields(list...), nil
	default:
		return syntax.EmptyFields(), nil
	}
}

func (c converter) shape(owner node, declared string, total, named int) (syntax.Shape, error) {
	if named != 0 && named != total {
		return 0, c.errorf(owner, "fields mix named and positional declarations")
	}
	switch strings.ToLower(declared) {
	case "":
		switch {
		case total == 0:
			return syntax.Empty, nil
		case named == total:
			return syntax.Grouped, nil
		default:
			return syntax.Positional, nil
		}
	case "grouped", "named":
		if named != total {
			return 0, c.errorf(owner, "grouped fields must all be named")
		}
		return syntax.Grouped, nil
	case "positional", "tuple":
		if named != 0 {
			return 0, c.errorf(owner, "positional fields must not be named")
		}
		return syntax.Positional, nil
	case "empty", "unit":
		if total != 0 {
			return 0, c.errorf(owner, "empty shape declares %d fields", total)
		}
		return syntax.Empty, nil
	default:
		return 0, c.errorf(owner, "unknown shape %q", declared)
	}
}

func (c converter) attrs(defs []attrDef) []syntax.Attribute {
	if len(defs) == 0 {
		return nil
	}
	out := make([]syntax.Attribute, 0, len(defs))
	for _, d := range defs {
		out = append(out, syntax.Attribute{Text: d.Text, Pos: c.pos(d.at)})
	}
	return out
}
