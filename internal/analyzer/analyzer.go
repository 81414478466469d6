package analyzer

import (
	"fmt"
	"strings"

	"github.com/seitarof/gen-derive/attr"
	"github.com/seitarof/gen-derive/field"
	"github.com/seitarof/gen-derive/match"
	"github.com/seitarof/gen-derive/syntax"
)

// NamePlaceholder in a body fragment is replaced with the variant name.
const NamePlaceholder = "$name"

// Analyzer runs the annotation, field and match operations over items.
type Analyzer interface {
	Analyze(items []syntax.Item) ([]Plan, error)
}

// Options configures what an Analyzer looks up.
type Options struct {
	Namespace string
	Flags     []string
	Keys      []string
	// Body is the fragment placed in every match arm.
	Body string
	Mode attr.Mode
}

type analyzerImpl struct {
	opts    Options
	scanner attr.Scanner
}

// New builds an analyzer.
func New(opts Options) Analyzer {
	return &analyzerImpl{opts: opts, scanner: attr.Scanner{Mode: opts.Mode}}
}

func (a *analyzerImpl) Analyze(items []syntax.Item) ([]Plan, error) {
	plans := make([]Plan, 0, len(items))
	for _, it := range items {
		p, err := a.analyzeOne(it)
		if err != nil {
			return nil, fmt.Errorf("analyze %s: %w", it.Name, err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (a *analyzerImpl) analyzeOne(it syntax.Item) (Plan, error) {
	p := Plan{Item: it}

	var err error
	if p.Annotations, err = a.annotations(it.Attrs); err != nil {
		return Plan{}, err
	}
	if err := a.check(&p, it.Attrs); err != nil {
		return Plan{}, err
	}

	if named, ok := field.Named(it); ok {
		p.HasNamed = true
		p.Named = make([]string, 0, len(named))
		for _, f := range named {
			p.Named = append(p.Named, f.Name)
		}
	}

	switch it.Kind {
	case syntax.KindStruct:
		if err := a.validate(&p, it.Name, it.Fields); err != nil {
			return Plan{}, err
		}
		if p.Members, err = a.members(&p, it.Fields); err != nil {
			return Plan{}, err
		}
	case syntax.KindEnum:
		for _, v := range it.Variants {
			vp, err := a.variant(&p, v)
			if err != nil {
				return Plan{}, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			p.Variants = append(p.Variants, vp)
		}
		p.Arms, _ = match.Arms(it, a.body)
	}
	return p, nil
}

func (a *analyzerImpl) variant(p *Plan, v syntax.Variant) (VariantPlan, error) {
	vp := VariantPlan{
		Name:       v.Name,
		Shape:      v.Fields.Shape,
		Positional: match.IsPositional(v),
		Bindings:   match.Bindings(v),
	}
	var err error
	if vp.Annotations, err = a.annotations(v.Attrs); err != nil {
		return VariantPlan{}, err
	}
	if err := a.check(p, v.Attrs); err != nil {
		return VariantPlan{}, err
	}
	if err := a.validate(p, v.Name, v.Fields); err != nil {
		return VariantPlan{}, err
	}
	if vp.Members, err = a.members(p, v.Fields); err != nil {
		return VariantPlan{}, err
	}
	return vp, nil
}

func (a *analyzerImpl) members(p *Plan, fields syntax.Fields) ([]Member, error) {
	normalized := field.Normalize(fields)
	out := make([]Member, 0, len(normalized))
	for _, m := range normalized {
		ann, err := a.annotations(m.Field.Attrs)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", m.Ref, err)
		}
		if err := a.check(p, m.Field.Attrs); err != nil {
			return nil, fmt.Errorf("field %s: %w", m.Ref, err)
		}
		out = append(out, Member{
			Ref:         m.Ref,
			Access:      m.Ref.Access(Receiver),
			Field:       m.Field,
			Annotations: ann,
		})
	}
	return out, nil
}

// validate records inconsistent field lists. Strict mode rejects them.
func (a *analyzerImpl) validate(p *Plan, owner string, fields syntax.Fields) error {
	err := fields.Validate()
	if err == nil {
		return nil
	}
	if a.opts.Mode == attr.Strict {
		return err
	}
	p.Diagnostics = append(p.Diagnostics, Diagnostic{Kind: InvalidFields, Msg: fmt.Sprintf("%s: %v", owner, err)})
	return nil
}

func (a *analyzerImpl) annotations(attrs []syntax.Attribute) (Annotations, error) {
	var out Annotations
	for _, name := range a.opts.Flags {
		set, err := a.scanner.Flag(a.opts.Namespace, attrs, name)
		if err != nil {
			return Annotations{}, err
		}
		out.Flags = append(out.Flags, Flag{Name: name, Set: set})
	}
	for _, key := range a.opts.Keys {
		v, ok, err := a.scanner.Lookup(a.opts.Namespace, attrs, key)
		if err != nil {
			return Annotations{}, err
		}
		out.Keys = append(out.Keys, Key{Name: key, Value: v, Found: ok})
	}
	out.Entries = attr.Entries(a.opts.Namespace, attrs)
	return out, nil
}

func (a *analyzerImpl) body(v syntax.Variant) string {
	return strings.ReplaceAll(a.opts.Body, NamePlaceholder, v.Name)
}

// check records malformed annotations in attrs. Strict mode rejects the
// first one.
func (a *analyzerImpl) check(p *Plan, attrs []syntax.Attribute) error {
	errs := attr.Check(attrs)
	if len(errs) == 0 {
		return nil
	}
	if a.opts.Mode == attr.Strict {
		return errs[0]
	}
	for _, err := range errs {
		p.Diagnostics = append(p.Diagnostics, Diagnostic{Kind: MalformedAnnotation, Msg: err.Error()})
	}
	return nil
}
