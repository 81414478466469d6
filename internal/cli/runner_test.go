package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/seitarof/gen-derive/internal/analyzer"
	"github.com/seitarof/gen-derive/internal/generator"
	"github.com/seitarof/gen-derive/internal/matcher"
	"github.com/seitarof/gen-derive/syntax"
)

func TestRunner_Run_LoadsPackageAndGenerates(t *testing.T) {
	l := &mockLoader{items: []syntax.Item{
		{Name: "User", Kind: syntax.KindStruct, Fields: syntax.GroupedFields(syntax.Field{Name: "ID", Type: "int"})},
		{Name: "Secret", Kind: syntax.KindStruct, Fields: syntax.EmptyFields()},
	}}
	d := &mockDefs{}
	gen := &mockGenerator{}
	log := &mockLogger{}

	r := NewRunner(l, d, matcher.NewItemMatcher(), gen, log)
	cfg := &Config{
		Package:     "example.com/model",
		Types:       []string{"user", "Order"},
		IgnoreTypes: []string{"secret"},
		Namespace:   "derive",
	}

	if err := r.Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if l.lastPath != "example.com/model" {
		t.Fatalf("loader path = %q", l.lastPath)
	}
	if d.callCount != 0 {
		t.Fatalf("defs reader should not be called")
	}
	if gen.callCount != 1 || len(gen.plans) != 1 || gen.plans[0].Item.Name != "User" {
		t.Fatalf("unexpected generated plans: %+v", gen.plans)
	}
	if gen.cfg.OutputFilename() != "" {
		t.Fatalf("config not forwarded to generator")
	}
	if !log.warned("requested type not found") {
		t.Fatalf("missing type should be warned: %v", log.warnings)
	}
}

func TestRunner_Run_LoadsDefsAndLogsDiagnostics(t *testing.T) {
	d := &mockDefs{items: []syntax.Item{{
		Name:   "Pair",
		Kind:   syntax.KindStruct,
		Attrs:  []syntax.Attribute{{Text: "derive(broken"}},
		Fields: syntax.PositionalFields(syntax.Field{Type: "String"}),
	}}}
	gen := &mockGenerator{}
	log := &mockLogger{}

	r := NewRunner(&mockLoader{}, d, matcher.NewItemMatcher(), gen, log)
	if err := r.Run(&Config{DefsFile: "defs.yaml", Namespace: "derive"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if d.lastPath != "defs.yaml" {
		t.Fatalf("defs path = %q", d.lastPath)
	}
	if !log.warned("annotation ignored") {
		t.Fatalf("diagnostic should be warned: %v", log.warnings)
	}
	if gen.plans[0].HasNamed {
		t.Fatalf("positional struct should have no named fields")
	}
}

func TestRunner_Run_LogsInconsistentFields(t *testing.T) {
	d := &mockDefs{items: []syntax.Item{{
		Name:   "Bad",
		Kind:   syntax.KindStruct,
		Fields: syntax.Fields{Shape: syntax.Grouped, List: []syntax.Field{{Type: "int"}}},
	}}}
	log := &mockLogger{}

	r := NewRunner(&mockLoader{}, d, matcher.NewItemMatcher(), &mockGenerator{}, log)
	if err := r.Run(&Config{DefsFile: "defs.yaml", Namespace: "derive"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !log.warned("inconsistent field list") || log.warned("annotation ignored") {
		t.Fatalf("unexpected warnings: %v", log.warnings)
	}
}

func TestRunner_Run_StrictFailsWithoutLookups(t *testing.T) {
	d := &mockDefs{items: []syntax.Item{{
		Name:   "Pair",
		Kind:   syntax.KindStruct,
		Attrs:  []syntax.Attribute{{Text: "derive(skip"}},
		Fields: syntax.EmptyFields(),
	}}}
	gen := &mockGenerator{}

	r := NewRunner(&mockLoader{}, d, matcher.NewItemMatcher(), gen, &mockLogger{})
	err := r.Run(&Config{DefsFile: "defs.yaml", Namespace: "derive", Strict: true})
	if err == nil || !strings.Contains(err.Error(), "analyze Pair") {
		t.Fatalf("Run() error = %v, want analyze error", err)
	}
	if gen.callCount != 0 {
		t.Fatalf("generator should not run after analyze error")
	}
}

func TestRunner_Run_StrictFailsOnMalformedAnnotation(t *testing.T) {
	d := &mockDefs{items: []syntax.Item{{
		Name:   "Pair",
		Kind:   syntax.KindStruct,
		Attrs:  []syntax.Attribute{{Text: "derive(broken"}},
		Fields: syntax.EmptyFields(),
	}}}
	gen := &mockGenerator{}

	r := NewRunner(&mockLoader{}, d, matcher.NewItemMatcher(), gen, &mockLogger{})
	err := r.Run(&Config{DefsFile: "defs.yaml", Namespace: "derive", Flags: []string{"skip"}, Strict: true})
	if err == nil || !strings.Contains(err.Error(), "analyze") {
		t.Fatalf("Run() error = %v, want analyze error", err)
	}
	if gen.callCount != 0 {
		t.Fatalf("generator should not run after analyze error")
	}
}

func TestRunner_Run_ReturnsErrors(t *testing.T) {
	loadErr := errors.New("boom")

	r := NewRunner(&mockLoader{err: loadErr}, &mockDefs{}, matcher.NewItemMatcher(), &mockGenerator{}, &mockLogger{})
	err := r.Run(&Config{Package: "example.com/model", Namespace: "derive"})
	if !errors.Is(err, loadErr) {
		t.Fatalf("Run() error = %v, want wrapped load error", err)
	}

	r = NewRunner(&mockLoader{items: []syntax.Item{{Name: "User"}}}, &mockDefs{}, matcher.NewItemMatcher(), &mockGenerator{}, &mockLogger{})
	err = r.Run(&Config{Package: "example.com/model", Namespace: "derive", IgnoreTypes: []string{"user"}})
	if err == nil || !strings.Contains(err.Error(), "no items selected") {
		t.Fatalf("Run() error = %v, want no items selected", err)
	}
}

type mockLoader struct {
	items    []syntax.Item
	err      error
	lastPath string
}

func (m *mockLoader) Load(pkgPath string) ([]syntax.Item, error) {
	m.lastPath = pkgPath
	return m.items, m.err
}

type mockDefs struct {
	items     []syntax.Item
	callCount int
	lastPath  string
}

func (m *mockDefs) LoadFile(path string) ([]syntax.Item, error) {
	m.callCount++
	m.lastPath = path
	return m.items, nil
}

type mockGenerator struct {
	callCount int
	cfg       generator.Config
	plans     []analyzer.Plan
}

func (m *mockGenerator) Generate(cfg generator.Config, plans []analyzer.Plan) error {
	m.callCount++
	m.cfg = cfg
	m.plans = plans
	return nil
}

type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(string, ...any) {}
func (m *mockLogger) Info(string, ...any)  {}
func (m *mockLogger) Warn(msg string, _ ...any) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(string, ...any) {}

func (m *mockLogger) warned(msg string) bool {
	for _, w := range m.warnings {
		if w == msg {
			return true
		}
	}
	return false
}
