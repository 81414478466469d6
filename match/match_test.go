package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seitarof/gen-derive/syntax"
)

// E { A(i32, i32), B { x: i32 }, C }
func sampleEnum() syntax.Item {
	return syntax.Item{
		Name: "E",
		Kind: syntax.KindEnum,
		Variants: []syntax.Variant{
			{Name: "A", Fields: syntax.PositionalFields(syntax.Field{Type: "i32"}, syntax.Field{Type: "i32"})},
			{Name: "B", Fields: syntax.GroupedFields(syntax.Field{Name: "x", Type: "i32"})},
			{Name: "C", Fields: syntax.EmptyFields()},
		},
	}
}

func TestIsPositional(t *testing.T) {
	e := sampleEnum()
	want := map[string]bool{"A": true, "B": false, "C": false}
	for _, v := range e.Variants {
		if got := IsPositional(v); got != want[v.Name] {
			t.Fatalf("IsPositional(%s) = %v, want %v", v.Name, got, want[v.Name])
		}
	}
}

func TestClause(t *testing.T) {
	e := sampleEnum()
	tests := []struct {
		variant string
		want    string
	}{
		{variant: "A", want: "E::A(v0, v1) => { let variant = (v0, v1); body }"},
		{variant: "B", want: "E::B { x } => { body }"},
		{variant: "C", want: "E::C => { body }"},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			v, _ := e.Variant(tt.variant)
			if got := Clause("E", v, "body"); got != tt.want {
				t.Fatalf("Clause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClause_EdgeShapes(t *testing.T) {
	single := syntax.Variant{Name: "One", Fields: syntax.PositionalFields(syntax.Field{Type: "u8"})}
	if got, want := Clause("E", single, "f(v0)"), "E::One(v0) => { let variant = (v0,); f(v0) }"; got != want {
		t.Fatalf("Clause() = %q, want %q", got, want)
	}

	noPositional := syntax.Variant{Name: "Z", Fields: syntax.PositionalFields()}
	if got, want := Clause("E", noPositional, "x"), "E::Z() => { let variant = (); x }"; got != want {
		t.Fatalf("Clause() = %q, want %q", got, want)
	}

	noGrouped := syntax.Variant{Name: "G", Fields: syntax.GroupedFields()}
	if got, want := Clause("E", noGrouped, "x"), "E::G {} => { x }"; got != want {
		t.Fatalf("Clause() = %q, want %q", got, want)
	}

	multi := syntax.Variant{Name: "P", Fields: syntax.GroupedFields(syntax.Field{Name: "x"}, syntax.Field{Name: "y"})}
	if got, want := Clause("Point", multi, "x + y"), "Point::P { x, y } => { x + y }"; got != want {
		t.Fatalf("Clause() = %q, want %q", got, want)
	}
}

func TestClause_BodyInlinedVerbatim(t *testing.T) {
	body := "if v0 > 0 {\n    return v0;\n}"
	v := syntax.Variant{Name: "A", Fields: syntax.PositionalFields(syntax.Field{}, syntax.Field{})}
	want := "E::A(v0, v1) => { let variant = (v0, v1); " + body + " }"
	if got := Clause("E", v, body); got != want {
		t.Fatalf("Clause() = %q, want %q", got, want)
	}
}

func TestClause_Deterministic(t *testing.T) {
	e := sampleEnum()
	for _, v := range e.Variants {
		first := Clause("E", v, "b")
		for i := 0; i < 3; i++ {
			if got := Clause("E", v, "b"); got != first {
				t.Fatalf("Clause(%s) run %d = %q, want %q", v.Name, i, got, first)
			}
		}
	}
}

func TestBindings(t *testing.T) {
	e := sampleEnum()
	got := [][]string{}
	for _, v := range e.Variants {
		got = append(got, Bindings(v))
	}
	want := [][]string{{"v0", "v1"}, {"x"}, nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Bindings() mismatch (-want +got):\n%s", diff)
	}
}

func TestArms(t *testing.T) {
	arms, ok := Arms(sampleEnum(), func(v syntax.Variant) string { return "visit_" + v.Name + "()" })
	if !ok {
		t.Fatal("Arms() ok = false, want true")
	}
	want := []string{
		"E::A(v0, v1) => { let variant = (v0, v1); visit_A() }",
		"E::B { x } => { visit_B() }",
		"E::C => { visit_C() }",
	}
	if diff := cmp.Diff(want, arms); diff != "" {
		t.Fatalf("Arms() mismatch (-want +got):\n%s", diff)
	}

	if _, ok := Arms(syntax.Item{Name: "S", Kind: syntax.KindStruct}, func(syntax.Variant) string { return "" }); ok {
		t.Fatal("Arms() ok = true for struct")
	}
}
