package syntax

import (
	"strings"
	"testing"
)

func TestPositionalFields_AssignsIndexesAndClearsNames(t *testing.T) {
	f := PositionalFields(Field{Name: "a", Type: "i32"}, Field{Type: "u8"})
	if f.Shape != Positional {
		t.Fatalf("shape = %v, want positional", f.Shape)
	}
	for i, fld := range f.List {
		if fld.Index != i {
			t.Fatalf("field %d index = %d", i, fld.Index)
		}
		if fld.Name != "" {
			t.Fatalf("field %d name = %q, want empty", i, fld.Name)
		}
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestGroupedFields_DoesNotAliasInput(t *testing.T) {
	in := []Field{{Name: "x", Index: 7}}
	f := GroupedFields(in...)
	if in[0].Index != 7 {
		t.Fatalf("input mutated: %#v", in[0])
	}
	if f.List[0].Index != 0 {
		t.Fatalf("index = %d, want 0", f.List[0].Index)
	}
}

func TestFields_Validate(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		errSub string
	}{
		{name: "grouped ok", fields: GroupedFields(Field{Name: "x"})},
		{name: "grouped missing name", fields: Fields{Shape: Grouped, List: []Field{{}}}, errSub: "no name"},
		{name: "positional named", fields: Fields{Shape: Positional, List: []Field{{Name: "x"}}}, errSub: "is named"},
		{name: "empty with fields", fields: Fields{Shape: Empty, List: []Field{{}}}, errSub: "has 1 fields"},
		{name: "empty ok", fields: EmptyFields()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()
			if tt.errSub == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errSub) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.errSub)
			}
		})
	}
}

func TestItem_Variant(t *testing.T) {
	it := Item{Name: "E", Kind: KindEnum, Variants: []Variant{{Name: "A"}, {Name: "B"}}}
	if v, ok := it.Variant("B"); !ok || v.Name != "B" {
		t.Fatalf("Variant(B) = %#v, %v", v, ok)
	}
	if _, ok := it.Variant("Z"); ok {
		t.Fatal("Variant(Z) should not be found")
	}
}
