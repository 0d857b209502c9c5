package attribute

import "testing"

func TestNewVariant_NormalizesValue(t *testing.T) {
	v, err := NewVariant("  Red ", "Red", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Value() != "red" {
		t.Errorf("value = %q, want %q", v.Value(), "red")
	}
	if v.Label() != "Red" {
		t.Errorf("label = %q, want %q", v.Label(), "Red")
	}
}

func TestNewVariant_EmptyValue(t *testing.T) {
	if _, err := NewVariant("   ", "Label", true); err == nil {
		t.Fatal("expected error for empty value")
	}
}

func TestDisplayLabel_FallsBackToValue(t *testing.T) {
	v := ReconstructVariant("blonde", "", true)
	if got := v.DisplayLabel(); got != "blonde" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "blonde")
	}

	v = ReconstructVariant("blonde", "Blonde", true)
	if got := v.DisplayLabel(); got != "Blonde" {
		t.Errorf("DisplayLabel() = %q, want %q", got, "Blonde")
	}
}

func TestNew_Defaults(t *testing.T) {
	g, err := New("hairColor", "Hair color", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.SelectionType() != Single {
		t.Errorf("selection = %q, want %q", g.SelectionType(), Single)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		groupName string
		selection Selection
	}{
		{"empty key", "", "Name", Single},
		{"blank key", "   ", "Name", Single},
		{"empty name", "key", "", Single},
		{"unknown selection", "key", "Name", "triple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.key, tt.groupName, tt.selection, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_DuplicateVariant(t *testing.T) {
	v1, _ := NewVariant("red", "Red", true)
	v2, _ := NewVariant("RED", "Also red", true)

	if _, err := New("hairColor", "Hair color", Multi, []Variant{v1, v2}); err == nil {
		t.Fatal("expected error for duplicate variant value")
	}
}

func TestActiveVariants(t *testing.T) {
	variants := []Variant{
		ReconstructVariant("red", "Red", true),
		ReconstructVariant("blonde", "Blonde", false),
		ReconstructVariant("brown", "Brown", true),
	}
	g := Reconstruct("id1", "hairColor", "Hair color", Multi, variants)

	active := g.ActiveVariants()
	if len(active) != 2 {
		t.Fatalf("expected 2 active variants, got %d", len(active))
	}
	if active[0].Value() != "red" || active[1].Value() != "brown" {
		t.Errorf("active = [%q, %q], want [red, brown]", active[0].Value(), active[1].Value())
	}
}

func TestFindVariant_Normalizes(t *testing.T) {
	g := Reconstruct("id1", "hairColor", "Hair color", Single, []Variant{
		ReconstructVariant("red", "Red", true),
	})

	v, ok := g.FindVariant("  RED ")
	if !ok {
		t.Fatal("expected variant to be found")
	}
	if v.Value() != "red" {
		t.Errorf("value = %q, want %q", v.Value(), "red")
	}

	if _, ok := g.FindVariant("green"); ok {
		t.Error("expected variant to be absent")
	}
}

func TestNormalizeValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Red", "red"},
		{"  Red ", "red"},
		{"BLONDE", "blonde"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeValue(tt.in); got != tt.want {
			t.Errorf("NormalizeValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
