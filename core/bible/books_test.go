package bible

import "testing"

func TestBookTable(t *testing.T) {
	all := Books()
	if len(all) != 66 {
		t.Fatalf("len(Books()) = %d, want 66", len(all))
	}

	seen := make(map[string]bool)
	for i, b := range all {
		if seen[b.Code] {
			t.Errorf("duplicate book code %q", b.Code)
		}
		seen[b.Code] = true
		if Order(b.Code) != i {
			t.Errorf("Order(%q) = %d, want %d", b.Code, Order(b.Code), i)
		}
		if b.Chapters <= 0 {
			t.Errorf("%s has %d chapters", b.Code, b.Chapters)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		code      string
		name      string
		number    string
		testament Testament
	}{
		{"gen", "Genesis", "01", OldTestament},
		{"mal", "Malachi", "39", OldTestament},
		{"mat", "Matthew", "41", NewTestament},
		{"COL", "Colossians", "52", NewTestament},
		{"rev", "Revelation", "67", NewTestament},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			b, ok := Lookup(tt.code)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.code)
			}
			if b.Name != tt.name || b.Number != tt.number || b.Testament != tt.testament {
				t.Errorf("Lookup(%q) = %+v", tt.code, b)
			}
		})
	}
}

func TestUnknownBookFallbacks(t *testing.T) {
	if _, ok := Lookup("xyz"); ok {
		t.Error("Lookup(xyz) should fail")
	}
	if Number("xyz") != "xyz" {
		t.Errorf("Number(xyz) = %q", Number("xyz"))
	}
	if Name("xyz") != "xyz" {
		t.Errorf("Name(xyz) = %q", Name("xyz"))
	}
	if Order("xyz") != 66 {
		t.Errorf("Order(xyz) = %d, want 66", Order("xyz"))
	}
}
