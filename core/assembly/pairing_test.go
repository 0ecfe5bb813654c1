package assembly

import (
	"testing"

	"github.com/FocuswithJustin/JuniperDocgen/core/content"
)

func TestPairScripture(t *testing.T) {
	enPrimary := newScripture("en", "ulb", "col")
	enSecondary := newScripture("en", "udb", "col")
	fr := newScripture("fr", "lsg", "col")
	es := newScripture("es", "reg", "col")

	tests := []struct {
		name string
		in   []*content.ScriptureBook
		want []*content.ScriptureBook
	}{
		{
			name: "two languages padded",
			in:   []*content.ScriptureBook{enPrimary, enSecondary, fr},
			want: []*content.ScriptureBook{enPrimary, fr, enSecondary, nil},
		},
		{
			name: "two languages even",
			in:   []*content.ScriptureBook{enPrimary, fr},
			want: []*content.ScriptureBook{enPrimary, fr},
		},
		{
			name: "one language unchanged",
			in:   []*content.ScriptureBook{enPrimary, enSecondary},
			want: []*content.ScriptureBook{enPrimary, enSecondary},
		},
		{
			name: "three languages unchanged",
			in:   []*content.ScriptureBook{enPrimary, es, fr},
			want: []*content.ScriptureBook{enPrimary, es, fr},
		},
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PairScripture(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("PairScripture() len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("PairScripture()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
