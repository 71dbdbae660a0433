package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¿Qué dice el Artículo 40?", "¿que dice el articulo 40?"},
		{"  ESPACIOS  ", "espacios"},
		{"año académico", "ano academico"},
		{"sin cambios", "sin cambios"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¿que dice el rac-1?", "que dice el rac1"},
		{"articulo 40.", "articulo 40"},
		{"a_b c", "a_b c"},
	}
	for _, tt := range tests {
		if got := StripPunctuation(tt.in); got != tt.want {
			t.Errorf("StripPunctuation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"si", "si", true},
		{"si, esa", "si", true},
		{"siguiente pregunta", "si", false},
		{"quisiera saber", "si", false},
		{"muchas gracias", "gracias", true},
		{"el rac", "rac", true},
		{"gracias", "rac", false},
		{"", "si", false},
		{"si", "", false},
	}
	for _, tt := range tests {
		if got := ContainsWord(tt.text, tt.word); got != tt.want {
			t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestHasWordPrefix(t *testing.T) {
	tests := []struct {
		text   string
		prefix string
		want   bool
	}{
		{"que articulos hay", "articulo", true},
		{"el articulo 40", "articulo", true},
		{"desarticulo todo", "articulo", false},
		{"nada que ver", "articulo", false},
	}
	for _, tt := range tests {
		if got := HasWordPrefix(tt.text, tt.prefix); got != tt.want {
			t.Errorf("HasWordPrefix(%q, %q) = %v, want %v", tt.text, tt.prefix, got, tt.want)
		}
	}
}
