package refs

import (
	"reflect"
	"testing"
)

func TestArticleNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"que dice el articulo 40", "40"},
		{"articulo 040", "40"},
		{"articulo 007 por favor", "7"},
		{"articulo   12", "12"},
		{"articulo 400", "400"},
		{"articulo0", "0"},
		{"desarticulo 4", ""},
		{"articulo sin numero", ""},
		{"nada", ""},
		{"articulos 15", ""},
	}
	for _, tt := range tests {
		if got := ArticleNumber(tt.text); got != tt.want {
			t.Errorf("ArticleNumber(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAllArticleNumbers(t *testing.T) {
	got := AllArticleNumbers("articulo 5, articulo 05 y articulo 12")
	want := []string{"5", "12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllArticleNumbers = %v, want %v", got, want)
	}
}

func TestRegulationID(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"del rac 1", "1"},
		{"del rac-1", "1"},
		{"del rac:2", "2"},
		{"del rac1", "1"},
		{"rac-01", "1"},
		{"rac- 1", ""},
		{"gracias", ""},
		{"caracter 3", ""},
		{"rac", ""},
	}
	for _, tt := range tests {
		if got := RegulationID(tt.text); got != tt.want {
			t.Errorf("RegulationID(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAllRegulationIDs_firstSeenOrder(t *testing.T) {
	got := AllRegulationIDs("rac-2 menciona al rac-1 y otra vez al rac-2")
	want := []string{"2", "1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllRegulationIDs = %v, want %v", got, want)
	}
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"007", "7"},
		{"40", "40"},
		{"0", "0"},
		{"000", "0"},
		{"010", "10"},
	}
	for _, tt := range tests {
		if got := CanonicalNumber(tt.in); got != tt.want {
			t.Errorf("CanonicalNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
