package dialog

import "testing"

func TestSmallTalkDetection(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"hola", greetingResponse, true},
		{"buenos dias", greetingResponse, true},
		{"gracias por todo", thanksResponse, true},
		{"adios", farewellResponse, true},
		{"que dice el reglamento", "", false},
	}
	for _, tt := range tests {
		got, ok := smallTalk(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("smallTalk(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsConfirmation(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"si", true},
		{"si, esa", true},
		{"claro", true},
		{"por supuesto", true},
		{"siguiente", false},
		{"quisiera otra cosa", false},
	}
	for _, tt := range tests {
		if got := isConfirmation(tt.text); got != tt.want {
			t.Errorf("isConfirmation(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	if id := s.Mint(); id == "" {
		t.Fatal("Mint returned empty id")
	}

	if st := s.Get("unknown"); st.LastArticle != "" || st.Pending != nil {
		t.Error("unknown session should start with zero state")
	}

	s.Put("a", State{LastArticle: "40", LastRegulation: "1"})
	if got := s.Get("a"); got.LastArticle != "40" || got.LastRegulation != "1" {
		t.Errorf("Get(a) = %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Reset("a")
	if got := s.Get("a"); got.LastArticle != "" {
		t.Error("Reset should drop state")
	}
}
