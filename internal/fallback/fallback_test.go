package fallback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/models"
)

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	r, err := NewRetriever()
	if err != nil {
		t.Fatalf("NewRetriever: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	if err := r.Rebuild([]models.CorpusRecord{
		{
			ID:       "r1",
			Question: "¿Cuándo se publica el calendario académico?",
			Answer:   "El calendario académico se publica cada semestre.",
		},
		{
			ID:       "r2",
			Question: "¿Cómo solicito un supletorio?",
			Answer:   "Los supletorios se solicitan con el formato oficial.",
		},
	}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	return r
}

func TestRetriever_Search(t *testing.T) {
	r := newTestRetriever(t)

	hits, err := r.Search("calendario", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].ID != "r1" {
		t.Errorf("top hit = %s, want r1", hits[0].ID)
	}

	none, err := r.Search("zzzz", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d hits for nonsense query, want 0", len(none))
	}
}

func TestRetriever_RebuildReplaces(t *testing.T) {
	r := newTestRetriever(t)
	if err := r.Rebuild([]models.CorpusRecord{
		{ID: "nuevo", Question: "pregunta nueva", Answer: "respuesta nueva"},
	}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	count, err := r.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("DocCount = %d, want 1", count)
	}
	hits, err := r.Search("calendario", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Error("old records should be gone after Rebuild")
	}
}

func TestRAG_retrievalOnly(t *testing.T) {
	r := newTestRetriever(t)
	rag := NewRAG(r, nil, zap.NewNop())

	got, err := rag.Answer(context.Background(), "calendario académico")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "El calendario académico se publica cada semestre." {
		t.Errorf("got %q", got)
	}

	if _, err := rag.Answer(context.Background(), "zzzz"); err == nil {
		t.Error("expected an error when nothing is retrievable and no chat client is set")
	}
}

func TestRAG_withChat(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "respuesta generada"}},
			},
		})
	}))
	defer srv.Close()

	r := newTestRetriever(t)
	rag := NewRAG(r, NewChatClient(srv.URL, "test-key", "modelo"), zap.NewNop())

	got, err := rag.Answer(context.Background(), "calendario académico")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if got != "respuesta generada" {
		t.Errorf("got %q", got)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("request messages = %+v", gotBody.Messages)
	}
	if gotBody.Model != "modelo" {
		t.Errorf("model = %q", gotBody.Model)
	}
}

func TestChatClient_errorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := NewChatClient(srv.URL, "", "")
	if _, err := c.Complete(context.Background(), "sys", "user"); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestStatic(t *testing.T) {
	s := &Static{Response: "fija"}
	got, err := s.Answer(context.Background(), "lo que sea")
	if err != nil || got != "fija" {
		t.Errorf("got (%q, %v)", got, err)
	}
}
