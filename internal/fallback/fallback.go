// Package fallback answers questions the corpus flow could not: it retrieves
// the closest corpus passage with a full-text index and hands it, together
// with the question, to a chat-completions model.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Responder answers a free-text question. Implementations must honor ctx
// cancellation.
type Responder interface {
	Answer(ctx context.Context, question string) (string, error)
}

// ErrNoAnswer is returned when neither retrieval nor generation produced an
// answer.
var ErrNoAnswer = errors.New("no answer available")

const systemPrompt = "Eres un asistente experto en los reglamentos académicos de la institución. " +
	"Responde siempre en español, de forma clara y breve. " +
	"Si el contexto proporcionado no alcanza para responder, dilo honestamente."

// RAG is the retrieve-then-generate responder: the top retrieval hit becomes
// the context of one chat completion. With no chat client configured it
// degrades to returning the retrieved answer directly.
type RAG struct {
	retriever *Retriever
	chat      *ChatClient
	logger    *zap.Logger
}

// NewRAG builds the responder. chat may be nil.
func NewRAG(retriever *Retriever, chat *ChatClient, logger *zap.Logger) *RAG {
	return &RAG{retriever: retriever, chat: chat, logger: logger}
}

// Answer implements Responder.
func (r *RAG) Answer(ctx context.Context, question string) (string, error) {
	hits, err := r.retriever.Search(question, 1)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	if r.chat == nil {
		if len(hits) == 0 {
			return "", ErrNoAnswer
		}
		r.logger.Debug("fallback answered from retrieval only")
		return hits[0].Answer, nil
	}

	var contextBlock string
	if len(hits) > 0 {
		contextBlock = fmt.Sprintf("Contexto:\nPregunta: %s\nRespuesta: %s\n\n", hits[0].Question, hits[0].Answer)
	}
	user := contextBlock + "Pregunta del usuario: " + question

	answer, err := r.chat.Complete(ctx, systemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if answer == "" {
		return "", ErrNoAnswer
	}
	return answer, nil
}

// Static is a Responder that always returns the same answer. Useful when the
// service runs without external credentials.
type Static struct {
	Response string
	Err      error
}

// Answer implements Responder.
func (s *Static) Answer(ctx context.Context, question string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}
