package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/corpus"
	"github.com/acadbot/ayudante/internal/fallback"
	"github.com/acadbot/ayudante/internal/match"
	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/normalize"
	"github.com/acadbot/ayudante/internal/ranking"
	"github.com/acadbot/ayudante/internal/refs"
)

// DefaultFallbackTimeout bounds one fallback call.
const DefaultFallbackTimeout = 30 * time.Second

const apologyResponse = "Lo siento, no pude encontrar una respuesta a tu pregunta en este momento. Intenta reformularla."

// Manager runs the conversation flow: it normalizes the question, resolves
// follow-ups against session memory, looks up explicit article references,
// ranks free-text questions, and as a last resort delegates to the fallback
// responder.
type Manager struct {
	holder          *corpus.Holder
	finder          *match.Finder
	ranker          *ranking.Ranker
	fallback        fallback.Responder
	sessions        *Sessions
	logger          *zap.Logger
	fallbackTimeout time.Duration
}

// NewManager wires the conversation flow. fallback may be nil, in which case
// unanswerable questions get the apology response.
func NewManager(holder *corpus.Holder, finder *match.Finder, ranker *ranking.Ranker, fb fallback.Responder, logger *zap.Logger) *Manager {
	return &Manager{
		holder:          holder,
		finder:          finder,
		ranker:          ranker,
		fallback:        fb,
		sessions:        NewSessions(),
		logger:          logger,
		fallbackTimeout: DefaultFallbackTimeout,
	}
}

// Sessions exposes the session store, mainly so the server can mint ids.
func (m *Manager) Sessions() *Sessions {
	return m.sessions
}

// Respond answers question within the session identified by sessionID and
// updates that session's memory. It always returns a user-facing Spanish
// string; internal failures degrade to the apology response.
func (m *Manager) Respond(ctx context.Context, sessionID, question string) string {
	norm := normalize.Normalize(question)
	idx := m.holder.Current()
	st := m.sessions.Get(sessionID)

	// A new explicit article mention starts a fresh lookup; stale pending
	// options must never capture the follow-up to a new question.
	if normalize.HasWordPrefix(norm, refs.ArticleKeyword) {
		st.Reset()
	}

	article := refs.ArticleNumber(norm)
	regulation := refs.RegulationID(norm)

	if article != "" {
		answer := m.lookupArticle(idx, &st, norm, article, regulation)
		m.sessions.Put(sessionID, st)
		return answer
	}

	// Social intents outrank memory follow-ups: "si, muchas gracias" after a
	// suggestion list closes the exchange instead of re-listing the options.
	// Small talk only when nothing in the query hints at a lookup.
	if !normalize.HasWordPrefix(norm, refs.ArticleKeyword) && !normalize.HasWordPrefix(norm, refs.RegulationKeyword) {
		if resp, ok := smallTalk(norm); ok {
			return resp
		}
	}

	if answer, ok := m.resolveFromMemory(idx, &st, norm, regulation); ok {
		m.sessions.Put(sessionID, st)
		return answer
	}

	if results := m.ranker.Rank(idx, question); len(results) > 0 {
		m.logger.Debug("answered by ranking",
			zap.String("session", sessionID),
			zap.Float64("score", results[0].Score))
		st.LastQuery = norm
		m.sessions.Put(sessionID, st)
		return results[0].Record.Answer
	}

	return m.answerWithFallback(ctx, sessionID, question)
}

// lookupArticle handles a question carrying an explicit article number.
func (m *Manager) lookupArticle(idx *corpus.Index, st *State, norm, article, regulation string) string {
	if regulation != "" && !idx.KnowsRegulation(regulation) {
		return m.unknownRegulation(idx, st, norm, article, regulation)
	}

	exact := m.finder.FindExact(idx, article, regulation)
	switch {
	case len(exact) == 1:
		*st = State{
			LastQuery:      norm,
			LastArticle:    article,
			LastRegulation: exact[0].Regulation,
		}
		return exact[0].Answer
	case len(exact) > 1:
		*st = State{
			LastQuery:      norm,
			LastArticle:    article,
			LastRegulation: regulation,
			Pending:        exact,
		}
		return fmt.Sprintf(
			"Encontré varias opciones para el Artículo %s:\n%s\nResponde con el número de la opción que te interesa (por ejemplo: \"la primera\").",
			article, numberedList(exact))
	}

	fuzzy := m.finder.FindFuzzy(idx, article, regulation)
	if len(fuzzy) > 0 {
		*st = State{
			LastQuery:      norm,
			LastArticle:    article,
			LastRegulation: regulation,
			Pending:        fuzzy,
		}
		return fmt.Sprintf(
			"No encontré el %s. ¿Quizás buscas alguno de estos?\n%s\nResponde con el número de la opción que te interesa.",
			match.DisplayLabel(article, regulation), numberedList(fuzzy))
	}

	*st = State{LastQuery: norm, LastArticle: article, LastRegulation: regulation}
	return fmt.Sprintf("No pude encontrar el %s en los reglamentos.", match.DisplayLabel(article, regulation))
}

// unknownRegulation answers a lookup that names a regulation absent from the
// corpus, listing the known ones and where else the article appears.
func (m *Manager) unknownRegulation(idx *corpus.Index, st *State, norm, article, regulation string) string {
	known := make([]string, 0, len(idx.Regulations()))
	for _, id := range idx.Regulations() {
		known = append(known, "RAC-"+id)
	}
	msg := fmt.Sprintf("No tengo información sobre el RAC-%s.", regulation)
	if len(known) > 0 {
		msg += " Reglamentos disponibles: " + strings.Join(known, ", ") + "."
	}

	elsewhere := m.finder.FindExact(idx, article, "")
	if len(elsewhere) > 0 {
		*st = State{LastQuery: norm, LastArticle: article, Pending: elsewhere}
		msg += fmt.Sprintf(
			"\nEl Artículo %s aparece en:\n%s\nResponde con el número de la opción o el RAC que te interesa.",
			article, numberedList(elsewhere))
		return msg
	}

	*st = State{LastQuery: norm, LastArticle: article}
	return msg
}

// resolveFromMemory handles follow-up turns: ordinal or numeric selections,
// regulation refinements, and confirmations against the session memory. The
// second return value is false when the turn is not a follow-up.
func (m *Manager) resolveFromMemory(idx *corpus.Index, st *State, norm, regulation string) (string, bool) {
	if len(st.Pending) == 0 && st.LastArticle == "" {
		return "", false
	}

	ord, hasOrd := parseOrdinalWord(norm)
	if !hasOrd && regulation == "" {
		ord, hasOrd = parseDigitSelection(norm)
	}
	confirmed := isConfirmation(norm)
	if !hasOrd && regulation == "" && !confirmed {
		return "", false
	}

	if regulation != "" {
		st.LastRegulation = regulation
	}

	if len(st.Pending) > 0 {
		return m.resolvePending(st, ord, hasOrd, regulation, confirmed), true
	}

	// No pending options, but the user refined or confirmed the previous
	// article lookup. Re-scan the corpus with the updated regulation.
	answers := collectAnswers(m.finder.FindExact(idx, st.LastArticle, st.LastRegulation))
	article, reg := st.LastArticle, st.LastRegulation
	st.Reset()
	if len(answers) == 0 {
		return fmt.Sprintf("No pude encontrar el %s en los reglamentos.", match.DisplayLabel(article, reg)), true
	}
	return strings.Join(answers, "\n"), true
}

// resolvePending applies a selection to the open disambiguation list.
func (m *Manager) resolvePending(st *State, ord int, hasOrd bool, regulation string, confirmed bool) string {
	if hasOrd {
		if ord > len(st.Pending) {
			return fmt.Sprintf("No existe la opción %d. Hay %d opciones disponibles.", ord, len(st.Pending))
		}
		return m.selectPending(st, st.Pending[ord-1])
	}

	if regulation != "" {
		var filtered []models.Suggestion
		for _, s := range st.Pending {
			if s.Regulation == regulation {
				filtered = append(filtered, s)
			}
		}
		switch {
		case len(filtered) == 0:
			return fmt.Sprintf("No se encontraron sugerencias para el RAC-%s.", regulation)
		case len(filtered) == 1:
			return m.selectPending(st, filtered[0])
		}
		return fmt.Sprintf(
			"En el RAC-%s hay varias opciones:\n%s\nResponde con el número de la opción que te interesa.",
			regulation, numberedList(filtered))
	}

	if confirmed && len(st.Pending) == 1 {
		return m.selectPending(st, st.Pending[0])
	}
	return fmt.Sprintf(
		"Opciones disponibles:\n%s\nResponde con el número de la opción que te interesa.",
		numberedList(st.Pending))
}

// selectPending resolves one suggestion, updating memory and closing the
// disambiguation.
func (m *Manager) selectPending(st *State, s models.Suggestion) string {
	st.LastArticle = s.Article
	st.LastRegulation = s.Regulation
	st.Pending = nil
	return s.Answer
}

// answerWithFallback delegates to the external responder with a bounded
// timeout, degrading to the apology response on any failure.
func (m *Manager) answerWithFallback(ctx context.Context, sessionID, question string) string {
	if m.fallback == nil {
		return apologyResponse
	}
	ctx, cancel := context.WithTimeout(ctx, m.fallbackTimeout)
	defer cancel()

	answer, err := m.fallback.Answer(ctx, question)
	if err != nil {
		m.logger.Warn("fallback responder failed",
			zap.String("session", sessionID),
			zap.Error(err))
		return apologyResponse
	}
	return answer
}

// numberedList renders suggestions as a 1-based list, one per line.
func numberedList(suggestions []models.Suggestion) string {
	var b strings.Builder
	for i, s := range suggestions {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, s.Display)
	}
	return b.String()
}

// collectAnswers returns the unique answers of suggestions, in order.
func collectAnswers(suggestions []models.Suggestion) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, s := range suggestions {
		if _, dup := seen[s.Answer]; dup {
			continue
		}
		seen[s.Answer] = struct{}{}
		out = append(out, s.Answer)
	}
	return out
}
