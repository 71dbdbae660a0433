package models

import "fmt"

// AskRequest is the payload of POST /api/v1/preguntar. Contexto is an
// optional hint string passed through to the dialogue manager.
type AskRequest struct {
	Question string `json:"pregunta"`
	Context  string `json:"contexto,omitempty"`
}

// Validate rejects empty questions. The boundary layer surfaces this as a
// client error before the dialogue manager runs.
func (r *AskRequest) Validate() error {
	if r.Question == "" {
		return fmt.Errorf("debes enviar una pregunta")
	}
	return nil
}

// AskResponse is the reply to an ask request. Answer always carries a
// user-facing string; "could not answer" outcomes are normal responses, not
// errors.
type AskResponse struct {
	Answer    string `json:"respuesta"`
	SessionID string `json:"session_id,omitempty"`
	QueryTime int64  `json:"query_time_ms,omitempty"`
}
