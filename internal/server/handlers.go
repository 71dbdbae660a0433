package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/acadbot/ayudante/internal/models"
	"github.com/acadbot/ayudante/internal/storage"
	"github.com/acadbot/ayudante/pkg/utils"
)

// sessionHeader carries the conversation id between turns. Clients that omit
// it get a fresh session whose id comes back in the response.
const sessionHeader = "X-Session-Id"

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"mensaje": "Asistente de reglamentos académicos. Envía tu pregunta a POST /api/v1/preguntar.",
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = s.manager.Sessions().Mint()
	}

	// contexto is accepted for wire compatibility but never mixed into the
	// question: reference extraction must see only what the user typed.
	s.logger.Debug("ask request",
		zap.String("session", sessionID),
		zap.String("question", utils.Truncate(req.Question, 120)),
		zap.String("context", utils.Truncate(req.Context, 120)))

	start := time.Now()
	answer := s.manager.Respond(r.Context(), sessionID, req.Question)

	w.Header().Set(sessionHeader, sessionID)
	s.respondJSON(w, http.StatusOK, models.AskResponse{
		Answer:    answer,
		SessionID: sessionID,
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	idx := s.holder.Current()

	resp := map[string]interface{}{
		"records":     idx.Len(),
		"regulations": idx.Regulations(),
		"sessions":    s.manager.Sessions().Len(),
	}

	if s.storage != nil {
		count, err := s.storage.CountRecords(r.Context())
		if err != nil {
			s.logger.Error("status: count records failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["stored_records"] = count
	}

	configInfo := map[string]interface{}{
		"dataset_path":  s.config.Corpus.DatasetPath,
		"database_path": s.config.Storage.DatabasePath,
	}
	if diskBytes, err := storage.DataFootprintBytes(
		s.config.Storage.DatabasePath,
		s.config.Corpus.DatasetPath,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not enabled")
		return
	}
	count, err := s.reload(r.Context())
	if err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("corpus reloaded", zap.Int("records", count))
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "reloaded", "records": count})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
