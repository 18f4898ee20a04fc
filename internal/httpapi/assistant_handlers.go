package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/pkg/metrics"
)

type startRequest struct {
	SessionID string `json:"session_id"`
}

type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string              `json:"session_id"`
	Message   string              `json:"message"`
	History   []assistant.Message `json:"history"`
}

func (s *Server) handleAssistantStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	greeting, err := s.opts.Assistant.StartConversation(r.Context(), sessionID)
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	history, err := s.opts.Assistant.History(r.Context(), sessionID)
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sessionID,
		Message:   greeting,
		History:   history,
	})
}

func (s *Server) handleAssistantMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)

	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	start := time.Now()
	reply, err := s.opts.Assistant.ProcessMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		metrics.RecordMessage("error", time.Since(start))
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordMessage("ok", time.Since(start))

	history, err := s.opts.Assistant.History(r.Context(), req.SessionID)
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: req.SessionID,
		Message:   reply,
		History:   history,
	})
}

func (s *Server) handleAssistantHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	history, err := s.opts.Assistant.History(r.Context(), sessionID)
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"history":    history,
	})
}
