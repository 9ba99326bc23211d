package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/chat"
	apperrors "github.com/jdm-products/tradechat/internal/errors"
)

// StartSessionResponse is returned when a new conversation starts.
type StartSessionResponse struct {
	SessionID string         `json:"session_id"`
	Messages  []chat.Message `json:"messages"`
}

// MessageRequest is the body for posting a user message.
type MessageRequest struct {
	Text string `json:"text"`
}

// MessageResponse carries the replies produced by one turn.
type MessageResponse struct {
	Intent        string   `json:"intent"`
	Replies       []string `json:"replies"`
	CaptureActive bool     `json:"capture_active"`
	LeadCaptured  bool     `json:"lead_captured"`
}

// ContextView is the session context exposed on the transcript.
type ContextView struct {
	Region string `json:"region,omitempty"`
	Urgent bool   `json:"urgent"`
}

// TranscriptResponse is the full message history of a session.
type TranscriptResponse struct {
	SessionID string         `json:"session_id"`
	Messages  []chat.Message `json:"messages"`
	Context   ContextView    `json:"context"`
}

// HandleStartSession handles POST /api/chat/sessions.
func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.chatService.StartSession(r.Context())
	if err != nil {
		h.logger.Warn("failed to start session", zap.Error(err))
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, StartSessionResponse{
		SessionID: session.ID.String(),
		Messages:  session.Greeting(),
	})
}

// HandleMessage handles POST /api/chat/sessions/{sessionID}/messages.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, apperrors.ValidationFailed("invalid session id"))
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, apperrors.ValidationFailed("invalid request body"))
		return
	}

	if errs := h.validator.Validate(req.Text); errs.HasErrors() {
		h.respondError(w, apperrors.ValidationFailed(errs.Error()))
		return
	}

	turn, err := h.chatService.HandleTurn(r.Context(), sessionID, req.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.chatService.Session(sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, MessageResponse{
		Intent:        string(turn.Intent),
		Replies:       turn.Replies,
		CaptureActive: session.CaptureActive(),
		LeadCaptured:  turn.Lead != nil,
	})
}

// HandleTranscript handles GET /api/chat/sessions/{sessionID}/transcript.
func (h *Handler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.respondError(w, apperrors.ValidationFailed("invalid session id"))
		return
	}

	session, err := h.chatService.Session(sessionID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	snapshot := session.Snapshot()
	h.respondJSON(w, http.StatusOK, TranscriptResponse{
		SessionID: session.ID.String(),
		Messages:  session.Transcript(),
		Context: ContextView{
			Region: snapshot.Location,
			Urgent: snapshot.Urgent,
		},
	})
}
