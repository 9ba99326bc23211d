// Package service contains business logic implementations.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/chat"
	"github.com/jdm-products/tradechat/internal/clock"
	"github.com/jdm-products/tradechat/internal/config"
	"github.com/jdm-products/tradechat/internal/domain"
	apperrors "github.com/jdm-products/tradechat/internal/errors"
	"github.com/jdm-products/tradechat/internal/metrics"
	"github.com/jdm-products/tradechat/internal/sanitize"
)

// ChatService owns the session registry and runs conversation turns.
type ChatService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*chat.Session

	router    *chat.Router
	recorder  domain.LeadRecorder
	clk       clock.Clock
	sanitizer *sanitize.Sanitizer
	logger    *zap.Logger
	metrics   *metrics.Metrics

	sessionTTL  time.Duration
	maxSessions int
}

// NewChatService creates a new ChatService.
func NewChatService(
	cfg config.ChatConfig,
	recorder domain.LeadRecorder,
	clk clock.Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions:    make(map[uuid.UUID]*chat.Session),
		router:      chat.NewRouter(chat.DefaultKnowledge()),
		recorder:    recorder,
		clk:         clk,
		sanitizer:   sanitize.NewDefault(),
		logger:      logger,
		metrics:     m,
		sessionTTL:  cfg.SessionTTL,
		maxSessions: cfg.MaxSessions,
	}
}

// StartSession creates a new conversation session with its greeting
// already in the transcript.
func (s *ChatService) StartSession(ctx context.Context) (*chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		s.logger.Warn("session limit reached", zap.Int("max_sessions", s.maxSessions))
		return nil, apperrors.ErrSessionLimit
	}

	session := chat.NewSession(s.router, s.clk.NowUTC())
	s.sessions[session.ID] = session

	s.metrics.RecordSessionCreated()
	s.metrics.SetActiveSessions(len(s.sessions))

	s.logger.Info("session started",
		zap.String("session_id", session.ID.String()),
	)

	return session, nil
}

// HandleTurn runs one user submission through the session's router and
// returns the resulting replies. A completed lead capture is handed to
// the recorder; recorder failures are logged and never surface in the
// conversation.
func (s *ChatService) HandleTurn(ctx context.Context, sessionID uuid.UUID, text string) (chat.Turn, error) {
	session, ok := s.lookup(sessionID)
	if !ok {
		return chat.Turn{}, apperrors.ErrSessionNotFound
	}

	captureWasActive := session.CaptureActive()

	start := time.Now()
	turn := session.HandleTurn(text, s.clk.NowUTC())
	s.metrics.RecordTurn(string(turn.Intent), time.Since(start))

	if !captureWasActive && session.CaptureActive() {
		s.metrics.RecordCaptureStarted(string(session.CaptureReason()))
	}

	if turn.Lead != nil {
		s.metrics.RecordCaptureCompleted(string(turn.Lead.Reason))
		s.recordLead(ctx, session, turn.Lead)
	}

	return turn, nil
}

// Transcript returns the full message history of a session.
func (s *ChatService) Transcript(sessionID uuid.UUID) ([]chat.Message, error) {
	session, ok := s.lookup(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session.Transcript(), nil
}

// Session returns a live session by ID.
func (s *ChatService) Session(sessionID uuid.UUID) (*chat.Session, error) {
	session, ok := s.lookup(sessionID)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// ActiveSessions returns the current registry size.
func (s *ChatService) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CleanupIdleSessions removes sessions idle longer than the configured
// TTL and returns how many were removed.
func (s *ChatService) CleanupIdleSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.NowUTC()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.LastActive()) > s.sessionTTL {
			delete(s.sessions, id)
			removed++
			s.metrics.RecordSessionExpired()
		}
	}

	if removed > 0 {
		s.metrics.SetActiveSessions(len(s.sessions))
		s.logger.Info("cleaned up idle sessions",
			zap.Int("removed", removed),
			zap.Int("remaining", len(s.sessions)),
		)
	}

	return removed
}

func (s *ChatService) lookup(sessionID uuid.UUID) (*chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

// recordLead hands a completed capture to the recorder. Contact details
// are masked before they reach the log.
func (s *ChatService) recordLead(ctx context.Context, session *chat.Session, result *chat.CaptureResult) {
	lead := domain.NewLead(session.ID, result, session.Snapshot(), s.clk.NowUTC())

	if err := s.recorder.Record(ctx, lead); err != nil {
		s.metrics.RecordLead(false)
		s.logger.Error("failed to record lead",
			zap.String("session_id", session.ID.String()),
			zap.String("lead_id", lead.ID.String()),
			zap.String("reason", string(lead.Reason)),
			zap.Error(err),
		)
		return
	}

	s.metrics.RecordLead(true)
	s.logger.Info("lead recorded",
		zap.String("session_id", session.ID.String()),
		zap.String("lead_id", lead.ID.String()),
		zap.String("reason", string(lead.Reason)),
		zap.String("team", lead.Team),
		zap.Bool("urgent", lead.Urgent),
		zap.String("region", lead.Region),
		zap.String("business", s.sanitizer.String(lead.BusinessName())),
	)
}
