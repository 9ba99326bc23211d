package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role tags a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one transcript entry.
type Message struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Session owns the mutable state of one widget conversation: context,
// capture flow, and transcript. There are no package-level session
// variables; every conversation gets its own Session so independent chats
// never share state. A mutex serializes turns so a new submission cannot
// interleave with in-progress reply emission.
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	router     *Router
	context    *Context
	capture    *Capture
	transcript []Message
	createdAt  time.Time
	lastActive time.Time
}

// NewSession creates a session and records the two unconditional greeting
// lines in its transcript.
func NewSession(router *Router, now time.Time) *Session {
	s := &Session{
		ID:         uuid.New(),
		router:     router,
		context:    &Context{},
		capture:    NewCapture(),
		createdAt:  now,
		lastActive: now,
	}
	for _, line := range greetingLines(router.kb) {
		s.transcript = append(s.transcript, Message{Role: RoleBot, Text: line, At: now})
	}
	return s
}

// greetingLines returns the session-start bot messages.
func greetingLines(kb *Knowledge) []string {
	return []string{
		"Hi, I'm Michael from JDM Products. I can help with retailer onboarding, brands, stock queries, services, and regional expansion.",
		fmt.Sprintf("Quick links: portal %s. Support lines: %s", kb.Portal, kb.Phones),
	}
}

// Greeting returns the initial bot messages recorded at session start.
func (s *Session) Greeting() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// HandleTurn processes one user submission atomically: the user message and
// all resulting bot replies are appended to the transcript before the next
// turn can start. The caller must reject empty input; a blank string here
// would be routed like any other text.
func (s *Session) HandleTurn(raw string, now time.Time) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = now
	s.transcript = append(s.transcript, Message{Role: RoleUser, Text: raw, At: now})

	turn := s.router.Route(s.context, s.capture, raw)
	for _, reply := range turn.Replies {
		s.transcript = append(s.transcript, Message{Role: RoleBot, Text: reply, At: now})
	}
	return turn
}

// Transcript returns a copy of all messages in submission order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Snapshot returns a copy of the accumulated conversation context.
func (s *Session) Snapshot() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.context
}

// CaptureActive reports whether a lead-capture flow is in progress.
func (s *Session) CaptureActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture.Active()
}

// CaptureReason returns the reason of the current or most recent
// lead-capture flow.
func (s *Session) CaptureReason() CaptureReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture.Reason()
}

// LastActive returns the time of the most recent turn (or creation).
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}
