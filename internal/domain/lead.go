// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdm-products/tradechat/internal/chat"
)

// Lead is a completed lead-capture flow: one routable request for a human
// follow-up, with the answers exactly as the visitor typed them.
type Lead struct {
	ID        uuid.UUID          `json:"id"`
	SessionID uuid.UUID          `json:"session_id"`
	Reason    chat.CaptureReason `json:"reason"`
	Team      string             `json:"team"`
	Answers   []chat.FieldAnswer `json:"answers"`
	Urgent    bool               `json:"urgent"`
	Region    string             `json:"region,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewLead builds a Lead from a finished capture flow and the session
// context at completion time.
func NewLead(sessionID uuid.UUID, result *chat.CaptureResult, ctx chat.Context, now time.Time) *Lead {
	return &Lead{
		ID:        uuid.New(),
		SessionID: sessionID,
		Reason:    result.Reason,
		Team:      result.Team,
		Answers:   result.Answers,
		Urgent:    ctx.Urgent,
		Region:    ctx.Location,
		CreatedAt: now,
	}
}

// Answer returns the collected value for a field label, or "".
func (l *Lead) Answer(field string) string {
	for _, a := range l.Answers {
		if a.Field == field {
			return a.Value
		}
	}
	return ""
}

// BusinessName returns the captured business name, if any.
func (l *Lead) BusinessName() string {
	return l.Answer("Business name")
}

// ContactName returns the captured contact person, if any.
func (l *Lead) ContactName() string {
	return l.Answer("Contact person name")
}

// LeadRecorder receives completed leads. This is the abstracted handoff at
// the end of a capture flow; the chat reply never depends on its outcome.
type LeadRecorder interface {
	Record(ctx context.Context, lead *Lead) error
}

// LeadListFilter defines optional filters for listing leads.
type LeadListFilter struct {
	Reason *chat.CaptureReason
	Team   *string
	Urgent *bool
	Limit  int
	Offset int
}

// HasFilters returns true if any filter fields are set.
func (f *LeadListFilter) HasFilters() bool {
	if f == nil {
		return false
	}
	return f.Reason != nil || f.Team != nil || f.Urgent != nil
}

// LeadRepository defines persistence for captured leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lead, error)
	List(ctx context.Context, filter *LeadListFilter) ([]*Lead, error)
	Count(ctx context.Context) (int, error)
}
