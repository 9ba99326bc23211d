package chat

import "fmt"

// CaptureReason identifies why a lead-capture flow started.
type CaptureReason string

const (
	ReasonRetailerOnboarding      CaptureReason = "retailer_onboarding"
	ReasonExistingCustomerSupport CaptureReason = "existing_customer_support"
	ReasonRegionalExpansion       CaptureReason = "regional_expansion"
	ReasonLeadQualification       CaptureReason = "lead_qualification"
	ReasonFallback                CaptureReason = "fallback"
)

// Destination team labels.
const (
	TeamSales             = "sales"
	TeamAccountManagement = "account management"
	TeamRegionalSales     = "regional sales"
)

// Field labels used for summary lookups.
const (
	fieldContactName = "Contact person name"
	fieldEmail       = "Email"
	fieldPhone       = "Phone"
)

// captureFields is the fixed collection order. Never reordered or skipped;
// empty answers are accepted and stored as-is.
var captureFields = []string{
	"Business name",
	fieldContactName,
	"Role/title",
	fieldEmail,
	fieldPhone,
	"Location (country)",
	"Brief description of inquiry",
}

// CaptureFields returns the field labels in collection order.
func CaptureFields() []string {
	out := make([]string, len(captureFields))
	copy(out, captureFields)
	return out
}

// FieldAnswer pairs a field label with the user's literal answer.
type FieldAnswer struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// CaptureResult is produced once when all fields have been collected.
type CaptureResult struct {
	Reason  CaptureReason
	Team    string
	Answers []FieldAnswer
}

// Answer returns the collected value for a field label, or "".
func (r *CaptureResult) Answer(field string) string {
	for _, a := range r.Answers {
		if a.Field == field {
			return a.Value
		}
	}
	return ""
}

// Capture is the lead-capture state machine. While active it consumes
// every turn until all fields are collected, then emits a summary and
// returns to idle. Not safe for concurrent use; the owning session
// serializes turns.
type Capture struct {
	active  bool
	reason  CaptureReason
	team    string
	answers map[string]string
	cursor  int
}

// NewCapture returns an idle capture.
func NewCapture() *Capture {
	return &Capture{}
}

// Active reports whether a capture flow is in progress.
func (c *Capture) Active() bool {
	return c.active
}

// Reason returns the reason the current or most recent flow started.
func (c *Capture) Reason() CaptureReason {
	return c.reason
}

// Team returns the destination team of the current or most recent flow.
func (c *Capture) Team() string {
	return c.team
}

// Begin starts (or restarts, discarding any in-progress answers) the
// capture flow and returns the prompt for the first field.
func (c *Capture) Begin(reason CaptureReason, team string) string {
	c.active = true
	c.reason = reason
	c.team = team
	c.answers = make(map[string]string, len(captureFields))
	c.cursor = 0
	return fmt.Sprintf("Great news! I can route this to our %s team. Please share your %s.", team, captureFields[0])
}

// HandleTurn stores the raw answer for the current field and advances the
// cursor. While fields remain it returns the next prompt and a nil result.
// On the final field it returns the completion summary together with the
// collected result, and the capture returns to idle. Valid only while
// Active; ctx supplies the urgency flag for the summary.
func (c *Capture) HandleTurn(rawAnswer string, ctx *Context) (string, *CaptureResult) {
	c.answers[captureFields[c.cursor]] = rawAnswer
	c.cursor++

	if c.cursor < len(captureFields) {
		return fmt.Sprintf("Thanks. Please provide: %s.", captureFields[c.cursor]), nil
	}

	result := &CaptureResult{
		Reason:  c.reason,
		Team:    c.team,
		Answers: make([]FieldAnswer, 0, len(captureFields)),
	}
	for _, field := range captureFields {
		result.Answers = append(result.Answers, FieldAnswer{Field: field, Value: c.answers[field]})
	}

	name := c.answers[fieldContactName]
	if name == "" {
		name = "there"
	}
	contact := c.answers[fieldEmail]
	if contact == "" {
		contact = c.answers[fieldPhone]
	}
	if contact == "" {
		contact = "your contact details"
	}
	urgentSuffix := ""
	if ctx != nil && ctx.Urgent {
		urgentSuffix = " (priority flag added)"
	}

	summary := fmt.Sprintf(
		"Thanks %s! Someone from our %s team will contact you at %s within 1 business day%s.",
		name, c.team, contact, urgentSuffix,
	)

	c.active = false
	c.answers = nil
	c.cursor = 0

	return summary, result
}
