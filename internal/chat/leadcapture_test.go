package chat

import (
	"strings"
	"testing"
)

func TestCapture_Begin(t *testing.T) {
	lc := NewCapture()
	prompt := lc.Begin(ReasonRetailerOnboarding, TeamSales)

	if !lc.Active() {
		t.Fatal("capture should be active after Begin")
	}
	if !strings.Contains(prompt, "I can route this to our sales team. Please share your Business name.") {
		t.Errorf("unexpected first prompt: %q", prompt)
	}
}

func TestCapture_BeginRestartsInProgressFlow(t *testing.T) {
	lc := NewCapture()
	lc.Begin(ReasonRetailerOnboarding, TeamSales)
	lc.HandleTurn("Acme Ltd", &Context{})
	lc.HandleTurn("Jane", &Context{})

	prompt := lc.Begin(ReasonRegionalExpansion, TeamRegionalSales)
	if !strings.Contains(prompt, "Business name") {
		t.Errorf("restart should prompt for the first field again, got %q", prompt)
	}
	if lc.Reason() != ReasonRegionalExpansion || lc.Team() != TeamRegionalSales {
		t.Errorf("restart did not replace reason/team: %s/%s", lc.Reason(), lc.Team())
	}

	// Earlier answers are discarded: run to completion and verify the
	// summary uses post-restart values only.
	answers := []string{"Beta GmbH", "", "", "", "", "", ""}
	var summary string
	var result *CaptureResult
	for _, a := range answers {
		summary, result = lc.HandleTurn(a, &Context{})
	}
	if result == nil {
		t.Fatal("expected completion result")
	}
	if got := result.Answer("Business name"); got != "Beta GmbH" {
		t.Errorf("Business name = %q, want post-restart value", got)
	}
	if !strings.Contains(summary, "Thanks there!") {
		t.Errorf("summary should fall back to 'there' for empty contact name: %q", summary)
	}
}

func TestCapture_FullSequence(t *testing.T) {
	lc := NewCapture()
	ctx := &Context{}
	lc.Begin(ReasonLeadQualification, TeamSales)

	answers := []string{
		"Acme Ltd",
		"Jane Doe",
		"Buyer",
		"jane@acme.com",
		"555-1234",
		"Ireland",
		"need garmin watches",
	}

	var summary string
	var result *CaptureResult
	for i, answer := range answers {
		reply, res := lc.HandleTurn(answer, ctx)
		if i < len(answers)-1 {
			if res != nil {
				t.Fatalf("answer %d produced a premature result", i)
			}
			next := captureFields[i+1]
			if !strings.Contains(reply, next) {
				t.Errorf("after answer %d expected prompt for %q, got %q", i, next, reply)
			}
		}
		summary, result = reply, res
	}

	if result == nil {
		t.Fatal("expected completion result on final answer")
	}
	if lc.Active() {
		t.Error("capture should be inactive after completion")
	}
	for _, want := range []string{
		"Thanks Jane Doe!",
		"team will contact you at jane@acme.com",
		"within 1 business day",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q: %q", want, summary)
		}
	}
	if strings.Contains(summary, "priority flag added") {
		t.Errorf("summary should not carry the priority suffix without urgency: %q", summary)
	}

	if len(result.Answers) != len(captureFields) {
		t.Fatalf("result has %d answers, want %d", len(result.Answers), len(captureFields))
	}
	for i, field := range captureFields {
		if result.Answers[i].Field != field {
			t.Errorf("answer %d field = %q, want %q (order must match collection order)", i, result.Answers[i].Field, field)
		}
		if result.Answers[i].Value != answers[i] {
			t.Errorf("answer %d value = %q, want raw %q", i, result.Answers[i].Value, answers[i])
		}
	}
}

func TestCapture_SummaryUrgencySuffix(t *testing.T) {
	lc := NewCapture()
	ctx := &Context{Urgent: true}
	lc.Begin(ReasonFallback, TeamSales)

	var summary string
	for range captureFields {
		summary, _ = lc.HandleTurn("x", ctx)
	}
	if !strings.Contains(summary, "(priority flag added)") {
		t.Errorf("expected priority suffix in summary: %q", summary)
	}
}

func TestCapture_SummaryContactFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		phone   string
		contact string
	}{
		{"email preferred", "jane@acme.com", "555-1234", "jane@acme.com"},
		{"phone when no email", "", "555-1234", "555-1234"},
		{"placeholder when neither", "", "", "your contact details"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := NewCapture()
			lc.Begin(ReasonExistingCustomerSupport, TeamAccountManagement)

			answers := []string{"Acme Ltd", "", "Buyer", tt.email, tt.phone, "UK", "order status"}
			var summary string
			for _, a := range answers {
				summary, _ = lc.HandleTurn(a, &Context{})
			}
			if !strings.Contains(summary, "contact you at "+tt.contact) {
				t.Errorf("summary = %q, want contact %q", summary, tt.contact)
			}
			if !strings.Contains(summary, "Thanks there!") {
				t.Errorf("summary = %q, want name fallback 'there'", summary)
			}
			if !strings.Contains(summary, "account management team") {
				t.Errorf("summary = %q, want team label", summary)
			}
		})
	}
}

func TestCapture_EmptyAnswersAccepted(t *testing.T) {
	lc := NewCapture()
	lc.Begin(ReasonFallback, TeamSales)

	var result *CaptureResult
	for range captureFields {
		_, result = lc.HandleTurn("", &Context{})
	}
	if result == nil {
		t.Fatal("empty answers must still complete the flow")
	}
	for _, a := range result.Answers {
		if a.Value != "" {
			t.Errorf("field %q = %q, want stored empty answer", a.Field, a.Value)
		}
	}
}

func TestCaptureFields_FixedOrder(t *testing.T) {
	want := []string{
		"Business name",
		"Contact person name",
		"Role/title",
		"Email",
		"Phone",
		"Location (country)",
		"Brief description of inquiry",
	}
	got := CaptureFields()
	if len(got) != len(want) {
		t.Fatalf("got %d fields, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, got[i], want[i])
		}
	}
}
