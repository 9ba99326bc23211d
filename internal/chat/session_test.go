package chat

import (
	"strings"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestSession() *Session {
	return NewSession(newTestRouter(), testNow)
}

func TestNewSession_Greeting(t *testing.T) {
	s := newTestSession()

	greeting := s.Greeting()
	if len(greeting) != 2 {
		t.Fatalf("got %d greeting messages, want 2", len(greeting))
	}
	for i, msg := range greeting {
		if msg.Role != RoleBot {
			t.Errorf("greeting %d role = %q, want bot", i, msg.Role)
		}
	}
	if !strings.Contains(greeting[0].Text, "JDM Products") {
		t.Errorf("greeting missing company name: %q", greeting[0].Text)
	}
	if !strings.Contains(greeting[1].Text, "b2b.jdmproducts.com") {
		t.Errorf("quick links missing portal URL: %q", greeting[1].Text)
	}
	if !strings.Contains(greeting[1].Text, "+353 1 2050500") {
		t.Errorf("quick links missing phone numbers: %q", greeting[1].Text)
	}
}

func TestSession_HandleTurn_Transcript(t *testing.T) {
	s := newTestSession()

	turn := s.HandleTurn("what brands do you carry", testNow.Add(time.Minute))
	if turn.Intent != IntentBrands {
		t.Fatalf("intent = %q, want brands", turn.Intent)
	}

	transcript := s.Transcript()
	// 2 greeting + 1 user + 1 reply
	if len(transcript) != 4 {
		t.Fatalf("transcript has %d messages, want 4", len(transcript))
	}
	if transcript[2].Role != RoleUser || transcript[2].Text != "what brands do you carry" {
		t.Errorf("user turn not recorded verbatim: %+v", transcript[2])
	}
	if transcript[3].Role != RoleBot {
		t.Errorf("reply role = %q, want bot", transcript[3].Role)
	}
	if got := s.LastActive(); !got.Equal(testNow.Add(time.Minute)) {
		t.Errorf("LastActive = %v, want turn time", got)
	}
}

func TestSession_IndependentSessions(t *testing.T) {
	router := newTestRouter()
	a := NewSession(router, testNow)
	b := NewSession(router, testNow)

	a.HandleTurn("we are interested", testNow)
	if !a.CaptureActive() {
		t.Fatal("session a should be capturing")
	}
	if b.CaptureActive() {
		t.Error("session b must not share capture state with a")
	}

	a.HandleTurn("this is urgent, we are in ireland", testNow)
	if ctx := b.Snapshot(); ctx.Urgent || ctx.Location != RegionUnset {
		t.Errorf("session b context leaked from a: %+v", ctx)
	}
}

func TestSession_ConcurrentTurns(t *testing.T) {
	s := newTestSession()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.HandleTurn("what brands do you carry", testNow)
		}()
	}
	wg.Wait()

	transcript := s.Transcript()
	// 2 greeting + 20 * (1 user + 1 reply); turns are atomic so the user
	// message is always immediately followed by its reply.
	if len(transcript) != 2+40 {
		t.Fatalf("transcript has %d messages, want 42", len(transcript))
	}
	for i := 2; i < len(transcript); i += 2 {
		if transcript[i].Role != RoleUser || transcript[i+1].Role != RoleBot {
			t.Fatalf("turn at %d interleaved: %q then %q", i, transcript[i].Role, transcript[i+1].Role)
		}
	}
}

func TestSession_FullLeadCaptureConversation(t *testing.T) {
	s := newTestSession()

	s.HandleTurn("this is urgent", testNow)            // fallback, starts capture
	s.HandleTurn("Acme Ltd", testNow)                  // Business name
	s.HandleTurn("Jane Doe", testNow)                  // Contact person name
	s.HandleTurn("Buyer", testNow)                     // Role/title
	s.HandleTurn("jane@acme.com", testNow)             // Email
	s.HandleTurn("555-1234", testNow)                  // Phone
	s.HandleTurn("Ireland", testNow)                   // Location
	turn := s.HandleTurn("need garmin watches", testNow) // Brief description -> summary

	if turn.Lead == nil {
		t.Fatal("expected completed lead on 7th answer")
	}
	if s.CaptureActive() {
		t.Error("capture should be inactive after summary")
	}
	summary := turn.Replies[0]
	for _, want := range []string{"Thanks Jane Doe!", "jane@acme.com", "(priority flag added)"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}

	// The next turn routes normally again.
	next := s.HandleTurn("what brands do you carry", testNow)
	if next.Intent != IntentBrands {
		t.Errorf("post-capture intent = %q, want brands", next.Intent)
	}
}
