package logging

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{" INFO ", zapcore.InfoLevel, false},
		{"banana", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "nope", Format: "json"})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestLogger_SetLevel(t *testing.T) {
	l, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if got := l.GetLevel(); got != "info" {
		t.Fatalf("initial level = %q, want info", got)
	}
	if err := l.SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel error: %v", err)
	}
	if got := l.GetLevel(); got != "debug" {
		t.Errorf("level = %q, want debug", got)
	}
	if err := l.SetLevel("bogus"); err == nil {
		t.Error("expected error for bogus level")
	}
}

func TestLogger_NamedSharesLevel(t *testing.T) {
	l, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	child := l.Named("chat")
	if err := l.SetLevel("error"); err != nil {
		t.Fatalf("SetLevel error: %v", err)
	}
	if got := child.GetLevel(); got != "error" {
		t.Errorf("child level = %q, want shared error level", got)
	}
}

func TestLogger_ServeHTTP(t *testing.T) {
	l, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	// GET current level
	rr := httptest.NewRecorder()
	l.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/log-level", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"info"`) {
		t.Errorf("GET = %d %q", rr.Code, rr.Body.String())
	}

	// PUT new level
	rr = httptest.NewRecorder()
	l.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/admin/log-level?level=warn", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT status = %d", rr.Code)
	}
	if got := l.GetLevel(); got != "warn" {
		t.Errorf("level after PUT = %q, want warn", got)
	}

	// PUT without a level
	rr = httptest.NewRecorder()
	l.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/admin/log-level", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("PUT without level status = %d, want 400", rr.Code)
	}

	// Unsupported method
	rr = httptest.NewRecorder()
	l.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/admin/log-level", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rr.Code)
	}
}
