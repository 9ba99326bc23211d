package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	c := New()
	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", got, before, after)
	}
}

func TestRealClock_NowUTC(t *testing.T) {
	c := New()
	if loc := c.NowUTC().Location(); loc != time.UTC {
		t.Errorf("NowUTC() location = %v, want UTC", loc)
	}
}

func TestMock_SetAndAdvance(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMock(start)

	if !m.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", m.Now(), start)
	}

	m.Advance(90 * time.Minute)
	want := start.Add(90 * time.Minute)
	if !m.Now().Equal(want) {
		t.Errorf("after Advance Now() = %v, want %v", m.Now(), want)
	}

	reset := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.Set(reset)
	if !m.Now().Equal(reset) {
		t.Errorf("after Set Now() = %v, want %v", m.Now(), reset)
	}
}

func TestMock_Since(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMock(start)
	m.Advance(2 * time.Hour)

	if got := m.Since(start); got != 2*time.Hour {
		t.Errorf("Since = %v, want 2h", got)
	}
}
