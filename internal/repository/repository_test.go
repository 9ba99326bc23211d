package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jdm-products/tradechat/internal/chat"
	"github.com/jdm-products/tradechat/internal/domain"
)

func TestErrNotFound(t *testing.T) {
	if ErrNotFound == nil {
		t.Fatal("expected ErrNotFound to be defined")
	}

	if ErrNotFound.Error() != "record not found" {
		t.Errorf("expected 'record not found', got %q", ErrNotFound.Error())
	}

	if !errors.Is(ErrNotFound, ErrNotFound) {
		t.Error("errors.Is should return true for same error")
	}
}

func TestNewLeadRepository(t *testing.T) {
	// Just testing the constructor, not database operations
	repo := NewLeadRepository(nil)

	if repo == nil {
		t.Fatal("expected non-nil repository")
	}

	if repo.pool != nil {
		t.Error("expected nil pool")
	}
}

func TestWithQueryTimeout_RespectsShorterDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	ctx, cancel2 := WithQueryTimeout(parent)
	defer cancel2()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected deadline to be set")
	}

	if time.Until(deadline) > DefaultQueryTimeout {
		t.Error("deadline should not exceed the parent's")
	}
}

func TestWithQueryTimeout_AddsDeadline(t *testing.T) {
	ctx, cancel := WithQueryTimeout(context.Background())
	defer cancel()

	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected deadline to be set on bare context")
	}
}

func TestBuildListQuery_NoFilter(t *testing.T) {
	query, args := buildListQuery(nil)

	if strings.Contains(query, "WHERE") {
		t.Errorf("unfiltered query should have no WHERE clause: %s", query)
	}
	if !strings.Contains(query, "ORDER BY created_at DESC") {
		t.Error("query should order by created_at DESC")
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args (limit, offset), got %d", len(args))
	}
	if args[0] != 50 || args[1] != 0 {
		t.Errorf("default limit/offset = %v/%v, expected 50/0", args[0], args[1])
	}
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	reason := chat.ReasonRetailerOnboarding
	team := chat.TeamSales
	urgent := true

	query, args := buildListQuery(&domain.LeadListFilter{
		Reason: &reason,
		Team:   &team,
		Urgent: &urgent,
		Limit:  10,
		Offset: 20,
	})

	if !strings.Contains(query, "reason = $1") {
		t.Errorf("missing reason condition: %s", query)
	}
	if !strings.Contains(query, "team = $2") {
		t.Errorf("missing team condition: %s", query)
	}
	if !strings.Contains(query, "urgent = $3") {
		t.Errorf("missing urgent condition: %s", query)
	}
	if !strings.Contains(query, "LIMIT $4 OFFSET $5") {
		t.Errorf("missing pagination: %s", query)
	}

	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[3] != 10 || args[4] != 20 {
		t.Errorf("limit/offset args = %v/%v, expected 10/20", args[3], args[4])
	}
}

func TestBuildListQuery_SingleFilter(t *testing.T) {
	urgent := false
	query, args := buildListQuery(&domain.LeadListFilter{Urgent: &urgent})

	if !strings.Contains(query, "urgent = $1") {
		t.Errorf("missing urgent condition: %s", query)
	}
	if strings.Contains(query, "AND") {
		t.Errorf("single filter should not produce AND: %s", query)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}
