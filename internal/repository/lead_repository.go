// Package repository implements data persistence using PostgreSQL.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdm-products/tradechat/internal/chat"
	"github.com/jdm-products/tradechat/internal/domain"
)

// LeadRepository implements domain.LeadRepository using PostgreSQL.
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository creates a new LeadRepository.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

// Create inserts a new lead record.
func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	ctx, cancel := WithWriteTimeout(ctx)
	defer cancel()

	answersJSON, err := json.Marshal(lead.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO leads (
			id, session_id, reason, team, answers, urgent, region, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err = r.pool.Exec(ctx, query,
		lead.ID,
		lead.SessionID,
		string(lead.Reason),
		lead.Team,
		answersJSON,
		lead.Urgent,
		lead.Region,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by its ID.
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	ctx, cancel := WithQueryTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, session_id, reason, team, answers, urgent, region, created_at
		FROM leads
		WHERE id = $1`

	lead, err := r.scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

// List retrieves leads matching the filter, newest first.
func (r *LeadRepository) List(ctx context.Context, filter *domain.LeadListFilter) ([]*domain.Lead, error) {
	ctx, cancel := WithListQueryTimeout(ctx)
	defer cancel()

	query, args := buildListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := r.scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// Count returns the total number of leads.
func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := WithQueryTimeout(ctx)
	defer cancel()

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanLead scans a single lead row.
func (r *LeadRepository) scanLead(row rowScanner) (*domain.Lead, error) {
	lead := &domain.Lead{}
	var reason string
	var answersJSON []byte

	err := row.Scan(
		&lead.ID,
		&lead.SessionID,
		&reason,
		&lead.Team,
		&answersJSON,
		&lead.Urgent,
		&lead.Region,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Reason = chat.CaptureReason(reason)

	if len(answersJSON) > 0 {
		if err := json.Unmarshal(answersJSON, &lead.Answers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
		}
	}

	return lead, nil
}

// buildListQuery assembles the filtered list query with positional args.
func buildListQuery(filter *domain.LeadListFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, session_id, reason, team, answers, urgent, region, created_at
		FROM leads`)

	var conditions []string
	var args []any

	if filter != nil {
		if filter.Reason != nil {
			args = append(args, string(*filter.Reason))
			conditions = append(conditions, "reason = $"+strconv.Itoa(len(args)))
		}
		if filter.Team != nil {
			args = append(args, *filter.Team)
			conditions = append(conditions, "team = $"+strconv.Itoa(len(args)))
		}
		if filter.Urgent != nil {
			args = append(args, *filter.Urgent)
			conditions = append(conditions, "urgent = $"+strconv.Itoa(len(args)))
		}
	}

	if len(conditions) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	sb.WriteString("\n\t\tORDER BY created_at DESC")

	limit := 50
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			offset = filter.Offset
		}
	}

	args = append(args, limit)
	sb.WriteString("\n\t\tLIMIT $" + strconv.Itoa(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	return sb.String(), args
}
