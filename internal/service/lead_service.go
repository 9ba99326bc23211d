package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/domain"
	apperrors "github.com/jdm-products/tradechat/internal/errors"
	"github.com/jdm-products/tradechat/internal/metrics"
	"github.com/jdm-products/tradechat/internal/repository"
)

// LeadService provides read access to captured leads for the admin API.
type LeadService struct {
	repo    domain.LeadRepository
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewLeadService creates a new LeadService.
func NewLeadService(repo domain.LeadRepository, m *metrics.Metrics, logger *zap.Logger) *LeadService {
	return &LeadService{
		repo:    repo,
		logger:  logger,
		metrics: m,
	}
}

// List returns leads matching the filter, newest first.
func (s *LeadService) List(ctx context.Context, filter *domain.LeadListFilter) ([]*domain.Lead, error) {
	start := time.Now()
	leads, err := s.repo.List(ctx, filter)
	s.metrics.RecordDBQuery("select", time.Since(start), err)
	if err != nil {
		return nil, apperrors.DatabaseError("LeadService.List", fmt.Errorf("failed to list leads: %w", err))
	}
	return leads, nil
}

// Get returns a single lead by ID.
func (s *LeadService) Get(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	start := time.Now()
	lead, err := s.repo.GetByID(ctx, id)
	s.metrics.RecordDBQuery("select", time.Since(start), err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "lead not found")
		}
		return nil, apperrors.DatabaseError("LeadService.Get", err)
	}
	return lead, nil
}

// Count returns the total number of stored leads.
func (s *LeadService) Count(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := s.repo.Count(ctx)
	s.metrics.RecordDBQuery("select", time.Since(start), err)
	if err != nil {
		return 0, apperrors.DatabaseError("LeadService.Count", err)
	}
	return count, nil
}
