package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jdm-products/tradechat/internal/domain"
	"github.com/jdm-products/tradechat/internal/metrics"
	"github.com/jdm-products/tradechat/internal/sanitize"
)

// RepositoryLeadRecorder persists leads through a LeadRepository.
type RepositoryLeadRecorder struct {
	repo    domain.LeadRepository
	metrics *metrics.Metrics
}

// NewRepositoryLeadRecorder creates a recorder backed by persistent storage.
func NewRepositoryLeadRecorder(repo domain.LeadRepository, m *metrics.Metrics) *RepositoryLeadRecorder {
	return &RepositoryLeadRecorder{repo: repo, metrics: m}
}

// Record stores the lead.
func (r *RepositoryLeadRecorder) Record(ctx context.Context, lead *domain.Lead) error {
	start := time.Now()
	err := r.repo.Create(ctx, lead)
	r.metrics.RecordDBQuery("insert", time.Since(start), err)
	return err
}

// LogLeadRecorder writes leads to the log only. It serves deployments
// without a database: the lead is still visible to operators, masked.
type LogLeadRecorder struct {
	logger    *zap.Logger
	sanitizer *sanitize.Sanitizer
}

// NewLogLeadRecorder creates a log-only recorder.
func NewLogLeadRecorder(logger *zap.Logger) *LogLeadRecorder {
	return &LogLeadRecorder{
		logger:    logger,
		sanitizer: sanitize.NewDefault(),
	}
}

// Record logs the lead with contact details masked.
func (r *LogLeadRecorder) Record(ctx context.Context, lead *domain.Lead) error {
	fields := []zap.Field{
		zap.String("lead_id", lead.ID.String()),
		zap.String("session_id", lead.SessionID.String()),
		zap.String("reason", string(lead.Reason)),
		zap.String("team", lead.Team),
		zap.Bool("urgent", lead.Urgent),
		zap.String("region", lead.Region),
	}
	for _, a := range lead.Answers {
		fields = append(fields, zap.String(a.Field, r.sanitizer.String(a.Value)))
	}

	r.logger.Info("lead captured", fields...)
	return nil
}
