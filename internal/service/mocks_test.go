package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jdm-products/tradechat/internal/domain"
	"github.com/jdm-products/tradechat/internal/repository"
)

// MockLeadRepository is a mock implementation of domain.LeadRepository for testing.
type MockLeadRepository struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]*domain.Lead
	order []uuid.UUID

	// For tracking method calls
	CreateCalls  int
	GetByIDCalls int
	ListCalls    int
	CountCalls   int

	// For injecting errors
	CreateError  error
	GetByIDError error
	ListError    error
	CountError   error
}

func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{
		leads: make(map[uuid.UUID]*domain.Lead),
	}
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	m.leads[lead.ID] = lead
	m.order = append(m.order, lead.ID)
	return nil
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	lead, ok := m.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return lead, nil
}

func (m *MockLeadRepository) List(ctx context.Context, filter *domain.LeadListFilter) ([]*domain.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}

	var out []*domain.Lead
	// Newest first
	for i := len(m.order) - 1; i >= 0; i-- {
		lead := m.leads[m.order[i]]
		if filter != nil {
			if filter.Reason != nil && lead.Reason != *filter.Reason {
				continue
			}
			if filter.Team != nil && lead.Team != *filter.Team {
				continue
			}
			if filter.Urgent != nil && lead.Urgent != *filter.Urgent {
				continue
			}
		}
		out = append(out, lead)
	}
	return out, nil
}

func (m *MockLeadRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.CountCalls++
	if m.CountError != nil {
		return 0, m.CountError
	}
	return len(m.leads), nil
}

// MockLeadRecorder records leads in memory for testing.
type MockLeadRecorder struct {
	mu    sync.Mutex
	Leads []*domain.Lead

	RecordError error
}

func (m *MockLeadRecorder) Record(ctx context.Context, lead *domain.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordError != nil {
		return m.RecordError
	}
	m.Leads = append(m.Leads, lead)
	return nil
}

func (m *MockLeadRecorder) Recorded() []*domain.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Lead, len(m.Leads))
	copy(out, m.Leads)
	return out
}
