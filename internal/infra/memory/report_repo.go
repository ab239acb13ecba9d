package memory

import (
	"context"
	"sync"

	domain "github.com/bryanwahyu/hse-assistant/internal/domain/reports"
)

// ReportRepository keeps the incident log in process memory, newest first.
type ReportRepository struct {
	mu      sync.RWMutex
	reports []*domain.Report
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

// Prepend puts r at the head of the log.
func (r *ReportRepository) Prepend(ctx context.Context, rep *domain.Report) error {
	cp := *rep
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append([]*domain.Report{&cp}, r.reports...)
	return nil
}

// List returns copies, newest first.
func (r *ReportRepository) List(ctx context.Context) ([]*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Report, 0, len(r.reports))
	for _, rep := range r.reports {
		cp := *rep
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ReportRepository) Get(ctx context.Context, id domain.ReportID) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		cp := *r.reports[i]
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

// Update replaces the stored report with the same ID, keeping its position.
func (r *ReportRepository) Update(ctx context.Context, rep *domain.Report) error {
	cp := *rep
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(rep.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.reports[i] = &cp
	return nil
}

func (r *ReportRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports)
}

// index must be called with the lock held.
func (r *ReportRepository) index(id domain.ReportID) int {
	for i, rep := range r.reports {
		if rep.ID == id {
			return i
		}
	}
	return -1
}
