package store

import (
	"context"
	"sync"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// MemoryRepo is an in-memory Repo for tests and ephemeral runs.
type MemoryRepo struct {
	mu    sync.Mutex
	prefs *domain.Preferences
}

// NewMemoryRepo returns an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) LoadPreferences(context.Context) (*domain.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.prefs == nil {
		return nil, nil
	}
	cp := *r.prefs
	return &cp, nil
}

func (r *MemoryRepo) SavePreferences(_ context.Context, p *domain.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.prefs = &cp
	return nil
}

func (r *MemoryRepo) ClearPreferences(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = nil
	return nil
}

func (r *MemoryRepo) Close() error { return nil }
