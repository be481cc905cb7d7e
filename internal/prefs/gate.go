package prefs

import (
	"context"
	"fmt"
	"sync"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
	"github.com/gauthamsrinivas7/CourtSide/internal/store"
)

// Gate owns the live preferences value and the onboarded flag. The scheduler
// reads through it on every tick, so an edit takes effect on the next tick
// without a restart. Callers must treat the returned document as read-only.
type Gate struct {
	repo store.Repo

	mu    sync.RWMutex
	prefs *domain.Preferences
}

// NewGate creates a gate backed by the given repository.
func NewGate(repo store.Repo) *Gate {
	return &Gate{repo: repo}
}

// Load primes the gate from the store at startup. A missing document is not
// an error; the gate simply stays disabled until onboarding completes.
func (g *Gate) Load(ctx context.Context) error {
	p, err := g.repo.LoadPreferences(ctx)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	if p != nil {
		if err := p.Validate(); err != nil {
			// A corrupt stored document disables the scheduler rather
			// than crashing startup.
			return fmt.Errorf("stored preferences invalid: %w", err)
		}
	}

	g.mu.Lock()
	g.prefs = p
	g.mu.Unlock()
	return nil
}

// Current returns the preferences and whether onboarding is complete.
func (g *Gate) Current() (*domain.Preferences, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.prefs, g.prefs != nil
}

// Enabled reports whether the scheduler may fire.
func (g *Gate) Enabled() bool {
	_, ok := g.Current()
	return ok
}

// Set validates the document, persists it, and swaps the live value.
func (g *Gate) Set(ctx context.Context, p *domain.Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := g.repo.SavePreferences(ctx, p); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	g.mu.Lock()
	g.prefs = p
	g.mu.Unlock()
	return nil
}

// Clear removes the stored document and disables the scheduler.
func (g *Gate) Clear(ctx context.Context) error {
	if err := g.repo.ClearPreferences(ctx); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}

	g.mu.Lock()
	g.prefs = nil
	g.mu.Unlock()
	return nil
}
