package store

import (
	"context"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// Repo defines durable storage for the user's preferences document.
type Repo interface {
	// LoadPreferences returns the stored document, or (nil, nil) when the
	// user has not completed onboarding yet.
	LoadPreferences(ctx context.Context) (*domain.Preferences, error)
	// SavePreferences replaces the stored document wholesale.
	SavePreferences(ctx context.Context, p *domain.Preferences) error
	// ClearPreferences removes the document, resetting onboarding.
	ClearPreferences(ctx context.Context) error
	Close() error
}
