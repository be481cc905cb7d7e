package provider

import (
	"context"
	"errors"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// ErrEmptyResponse means the provider answered without any usable payload.
// Distinct from a successful zero-games answer, which is an empty list.
var ErrEmptyResponse = errors.New("empty provider response")

// Provider produces structured game data for a set of teams. Implementations
// may be slow and may fail; callers treat every call as terminal — no retry.
type Provider interface {
	// FetchPreview returns today's upcoming games, times converted to the
	// user's timezone.
	FetchPreview(ctx context.Context, teams []domain.Team, timezone string) ([]domain.GamePreview, error)
	// FetchSummary returns results for games played today.
	FetchSummary(ctx context.Context, teams []domain.Team) ([]domain.GameSummary, error)
}
