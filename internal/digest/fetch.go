package digest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
	"github.com/gauthamsrinivas7/CourtSide/internal/provider"
)

// ErrFetchInFlight means a fetch for that mode is already loading.
var ErrFetchInFlight = errors.New("fetch already in flight for this mode")

// Fetcher is the single chokepoint through which both scheduler-initiated
// and user-initiated digest generations pass, so loading and result
// transitions stay consistent regardless of caller.
type Fetcher struct {
	provider provider.Provider
	view     *View
	log      *zap.Logger
}

// NewFetcher wires the provider to the view.
func NewFetcher(p provider.Provider, v *View, log *zap.Logger) *Fetcher {
	return &Fetcher{provider: p, view: v, log: log}
}

// Fetch runs one generation for mode and blocks until the provider answers.
//
// Empty teams make it a no-op: the gate should prevent this, but the
// primitive re-checks. A mode already loading is rejected with
// ErrFetchInFlight; fetches for different modes proceed concurrently.
// On failure the slot's previous result stays in place and the provider
// error is returned so callers can tell a failure from a zero-games
// success. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, mode domain.Mode, prefs *domain.Preferences) error {
	if prefs == nil || len(prefs.Teams) == 0 {
		f.log.Debug("fetch skipped, no teams selected", zap.String("mode", string(mode)))
		return nil
	}
	if !mode.Valid() {
		return fmt.Errorf("unknown digest mode %q", mode)
	}
	if !f.view.beginFetch(mode) {
		return ErrFetchInFlight
	}

	switch mode {
	case domain.ModePreview:
		games, err := f.provider.FetchPreview(ctx, prefs.Teams, prefs.Timezone)
		if err != nil {
			f.view.fail(mode)
			return fmt.Errorf("fetch preview: %w", err)
		}
		f.view.completePreview(games)
		f.log.Info("preview loaded", zap.Int("games", len(games)))
	case domain.ModeSummary:
		results, err := f.provider.FetchSummary(ctx, prefs.Teams)
		if err != nil {
			f.view.fail(mode)
			return fmt.Errorf("fetch summary: %w", err)
		}
		f.view.completeSummary(results)
		f.log.Info("summary loaded", zap.Int("results", len(results)))
	}
	return nil
}
