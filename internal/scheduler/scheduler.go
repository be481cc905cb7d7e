package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gauthamsrinivas7/CourtSide/internal/digest"
	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
	"github.com/gauthamsrinivas7/CourtSide/internal/prefs"
)

// DefaultInterval is the poll cadence: coarser than the one-minute trigger
// granularity, fine enough not to miss a minute boundary.
const DefaultInterval = 5 * time.Second

// Scheduler watches wall-clock time and fires at most one digest generation
// per trigger per calendar day, in the user's configured timezone. It only
// reads preferences through the gate, so edits apply on the next tick.
type Scheduler struct {
	gate     *prefs.Gate
	fetcher  *digest.Fetcher
	view     *digest.View
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time

	// lastFiredKey is only touched from the tick goroutine. Reading and
	// recording it happen without suspension in between, so two ticks in
	// the same minute cannot both fire.
	lastFiredKey string
	badZone      string
}

// New creates a Scheduler. A non-positive interval falls back to the default.
func New(gate *prefs.Gate, fetcher *digest.Fetcher, view *digest.View, log *zap.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		gate:     gate,
		fetcher:  fetcher,
		view:     view,
		log:      log,
		interval: interval,
		now:      time.Now,
	}
}

// Run starts the poll loop until ctx is canceled. In-flight fetches are
// allowed to resolve on their own; the view ignores them once closed.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one scheduling decision: match the current minute against
// the trigger times, dedupe against the last fired key, and fire.
func (s *Scheduler) tick(ctx context.Context) {
	p, ok := s.gate.Current()
	if !ok {
		return
	}

	mode, key, fired, err := domain.TriggerAt(s.now(), p.Timezone)
	if err != nil {
		// Bad zones are a configuration problem caught upstream by
		// preference validation; here they just mean "no trigger".
		if s.badZone != p.Timezone {
			s.badZone = p.Timezone
			s.log.Warn("unusable timezone, trigger skipped", zap.String("tz", p.Timezone), zap.Error(err))
		}
		return
	}
	s.badZone = ""
	if !fired || key == s.lastFiredKey {
		return
	}

	// Record the key before the fetch resolves so a slow provider cannot
	// cause a second firing on the next tick within the same minute. A
	// failed generation does not give the key back; the trigger is spent
	// for the day.
	s.lastFiredKey = key
	s.view.SetActiveMode(mode)
	s.log.Info("trigger fired",
		zap.String("mode", string(mode)),
		zap.String("key", key),
	)

	email := p.Email
	go func() {
		if err := s.fetcher.Fetch(ctx, mode, p); err != nil {
			// Silence is the failure signal: no notification, no retry.
			s.log.Warn("scheduled generation failed",
				zap.String("mode", string(mode)),
				zap.Error(err),
			)
			return
		}
		s.view.SetNotification(fmt.Sprintf("Your %s was sent to %s", mode.Title(), email))
	}()
}
