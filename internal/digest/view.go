package digest

import (
	"sync"

	"github.com/gauthamsrinivas7/CourtSide/internal/domain"
)

// Phase is the lifecycle of one digest slot:
// idle -> loading -> {loaded | failed}, with loading re-enterable.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Event describes a view change for the event stream.
type Event struct {
	Type    string      `json:"type"` // "phase" | "mode" | "notification"
	Mode    domain.Mode `json:"mode,omitempty"`
	Phase   Phase       `json:"phase,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Publisher receives view events; the HTTP layer fans them out to clients.
type Publisher interface {
	Publish(Event)
}

// PreviewState is the observable state of the morning slot. Games is nil
// until a fetch has ever succeeded; a successful zero-games fetch is an
// empty, non-nil list.
type PreviewState struct {
	Phase Phase                `json:"phase"`
	Games []domain.GamePreview `json:"games"`
}

// SummaryState is the observable state of the evening slot.
type SummaryState struct {
	Phase   Phase                `json:"phase"`
	Results []domain.GameSummary `json:"results"`
}

// Snapshot is a read-only copy of the whole view for the presentation layer.
type Snapshot struct {
	ActiveMode   domain.Mode  `json:"activeMode"`
	Preview      PreviewState `json:"preview"`
	Summary      SummaryState `json:"summary"`
	Notification string       `json:"notification,omitempty"`
}

// View holds presentation state for both digest modes. The two slots are
// independent: a fetch for one never touches the other. All mutation funnels
// through the fetch primitive and the scheduler trigger path; everyone else
// reads snapshots.
type View struct {
	mu           sync.Mutex
	activeMode   domain.Mode
	preview      PreviewState
	summary      SummaryState
	notification string
	closed       bool
	pub          Publisher
}

// NewView creates a view with both slots idle and PREVIEW active.
// pub may be nil when no event stream is attached.
func NewView(pub Publisher) *View {
	return &View{
		activeMode: domain.ModePreview,
		preview:    PreviewState{Phase: PhaseIdle},
		summary:    SummaryState{Phase: PhaseIdle},
		pub:        pub,
	}
}

// Snapshot returns a copy safe to serialize without holding the lock.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		ActiveMode:   v.activeMode,
		Preview:      v.preview,
		Summary:      v.summary,
		Notification: v.notification,
	}
}

// SetActiveMode switches the visible tab. The inactive slot is untouched.
func (v *View) SetActiveMode(mode domain.Mode) {
	if !mode.Valid() {
		return
	}
	v.mu.Lock()
	if v.closed || v.activeMode == mode {
		v.mu.Unlock()
		return
	}
	v.activeMode = mode
	v.mu.Unlock()
	v.publish(Event{Type: "mode", Mode: mode})
}

// SetNotification replaces the transient toast message.
func (v *View) SetNotification(msg string) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.notification = msg
	v.mu.Unlock()
	v.publish(Event{Type: "notification", Message: msg})
}

// DismissNotification clears the toast.
func (v *View) DismissNotification() {
	v.mu.Lock()
	v.notification = ""
	v.mu.Unlock()
}

// IsLoading reports whether a fetch for mode is in flight.
func (v *View) IsLoading(mode domain.Mode) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase(mode) == PhaseLoading
}

// Close tears the view down. Fetches resolving afterwards are ignored.
func (v *View) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
}

// beginFetch moves a slot to loading. It refuses when the slot is already
// loading or the view is closed. Prior results stay visible while loading.
func (v *View) beginFetch(mode domain.Mode) bool {
	v.mu.Lock()
	if v.closed || v.phase(mode) == PhaseLoading {
		v.mu.Unlock()
		return false
	}
	v.setPhase(mode, PhaseLoading)
	v.mu.Unlock()
	v.publish(Event{Type: "phase", Mode: mode, Phase: PhaseLoading})
	return true
}

// completePreview replaces the morning slot's result wholesale.
func (v *View) completePreview(games []domain.GamePreview) {
	if games == nil {
		games = []domain.GamePreview{}
	}
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.preview = PreviewState{Phase: PhaseLoaded, Games: games}
	v.mu.Unlock()
	v.publish(Event{Type: "phase", Mode: domain.ModePreview, Phase: PhaseLoaded})
}

// completeSummary replaces the evening slot's result wholesale.
func (v *View) completeSummary(results []domain.GameSummary) {
	if results == nil {
		results = []domain.GameSummary{}
	}
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.summary = SummaryState{Phase: PhaseLoaded, Results: results}
	v.mu.Unlock()
	v.publish(Event{Type: "phase", Mode: domain.ModeSummary, Phase: PhaseLoaded})
}

// fail marks a slot failed, leaving its previous result in place.
func (v *View) fail(mode domain.Mode) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.setPhase(mode, PhaseFailed)
	v.mu.Unlock()
	v.publish(Event{Type: "phase", Mode: mode, Phase: PhaseFailed})
}

// phase and setPhase require v.mu held.
func (v *View) phase(mode domain.Mode) Phase {
	if mode == domain.ModeSummary {
		return v.summary.Phase
	}
	return v.preview.Phase
}

func (v *View) setPhase(mode domain.Mode, p Phase) {
	if mode == domain.ModeSummary {
		v.summary.Phase = p
		return
	}
	v.preview.Phase = p
}

func (v *View) publish(e Event) {
	if v.pub != nil {
		v.pub.Publish(e)
	}
}
