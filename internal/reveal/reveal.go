// Package reveal lazily marks content blocks visible the first time they
// approach the viewport. Revealing is one-way: once a target has been
// revealed nothing ever hides it again, and its observation stops.
package reveal

import "github.com/lensbook/lensbook/internal/layout"

// Observation parameters: a target counts as revealed when it is almost
// touching the viewport, with the region grown below the fold.
const (
	BottomMargin = 80.0
	Threshold    = 0.01
)

// Animator tracks reveal state for a set of targets.
type Animator struct {
	revealed  map[string]bool
	observing map[string]bool
	onReveal  func(id string)
}

// Option configures an Animator at construction.
type Option func(*Animator)

// WithoutObserver puts the animator in the capability-absent fallback:
// every target is revealed immediately and nothing is observed.
func WithoutObserver() Option {
	return func(a *Animator) {
		a.revealAll()
	}
}

// New creates an Animator observing the given target IDs. onReveal fires
// exactly once per target, at the moment it transitions to revealed.
func New(ids []string, onReveal func(id string), opts ...Option) *Animator {
	a := &Animator{
		revealed:  make(map[string]bool, len(ids)),
		observing: make(map[string]bool, len(ids)),
		onReveal:  onReveal,
	}
	for _, id := range ids {
		a.observing[id] = true
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Revealed reports whether the target has been revealed.
func (a *Animator) Revealed(id string) bool {
	return a.revealed[id]
}

// Observing reports whether the target still awaits its first intersection.
func (a *Animator) Observing(id string) bool {
	return a.observing[id]
}

// Done reports whether every target has been revealed.
func (a *Animator) Done() bool {
	return len(a.observing) == 0
}

// Margins returns the observation margins to compute snapshots with.
func (a *Animator) Margins() layout.Margins {
	return layout.Margins{Bottom: BottomMargin}
}

// HandleEntries reveals every still-observed target that intersects in the
// snapshot and cancels its observation (one-shot).
func (a *Animator) HandleEntries(entries []layout.Entry) {
	for _, e := range entries {
		if e.Intersecting && a.observing[e.ID] {
			a.reveal(e.ID)
		}
	}
}

// CatchUp is the synchronous pass run once at startup: targets already
// inside the raw viewport bounds (no margins) are revealed without waiting
// for an observation callback, so above-the-fold content never flashes
// hidden.
func (a *Animator) CatchUp(entries []layout.Entry, viewportHeight float64) {
	for _, e := range entries {
		if !a.observing[e.ID] {
			continue
		}
		if e.Top < viewportHeight && e.Bottom > 0 {
			a.reveal(e.ID)
		}
	}
}

// SetReducedMotion applies the accessibility bypass: when enabled, every
// target is revealed immediately and observation stops.
func (a *Animator) SetReducedMotion(reduced bool) {
	if reduced {
		a.revealAll()
	}
}

func (a *Animator) revealAll() {
	for id := range a.observing {
		a.reveal(id)
	}
}

func (a *Animator) reveal(id string) {
	if a.revealed[id] {
		return
	}
	a.revealed[id] = true
	delete(a.observing, id)
	if a.onReveal != nil {
		a.onReveal(id)
	}
}
