package pill

import (
	"time"

	"github.com/lensbook/lensbook/internal/logger"
)

// Pending-positioning schedule: the first sweep runs after InitialDelay,
// later sweeps every PollInterval, until every tracked indicator has been
// positioned or has exhausted MaxAttempts.
const (
	InitialDelay = 200 * time.Millisecond
	PollInterval = 500 * time.Millisecond
	MaxAttempts  = 120
)

// Measure reads the active item's geometry once the container's layout is
// measurable. It returns ok=false while layout is not yet valid.
type Measure func() (Geometry, bool)

type pendingIndicator struct {
	ind      *Indicator
	measure  Measure
	attempts int
}

// Tracker holds indicators awaiting their first valid layout measurement.
// All indicators on a page share one tracker so a single poll schedule
// covers them, and polling stops once the pending set drains.
type Tracker struct {
	log     *logger.Logger
	pending []*pendingIndicator
}

// NewTracker creates an empty tracker. The logger may be nil.
func NewTracker(log *logger.Logger) *Tracker {
	return &Tracker{log: log}
}

// Track adds an indicator to the pending set. Already-positioned
// indicators are ignored.
func (t *Tracker) Track(ind *Indicator, measure Measure) {
	if ind == nil || ind.Positioned() || measure == nil {
		return
	}
	t.pending = append(t.pending, &pendingIndicator{ind: ind, measure: measure})
}

// Pending returns how many indicators still await positioning.
func (t *Tracker) Pending() int {
	return len(t.pending)
}

// Sweep attempts to position every pending indicator, removing the ones
// that succeed, were positioned elsewhere, or have exhausted their
// attempts. It returns true while indicators remain and another sweep
// should be scheduled.
func (t *Tracker) Sweep() bool {
	remaining := t.pending[:0]
	for _, p := range t.pending {
		if p.ind.Positioned() {
			continue
		}

		if geo, ok := p.measure(); ok {
			p.ind.Snap(geo)
			continue
		}

		p.attempts++
		if p.attempts >= MaxAttempts {
			t.log.Debug("pill indicator never became measurable, giving up")
			continue
		}
		remaining = append(remaining, p)
	}
	t.pending = remaining
	return len(t.pending) > 0
}
