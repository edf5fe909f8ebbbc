// Package spy tracks which content section is current as the user scrolls
// and drives the navigation highlight. It is a small state machine over
// intersection snapshots: either no section is active, or exactly one is.
package spy

import "github.com/lensbook/lensbook/internal/layout"

const (
	// A section qualifies for the highlight while its top edge sits within
	// this window below the viewport top...
	windowTop = 150.0
	// ...or no deeper than this fraction of the viewport above it.
	windowDepth = 0.5

	// PollThreshold is the cruder cutoff used in poll mode: the last
	// section whose top edge is at or above it wins.
	PollThreshold = 120.0
)

// Spy holds the set of currently intersecting sections and the active one.
type Spy struct {
	tops     map[string]float64
	current  string
	onChange func(id string)
}

// New creates a Spy. onChange fires once per transition with the new
// section ID; it is never invoked twice in a row with the same value.
func New(onChange func(id string)) *Spy {
	return &Spy{
		tops:     make(map[string]float64),
		onChange: onChange,
	}
}

// Current returns the active section ID, or "" before any section has
// intersected.
func (s *Spy) Current() string {
	return s.current
}

// HandleEntries ingests an intersection snapshot and recomputes the active
// section. Among intersecting sections whose top edge lies inside the
// preferred window, the smallest top offset wins. If none qualify but
// something intersects, the intersecting section nearest the viewport top
// wins instead, so a highlight stays visible while content is on screen.
// An empty result leaves the current state untouched.
func (s *Spy) HandleEntries(entries []layout.Entry, viewportHeight float64) {
	for _, e := range entries {
		if e.Intersecting {
			s.tops[e.ID] = e.Top
		} else {
			delete(s.tops, e.ID)
		}
	}

	bestID := ""
	bestTop := 0.0
	for id, top := range s.tops {
		if top <= windowTop && top > -viewportHeight*windowDepth {
			if bestID == "" || top < bestTop || (top == bestTop && id < bestID) {
				bestID = id
				bestTop = top
			}
		}
	}

	if bestID == "" && len(s.tops) > 0 {
		bestDist := 0.0
		for id, top := range s.tops {
			dist := top
			if dist < 0 {
				dist = -dist
			}
			if bestID == "" || dist < bestDist || (dist == bestDist && id < bestID) {
				bestID = id
				bestDist = dist
			}
		}
	}

	if bestID != "" {
		s.setActive(bestID)
	}
}

// Poll is the fallback path for environments without intersection
// observation: given the full section snapshot in document order, the last
// section whose top edge is at or above PollThreshold becomes active. The
// result may be empty, clearing the highlight.
func (s *Spy) Poll(entries []layout.Entry) {
	current := ""
	for _, e := range entries {
		if e.Top <= PollThreshold {
			current = e.ID
		}
	}
	s.setActive(current)
}

func (s *Spy) setActive(id string) {
	if id == s.current {
		return
	}
	s.current = id
	if s.onChange != nil {
		s.onChange(id)
	}
}
