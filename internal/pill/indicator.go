// Package pill renders the moving highlight that tracks the active item of
// a navigation bar or segmented control. Transitions between items use a
// multi-keyframe "liquid" morph; the indicator's logical geometry always
// reflects the destination the moment a transition starts, so chained
// activations compute their starting point correctly even while a previous
// animation is still playing.
package pill

import (
	"math"
	"time"
)

// snapEpsilon: transitions shorter than one unit in both offset and width
// snap instead of animating.
const snapEpsilon = 1.0

// Indicator is a positioned highlight bound to at most one active item.
type Indicator struct {
	geo        Geometry
	positioned bool
	visible    bool
	anim       *animation
	clock      func() time.Time
}

type animation struct {
	timeline Timeline
	started  time.Time
}

// Option configures an Indicator.
type Option func(*Indicator)

// WithClock overrides the time source, for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(in *Indicator) {
		in.clock = clock
	}
}

// NewIndicator creates an unpositioned, hidden indicator.
func NewIndicator(opts ...Option) *Indicator {
	in := &Indicator{clock: time.Now}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Geometry returns the logical resting geometry. During an in-flight morph
// this is already the destination.
func (in *Indicator) Geometry() Geometry {
	return in.geo
}

// Positioned reports whether the indicator has had a first valid snap.
func (in *Indicator) Positioned() bool {
	return in.positioned
}

// Visible reports whether the indicator should render at all.
func (in *Indicator) Visible() bool {
	return in.visible
}

// Animating reports whether a morph is still in flight.
func (in *Indicator) Animating() bool {
	return in.anim != nil && in.clock().Sub(in.anim.started) < Duration
}

// Snap places the indicator directly at the target with no animation,
// cancelling anything in flight.
func (in *Indicator) Snap(to Geometry) {
	in.anim = nil
	in.geo = to
	in.positioned = true
	in.visible = true
}

// Hide makes the indicator invisible; it keeps its geometry so a later
// activation still has a starting point.
func (in *Indicator) Hide() {
	in.anim = nil
	in.visible = false
}

// MoveTo transitions the indicator to the target geometry. With reduced
// motion, on first positioning, or when the movement is below the snap
// threshold, the indicator snaps; otherwise a liquid morph starts and any
// in-flight animation is cancelled (last-writer-wins). Either way the
// resting geometry is the target when MoveTo returns.
func (in *Indicator) MoveTo(to Geometry, reduced bool) {
	from := in.geo

	if reduced || !in.positioned || nearlyEqual(from, to) {
		in.Snap(to)
		return
	}

	in.anim = &animation{
		timeline: NewTimeline(MorphKeyframes(from, to)),
		started:  in.clock(),
	}
	in.geo = to
	in.visible = true
}

// FrameAt returns the visual state at the given instant. Outside any
// animation this is the resting geometry at full scale. A finished
// animation is dropped on first sample past its end.
func (in *Indicator) FrameAt(now time.Time) Frame {
	if in.anim != nil {
		elapsed := now.Sub(in.anim.started)
		if elapsed < Duration {
			return in.anim.timeline.At(float64(elapsed) / float64(Duration))
		}
		in.anim = nil
	}
	return Frame{X: in.geo.X, Width: in.geo.Width, ScaleY: 1}
}

func nearlyEqual(a, b Geometry) bool {
	return math.Abs(a.X-b.X) < snapEpsilon && math.Abs(a.Width-b.Width) < snapEpsilon
}
