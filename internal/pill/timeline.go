package pill

import "time"

// Duration of a full liquid morph.
const Duration = 500 * time.Millisecond

// Liquid morph tuning. Stretch widens the indicator at mid-travel, the
// overshoot pushes it past the target and then retracts part of the way,
// both proportional to travel distance and capped.
const (
	stretchFactor    = 0.12
	stretchMax       = 16.0
	overshootFactor  = 0.04
	overshootMax     = 4.0
	overshootRetract = 0.3
)

// Geometry is an indicator's resting position within its container.
type Geometry struct {
	X     float64
	Width float64
}

// Keyframe is one sample of the morph: Offset is the normalized position
// within the animation, ScaleY the vertical squash factor.
type Keyframe struct {
	Offset float64
	X      float64
	Width  float64
	ScaleY float64
}

// Frame is the interpolated visual state at a point in time.
type Frame struct {
	X      float64
	Width  float64
	ScaleY float64
}

// MorphKeyframes builds the six-keyframe liquid morph between two
// geometries: squash at departure, stretch at mid-travel, overshoot and
// settle at arrival.
func MorphKeyframes(from, to Geometry) []Keyframe {
	direction := 1.0
	if to.X < from.X {
		direction = -1
	}
	distance := (to.X - from.X) * direction

	stretch := min(distance*stretchFactor, stretchMax)
	midX := (from.X + to.X) / 2
	midW := max(from.Width, to.Width) + stretch*2
	overshoot := min(distance*overshootFactor, overshootMax) * direction

	return []Keyframe{
		{Offset: 0, X: from.X, Width: from.Width, ScaleY: 1},
		{Offset: 0.18, X: from.X, Width: from.Width, ScaleY: 0.82},
		{Offset: 0.50, X: midX - (midW-to.Width)/2, Width: midW, ScaleY: 0.78},
		{Offset: 0.75, X: to.X + overshoot, Width: to.Width, ScaleY: 1.06},
		{Offset: 0.88, X: to.X - overshoot*overshootRetract, Width: to.Width, ScaleY: 0.97},
		{Offset: 1, X: to.X, Width: to.Width, ScaleY: 1},
	}
}

// Timeline interpolates between keyframes under the settle easing curve.
type Timeline struct {
	frames []Keyframe
}

// NewTimeline wraps the given keyframes. Frames must be ordered by Offset
// with the first at 0 and the last at 1.
func NewTimeline(frames []Keyframe) Timeline {
	return Timeline{frames: frames}
}

// At samples the timeline at progress (0..1 of wall-clock duration). The
// easing is applied to progress before keyframe interpolation, matching an
// animation-level timing function.
func (t Timeline) At(progress float64) Frame {
	if len(t.frames) == 0 {
		return Frame{ScaleY: 1}
	}

	if progress <= 0 {
		return frameOf(t.frames[0])
	}
	if progress >= 1 {
		return frameOf(t.frames[len(t.frames)-1])
	}

	eased := settleEase(progress)

	for i := 0; i < len(t.frames)-1; i++ {
		a, b := t.frames[i], t.frames[i+1]
		if eased > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return frameOf(b)
		}
		f := (eased - a.Offset) / span
		return Frame{
			X:      lerp(a.X, b.X, f),
			Width:  lerp(a.Width, b.Width, f),
			ScaleY: lerp(a.ScaleY, b.ScaleY, f),
		}
	}

	return frameOf(t.frames[len(t.frames)-1])
}

func frameOf(k Keyframe) Frame {
	return Frame{X: k.X, Width: k.Width, ScaleY: k.ScaleY}
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

// settleEase is the cubic-bezier(0.22, 1, 0.36, 1) timing curve: a fast
// start that glides into the endpoint.
func settleEase(t float64) float64 {
	const x1, y1, x2, y2 = 0.22, 1.0, 0.36, 1.0

	// Solve the parameter u where the curve's x equals t, then evaluate y.
	u := t
	for i := 0; i < 8; i++ {
		x := bezierAxis(u, x1, x2) - t
		dx := bezierAxisDeriv(u, x1, x2)
		if dx == 0 {
			break
		}
		next := u - x/dx
		if next < 0 {
			next = 0
		} else if next > 1 {
			next = 1
		}
		if diff := next - u; diff < 1e-7 && diff > -1e-7 {
			u = next
			break
		}
		u = next
	}

	return bezierAxis(u, y1, y2)
}

func bezierAxis(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*p1 + 3*inv*u*u*p2 + u*u*u
}

func bezierAxisDeriv(u, p1, p2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*p1 + 6*inv*u*(p2-p1) + 3*u*u*(1-p2)
}
