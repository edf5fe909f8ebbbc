package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lensbook/lensbook/internal/layout"
)

func entry(id string, top, bottom float64, intersecting bool) layout.Entry {
	return layout.Entry{ID: id, Top: top, Bottom: bottom, Intersecting: intersecting}
}

func TestStartsUnrevealed(t *testing.T) {
	a := New([]string{"card-1", "card-2"}, nil)

	assert.False(t, a.Revealed("card-1"))
	assert.True(t, a.Observing("card-1"))
	assert.False(t, a.Done())
}

func TestRevealOnFirstIntersection(t *testing.T) {
	var revealed []string
	a := New([]string{"card-1", "card-2"}, func(id string) { revealed = append(revealed, id) })

	a.HandleEntries([]layout.Entry{
		entry("card-1", 100, 300, true),
		entry("card-2", 900, 1100, false),
	})

	assert.True(t, a.Revealed("card-1"))
	assert.False(t, a.Revealed("card-2"))
	assert.Equal(t, []string{"card-1"}, revealed)
}

func TestRevealIsMonotonicAndOneShot(t *testing.T) {
	var count int
	a := New([]string{"card-1"}, func(string) { count++ })

	a.HandleEntries([]layout.Entry{entry("card-1", 100, 300, true)})
	// Scrolled back out and in again: no further callbacks, never unrevealed.
	a.HandleEntries([]layout.Entry{entry("card-1", -900, -700, false)})
	a.HandleEntries([]layout.Entry{entry("card-1", 100, 300, true)})

	assert.True(t, a.Revealed("card-1"))
	assert.False(t, a.Observing("card-1"))
	assert.Equal(t, 1, count)
}

func TestCatchUpRevealsAboveTheFold(t *testing.T) {
	a := New([]string{"hero", "below"}, nil)

	a.CatchUp([]layout.Entry{
		entry("hero", 50, 250, true),
		entry("below", 700, 900, false),
	}, 600)

	assert.True(t, a.Revealed("hero"))
	assert.False(t, a.Revealed("below"))
}

func TestCatchUpIgnoresScrolledPast(t *testing.T) {
	a := New([]string{"gone"}, nil)

	// Entirely above the viewport: bottom <= 0.
	a.CatchUp([]layout.Entry{entry("gone", -400, -100, false)}, 600)
	assert.False(t, a.Revealed("gone"))
}

func TestReducedMotionRevealsEverything(t *testing.T) {
	a := New([]string{"a", "b", "c"}, nil)

	a.SetReducedMotion(true)

	assert.True(t, a.Revealed("a"))
	assert.True(t, a.Revealed("b"))
	assert.True(t, a.Revealed("c"))
	assert.True(t, a.Done())
}

func TestReducedMotionOffIsNoOp(t *testing.T) {
	a := New([]string{"a"}, nil)
	a.SetReducedMotion(false)
	assert.False(t, a.Revealed("a"))
}

func TestWithoutObserverRevealsImmediately(t *testing.T) {
	a := New([]string{"a", "b"}, nil, WithoutObserver())

	assert.True(t, a.Revealed("a"))
	assert.True(t, a.Revealed("b"))
	assert.True(t, a.Done())
}
