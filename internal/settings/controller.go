// Package settings owns the canonical user preference values and the
// document state derived from them. The controller is the single writer of
// that state; every other subsystem receives a read-only copy and
// re-consults it when the settings-changed notification fires.
package settings

import (
	"github.com/lensbook/lensbook/internal/events"
	"github.com/lensbook/lensbook/internal/logger"
	"github.com/lensbook/lensbook/internal/palette"
	"github.com/lensbook/lensbook/internal/prefs"
)

// EventChanged is the single broadcast fired on every settings mutation.
// It carries no payload; subscribers read Controller.State().
const EventChanged = "lensbook:settings-changed"

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Built-in defaults, used when no preference is stored.
const (
	DefaultAudience = "everyone"
	DefaultAge      = "all"
)

// State is the observable document state encoding all preferences.
type State struct {
	Theme        string
	Audience     string
	Age          string
	ReduceMotion bool
	Accent       string
	Palette      palette.Palette
}

// Controller applies preferences to document state, restores persisted
// values at startup, and broadcasts changes.
type Controller struct {
	state          State
	store          *prefs.Store
	bus            *events.Bus
	log            *logger.Logger
	explicitMotion bool
}

// NewController creates a controller with built-in defaults applied.
func NewController(store *prefs.Store, bus *events.Bus, log *logger.Logger) *Controller {
	c := &Controller{
		store: store,
		bus:   bus,
		log:   log,
		state: State{
			Theme:    ThemeLight,
			Audience: DefaultAudience,
			Age:      DefaultAge,
			Accent:   palette.DefaultAccent,
		},
	}
	c.state.Palette = palette.Derive(c.state.Accent, false)
	return c
}

// State returns a read-only copy of the current document state.
func (c *Controller) State() State {
	return c.state
}

// Restore reads every known preference and applies it. Absent values keep
// their defaults. Restore does not broadcast: it runs before any dependent
// subsystem initializes.
func (c *Controller) Restore() {
	if accent, ok := c.store.Get(prefs.KeyAccent); ok {
		c.state.Accent = accent
	}
	if theme, ok := c.store.Get(prefs.KeyTheme); ok && theme == ThemeDark {
		c.state.Theme = ThemeDark
	}
	if audience, ok := c.store.Get(prefs.KeyAudience); ok {
		c.state.Audience = audience
	}
	if age, ok := c.store.Get(prefs.KeyAge); ok {
		c.state.Age = age
	}
	if motion, ok := c.store.Get(prefs.KeyReduceMotion); ok {
		c.explicitMotion = true
		c.state.ReduceMotion = motion == "true"
	}

	c.derivePalette()
	c.log.WithFields(map[string]any{
		"theme":         c.state.Theme,
		"accent":        c.state.Accent,
		"reduce_motion": c.state.ReduceMotion,
	}).Debug("preferences restored")
}

// DetectSystemReduceMotion applies the system-level reduced-motion signal
// as a default. It must run after Restore: a persisted explicit choice
// always wins over the system preference.
func (c *Controller) DetectSystemReduceMotion(getenv func(string) string) {
	if c.explicitMotion {
		return
	}
	if systemPrefersReducedMotion(getenv) {
		c.state.ReduceMotion = true
		c.log.Debug("system reduced-motion preference applied as default")
	}
}

func systemPrefersReducedMotion(getenv func(string) string) bool {
	switch getenv("LENSBOOK_REDUCE_MOTION") {
	case "1", "true":
		return true
	}
	return getenv("TERM") == "dumb"
}

// SetAccent applies a new accent color, persists it, and broadcasts.
func (c *Controller) SetAccent(hex string) {
	c.state.Accent = hex
	c.derivePalette()
	c.store.Set(prefs.KeyAccent, hex)
	c.bus.Publish(EventChanged)
}

// ToggleTheme switches between light and dark, persists, and broadcasts.
func (c *Controller) ToggleTheme() {
	if c.state.Theme == ThemeDark {
		c.state.Theme = ThemeLight
	} else {
		c.state.Theme = ThemeDark
	}
	c.derivePalette()
	c.store.Set(prefs.KeyTheme, c.state.Theme)
	c.bus.Publish(EventChanged)
}

// SetAudience applies an audience selection, persists, and broadcasts.
func (c *Controller) SetAudience(audience string) {
	c.state.Audience = audience
	c.store.Set(prefs.KeyAudience, audience)
	c.bus.Publish(EventChanged)
}

// SetAge applies an age-group selection, persists, and broadcasts.
func (c *Controller) SetAge(age string) {
	c.state.Age = age
	c.store.Set(prefs.KeyAge, age)
	c.bus.Publish(EventChanged)
}

// ToggleReduceMotion flips the reduced-motion preference, persists, and
// broadcasts. Once toggled in-page the choice is explicit and the system
// default no longer applies.
func (c *Controller) ToggleReduceMotion() {
	c.state.ReduceMotion = !c.state.ReduceMotion
	c.explicitMotion = true
	if c.state.ReduceMotion {
		c.store.Set(prefs.KeyReduceMotion, "true")
	} else {
		c.store.Set(prefs.KeyReduceMotion, "false")
	}
	c.bus.Publish(EventChanged)
}

func (c *Controller) derivePalette() {
	c.state.Palette = palette.Derive(c.state.Accent, c.state.Theme == ThemeDark)
}
