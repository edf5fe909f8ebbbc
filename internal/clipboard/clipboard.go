// Package clipboard implements the copy affordance: system clipboard
// first, an OSC 52 escape sequence through the terminal as fallback.
// Copying is a best-effort UX feature; every failure path is swallowed.
package clipboard

import (
	"io"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"github.com/lensbook/lensbook/internal/logger"
)

// Copier writes text to the clipboard.
type Copier struct {
	log      *logger.Logger
	terminal io.Writer
	system   func(text string) error
}

// New creates a Copier. terminal receives the OSC 52 fallback sequence and
// may be nil to disable the fallback.
func New(terminal io.Writer, log *logger.Logger) *Copier {
	return &Copier{
		log:      log,
		terminal: terminal,
		system:   clipboard.WriteAll,
	}
}

// Copy places text on the clipboard. When the system clipboard is
// unavailable it emits an OSC 52 sequence instead, letting the terminal
// emulator perform the copy. Failures of the fallback itself are logged
// and otherwise ignored.
func (c *Copier) Copy(text string) {
	if err := c.system(text); err == nil {
		return
	}

	if c.terminal == nil {
		return
	}
	if _, err := osc52.New(text).WriteTo(c.terminal); err != nil {
		c.log.Debug("clipboard fallback failed")
	}
}
