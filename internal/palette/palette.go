// Package palette derives the accent color family applied across the
// viewer. A single accent choice expands into a set of tints mixed against
// the active theme's neutral base, plus a darkened contrast variant, so
// accents stay legible on both light and dark surfaces.
package palette

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is used when no preference is stored or the stored value
// cannot be parsed.
const DefaultAccent = "#E07A5F"

// Neutral bases the tints are mixed against, per theme.
const (
	lightBase = "#FFF6EC"
	darkBase  = "#181410"
)

// Mix shares matching the site's accent custom properties.
const (
	softShare     = 0.15
	mutedShare    = 0.25
	mediumShare   = 0.40
	contrastDepth = 0.30
)

// Palette is the derived accent family.
type Palette struct {
	Accent   lipgloss.Color
	Soft     lipgloss.Color
	Medium   lipgloss.Color
	Muted    lipgloss.Color
	Contrast lipgloss.Color
}

// Derive computes the palette for the given accent hex against the theme's
// neutral base. Invalid input falls back to DefaultAccent.
func Derive(accent string, dark bool) Palette {
	base, _ := colorful.Hex(baseFor(dark))

	c, err := colorful.Hex(accent)
	if err != nil {
		c, _ = colorful.Hex(DefaultAccent)
	}

	black, _ := colorful.Hex("#000000")

	return Palette{
		Accent:   hexColor(c),
		Soft:     hexColor(mix(c, base, softShare)),
		Medium:   hexColor(mix(c, base, mediumShare)),
		Muted:    hexColor(mix(c, base, mutedShare)),
		Contrast: hexColor(mix(c, black, 1-contrastDepth)),
	}
}

func baseFor(dark bool) string {
	if dark {
		return darkBase
	}
	return lightBase
}

// mix blends accent into base perceptually, keeping the given accent share.
func mix(accent, base colorful.Color, share float64) colorful.Color {
	return accent.BlendLab(base, 1-share).Clamped()
}

func hexColor(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
