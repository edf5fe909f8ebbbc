package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lensbook/lensbook/internal/settings"
)

// styles carries every lipgloss style the view uses. Rebuilt whenever the
// settings broadcast fires, so accent and theme changes repaint the whole
// frame on the next render.
type styles struct {
	header          lipgloss.Style
	headerCondensed lipgloss.Style

	sidebar      lipgloss.Style
	groupTitle   lipgloss.Style
	entry        lipgloss.Style
	entryActive  lipgloss.Style
	entryIcon    lipgloss.Style
	matchMark    lipgloss.Style
	noResults    lipgloss.Style
	searchPrompt lipgloss.Style

	sectionTitle lipgloss.Style
	prose        lipgloss.Style
	unrevealed   lipgloss.Style
	copyBlock    lipgloss.Style
	copyHint     lipgloss.Style

	navBar       lipgloss.Style
	navItem      lipgloss.Style
	navActive    lipgloss.Style
	pill         lipgloss.Style
	segmentItem  lipgloss.Style
	segmentLabel lipgloss.Style

	footer   lipgloss.Style
	gauge    lipgloss.Style
	gaugeOff lipgloss.Style
	revision lipgloss.Style
	toast    lipgloss.Style
}

func newStyles(state settings.State) styles {
	p := state.Palette

	base := lipgloss.NewStyle().Foreground(p.Contrast)
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Padding(0, 2),
		headerCondensed: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Medium).
			Padding(0, 2),

		sidebar: lipgloss.NewStyle().
			Width(sidebarWidth).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(p.Soft).
			PaddingLeft(1),
		groupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Medium).
			MarginTop(1),
		entry:       muted.PaddingLeft(2),
		entryActive: lipgloss.NewStyle().Bold(true).Foreground(p.Accent).PaddingLeft(1),
		entryIcon:   lipgloss.NewStyle().Foreground(p.Medium),
		matchMark: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Contrast).
			Background(p.Soft),
		noResults:    muted.Italic(true).PaddingLeft(2).MarginTop(1),
		searchPrompt: lipgloss.NewStyle().Foreground(p.Accent),

		sectionTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			MarginTop(1),
		prose:      base,
		unrevealed: lipgloss.NewStyle().Foreground(p.Soft).Faint(true),
		copyBlock: lipgloss.NewStyle().
			Foreground(p.Contrast).
			Background(p.Soft).
			Padding(0, 1),
		copyHint: muted.Italic(true),

		navBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(p.Soft),
		navItem:      muted.Padding(0, 2),
		navActive:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Padding(0, 2),
		pill:         lipgloss.NewStyle().Foreground(p.Accent),
		segmentItem:  muted.Padding(0, 1),
		segmentLabel: lipgloss.NewStyle().Bold(true).Foreground(p.Medium).Padding(0, 1),

		footer:   muted.Padding(0, 1),
		gauge:    lipgloss.NewStyle().Foreground(p.Accent),
		gaugeOff: lipgloss.NewStyle().Foreground(p.Soft),
		revision: muted,
		toast: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Contrast).
			Background(p.Medium).
			Padding(0, 1),
	}
}
