package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/internal/pill"
	"github.com/lensbook/lensbook/internal/sidebar"
)

const gaugeWidth = 12

// View renders the full frame.
func (m Model) View() string {
	if !m.dims.ready {
		return "Loading lensbook..."
	}

	sections := []string{
		m.headerView(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.viewport.View()),
	}
	if len(m.nav.items) > 0 {
		sections = append(sections, m.navView())
	}
	sections = append(sections, m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// headerView condenses once the reader has scrolled past the top of the
// document. Both modes occupy the same two rows so the viewport height
// never shifts mid-scroll.
func (m Model) headerView() string {
	if m.scrollPos*unitsPerRow > headerScrolled {
		return m.styles.headerCondensed.Render(m.doc.Title) + "\n"
	}
	return m.styles.header.Render(m.doc.Title) + "\n"
}

func (m Model) sidebarView() string {
	var b strings.Builder

	if m.searching || m.filter.Query() != "" {
		b.WriteString(m.styles.searchPrompt.Render(m.search.View()))
	} else {
		b.WriteString(m.styles.entry.Render("press / to search"))
	}
	b.WriteString("\n")

	if m.filter.NoResults() {
		b.WriteString(m.styles.noResults.Render("No matching sections"))
	} else {
		for _, group := range m.filter.Groups() {
			if !group.Visible {
				continue
			}
			b.WriteString("\n")
			title := group.Title
			if group.Collapsed {
				title = "▸ " + title
			}
			b.WriteString(m.styles.groupTitle.Render(title))
			b.WriteString("\n")
			if group.Collapsed {
				continue
			}
			for _, entry := range group.Entries {
				if !entry.Visible {
					continue
				}
				b.WriteString(m.entryView(entry))
				b.WriteString("\n")
			}
		}
	}

	return m.styles.sidebar.Height(m.viewport.Height).Render(b.String())
}

func (m Model) entryView(entry *sidebar.Entry) string {
	label := m.entryLabel(entry)
	if entry.Icon != "" {
		label = m.styles.entryIcon.Render(entry.Icon) + " " + label
	}
	if entry.Active {
		return m.styles.entryActive.Render("▍" + label)
	}
	return m.styles.entry.Render(label)
}

// entryLabel renders the label with the matched span emphasized. The
// segments come pre-split from the filter, so arbitrary query text can
// never smuggle styling into the output.
func (m Model) entryLabel(entry *sidebar.Entry) string {
	if !entry.Match.Found {
		return entry.Label
	}
	return entry.Match.Before + m.styles.matchMark.Render(entry.Match.Text) + entry.Match.After
}

// renderContent lays the sections out into the viewport and records each
// section's row extent for the observers.
func (m *Model) renderContent() {
	if !m.dims.ready {
		return
	}

	width := m.contentWidth() - 2
	if width < 10 {
		width = 10
	}

	content, extents, rows := m.composeSections(width)
	m.extents = extents
	m.contentRows = rows
	m.viewport.SetContent(content)
}

// composeSections renders every section at the given width and records the
// content row each one starts on. The recorded extents are the geometry
// the observers and nav jumps run against, so they must line up exactly
// with the rendered rows.
func (m *Model) composeSections(width int) (string, []sectionExtent, int) {
	var b strings.Builder
	extents := make([]sectionExtent, 0, len(m.doc.Sections))
	row := 0

	for i, section := range m.doc.Sections {
		if i > 0 {
			b.WriteString("\n")
			row++
		}
		body := m.sectionView(section, width)
		rows := lipgloss.Height(body)
		extents = append(extents, sectionExtent{id: section.ID, topRow: row, rows: rows})
		b.WriteString(body)
		b.WriteString("\n")
		row += rows
	}

	return b.String(), extents, row
}

func (m *Model) sectionView(section config.Section, width int) string {
	revealed := m.reveal.Revealed(section.ID)

	parts := []string{m.styles.sectionTitle.Width(width).Render(section.Title)}
	for b, block := range section.Blocks {
		parts = append(parts, m.blockView(section.ID, b, block, width, revealed))
	}

	return strings.Join(parts, "\n")
}

func (m *Model) blockView(sectionID string, index int, block config.Block, width int, revealed bool) string {
	switch {
	case len(block.Segmented) > 0:
		return m.segmentView(sectionID, index)
	case block.Copy != "":
		body := m.styles.copyBlock.Width(width - 2).Render(block.Copy)
		hint := m.styles.copyHint.Render("press c to copy")
		return body + "\n" + hint
	default:
		style := m.styles.prose
		if !revealed {
			style = m.styles.unrevealed
		}
		return style.Width(width).Render(block.Text)
	}
}

// segmentView renders an inline segmented control: the item row and the
// indicator row beneath it.
func (m *Model) segmentView(sectionID string, index int) string {
	seg, ok := m.segments[segmentKey(sectionID, index)]
	if !ok {
		return ""
	}

	var items strings.Builder
	for i, item := range seg.items {
		style := m.styles.segmentItem
		if i == seg.active {
			style = m.styles.segmentLabel
		}
		items.WriteString(style.Render(item.label))
	}

	return items.String() + "\n" + m.indicatorRow(seg)
}

func (m Model) navView() string {
	var items strings.Builder
	for i, item := range m.nav.items {
		style := m.styles.navItem
		if i == m.nav.active {
			style = m.styles.navActive
		}
		items.WriteString(style.Render(item.label))
	}

	bar := items.String() + "\n" + m.indicatorRow(m.nav)
	return m.styles.navBar.Width(m.dims.width).Render(bar)
}

// indicatorRow paints the pill at its current animation frame. The
// vertical squash of the morph maps onto partial block glyphs.
func (m Model) indicatorRow(r *ribbon) string {
	ind := r.ind
	if !ind.Visible() || !ind.Positioned() {
		return ""
	}

	frame := ind.FrameAt(m.now)
	start := int(math.Round(frame.X))
	width := int(math.Round(frame.Width))
	if start < 0 {
		start = 0
	}
	if width < 1 {
		width = 1
	}

	glyph := "█"
	switch {
	case frame.ScaleY < 0.85:
		glyph = "▄"
	case frame.ScaleY < 1.0:
		glyph = "▆"
	}

	return strings.Repeat(" ", start) + m.styles.pill.Render(strings.Repeat(glyph, width))
}

func (m Model) footerView() string {
	progress := m.scrollProgress()
	filled := int(math.Round(progress * gaugeWidth))
	if filled > gaugeWidth {
		filled = gaugeWidth
	}
	gauge := m.styles.gauge.Render(strings.Repeat("─", filled)) +
		m.styles.gaugeOff.Render(strings.Repeat("─", gaugeWidth-filled))

	left := fmt.Sprintf("%s %3.0f%%", gauge, progress*100)
	if m.revision != "" {
		left += "  " + m.styles.revision.Render("rev "+m.revision)
	}
	if m.toast != "" {
		left += "  " + m.styles.toast.Render(m.toast)
	}

	return m.styles.footer.Width(m.dims.width).Render(left)
}

// itemGeometry computes an item's cell footprint inside its ribbon, the
// coordinate space the pill indicator animates in.
func itemGeometry(r *ribbon, idx int) pill.Geometry {
	x := 0.0
	for i := 0; i < idx; i++ {
		x += float64(lipgloss.Width(r.items[i].label) + 2*r.pad)
	}
	return pill.Geometry{
		X:     x,
		Width: float64(lipgloss.Width(r.items[idx].label) + 2*r.pad),
	}
}
