package tui

import (
	"math"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/internal/content"
	"github.com/lensbook/lensbook/internal/pill"
	"github.com/lensbook/lensbook/internal/reveal"
	"github.com/lensbook/lensbook/internal/sidebar"
	"github.com/lensbook/lensbook/internal/spy"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case frameMsg:
		return m.handleFrame(msg)
	case sweepMsg:
		return m.handleSweep()
	case resizeSnapMsg:
		return m.handleResizeSnap(msg)
	case toastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	case reloadMsg:
		return m.handleReload()
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	first := !m.dims.ready
	m.dims.width = msg.Width
	m.dims.height = msg.Height
	m.dims.ready = msg.Width > 0 && msg.Height > 0

	contentHeight := msg.Height - m.chromeRows()
	if contentHeight < 1 {
		contentHeight = 1
	}
	if first {
		m.viewport = viewport.New(m.contentWidth(), contentHeight)
	} else {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = contentHeight
	}

	m.renderContent()
	m.clampScroll()

	if first {
		// Everything already inside the viewport reveals synchronously,
		// then the observers take over.
		m.catchUp()
		m.observe()
		m.renderContent()
		return m, nil
	}

	// Debounced: indicators re-snap once the resize burst settles.
	m.observe()
	size := resizeSnapMsg{Width: msg.Width, Height: msg.Height}
	return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg { return size })
}

// handleResizeSnap fires after the resize debounce. A stale message, one
// whose size no longer matches the terminal, is dropped.
func (m Model) handleResizeSnap(msg resizeSnapMsg) (tea.Model, tea.Cmd) {
	if msg.Width != m.dims.width || msg.Height != m.dims.height {
		return m, nil
	}
	m.snapIndicators()
	return m, nil
}

// snapIndicators repositions every positioned indicator at its active
// item without animation.
func (m *Model) snapIndicators() {
	m.snapRibbon(m.nav)
	for _, seg := range m.segments {
		m.snapRibbon(seg)
	}
}

func (m *Model) snapRibbon(r *ribbon) {
	if !r.ind.Positioned() || len(r.items) == 0 {
		return
	}
	r.ind.Snap(itemGeometry(r, r.active))
}

func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	m.now = msg.Now

	if m.scrolling() {
		m.scrollPos, m.scrollVel = m.spring.Update(m.scrollPos, m.scrollVel, m.scrollTo)
		if math.Abs(m.scrollPos-m.scrollTo) < 0.05 && math.Abs(m.scrollVel) < 0.05 {
			m.scrollPos = m.scrollTo
			m.scrollVel = 0
		}
		m.viewport.SetYOffset(int(math.Round(m.scrollPos)))
		m.observe()
	}

	// Reveals and in-flight segment indicators live inside the viewport
	// content, so animation frames re-render it.
	m.renderContent()

	if m.scrolling() || m.indicatorsAnimating() {
		return m, frameTick()
	}
	m.animated = false
	return m, nil
}

func (m Model) handleSweep() (tea.Model, tea.Cmd) {
	if m.tracker.Sweep() {
		return m, tea.Tick(pill.PollInterval, func(time.Time) tea.Msg { return sweepMsg{} })
	}
	m.sweeping = false
	return m, nil
}

// handleReload re-parses the document. A parse failure keeps the current
// document on screen and surfaces the error as a toast.
func (m Model) handleReload() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForReload(m.watcher)}

	doc, err := config.ParseDocument(m.opts.DocPath)
	if err != nil {
		m.log.WithFields(map[string]any{"error": err.Error()}).Warn("document reload failed")
		m.toastSeq++
		m.toast = "Reload failed: document has errors"
		seq := m.toastSeq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{Seq: seq} }))
		return m, tea.Batch(cmds...)
	}

	m.log.WithFields(map[string]any{"path": m.opts.DocPath}).Info("document reloaded")
	m.rebuildForDoc(doc)
	m.revision = content.Revision(filepath.Dir(m.opts.DocPath))

	if !m.sweeping {
		m.sweeping = true
		cmds = append(cmds, tea.Tick(pill.InitialDelay, func(time.Time) tea.Msg { return sweepMsg{} }))
	}
	return m, tea.Batch(cmds...)
}

// rebuildForDoc swaps in a freshly parsed document and re-derives every
// document-shaped subsystem. Preferences and scroll position survive.
func (m *Model) rebuildForDoc(doc *config.Document) {
	m.doc = doc

	m.filter = sidebar.NewFilter(groupsFromDoc(doc))
	m.spy = spy.New(m.filter.SetActive)

	revealOpts := []reveal.Option{}
	if m.opts.PollScroll {
		revealOpts = append(revealOpts, reveal.WithoutObserver())
	}
	m.reveal = reveal.New(sectionIDs(doc), nil, revealOpts...)
	m.reveal.SetReducedMotion(m.controller.State().ReduceMotion)

	m.nav = navRibbon(doc)

	m.segments = make(map[string]*ribbon)
	for _, section := range doc.Sections {
		for b, block := range section.Blocks {
			if len(block.Segmented) == 0 {
				continue
			}
			seg := &ribbon{pad: 1, ind: pill.NewIndicator()}
			for _, label := range block.Segmented {
				seg.items = append(seg.items, ribbonItem{label: label})
			}
			m.segments[segmentKey(section.ID, b)] = seg
		}
	}

	m.trackIndicators()
	m.renderContent()
	m.clampScroll()
	m.catchUp()
	m.observe()
	m.renderContent()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}
	return m.handleBrowseKeys(msg)
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Clear()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Apply(m.search.Value())
	return m, cmd
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil

	case "esc":
		if m.filter.Query() != "" {
			m.search.SetValue("")
			m.filter.Clear()
		}
		return m, nil

	case "up", "k":
		return m.scrollBy(-1)
	case "down", "j":
		return m.scrollBy(1)
	case "pgup", "b":
		return m.scrollBy(-m.viewport.Height)
	case "pgdown", " ":
		return m.scrollBy(m.viewport.Height)
	case "home":
		return m.scrollTarget(0)
	case "end":
		return m.scrollTarget(float64(m.contentRows - m.viewport.Height))

	case "enter":
		if entry, ok := m.filter.ActiveEntry(); ok {
			return m.jumpToSection(entry.Target)
		}
		return m, nil

	case "d":
		m.controller.ToggleTheme()
		return m.afterSettingsChange()
	case "m":
		m.controller.ToggleReduceMotion()
		return m.afterSettingsChange()
	case "a":
		m.cycleAccent()
		return m.afterSettingsChange()
	case "u":
		m.cycleAudience()
		return m.afterSettingsChange()
	case "g":
		m.cycleAge()
		return m.afterSettingsChange()

	case "c":
		return m.copyActiveSnippet()

	case "left", "h":
		return m.cycleSegment(-1)
	case "right", "l":
		return m.cycleSegment(1)
	}

	if n := navDigit(key); n >= 0 && n < len(m.nav.items) {
		return m.activateNavItem(n)
	}

	return m, nil
}

// afterSettingsChange reacts to the synchronous settings broadcast:
// styles are rebuilt from the new state and the indicators re-snap so a
// theme or accent change repaints them in place.
func (m Model) afterSettingsChange() (tea.Model, tea.Cmd) {
	if m.signals.resnap {
		m.signals.resnap = false
		state := m.controller.State()
		// The bus handler holds the animator from construction; after a
		// live reload the current one needs the motion flag as well.
		m.reveal.SetReducedMotion(state.ReduceMotion)
		m.styles = newStyles(state)
		m.renderContent()
		m.snapIndicators()
	}
	return m, nil
}

func (m *Model) cycleAccent() {
	if len(m.doc.Accents) == 0 {
		return
	}
	current := m.controller.State().Accent
	next := 0
	for i, a := range m.doc.Accents {
		if a.Color == current {
			next = (i + 1) % len(m.doc.Accents)
			break
		}
	}
	m.controller.SetAccent(m.doc.Accents[next].Color)
}

func (m *Model) cycleAudience() {
	m.controller.SetAudience(cycleValue(m.doc.Audiences, m.controller.State().Audience))
}

func (m *Model) cycleAge() {
	m.controller.SetAge(cycleValue(m.doc.Ages, m.controller.State().Age))
}

func cycleValue(values []string, current string) string {
	if len(values) == 0 {
		return current
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// copyActiveSnippet copies the first copyable block of the active section
// and raises a short confirmation toast.
func (m Model) copyActiveSnippet() (tea.Model, tea.Cmd) {
	section, ok := m.doc.SectionByID(m.spy.Current())
	if !ok {
		return m, nil
	}
	for _, block := range section.Blocks {
		if block.Copy == "" {
			continue
		}
		m.copier.Copy(block.Copy)
		m.toastSeq++
		m.toast = "Copied to clipboard"
		seq := m.toastSeq
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{Seq: seq} })
	}
	return m, nil
}

// cycleSegment moves the active item of the first segmented control in
// the active section, morphing its indicator.
func (m Model) cycleSegment(dir int) (tea.Model, tea.Cmd) {
	seg, ok := m.activeSegment()
	if !ok {
		return m, nil
	}
	n := len(seg.items)
	seg.active = ((seg.active+dir)%n + n) % n
	seg.ind.MoveTo(itemGeometry(seg, seg.active), m.controller.State().ReduceMotion)
	return m, m.startAnimation()
}

func (m *Model) activeSegment() (*ribbon, bool) {
	section, ok := m.doc.SectionByID(m.spy.Current())
	if !ok {
		return nil, false
	}
	for b, block := range section.Blocks {
		if len(block.Segmented) == 0 {
			continue
		}
		seg, ok := m.segments[segmentKey(section.ID, b)]
		return seg, ok
	}
	return nil, false
}

// activateNavItem morphs the nav indicator to the chosen item and smooth
// scrolls to its target section.
func (m Model) activateNavItem(idx int) (tea.Model, tea.Cmd) {
	m.nav.active = idx
	m.nav.ind.MoveTo(itemGeometry(m.nav, idx), m.controller.State().ReduceMotion)
	return m.jumpToSection(m.nav.items[idx].target)
}

func (m Model) jumpToSection(target string) (tea.Model, tea.Cmd) {
	extent, ok := m.sectionExtentByID(target)
	if !ok {
		return m, nil
	}
	return m.scrollTarget(float64(extent.topRow))
}

func (m Model) scrollBy(rows int) (tea.Model, tea.Cmd) {
	return m.scrollTarget(m.scrollTo + float64(rows))
}

// scrollTarget retargets the scroll spring. Reduced motion jumps instead.
func (m Model) scrollTarget(pos float64) (tea.Model, tea.Cmd) {
	max := float64(m.contentRows - m.viewport.Height)
	if max < 0 {
		max = 0
	}
	if pos < 0 {
		pos = 0
	}
	if pos > max {
		pos = max
	}
	m.scrollTo = pos

	if m.controller.State().ReduceMotion {
		m.scrollPos = pos
		m.scrollVel = 0
		m.viewport.SetYOffset(int(math.Round(pos)))
		m.observe()
		m.renderContent()
		return m, nil
	}
	return m, m.startAnimation()
}

func (m *Model) clampScroll() {
	max := float64(m.contentRows - m.viewport.Height)
	if max < 0 {
		max = 0
	}
	if m.scrollTo > max {
		m.scrollTo = max
	}
	if m.scrollPos > max {
		m.scrollPos = max
	}
	m.viewport.SetYOffset(int(math.Round(m.scrollPos)))
}

func (m *Model) scrolling() bool {
	return m.scrollPos != m.scrollTo || m.scrollVel != 0
}

func (m *Model) indicatorsAnimating() bool {
	if m.nav.ind.Animating() {
		return true
	}
	for _, seg := range m.segments {
		if seg.ind.Animating() {
			return true
		}
	}
	return false
}

// startAnimation enters the frame loop if it is not already running.
func (m *Model) startAnimation() tea.Cmd {
	if m.animated {
		return nil
	}
	m.animated = true
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg{Now: t} })
}

func navDigit(key string) int {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return -1
	}
	return int(key[0] - '1')
}
