// Package tui hosts the viewer: a scrollable section pane with a grouped,
// searchable sidebar, a bottom navigation bar and inline segmented
// controls carrying liquid pill indicators, and a footer with scroll
// progress and toasts. It wires the orchestration subsystems together:
// preference restoration runs first, then viewport-driven scroll spy and
// reveal tracking, with settings changes broadcast to every subscriber.
package tui

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/lensbook/lensbook/internal/clipboard"
	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/internal/content"
	"github.com/lensbook/lensbook/internal/events"
	"github.com/lensbook/lensbook/internal/layout"
	"github.com/lensbook/lensbook/internal/logger"
	"github.com/lensbook/lensbook/internal/pill"
	"github.com/lensbook/lensbook/internal/reveal"
	"github.com/lensbook/lensbook/internal/settings"
	"github.com/lensbook/lensbook/internal/sidebar"
	"github.com/lensbook/lensbook/internal/spy"
	"github.com/lensbook/lensbook/internal/watch"
)

// unitsPerRow maps terminal rows to the abstract layout units the
// geometry subsystems operate in, comparable to a browser line-height.
const unitsPerRow = 20.0

const (
	sidebarWidth   = 30
	frameInterval  = time.Second / 30
	resizeDebounce = 100 * time.Millisecond
	toastDuration  = 1800 * time.Millisecond
	headerScrolled = 10.0 // units of scroll before the header condenses

	headerRows = 2
	navRows    = 3 // border, items, indicator
	footerRows = 1
)

// ribbon is a pill-indicator container: the bottom navigation bar or an
// inline segmented control.
type ribbon struct {
	items  []ribbonItem
	active int
	pad    int // horizontal cell padding either side of an item label
	ind    *pill.Indicator
}

type ribbonItem struct {
	label  string
	target string // section ID for nav items, empty for segmented items
}

// sectionExtent records a section's rendered position in content rows.
type sectionExtent struct {
	id     string
	topRow int
	rows   int
}

// uiSignals collects flags set synchronously by event-bus handlers for the
// next Update pass to act on.
type uiSignals struct {
	resnap bool
}

// viewDims is the terminal size, shared behind a pointer so closures
// handed to long-lived subsystems observe resizes.
type viewDims struct {
	width  int
	height int
	ready  bool
}

// Options tune model construction.
type Options struct {
	// PollScroll selects the capability-absent fallback: scroll-spy by
	// polling and immediate reveal instead of intersection observation.
	PollScroll bool
	// DocPath enables live reload when non-empty.
	DocPath string
}

// Model is the viewer's root Bubble Tea model.
type Model struct {
	doc        *config.Document
	opts       Options
	controller *settings.Controller
	bus        *events.Bus
	copier     *clipboard.Copier
	watcher    *watch.Watcher
	log        *logger.Logger
	revision   string

	dims *viewDims

	viewport  viewport.Model
	spring    harmonica.Spring
	scrollPos float64
	scrollVel float64
	scrollTo  float64

	search    textinput.Model
	searching bool
	filter    *sidebar.Filter

	spy     *spy.Spy
	reveal  *reveal.Animator
	nav     *ribbon
	tracker *pill.Tracker

	extents     []sectionExtent
	contentRows int
	segments    map[string]*ribbon // keyed by "sectionID/blockIndex"

	signals  *uiSignals
	animated bool // frame loop scheduled
	sweeping bool // pending-indicator poll scheduled

	now      time.Time
	toast    string
	toastSeq int

	styles styles
}

// NewModel builds the viewer and runs the startup sequence: restore
// preferences, apply the system motion default, then initialize every
// dependent subsystem against the restored state.
func NewModel(doc *config.Document, controller *settings.Controller, bus *events.Bus, copier *clipboard.Copier, log *logger.Logger, opts Options) Model {
	controller.Restore()
	controller.DetectSystemReduceMotion(os.Getenv)
	state := controller.State()

	search := textinput.New()
	search.Placeholder = "Search sections"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := Model{
		doc:        doc,
		opts:       opts,
		controller: controller,
		bus:        bus,
		copier:     copier,
		log:        log,
		search:     search,
		spring:     harmonica.NewSpring(harmonica.FPS(30), 7.0, 0.9),
		tracker:    pill.NewTracker(log),
		signals:    &uiSignals{},
		dims:       &viewDims{},
		sweeping:   true,
		segments:   make(map[string]*ribbon),
		now:        time.Now(),
		styles:     newStyles(state),
	}

	if opts.DocPath != "" {
		m.revision = content.Revision(filepath.Dir(opts.DocPath))
	}

	m.filter = sidebar.NewFilter(groupsFromDoc(doc))
	m.spy = spy.New(m.filter.SetActive)

	revealOpts := []reveal.Option{}
	if opts.PollScroll {
		revealOpts = append(revealOpts, reveal.WithoutObserver())
	}
	m.reveal = reveal.New(sectionIDs(doc), nil, revealOpts...)
	m.reveal.SetReducedMotion(state.ReduceMotion)

	m.nav = navRibbon(doc)

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
	m.subscribe()

	return m
}

// Init schedules the startup commands: the delayed pending-indicator
// sweep, blink for the search input, and the document watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tea.Tick(pill.InitialDelay, func(time.Time) tea.Msg { return sweepMsg{} }),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// SetWatcher attaches a running document watcher. Must be called before
// the program starts.
func (m *Model) SetWatcher(w *watch.Watcher) {
	m.watcher = w
}

// subscribe registers the settings-changed consumers: the reveal animator
// re-evaluates motion state and the indicators re-snap on the next frame.
func (m Model) subscribe() {
	controller, revealAnim, signals := m.controller, m.reveal, m.signals
	m.bus.Subscribe(settings.EventChanged, func() {
		revealAnim.SetReducedMotion(controller.State().ReduceMotion)
		signals.resnap = true
	})
}

func (m *Model) trackIndicators() {
	dims := m.dims
	m.tracker.Track(m.nav.ind, measureRibbon(m.nav, func() int {
		if !dims.ready {
			return 0
		}
		return dims.width
	}))
	for _, seg := range m.segments {
		m.tracker.Track(seg.ind, measureRibbon(seg, func() int {
			if !dims.ready {
				return 0
			}
			return dims.width - sidebarWidth - 1
		}))
	}
}

// measureRibbon builds the readiness predicate for an indicator: the
// active item's geometry once the container has a positive size.
func measureRibbon(r *ribbon, width func() int) pill.Measure {
	return func() (pill.Geometry, bool) {
		if width() <= 0 || len(r.items) == 0 {
			return pill.Geometry{}, false
		}
		return itemGeometry(r, r.active), true
	}
}

func (m *Model) contentWidth() int {
	if !m.dims.ready {
		return 0
	}
	return m.dims.width - sidebarWidth - 1
}

// chromeRows is the vertical space claimed around the viewport: header,
// navigation bar with its indicator row, and the footer.
func (m *Model) chromeRows() int {
	rows := headerRows + footerRows
	if len(m.nav.items) > 0 {
		rows += navRows
	}
	return rows
}

func segmentKey(sectionID string, blockIndex int) string {
	return sectionID + "/" + strconv.Itoa(blockIndex)
}

func sectionIDs(doc *config.Document) []string {
	ids := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// navRibbon builds the bottom navigation bar. Item labels carry their
// activation digit so the indicator geometry matches the rendered row.
func navRibbon(doc *config.Document) *ribbon {
	r := &ribbon{pad: 2, ind: pill.NewIndicator()}
	for i, item := range doc.Nav {
		r.items = append(r.items, ribbonItem{
			label:  strconv.Itoa(i+1) + " " + item.Label,
			target: item.Target,
		})
	}
	if len(r.items) == 0 {
		r.ind.Hide()
	}
	return r
}

func groupsFromDoc(doc *config.Document) []*sidebar.Group {
	groups := make([]*sidebar.Group, 0, len(doc.Sidebar))
	for _, g := range doc.Sidebar {
		group := &sidebar.Group{Title: g.Title, Collapsed: g.Collapsed}
		for _, e := range g.Entries {
			group.Entries = append(group.Entries, &sidebar.Entry{
				Label:  e.Label,
				Icon:   e.Icon,
				Target: e.Target,
			})
		}
		groups = append(groups, group)
	}
	return groups
}

// sectionTargets converts the rendered extents to observation targets.
func (m *Model) sectionTargets() []layout.Target {
	targets := make([]layout.Target, 0, len(m.extents))
	for _, e := range m.extents {
		targets = append(targets, layout.Target{
			ID: e.id,
			Box: layout.Box{
				Top:    float64(e.topRow) * unitsPerRow,
				Height: float64(e.rows) * unitsPerRow,
			},
		})
	}
	return targets
}

func (m *Model) layoutViewport() layout.Viewport {
	return layout.Viewport{
		Top:    m.scrollPos * unitsPerRow,
		Height: float64(m.viewport.Height) * unitsPerRow,
	}
}

// observe recomputes the intersection-driven subsystems from the current
// scroll position.
func (m *Model) observe() {
	if !m.dims.ready {
		return
	}

	vp := m.layoutViewport()
	targets := m.sectionTargets()

	if m.opts.PollScroll {
		m.spy.Poll(layout.Observe(vp, layout.Margins{}, 0, targets))
		return
	}

	m.spy.HandleEntries(layout.Observe(vp, layout.Margins{}, 0, targets), vp.Height)
	if !m.reveal.Done() {
		m.reveal.HandleEntries(layout.Observe(vp, m.reveal.Margins(), reveal.Threshold, targets))
	}
}

// catchUp runs the reveal animator's synchronous above-the-fold pass.
func (m *Model) catchUp() {
	if m.reveal.Done() {
		return
	}
	vp := m.layoutViewport()
	m.reveal.CatchUp(layout.Observe(vp, layout.Margins{}, 0, m.sectionTargets()), vp.Height)
}

// sectionExtentByID finds the rendered extent for a section.
func (m *Model) sectionExtentByID(id string) (sectionExtent, bool) {
	for _, e := range m.extents {
		if e.id == id {
			return e, true
		}
	}
	return sectionExtent{}, false
}

// scrollProgress reports how far through the document the viewport sits,
// in [0, 1].
func (m *Model) scrollProgress() float64 {
	span := float64(m.contentRows - m.viewport.Height)
	if span <= 0 {
		return 0
	}
	p := m.scrollPos / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func waitForReload(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return reloadMsg{}
	}
}
