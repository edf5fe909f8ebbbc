package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lensbook/lensbook/internal/clipboard"
	"github.com/lensbook/lensbook/internal/config"
	"github.com/lensbook/lensbook/internal/events"
	"github.com/lensbook/lensbook/internal/layout"
	"github.com/lensbook/lensbook/internal/prefs"
	"github.com/lensbook/lensbook/internal/settings"
	"github.com/lensbook/lensbook/internal/watch"
)

func testDocument() *config.Document {
	return &config.Document{
		Title: "Acme Brand Book",
		Accents: []config.Accent{
			{Name: "Coral", Color: "#E07A5F"},
			{Name: "Teal", Color: "#3D8F8F"},
		},
		Audiences: []string{"everyone", "partners"},
		Ages:      []string{"all", "adults"},
		Sections: []config.Section{
			{ID: "intro", Title: "Introduction", Blocks: []config.Block{
				{Text: "Welcome to the brand book."},
			}},
			{ID: "voice", Title: "Voice", Blocks: []config.Block{
				{Segmented: []string{"Casual", "Formal", "Playful"}},
				{Text: "How we sound."},
			}},
			{ID: "colors", Title: "Colors", Blocks: []config.Block{
				{Copy: "#E07A5F"},
				{Text: "Primary palette."},
			}},
		},
		Sidebar: []config.Group{
			{Title: "Basics", Entries: []config.Entry{
				{Label: "Introduction", Target: "intro"},
				{Label: "Voice", Target: "voice"},
			}},
			{Title: "Visual", Entries: []config.Entry{
				{Label: "Colors", Target: "colors"},
			}},
		},
		Nav: []config.NavItem{
			{Label: "Intro", Target: "intro"},
			{Label: "Voice", Target: "voice"},
			{Label: "Colors", Target: "colors"},
		},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()

	store := prefs.NewStore(filepath.Join(t.TempDir(), "preferences.json"), nil)
	bus := events.NewBus(nil)
	controller := settings.NewController(store, bus, nil)
	copier := clipboard.New(io.Discard, nil)

	return NewModel(testDocument(), controller, bus, copier, nil, Options{})
}

func sized(t *testing.T, m Model) Model {
	t.Helper()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	resized, ok := next.(Model)
	require.True(t, ok)
	return resized
}

func TestNewModelBuildsRibbons(t *testing.T) {
	m := newTestModel(t)

	require.Len(t, m.nav.items, 3)
	assert.Equal(t, "1 Intro", m.nav.items[0].label)
	assert.Equal(t, "intro", m.nav.items[0].target)

	seg, ok := m.segments["voice/0"]
	require.True(t, ok)
	assert.Len(t, seg.items, 3)
}

func TestNewModelRestoresPersistedTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preferences.json")

	store := prefs.NewStore(path, nil)
	store.Set(prefs.KeyTheme, settings.ThemeDark)

	bus := events.NewBus(nil)
	controller := settings.NewController(prefs.NewStore(path, nil), bus, nil)
	m := NewModel(testDocument(), controller, bus, clipboard.New(io.Discard, nil), nil, Options{})

	assert.Equal(t, settings.ThemeDark, m.controller.State().Theme)
}

func TestInitSchedulesReloadWaitOnlyWithWatcher(t *testing.T) {
	m := newTestModel(t)

	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2) // cursor blink + first indicator sweep

	path := filepath.Join(t.TempDir(), "book.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: x\n"), 0o644))
	w, err := watch.New(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	m.SetWatcher(w)
	batch, ok = m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 3)
}

func TestFirstResizeRevealsAboveTheFold(t *testing.T) {
	m := sized(t, newTestModel(t))

	require.True(t, m.dims.ready)
	assert.True(t, m.reveal.Revealed("intro"))
}

func TestResizeRecordsSectionExtents(t *testing.T) {
	m := sized(t, newTestModel(t))

	require.Len(t, m.extents, 3)
	assert.Equal(t, "intro", m.extents[0].id)
	assert.Equal(t, 0, m.extents[0].topRow)
	for i := 1; i < len(m.extents); i++ {
		assert.Greater(t, m.extents[i].topRow, m.extents[i-1].topRow)
	}
}

func TestSectionExtentsMatchRenderedRows(t *testing.T) {
	m := sized(t, newTestModel(t))

	content, extents, total := m.composeSections(60)
	lines := strings.Split(content, "\n")
	require.Len(t, extents, 3)

	// The content ends with a terminating newline, so the row total is
	// the line count minus the trailing empty element.
	assert.Equal(t, total, len(lines)-1)

	for _, e := range extents {
		section, ok := m.doc.SectionByID(e.id)
		require.True(t, ok)

		// The section title sits one row into its extent, below the
		// title's top margin. Any drift here sends nav jumps and the
		// scroll spy to the wrong rows.
		require.Greater(t, len(lines), e.topRow+1, "extent for %s starts past the content", e.id)
		assert.Contains(t, lines[e.topRow+1], section.Title,
			"section %s: topRow %d does not line up with its title", e.id, e.topRow)
	}
}

func TestNavDigitActivatesItemAndScrolls(t *testing.T) {
	m := sized(t, newTestModel(t))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	got := next.(Model)

	assert.Equal(t, 2, got.nav.active)
	assert.NotNil(t, cmd)

	extent, ok := got.sectionExtentByID("colors")
	require.True(t, ok)
	want := float64(extent.topRow)
	if max := float64(got.contentRows - got.viewport.Height); want > max {
		want = max
	}
	if want < 0 {
		want = 0
	}
	assert.Equal(t, want, got.scrollTo)
}

func TestReducedMotionScrollJumpsImmediately(t *testing.T) {
	m := sized(t, newTestModel(t))
	m.controller.ToggleReduceMotion()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	got := next.(Model)

	assert.Equal(t, got.scrollTo, got.scrollPos)
}

func TestToggleThemeRebuildsStylesInPlace(t *testing.T) {
	m := sized(t, newTestModel(t))
	before := m.styles.groupTitle.GetForeground()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	got := next.(Model)

	assert.Equal(t, settings.ThemeDark, got.controller.State().Theme)
	assert.False(t, got.signals.resnap, "broadcast signal must be consumed")
	// groupTitle mixes the accent against the theme base, so the theme
	// flip must change it.
	assert.NotEqual(t, before, got.styles.groupTitle.GetForeground())
}

func TestAccentCyclesThroughDocumentAccents(t *testing.T) {
	m := sized(t, newTestModel(t))
	require.Equal(t, "#E07A5F", m.controller.State().Accent)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	got := next.(Model)
	assert.Equal(t, "#3D8F8F", got.controller.State().Accent)

	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	got = next.(Model)
	assert.Equal(t, "#E07A5F", got.controller.State().Accent)
}

func TestSearchModeFiltersSidebar(t *testing.T) {
	m := sized(t, newTestModel(t))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	got := next.(Model)
	require.True(t, got.searching)

	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}})
	got = next.(Model)

	assert.Equal(t, "v", got.filter.Query())
	groups := got.filter.Groups()
	assert.True(t, groups[0].Visible)
	assert.False(t, groups[1].Visible)
}

func TestSearchEscClearsFilter(t *testing.T) {
	m := sized(t, newTestModel(t))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	got := next.(Model)
	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	got = next.(Model)
	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyEsc})
	got = next.(Model)

	assert.False(t, got.searching)
	assert.Empty(t, got.filter.Query())
	assert.False(t, got.filter.NoResults())
}

func TestCopyKeyRaisesToast(t *testing.T) {
	m := sized(t, newTestModel(t))
	m.spy.HandleEntries([]layout.Entry{
		{ID: "colors", Top: 0, Bottom: 200, Ratio: 1, Intersecting: true},
	}, 800)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	got := next.(Model)

	assert.Equal(t, "Copied to clipboard", got.toast)
	assert.NotNil(t, cmd)
}

func TestToastExpiryIgnoresStaleSequence(t *testing.T) {
	m := sized(t, newTestModel(t))
	m.toast = "Copied to clipboard"
	m.toastSeq = 2

	next, _ := m.Update(toastExpiredMsg{Seq: 1})
	got := next.(Model)
	assert.Equal(t, "Copied to clipboard", got.toast)

	next, _ = got.Update(toastExpiredMsg{Seq: 2})
	got = next.(Model)
	assert.Empty(t, got.toast)
}

func TestStaleResizeSnapDropped(t *testing.T) {
	m := sized(t, newTestModel(t))

	next, _ := m.Update(resizeSnapMsg{Width: 80, Height: 24})
	got := next.(Model)

	assert.Equal(t, 100, got.dims.width)
}

func TestViewRendersChrome(t *testing.T) {
	m := sized(t, newTestModel(t))
	out := m.View()

	assert.Contains(t, out, "Acme Brand Book")
	assert.Contains(t, out, "1 Intro")
	assert.Contains(t, out, "Introduction")
}

func TestItemGeometryAccumulatesWidths(t *testing.T) {
	r := &ribbon{
		pad: 2,
		items: []ribbonItem{
			{label: "Intro"},  // width 5+4 = 9
			{label: "Voice"},  // starts at 9
			{label: "Colors"}, // starts at 18
		},
	}

	first := itemGeometry(r, 0)
	assert.Equal(t, 0.0, first.X)
	assert.Equal(t, 9.0, first.Width)

	third := itemGeometry(r, 2)
	assert.Equal(t, 18.0, third.X)
	assert.Equal(t, 10.0, third.Width)
}
