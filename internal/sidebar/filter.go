// Package sidebar models the navigation list: grouped entries, the live
// search filter with match highlighting, and the active-link state driven
// by the scroll spy. Rendering is left to the caller; the filter exposes
// structured match segments instead of rewritten markup so highlighted
// output cannot be corrupted by entry text.
package sidebar

import "strings"

// Match is the segmentation of an entry label around the first query
// occurrence. When Found is false the original label renders untouched.
type Match struct {
	Found  bool
	Before string
	Text   string
	After  string
}

// Entry is one navigation link. Icon, when present, is preserved verbatim
// in front of the (possibly highlighted) label.
type Entry struct {
	Label  string
	Icon   string
	Target string

	Visible bool
	Active  bool
	Match   Match
}

// Group is a collapsible set of entries. A group with no visible entries
// under a non-empty query is hidden entirely.
type Group struct {
	Title     string
	Collapsed bool
	Visible   bool
	Entries   []*Entry
}

// Filter owns the query state across all groups.
type Filter struct {
	groups    []*Group
	query     string
	noResults bool
}

// NewFilter creates a filter over the given groups with everything visible.
func NewFilter(groups []*Group) *Filter {
	f := &Filter{groups: groups}
	f.Apply("")
	return f
}

// Groups returns the filtered groups for rendering.
func (f *Filter) Groups() []*Group {
	return f.groups
}

// Query returns the normalized active query.
func (f *Filter) Query() string {
	return f.query
}

// NoResults reports whether a non-empty query matched nothing.
func (f *Filter) NoResults() bool {
	return f.noResults
}

// Apply filters all entries against query. The empty query restores every
// entry's original content and visibility. A non-empty query shows an
// entry iff its lower-cased label contains the lower-cased query, splits
// its label around the first occurrence for highlighting, hides groups
// with no visible entries, and force-expands collapsed groups that contain
// a match so results stay reachable.
func (f *Filter) Apply(query string) {
	f.query = strings.ToLower(strings.TrimSpace(query))

	visibleTotal := 0
	for _, group := range f.groups {
		visibleInGroup := 0
		for _, entry := range group.Entries {
			entry.Match = Match{}
			if f.query == "" {
				entry.Visible = true
				visibleInGroup++
				continue
			}

			idx := strings.Index(strings.ToLower(entry.Label), f.query)
			if idx < 0 {
				entry.Visible = false
				continue
			}

			start, end := matchBounds(entry.Label, idx, len(f.query))
			entry.Visible = true
			entry.Match = Match{
				Found:  true,
				Before: entry.Label[:start],
				Text:   entry.Label[start:end],
				After:  entry.Label[end:],
			}
			visibleInGroup++
		}

		group.Visible = f.query == "" || visibleInGroup > 0
		if f.query != "" && group.Visible && group.Collapsed {
			group.Collapsed = false
		}
		visibleTotal += visibleInGroup
	}

	f.noResults = f.query != "" && visibleTotal == 0
}

// matchBounds maps a byte range located in the lower-cased label back to
// byte offsets in the original. Lower-casing can change a rune's byte
// length (İ becomes a two-rune sequence), so the lowered offsets cannot
// slice the original label directly.
func matchBounds(label string, idx, length int) (int, int) {
	start, lowered := -1, 0
	for p, r := range label {
		if lowered >= idx+length && start >= 0 {
			return start, p
		}
		if start < 0 && lowered >= idx {
			start = p
		}
		lowered += len(strings.ToLower(string(r)))
	}
	if start < 0 {
		start = len(label)
	}
	return start, len(label)
}

// Clear resets to the empty-query state.
func (f *Filter) Clear() {
	f.Apply("")
}

// SetActive marks the entries bound to target as active and all others
// inactive. An empty target clears every highlight.
func (f *Filter) SetActive(target string) {
	for _, group := range f.groups {
		for _, entry := range group.Entries {
			entry.Active = target != "" && entry.Target == target
		}
	}
}

// ActiveEntry returns the currently highlighted entry, if any.
func (f *Filter) ActiveEntry() (*Entry, bool) {
	for _, group := range f.groups {
		for _, entry := range group.Entries {
			if entry.Active {
				return entry, true
			}
		}
	}
	return nil, false
}
