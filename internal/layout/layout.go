// Package layout provides viewport-intersection math over abstract layout
// units. The scroll spy and the reveal animator both consume snapshots of
// which targets currently intersect the viewport; this package computes
// those snapshots from document geometry, mirroring the semantics of
// viewport-intersection observation without owning any rendering.
package layout

// Viewport is the visible window over the document: Top is the scroll
// offset in document coordinates, Height the visible extent.
type Viewport struct {
	Top    float64
	Height float64
}

// Box is a target's extent in document coordinates.
type Box struct {
	Top    float64
	Height float64
}

// Bottom returns the box's bottom edge in document coordinates.
func (b Box) Bottom() float64 {
	return b.Top + b.Height
}

// Target is an observable region with a stable identifier.
type Target struct {
	ID  string
	Box Box
}

// Margins expand the observation region beyond the viewport edges.
// Positive values grow the region in the named direction.
type Margins struct {
	Top    float64
	Bottom float64
}

// Entry is one target's intersection state. Top and Bottom are
// viewport-relative: a Top of 0 means the target's top edge sits exactly at
// the top of the viewport, negative means scrolled above it.
type Entry struct {
	ID           string
	Top          float64
	Bottom       float64
	Ratio        float64
	Intersecting bool
}

// Observe computes intersection entries for every target against the
// viewport expanded by margins. A target counts as intersecting when its
// overlap is positive and its visible ratio meets the threshold; a
// threshold of zero admits any positive overlap. Entries preserve target
// order.
func Observe(vp Viewport, m Margins, threshold float64, targets []Target) []Entry {
	regionTop := vp.Top - m.Top
	regionBottom := vp.Top + vp.Height + m.Bottom

	entries := make([]Entry, 0, len(targets))
	for _, t := range targets {
		entry := Entry{
			ID:     t.ID,
			Top:    t.Box.Top - vp.Top,
			Bottom: t.Box.Bottom() - vp.Top,
		}

		overlap := min(t.Box.Bottom(), regionBottom) - max(t.Box.Top, regionTop)
		if overlap > 0 {
			if t.Box.Height > 0 {
				entry.Ratio = min(overlap/t.Box.Height, 1)
			} else {
				entry.Ratio = 1
			}
			entry.Intersecting = entry.Ratio >= threshold && entry.Ratio > 0
		}

		entries = append(entries, entry)
	}

	return entries
}
