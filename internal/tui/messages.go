package tui

import "time"

// frameMsg drives in-flight animations (pill morphs, smooth scrolling) at
// the frame rate while any of them is active.
type frameMsg struct {
	Now time.Time
}

// sweepMsg triggers one pass over the pending-indicator set.
type sweepMsg struct{}

// resizeSnapMsg re-snaps every indicator after the resize debounce.
type resizeSnapMsg struct {
	Width  int
	Height int
}

// toastExpiredMsg dismisses the toast it was scheduled for. Seq guards
// against dismissing a newer toast shown in the meantime.
type toastExpiredMsg struct {
	Seq int
}

// reloadMsg reports a change to the document file.
type reloadMsg struct{}
