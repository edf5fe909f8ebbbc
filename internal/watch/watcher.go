// Package watch reloads the brand book while the viewer is running. The
// watcher observes the document's directory and coalesces rapid editor
// write bursts into a single reload signal.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lensbook/lensbook/internal/logger"
)

const debounceInterval = 200 * time.Millisecond

// Watcher emits a signal on Events whenever the watched file changes.
type Watcher struct {
	fsw    *fsnotify.Watcher
	log    *logger.Logger
	path   string
	events chan struct{}
}

// New watches the file at path. Watching the parent directory rather than
// the file itself survives the rename-and-replace pattern editors use.
func New(path string, log *logger.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:    fsw,
		log:    log,
		path:   abs,
		events: make(chan struct{}, 1),
	}
	go w.loop()

	return w, nil
}

// Events delivers one signal per coalesced change burst.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.matches(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerC = timer.C
				continue
			}
			if !timer.Stop() {
				select {
				case <-timerC:
				default:
				}
			}
			timer.Reset(debounceInterval)

		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error(err, "document watch error")
		}
	}
}

func (w *Watcher) matches(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
