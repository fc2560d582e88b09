package main

import (
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kylesnowschwartz/tail-tools/parser"
)

// watcherDebounce is the delay after the last write event before the
// transcript is re-read. Tool call round-trips arrive as bursts of writes.
const watcherDebounce = 250 * time.Millisecond

// tailUpdateMsg carries the full message list after an incremental read.
// Results are linked against every call seen so far, so earlier cards can
// change too; the model rebuilds its cards from the whole list.
type tailUpdateMsg struct {
	messages []parser.Message
	at       time.Time
}

// watcherErrMsg reports errors from the file watcher goroutine.
type watcherErrMsg struct {
	err error
}

// transcriptWatcher follows a JSONL transcript and pushes rebuilt message
// lists through sub.
//
// offset and msgs are only touched by the run goroutine. Timer callbacks
// send on signals instead of reading directly.
type transcriptWatcher struct {
	path    string
	offset  int64
	msgs    []parser.Message
	sub     chan tailUpdateMsg
	errc    chan error
	done    chan struct{}
	signals chan struct{} // capacity 1
	log     *slog.Logger

	mu       sync.Mutex // guards debounce
	debounce *time.Timer
	stopOnce sync.Once
}

// newTranscriptWatcher resumes from offset with the messages already read
// from before it.
func newTranscriptWatcher(path string, initial []parser.Message, offset int64, log *slog.Logger) *transcriptWatcher {
	if log == nil {
		log = slog.Default()
	}
	return &transcriptWatcher{
		path:    path,
		offset:  offset,
		msgs:    initial,
		sub:     make(chan tailUpdateMsg, 1),
		errc:    make(chan error, 1),
		done:    make(chan struct{}),
		signals: make(chan struct{}, 1),
		log:     log,
	}
}

// stop ends the run goroutine and cancels any pending debounce.
func (w *transcriptWatcher) stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
	})
}

// sendSignal is a non-blocking send; a pending signal already covers this one.
func (w *transcriptWatcher) sendSignal() {
	select {
	case w.signals <- struct{}{}:
	default:
	}
}

// run is the fsnotify loop. It closes sub and errc on exit so the blocked
// waitFor* commands return.
func (w *transcriptWatcher) run() {
	defer close(w.sub)
	defer close(w.errc)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.errc <- err
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.path); err != nil {
		w.errc <- err
		return
	}
	w.log.Debug("watching transcript", "path", w.path, "offset", w.offset)

	for {
		select {
		case <-w.done:
			return

		case <-w.signals:
			w.readAndRebuild()

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.mu.Lock()
				if w.debounce != nil {
					w.debounce.Stop()
				}
				w.debounce = time.AfterFunc(watcherDebounce, w.sendSignal)
				w.mu.Unlock()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Forward to the TUI; stderr would bleed through the alt screen.
			w.reportErr(err)
		}
	}
}

// readAndRebuild reads what was appended since the last offset and sends the
// linked list. A truncated or replaced file is read again from the start.
func (w *transcriptWatcher) readAndRebuild() {
	newMsgs, newOffset, err := parser.ReadIncremental(w.path, w.offset)
	truncated := errors.Is(err, parser.ErrTruncated)
	if truncated {
		w.log.Info("transcript truncated, re-reading", "path", w.path, "offset", w.offset)
		w.offset, w.msgs = 0, nil
		newMsgs, newOffset, err = parser.ReadIncremental(w.path, 0)
	}
	if err != nil {
		w.reportErr(err)
		return
	}
	if !truncated && len(newMsgs) == 0 && newOffset == w.offset {
		return
	}
	w.log.Debug("tail read", "messages", len(newMsgs), "from", w.offset, "to", newOffset)
	w.offset = newOffset
	w.msgs = append(w.msgs, newMsgs...)

	// The model keeps the slice it receives; link a copy so the next append
	// never writes under it.
	update := tailUpdateMsg{
		messages: parser.LinkResults(slices.Clone(w.msgs)),
		at:       time.Now(),
	}

	// Drop a stale update the receiver has not consumed yet.
	select {
	case w.sub <- update:
	default:
		select {
		case <-w.sub:
		default:
		}
		w.sub <- update
	}
}

func (w *transcriptWatcher) reportErr(err error) {
	w.log.Debug("watcher error", "path", w.path, "err", err)
	select {
	case w.errc <- err:
	default:
	}
}

// waitForTailUpdate blocks on the subscription channel. Returns nil once the
// watcher has stopped.
func waitForTailUpdate(sub chan tailUpdateMsg) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-sub
		if !ok {
			return nil
		}
		return u
	}
}

// waitForWatcherErr blocks on the error channel. Returns nil once the
// watcher has stopped.
func waitForWatcherErr(errc chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-errc
		if !ok {
			return nil
		}
		return watcherErrMsg{err: err}
	}
}
