// Package vocabwatch reloads the vocabulary when its directory changes.
//
// A reload that fails, or that parses to the same content as the current
// list, is skipped; the scheduler keeps rotating over the old sequence.
package vocabwatch

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vocabpop/internal/vocab"
	logx "vocabpop/pkg/logx"
)

const (
	defaultDebounce   = 500 * time.Millisecond
	restartBackoffMin = 250 * time.Millisecond
	restartBackoffMax = 5 * time.Second
)

// ReloadFunc parses the vocabulary directory from scratch.
type ReloadFunc func() ([]vocab.Entry, error)

// ApplyFunc hands freshly parsed entries to the consumer (the scheduler).
type ApplyFunc func([]vocab.Entry)

// Watcher watches a vocabulary directory and pushes reloaded entries to
// the scheduler, debouncing editor write bursts.
type Watcher struct {
	dir      string
	log      logx.Logger
	debounce time.Duration
	reload   ReloadFunc
	apply    ApplyFunc

	mu       sync.Mutex
	timer    *time.Timer
	lastHash uint64
}

func New(dir string, reload ReloadFunc, apply ApplyFunc, log logx.Logger) *Watcher {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Watcher{
		dir:      dir,
		log:      log,
		debounce: defaultDebounce,
		reload:   reload,
		apply:    apply,
	}
}

// Prime records the hash of the initially loaded entries so the first
// change event is compared against what the scheduler already has.
func (w *Watcher) Prime(entries []vocab.Entry) {
	w.mu.Lock()
	w.lastHash = hashEntries(entries)
	w.mu.Unlock()
}

// Run watches until ctx is done. A broken watcher is recreated with a
// small backoff, so transient filesystem trouble self-heals.
func (w *Watcher) Run(ctx context.Context) error {
	backoff := restartBackoffMin

	for {
		if ctx.Err() != nil {
			return nil
		}

		fw, err := fsnotify.NewWatcher()
		if err == nil {
			err = fw.Add(w.dir)
			if err != nil {
				_ = fw.Close()
			}
		}
		if err != nil {
			w.log.Warn("vocab watch init failed", logx.Err(err), logx.String("dir", w.dir))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = nextBackoff(backoff)
			continue
		}

		backoff = restartBackoffMin
		w.log.Debug("vocab watcher started", logx.String("dir", w.dir))

		w.loop(ctx, fw)
		_ = fw.Close()

		if ctx.Err() != nil {
			return nil
		}
		w.log.Warn("vocab watcher stopped; restarting", logx.String("dir", w.dir), logx.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
}

// loop drains events until the watcher breaks or ctx is done.
func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.schedule()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.log.Warn("vocab watch error", logx.Err(err), logx.String("dir", w.dir))
			}
		}
	}
}

// schedule arms (or re-arms) the debounce timer; editors tend to emit a
// burst of events per save.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.log.Debug("vocab change detected; scheduling reload", logx.String("dir", w.dir))
	w.timer = time.AfterFunc(w.debounce, w.doReload)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) doReload() {
	entries, err := w.reload()
	if err != nil {
		w.log.Warn("vocab reload failed; keeping current list", logx.Err(err))
		return
	}
	if len(entries) == 0 {
		w.log.Warn("vocab reload produced no entries; keeping current list")
		return
	}

	h := hashEntries(entries)
	w.mu.Lock()
	unchanged := h == w.lastHash
	if !unchanged {
		w.lastHash = h
	}
	w.mu.Unlock()
	if unchanged {
		w.log.Debug("vocab unchanged; skipping reload")
		return
	}

	w.log.Info("vocab reloaded", logx.Int("entries", len(entries)))
	w.apply(entries)
}

func hashEntries(entries []vocab.Entry) uint64 {
	h := fnv.New64a()
	for _, e := range entries {
		h.Write([]byte(e.Word))
		h.Write([]byte{0})
		h.Write([]byte(e.Reading))
		h.Write([]byte{0})
		h.Write([]byte(e.Meaning))
		h.Write([]byte{0})
		h.Write([]byte(e.Codes))
		h.Write([]byte{1})
	}
	return h.Sum64()
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > restartBackoffMax {
		d = restartBackoffMax
	}
	return d
}
