package config

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the pack table override file and calls onChange when its
// mtime moves forward. The server uses it to hot-reload prices and odds.
type FileWatcher struct {
	paths    []string
	interval time.Duration
	onChange func(path string)
	seen     map[string]time.Time
}

// NewFileWatcher records the current mtimes, so only later edits fire.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(path string)) *FileWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	w := &FileWatcher{
		paths:    paths,
		interval: interval,
		onChange: onChange,
		seen:     make(map[string]time.Time, len(paths)),
	}
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			w.seen[p] = fi.ModTime()
		}
	}
	return w
}

// Run polls until ctx is cancelled.
func (w *FileWatcher) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.poll()
		}
	}
}

// poll fires for files that changed or appeared since the last poll.
// A file that disappears is ignored until it comes back.
func (w *FileWatcher) poll() {
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		last, ok := w.seen[p]
		if ok && !fi.ModTime().After(last) {
			continue
		}
		w.seen[p] = fi.ModTime()
		if w.onChange != nil {
			w.onChange(p)
		}
	}
}
