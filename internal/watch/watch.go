// Package watch re-runs a callback when source files under a tree change.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/moodmelody/melodystats/internal/scan"
)

const DefaultDebounce = 300 * time.Millisecond

// Watcher watches every non-excluded directory under Root.
type Watcher struct {
	Root     string
	Filter   scan.Filter
	Debounce time.Duration
	Warn     io.Writer

	fsw *fsnotify.Watcher
}

func New(root string, filter scan.Filter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{Root: root, Filter: filter, Debounce: DefaultDebounce, Warn: io.Discard, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its non-excluded subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.Root && w.Filter.Excluded(w.rel(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			fmt.Fprintf(w.Warn, "  WARN: watch %s: %v\n", path, err)
		}
		return nil
	})
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// relevant reports whether ev can change the report.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	rel := w.rel(ev.Name)
	if w.Filter.Excluded(rel) {
		return false
	}
	if _, ok := w.Filter.MatchExt(filepath.Base(ev.Name)); ok {
		return true
	}
	// a removed or renamed directory may have held matching files
	return ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

// Run calls onChange after each burst of relevant events settles, until ctx
// is cancelled. Errors from onChange are reported and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						fmt.Fprintf(w.Warn, "  WARN: watch %s: %v\n", ev.Name, err)
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(); err != nil {
				fmt.Fprintf(w.Warn, "  WARN: rebuild: %v\n", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w.Warn, "  WARN: watcher: %v\n", err)
		}
	}
}
