// Package watch reloads the corpus when its files change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reloading.
const DefaultDebounce = 250 * time.Millisecond

// Watcher monitors a corpus file or directory and calls reload after
// changes settle.
type Watcher struct {
	path     string
	include  []string
	debounce time.Duration
	reload   func() error
	log      *logrus.Entry

	// set by Run
	root string
	file string
}

// New creates a watcher for the corpus at path. include holds doublestar
// patterns, relative to a directory corpus, selecting the files whose
// changes trigger a reload.
func New(path string, include []string, reload func() error, log *logrus.Entry) *Watcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Watcher{
		path:     path,
		include:  include,
		debounce: DefaultDebounce,
		reload:   reload,
		log:      log.WithField("component", "watcher"),
	}
}

// SetDebounce changes the settle delay.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.path)
	if err != nil {
		return fmt.Errorf("failed to stat corpus: %w", err)
	}

	if info.IsDir() {
		w.root = filepath.Clean(w.path)
		w.file = ""
	} else {
		// Editors replace files by rename, so watch the parent.
		w.root = filepath.Dir(filepath.Clean(w.path))
		w.file = filepath.Clean(w.path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addWatches(fsw); err != nil {
		return err
	}
	w.log.WithField("path", w.path).Info("Watching corpus")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.file == "" && event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := fsw.Add(event.Name); err != nil {
						w.log.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
					}
					continue
				}
			}
			if !w.matches(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			w.log.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("Corpus change")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("File watcher error")

		case <-fire:
			fire = nil
			if err := w.reload(); err != nil {
				w.log.WithError(err).Error("Corpus reload failed")
				continue
			}
			w.log.Info("Corpus reloaded")
		}
	}
}

func (w *Watcher) addWatches(fsw *fsnotify.Watcher) error {
	if w.file != "" {
		if err := fsw.Add(w.root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", w.root, err)
		}
		return nil
	}

	return filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// matches reports whether a change to path should trigger a reload
func (w *Watcher) matches(path string) bool {
	path = filepath.Clean(path)
	if w.file != "" {
		return path == w.file
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
