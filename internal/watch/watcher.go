// Package watch triggers a full retrain when the corpus file on disk changes.
// Editors often write a file several times per save, so events are debounced.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// CorpusWatcher calls onChange once a burst of writes to a single file settles.
type CorpusWatcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(path string)
	logger   *zap.Logger
}

// New watches path. The parent directory is watched rather than the file so
// that atomic replaces (write temp, rename over) are noticed too.
func New(path string, debounce time.Duration, onChange func(path string), logger *zap.Logger) (*CorpusWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &CorpusWatcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Run delivers change notifications until ctx is done, then closes the watcher.
func (w *CorpusWatcher) Run(ctx context.Context) {
	defer w.fw.Close()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.logger.Debug("Corpus changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				fire = time.After(w.debounce)
			}
		case <-fire:
			fire = nil
			w.onChange(w.path)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Corpus watcher error", zap.Error(err))
		}
	}
}
