package driver

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/cfgopt/errors"
	"github.com/teranos/cfgopt/logger"
	"github.com/teranos/cfgopt/schema"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// ResultFunc receives the outcome of every regeneration
type ResultFunc func(*Result, error)

// Watcher reruns the pipeline whenever the schema file changes
type Watcher struct {
	opts     Options
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onResult ResultFunc
}

// NewWatcher watches the directory holding opts.SchemaPath. The directory is
// watched rather than the file so editors that save by rename keep working.
func NewWatcher(opts Options, onResult ResultFunc) (*Watcher, error) {
	path := opts.SchemaPath
	if path == "" {
		path = schema.DefaultFile
	}
	if path == "-" {
		return nil, errors.New("cannot watch stdin")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.WrapSourceUnavailable(err, path)
	}

	return &Watcher{
		opts:     opts,
		path:     abs,
		watcher:  fw,
		debounce: DefaultDebounce,
		onResult: onResult,
	}, nil
}

// Run generates once, then again after every change, until ctx is done.
// Failed generations are reported to the callback and watching goes on.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	log := logger.ComponentLogger("watch")

	w.generate()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || abs != w.path {
				continue
			}

			log.Debugw("Schema changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.generate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) generate() {
	result, err := Run(w.opts)
	if w.onResult != nil {
		w.onResult(result, err)
	}
}
