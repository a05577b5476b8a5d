package viewer

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ConfigWatcher calls onChange whenever the watched file is written or
// replaced. The parent directory is watched because editors often save by
// renaming a temporary file over the original.
type ConfigWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func()
	log      *zap.Logger
	done     chan struct{}
}

// WatchConfig starts watching path. onChange runs on the watcher goroutine.
func WatchConfig(path string, onChange func(), log *zap.Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{
		path:     abs,
		watcher:  w,
		onChange: onChange,
		log:      log,
		done:     make(chan struct{}),
	}
	go cw.run()

	log.Info("watching config", zap.String("path", abs))
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				cw.log.Debug("config changed", zap.String("op", ev.Op.String()))
				cw.onChange()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and waits for the event goroutine to exit.
func (cw *ConfigWatcher) Close() error {
	err := cw.watcher.Close()
	<-cw.done
	return err
}
