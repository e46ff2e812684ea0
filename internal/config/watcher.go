package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/douglasdamasio/nbaterm/internal/logger"
)

// Watcher watches the config file and reloads it on change, so edits to
// refresh mode or favorite team apply without a restart.
type Watcher struct {
	path          string
	watcher       *fsnotify.Watcher
	events        chan *Config
	stop          chan struct{}
	debounceTimer *time.Timer
}

// Watch starts watching the config file at path. Reloaded configs arrive on
// Events; a file that fails to reload is logged and skipped.
func Watch(path string) (*Watcher, error) {
	if path == "" {
		path = DefaultPath()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace the file on save, which would
	// drop a watch on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fw,
		events:  make(chan *Config, 4),
		stop:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers each successfully reloaded config.
func (w *Watcher) Events() <-chan *Config {
	return w.events
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if w.debounceTimer != nil {
					w.debounceTimer.Stop()
				}
				w.debounceTimer = time.AfterFunc(debounceInterval, w.reload)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error", "error", err)

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		logger.Warn("config reload failed, keeping previous settings", "path", w.path, "error", err)
		return
	}
	select {
	case w.events <- cfg:
	case <-w.stop:
	}
}
