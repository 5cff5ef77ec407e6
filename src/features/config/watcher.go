package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const debounceDelay = 2 * time.Second

// Watcher reloads the configuration file into the Manager when it changes
// on disk, so timeout, cache and rate-limit tuning apply without a restart.
type Watcher struct {
	watcher       *fsnotify.Watcher
	manager       *Manager
	path          string
	debounceTimer *time.Timer
	debounceMutex sync.Mutex
	stopChan      chan struct{}
}

// NewWatcher creates a watcher for the given config file path.
func NewWatcher(manager *Manager, path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsWatcher,
		manager:  manager,
		path:     path,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched because editors
// replace files via rename, which drops a watch on the file itself.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.watchLoop()
	slog.Info("Config watcher started", "path", w.path)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.debounceMutex.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceMutex.Unlock()
	w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", "error", err)
		case <-w.stopChan:
			return
		}
	}
}

// scheduleReload debounces bursts of write events into a single reload.
func (w *Watcher) scheduleReload() {
	w.debounceMutex.Lock()
	defer w.debounceMutex.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	f, err := os.Open(w.path)
	if err != nil {
		slog.Error("Config reload failed to open file", "path", w.path, "error", err)
		return
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		slog.Error("Config reload failed to parse, keeping current config", "error", err)
		return
	}
	if err := validator.New().Struct(cfg); err != nil {
		slog.Error("Config reload failed validation, keeping current config", "error", err)
		return
	}
	applyEnvOverrides(&cfg)
	w.manager.Update(&cfg)
	slog.Info("Configuration reloaded", "path", w.path)
}
