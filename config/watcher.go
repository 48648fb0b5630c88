package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zannen/toml"

	"code.openvenue.io/engine/logging"
)

const (
	configFileName = "config.toml"
	namedLogger    = "cfgwatcher"
)

// Watcher is looking for updates in the configuration file.
type Watcher struct {
	log  *logging.Logger
	cfg  Config
	path string

	// to be used as an atomic
	hasChanged         int32
	cfgUpdateListeners []func(Config)
	mu                 sync.Mutex
}

// NewWatcher instantiates a new watcher over the config.toml file found in
// the given directory.
func NewWatcher(ctx context.Context, log *logging.Logger, dir string) (*Watcher, error) {
	watcherlog := log.Named(namedLogger)
	// set this logger to debug level as we want to be notified of any
	// configuration change at any time
	watcherlog.SetLevel(logging.DebugLevel)
	w := &Watcher{
		log:                watcherlog,
		cfg:                NewDefaultConfig(),
		path:               filepath.Join(dir, configFileName),
		cfgUpdateListeners: []func(Config){},
	}

	if err := w.load(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(w.path); err != nil {
		return nil, err
	}

	w.log.Info("config watcher started successfully",
		logging.String("config", w.path))

	go w.watch(ctx, watcher)

	return w, nil
}

// Get returns the last loaded configuration.
func (w *Watcher) Get() Config {
	w.mu.Lock()
	conf := w.cfg
	w.mu.Unlock()
	return conf
}

// OnConfigUpdate registers a function to be called when the configuration
// is updated.
func (w *Watcher) OnConfigUpdate(fns ...func(Config)) {
	w.mu.Lock()
	w.cfgUpdateListeners = append(w.cfgUpdateListeners, fns...)
	w.mu.Unlock()
}

func (w *Watcher) notify() {
	if atomic.LoadInt32(&w.hasChanged) == 0 {
		return
	}
	atomic.StoreInt32(&w.hasChanged, 0)
	cfg := w.Get()
	for _, f := range w.cfgUpdateListeners {
		f(cfg)
	}
}

func (w *Watcher) load() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf, err := os.ReadFile(w.path)
	if err != nil {
		return err
	}
	if _, err := toml.Decode(string(buf), &w.cfg); err != nil {
		return err
	}
	return nil
}

func (w *Watcher) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()
	for {
		select {
		case event := <-watcher.Events:
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Rename == fsnotify.Rename {
				if event.Op&fsnotify.Rename == fsnotify.Rename {
					// editors like vi do not write in place, they create a
					// temporary file, delete the original, then rename. If
					// we reload as soon as the event arrives the file is
					// not always there yet.
					debounce := w.Get().Watcher.RenameDebounce
					time.Sleep(debounce.Get())
				}
				w.log.Info("configuration updated", logging.String("event", event.Name))
				if err := w.load(); err != nil {
					w.log.Error("unable to load configuration", logging.Error(err))
					continue
				}
				atomic.StoreInt32(&w.hasChanged, 1)
				w.notify()
			}
		case err := <-watcher.Errors:
			w.log.Error("config watcher received error event", logging.Error(err))
		case <-ctx.Done():
			return
		}
	}
}
