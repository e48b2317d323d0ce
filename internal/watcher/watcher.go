// Package watcher reports changes to the draftpad database file made by
// other processes, debounced so a burst of writes yields one event.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/pubsub"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Change is published once per debounced burst of writes.
type Change struct {
	Path string
}

// Config holds watcher options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// Watcher publishes a Change whenever the database or its WAL file is
// written.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	names    map[string]bool
	debounce time.Duration
	broker   *pubsub.Broker[Change]
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for cfg.Path. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	base := filepath.Base(cfg.Path)
	return &Watcher{
		fsw:      fsw,
		path:     cfg.Path,
		names:    map[string]bool{base: true, base + "-wal": true},
		debounce: cfg.Debounce,
		broker:   pubsub.NewBrokerWithBuffer[Change](1),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the database directory in the background.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching", "dir", dir, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Subscribe returns a channel of changes that closes when ctx ends or the
// watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return w.broker.Subscribe(ctx)
}

// Broker exposes the change broker for bubbletea listeners.
func (w *Watcher) Broker() *pubsub.Broker[Change] { return w.broker }

// Stop ends watching. Safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	// Stopped timers never deliver a stale tick (Go 1.23+), so no drain.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Debug(log.CatWatcher, "Database changed", "path", w.path)
			w.broker.Publish(pubsub.UpdatedEvent, Change{Path: w.path})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err)

		case <-w.done:
			return
		}
	}
}

// relevant accepts writes and creates of the database and its WAL file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return w.names[filepath.Base(ev.Name)]
}
