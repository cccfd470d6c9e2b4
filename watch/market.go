package watch

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marbleseoul/server/market"
)

const debounceInterval = 100 * time.Millisecond

// MarketWatcher reloads the market store when its CSV files change on
// disk and notifies subscribers after every successful reload. Editor
// write bursts are debounced.
type MarketWatcher struct {
	store   *market.Store
	watcher *fsnotify.Watcher
	eventCh chan struct{}

	timerMu sync.Mutex
	timer   *time.Timer

	*BaseWatcher
}

func NewMarketWatcher(store *market.Store) *MarketWatcher {
	w := &MarketWatcher{
		BaseWatcher: NewBaseWatcher("mk"),
		store:       store,
		eventCh:     make(chan struct{}, 16),
	}
	store.AddOnReloadListener(w.onReload)
	return w
}

// Start begins watching the store's data directory. The watcher still
// relays manual reloads when the directory cannot be watched.
func (w *MarketWatcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(w.store.Dir()); err != nil {
		fsw.Close()
		return err
	}
	w.watcher = fsw

	go w.fsLoop()
	go w.eventLoop()
	slog.Info("MarketWatcher started", "dir", w.store.Dir())
	return nil
}

func (w *MarketWatcher) Stop() {
	w.Cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()
	slog.Info("MarketWatcher stopped")
}

func (w *MarketWatcher) fsLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("market watcher error", "error", err)
		}
	}
}

// scheduleReload coalesces rapid write events into one reload.
func (w *MarketWatcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceInterval, func() {
		if w.Context().Err() != nil {
			return
		}
		if err := w.store.Reload(); err != nil {
			slog.Error("market reload failed, keeping previous data", "error", err)
		}
	})
}

// onReload runs from the store's listener; hand off to the event loop.
func (w *MarketWatcher) onReload() {
	if w.Context().Err() != nil {
		return
	}
	select {
	case w.eventCh <- struct{}{}:
	default:
		slog.Warn("market reload event dropped (buffer full)")
	}
}

func (w *MarketWatcher) eventLoop() {
	for {
		select {
		case <-w.Context().Done():
			return
		case <-w.eventCh:
			w.notifyReload()
		}
	}
}

type marketUpdatedParams struct {
	ID        string `json:"id"`
	Month     int    `json:"month"`
	Districts int    `json:"districts"`
}

func (w *MarketWatcher) notifyReload() {
	if !w.HasSubscriptions() {
		return
	}
	snap := w.store.Snapshot()
	if snap == nil {
		return
	}

	sent := w.NotifyAll("market.updated", func(sub *Subscription) any {
		return marketUpdatedParams{
			ID:        sub.ID,
			Month:     snap.Month,
			Districts: len(snap.Ranking),
		}
	})
	slog.Debug("notified market reload", "subscribers", sent)
}

// Subscribe registers a subscriber and returns the subscription ID.
func (w *MarketWatcher) Subscribe(notifier Notifier) string {
	id := w.GenerateID()
	w.AddSubscription(&Subscription{ID: id, Notifier: notifier})
	return id
}
