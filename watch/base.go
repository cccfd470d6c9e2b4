// Package watch pushes server-side changes to subscribed clients:
// session state updates and market data reloads.
package watch

import (
	"context"
	"log/slog"
	"sync"
)

// Subscription pairs a subscriber ID with its notification channel.
type Subscription struct {
	ID       string
	Notifier Notifier
	// SessionID scopes a subscription to one session; empty matches all.
	SessionID string
}

// BaseWatcher provides subscription bookkeeping shared by all watchers.
type BaseWatcher struct {
	idPrefix string

	subMu         sync.RWMutex
	subscriptions map[string]*Subscription

	ctx    context.Context
	cancel context.CancelFunc
}

func NewBaseWatcher(idPrefix string) *BaseWatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &BaseWatcher{
		idPrefix:      idPrefix,
		subscriptions: make(map[string]*Subscription),
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (b *BaseWatcher) GenerateID() string {
	return generateIDWithPrefix(b.idPrefix)
}

func (b *BaseWatcher) AddSubscription(sub *Subscription) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subscriptions[sub.ID] = sub
}

func (b *BaseWatcher) RemoveSubscription(id string) *Subscription {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	sub, ok := b.subscriptions[id]
	if !ok {
		return nil
	}
	delete(b.subscriptions, id)
	return sub
}

func (b *BaseWatcher) GetAllSubscriptions() []*Subscription {
	b.subMu.RLock()
	defer b.subMu.RUnlock()

	subs := make([]*Subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	return subs
}

func (b *BaseWatcher) HasSubscriptions() bool {
	b.subMu.RLock()
	defer b.subMu.RUnlock()
	return len(b.subscriptions) > 0
}

// NotifyAll sends method to every subscription matchFn accepts. A nil
// makeParams result skips that subscriber.
func (b *BaseWatcher) NotifyAll(method string, makeParams func(sub *Subscription) any) int {
	sent := 0
	for _, sub := range b.GetAllSubscriptions() {
		params := makeParams(sub)
		if params == nil {
			continue
		}
		n := Notification{Method: method, Params: params}
		if err := sub.Notifier.Notify(context.Background(), n); err != nil {
			slog.Debug("failed to notify subscriber", "id", sub.ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

func (b *BaseWatcher) Context() context.Context { return b.ctx }
func (b *BaseWatcher) Cancel()                  { b.cancel() }

func (b *BaseWatcher) Unsubscribe(id string) {
	b.RemoveSubscription(id)
}
