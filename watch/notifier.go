package watch

import "context"

// Notification is one message pushed to a subscriber.
type Notification struct {
	Method string
	Params any
}

// Notifier abstracts how notifications reach a subscriber. WebSocket
// connections use the JSON-RPC notifier; tests plug in recorders.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Watcher is the common unsubscribe surface shared by all watchers.
type Watcher interface {
	Unsubscribe(id string)
}
