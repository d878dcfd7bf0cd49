// Package notifier broadcasts theme publication events to subscribers,
// such as the preview server's SSE streams.
package notifier

import "sync"

// Event describes a newly published theme.
type Event struct {
	// Fingerprint identifies the theme content.
	Fingerprint string
	// Overrides lists the applied overrides in order.
	Overrides []string
}

// Notifier broadcasts events to all subscribed listeners.
// Each listener holds at most one pending event; a newer event replaces
// an unread one, so slow listeners always see the latest theme.
type Notifier struct {
	mu        sync.Mutex
	listeners map[chan Event]struct{}
}

// New creates a new Notifier instance.
func New() *Notifier {
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel that receives events.
// The caller must call Unsubscribe when done to prevent goroutine leaks.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
// Unsubscribing twice is a no-op.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Len returns the number of subscribed listeners.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Broadcast sends ev to all listeners without blocking.
func (n *Notifier) Broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Drop the stale event and deliver the new one.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
