package theme

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/leapstack-labs/leaptoken/internal/notifier"
	"github.com/leapstack-labs/leaptoken/pkg/token"
)

// Event is delivered to subscribers after a theme is published.
type Event = notifier.Event

// Provider holds the active theme. Readers load it lock-free; a new theme
// is published by swapping the pointer, so a reader sees either the old
// theme or the new one and never a mix of both.
//
// Publishes are serialized so subscribers receive events in the order the
// themes were stored.
type Provider struct {
	mu       sync.Mutex
	current  atomic.Pointer[Resolved]
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewProvider creates a Provider publishing initial. A nil initial theme
// is replaced by an empty one.
func NewProvider(initial *Resolved, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if initial == nil {
		initial = FromSet(token.MustNewSet())
	}
	p := &Provider{notifier: notifier.New(), logger: logger}
	p.current.Store(initial)
	return p
}

// Current returns the active theme. Never returns nil.
func (p *Provider) Current() *Resolved {
	return p.current.Load()
}

// Swap publishes next and returns the theme it replaced.
// A nil next is ignored and the current theme is returned.
func (p *Provider) Swap(next *Resolved) *Resolved {
	if next == nil {
		return p.Current()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	prev := p.current.Swap(next)
	p.logger.Info("theme published",
		slog.String("fingerprint", next.Fingerprint()),
		slog.Any("overrides", next.Overrides()),
	)
	p.notifier.Broadcast(Event{Fingerprint: next.Fingerprint(), Overrides: next.Overrides()})
	return prev
}

// Recompose composes base with overrides and publishes the result.
// On error the active theme is left in place.
func (p *Provider) Recompose(base *token.Set, overrides ...Override) (*Resolved, error) {
	next, err := Compose(base, overrides...)
	if err != nil {
		p.logger.Warn("theme composition failed, keeping active theme",
			slog.String("fingerprint", p.Current().Fingerprint()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	p.Swap(next)
	return next, nil
}

// Subscribe returns a channel that receives an Event after each publish.
// The caller must call Unsubscribe when done.
func (p *Provider) Subscribe() chan Event {
	return p.notifier.Subscribe()
}

// Unsubscribe removes and closes a subscription channel.
func (p *Provider) Unsubscribe(ch chan Event) {
	p.notifier.Unsubscribe(ch)
}
