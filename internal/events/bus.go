// Package events carries out-of-band notifications from the engine to
// whoever renders its UI.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dkeye/videoapi/internal/core"
)

// Kind identifies the type of event.
type Kind string

const (
	ConferenceWillJoin  Kind = "conference_will_join"
	ConferenceJoined    Kind = "conference_joined"
	ConferenceLeft      Kind = "conference_left"
	ConferenceFailed    Kind = "conference_failed"
	DeepLinkResolved    Kind = "deep_link_resolved"
	MediaStateChanged   Kind = "media_state_changed"
	DevicesListUpdated  Kind = "devices_list_updated"
	CommandDispatchFail Kind = "command_dispatch_failed"
)

// Event is an immutable notification.
type Event struct {
	ID        string
	Kind      Kind
	SessionID core.SessionID
	Timestamp time.Time
	Data      any
	Err       error
}

// New stamps an event with an ID and the current time.
func New(kind Kind, sid core.SessionID, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		SessionID: sid,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (e Event) WithErr(err error) Event {
	e.Err = err
	return e
}

func (e Event) MarshalJSON() ([]byte, error) {
	out := struct {
		ID        string         `json:"id"`
		Type      Kind           `json:"type"`
		SessionID core.SessionID `json:"sessionId,omitempty"`
		Timestamp int64          `json:"timestamp"`
		Data      any            `json:"data,omitempty"`
		Error     string         `json:"error,omitempty"`
	}{
		ID:        e.ID,
		Type:      e.Kind,
		SessionID: e.SessionID,
		Timestamp: e.Timestamp.UnixMilli(),
		Data:      e.Data,
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return json.Marshal(out)
}

// Subscription receives events from a Bus.
type Subscription struct {
	C  <-chan Event
	ch chan Event
}

// Bus fans out events to all active subscribers. It is safe for
// concurrent use.
type Bus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe creates a subscription with the given buffer size. The caller
// reads from sub.C and eventually calls Unsubscribe.
func (b *Bus) Subscribe(bufSize int) *Subscription {
	ch := make(chan Event, bufSize)
	sub := &Subscription{C: ch, ch: ch}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscription and closes its channel.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// Publish sends e to every subscriber. A subscriber with a full buffer
// misses the event; publishers never block.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}
