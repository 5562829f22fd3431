// Package events is a small in-process publish/subscribe bus that lets
// unrelated surfaces (a header button, an HTTP handler) ask the terminal to
// open without holding a reference to it.
package events

import "sync"

// Topic names a broadcast signal.
type Topic string

const (
	// TopicOpenTerminal asks every attached terminal to become visible.
	TopicOpenTerminal Topic = "open-terminal"
	// TopicLockoutChanged announces that the persisted lockout record was
	// written or cleared by someone else.
	TopicLockoutChanged Topic = "lockout-changed"
)

// Handler reacts to a published topic. Topics carry no payload.
type Handler func()

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans published topics out to subscribers. The zero value is not usable;
// call New.
type Bus struct {
	mu   sync.Mutex
	next uint64
	subs map[Topic][]subscription
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers h for topic and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[topic]
	for i, s := range list {
		if s.id == id {
			b.subs[topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish invokes every handler subscribed to topic, in subscription order,
// on the caller's goroutine. Handlers may subscribe or unsubscribe while being
// invoked. It returns the number of handlers called.
func (b *Bus) Publish(topic Topic) int {
	b.mu.Lock()
	list := append([]subscription(nil), b.subs[topic]...)
	b.mu.Unlock()

	for _, s := range list {
		s.handler()
	}
	return len(list)
}

// Len reports how many handlers are subscribed to topic.
func (b *Bus) Len(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
