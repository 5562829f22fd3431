package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	bus := New()
	var got []string
	bus.Subscribe(TopicOpenTerminal, func() { got = append(got, "a") })
	bus.Subscribe(TopicOpenTerminal, func() { got = append(got, "b") })
	bus.Subscribe(TopicLockoutChanged, func() { got = append(got, "other") })

	n := bus.Publish(TopicOpenTerminal)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestUnsubscribeRemovesHandlerOnce(t *testing.T) {
	bus := New()
	calls := 0
	unsub := bus.Subscribe(TopicOpenTerminal, func() { calls++ })
	keep := bus.Subscribe(TopicOpenTerminal, func() {})
	defer keep()

	unsub()
	unsub()

	assert.Equal(t, 1, bus.Len(TopicOpenTerminal))
	bus.Publish(TopicOpenTerminal)
	assert.Equal(t, 0, calls)
}

func TestHandlersMayUnsubscribeDuringPublish(t *testing.T) {
	bus := New()
	calls := 0
	var unsub func()
	unsub = bus.Subscribe(TopicOpenTerminal, func() {
		calls++
		unsub()
	})

	bus.Publish(TopicOpenTerminal)
	bus.Publish(TopicOpenTerminal)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len(TopicOpenTerminal))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := New()
	assert.Equal(t, 0, bus.Publish(TopicOpenTerminal))
	noop := bus.Subscribe(TopicOpenTerminal, nil)
	noop()
	assert.Equal(t, 0, bus.Len(TopicOpenTerminal))
}

func TestConcurrentSubscribePublish(t *testing.T) {
	bus := New()
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := bus.Subscribe(TopicOpenTerminal, func() {
				mu.Lock()
				total++
				mu.Unlock()
			})
			bus.Publish(TopicOpenTerminal)
			unsub()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, bus.Len(TopicOpenTerminal))
	assert.Greater(t, total, 0)
}
