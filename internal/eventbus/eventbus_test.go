package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, b EventBus, eventType EventType) (func() []DomainEvent, func()) {
	t.Helper()
	var mu sync.Mutex
	var got []DomainEvent
	unsubscribe := b.Subscribe(eventType, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})
	return func() []DomainEvent {
		mu.Lock()
		defer mu.Unlock()
		out := make([]DomainEvent, len(got))
		copy(out, got)
		return out
	}, unsubscribe
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New()
	defer b.Close()

	events, _ := collect(t, b, EventChange)

	for i := 0; i < 5; i++ {
		b.Publish(ChangeEvent{Source: "single", Value: i})
	}

	require.Eventually(t, func() bool { return len(events()) == 5 }, time.Second, 5*time.Millisecond)
	for i, e := range events() {
		require.Equal(t, i, e.(ChangeEvent).Value)
	}
}

func TestSubscribeFiltersByType(t *testing.T) {
	b := New()
	defer b.Close()

	changes, _ := collect(t, b, EventChange)
	saves, _ := collect(t, b, EventConfigSaved)

	b.Publish(ConfigSavedEvent{Path: "/tmp/x.toml"})
	b.Publish(ChangeEvent{Source: "multi"})

	require.Eventually(t, func() bool {
		return len(changes()) == 1 && len(saves()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	defer b.Close()

	kept, _ := collect(t, b, EventChange)
	dropped, unsubscribe := collect(t, b, EventChange)
	unsubscribe()

	b.Publish(ChangeEvent{Source: "single"})

	require.Eventually(t, func() bool { return len(kept()) == 1 }, time.Second, 5*time.Millisecond)
	require.Empty(t, dropped())
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New()
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	errs, _ := collect(t, b, EventError)

	b.Publish(ErrorEvent{Message: "first"})
	b.Publish(ErrorEvent{Message: "second"})

	require.Eventually(t, func() bool { return len(errs()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New()
	events, _ := collect(t, b, EventChange)
	b.Close()

	b.Publish(ChangeEvent{Source: "single"})
	time.Sleep(20 * time.Millisecond)
	require.Empty(t, events())

	// closing twice is harmless
	b.Close()
}
