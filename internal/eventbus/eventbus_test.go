package eventbus

import (
	"testing"

	"github.com/resqride/resqride/core/events"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(events.Arrived{VehicleID: 3})
	v := <-ch
	arr, ok := v.(events.Arrived)
	if !ok || arr.VehicleID != 3 {
		t.Fatalf("expected Arrived{3} got %#v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusNonBlockingPublish(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	// Overflow the buffer; Publish must never block.
	for i := 0; i < 100; i++ {
		bus.Publish(events.ETAUpdated{})
	}
	drained := 0
	for len(ch) > 0 {
		<-ch
		drained++
	}
	if drained == 0 || drained > 32 {
		t.Fatalf("unexpected drained count %d", drained)
	}
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	// Publish after close is a no-op.
	bus.Publish(events.SessionCancelled{})
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
