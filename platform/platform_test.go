package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
)

func TestGuardSingleAcquire(t *testing.T) {
	var g guard

	if !g.tryAcquire() {
		t.Fatal("first acquire failed")
	}
	if g.tryAcquire() {
		t.Error("second acquire succeeded while held")
	}

	g.release()
	if !g.tryAcquire() {
		t.Error("acquire after release failed")
	}
}

func TestStartHookWhileActive(t *testing.T) {
	if !hookGuard.tryAcquire() {
		t.Fatal("hook guard already held")
	}
	defer hookGuard.release()

	if _, err := StartHook(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second StartHook returned %v, want ErrAlreadyStarted", err)
	}
}

func TestEventQueuePreservesOrder(t *testing.T) {
	q := newEventQueue()

	const n = 500
	for i := 0; i < n; i++ {
		q.push(keyevent.KeyEvent{Time: uint32(i), Message: keyevent.MessageKeyDown})
	}
	q.closeIn()

	i := 0
	for ev := range q.events() {
		if ev.Time != uint32(i) {
			t.Fatalf("event %d has time %d; order not preserved", i, ev.Time)
		}
		i++
	}
	if i != n {
		t.Errorf("received %d events, want %d", i, n)
	}
}

func TestEventQueueProducerNeverBlocks(t *testing.T) {
	// No consumer reads until every push has returned.
	q := newEventQueue()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.push(keyevent.KeyEvent{Time: uint32(i), Message: keyevent.MessageKeyDown})
		}
		close(done)
	}()

	<-done
	q.closeIn()

	count := 0
	for range q.events() {
		count++
	}
	if count != 10000 {
		t.Errorf("received %d events, want 10000", count)
	}
}

func TestEventQueueCloseWithoutEvents(t *testing.T) {
	// Closing a queue that never carried an event (a hook whose
	// registration failed) must still end the pump goroutine and
	// close the consumer side.
	q := newEventQueue()
	q.closeIn()

	select {
	case _, ok := <-q.events():
		if ok {
			t.Error("unexpected event from an empty queue")
		}
	case <-time.After(time.Second):
		t.Error("consumer side not closed after closeIn")
	}
}

func TestVKFromName(t *testing.T) {
	for _, tt := range []struct {
		name string
		want keyevent.VirtualKey
		ok   bool
	}{
		{"none", keyevent.VKNone, true},
		{"NONE", keyevent.VKNone, true},
		{" f24 ", 0x87, true},
		{"f13", 0x7C, true},
		{"escape", 0, false},
		{"", 0, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			vk, err := VKFromName(tt.name)
			if tt.ok && err != nil {
				t.Fatalf("VKFromName(%q): %v", tt.name, err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("VKFromName(%q) accepted an unknown key", tt.name)
			}
			if tt.ok && vk != tt.want {
				t.Errorf("VKFromName(%q) = 0x%X, want 0x%X", tt.name, vk, tt.want)
			}
		})
	}
}
