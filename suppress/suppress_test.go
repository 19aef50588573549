package suppress

import (
	"errors"
	"testing"
	"time"

	"github.com/noriapi/prevent-alt-win-menu/keyevent"
	"github.com/noriapi/prevent-alt-win-menu/tracker"
)

type fakeInjector struct {
	sent []keyevent.VirtualKey
	err  error
}

func (f *fakeInjector) SendKeyUp(vk keyevent.VirtualKey) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, vk)
	return nil
}

func down(vk keyevent.VirtualKey, at uint32) keyevent.KeyEvent {
	return keyevent.KeyEvent{VkCode: uint32(vk), Time: at, Message: keyevent.MessageKeyDown}
}

func up(vk keyevent.VirtualKey, at uint32) keyevent.KeyEvent {
	return keyevent.KeyEvent{VkCode: uint32(vk), Time: at, Message: keyevent.MessageKeyUp}
}

func TestDefaultPolicyInjectsNoneKey(t *testing.T) {
	inj := &fakeInjector{}
	engine := NewEngine(Config{}, inj)

	engine.HandleEvent(down(keyevent.VKLWin, 0))
	engine.HandleEvent(up(keyevent.VKLWin, 50))

	if len(inj.sent) != 1 {
		t.Fatalf("injected %d keys, want 1", len(inj.sent))
	}
	if inj.sent[0] != keyevent.VKNone {
		t.Errorf("injected 0x%X, want the reserved no-op key", inj.sent[0])
	}
}

func TestThresholdPolicySkipsShortHolds(t *testing.T) {
	inj := &fakeInjector{}
	engine := NewEngine(Config{OnReleased: Threshold(300 * time.Millisecond)}, inj)

	engine.HandleEvent(down(keyevent.VKLMenu, 0))
	engine.HandleEvent(up(keyevent.VKLMenu, 100))

	if len(inj.sent) != 0 {
		t.Fatalf("injected %d keys for a 100ms hold, want 0", len(inj.sent))
	}

	engine.HandleEvent(down(keyevent.VKLMenu, 1000))
	engine.HandleEvent(up(keyevent.VKLMenu, 1400))

	if len(inj.sent) != 1 {
		t.Fatalf("injected %d keys for a 400ms hold, want 1", len(inj.sent))
	}
}

func TestOrphanUpInjectsNothing(t *testing.T) {
	inj := &fakeInjector{}
	engine := NewEngine(Config{}, inj)

	engine.HandleEvent(up(keyevent.VKLWin, 10))

	if len(inj.sent) != 0 {
		t.Errorf("injected %d keys for an orphan release, want 0", len(inj.sent))
	}
}

func TestInterleavedKeyCancelsSuppression(t *testing.T) {
	inj := &fakeInjector{}
	engine := NewEngine(Config{}, inj)

	engine.HandleEvent(down(keyevent.VKLMenu, 0))
	engine.HandleEvent(down(0x41, 10)) // "A"
	engine.HandleEvent(up(keyevent.VKLMenu, 20))

	if len(inj.sent) != 0 {
		t.Errorf("injected %d keys after an interleaved key, want 0", len(inj.sent))
	}
}

func TestInjectionFailureDoesNotStopPipeline(t *testing.T) {
	inj := &fakeInjector{err: errors.New("SendInput consumed 0 of 1 events")}
	var decisions []Decision
	engine := NewEngine(Config{
		OnDecision: func(d Decision) { decisions = append(decisions, d) },
	}, inj)

	engine.HandleEvent(down(keyevent.VKLWin, 0))
	engine.HandleEvent(up(keyevent.VKLWin, 50))

	if len(decisions) != 1 {
		t.Fatalf("got %d decisions, want 1", len(decisions))
	}
	if decisions[0].Suppressed {
		t.Error("decision marked suppressed despite injection failure")
	}
	if decisions[0].Err == nil {
		t.Error("decision should carry the injection error")
	}

	// Retry never: the next hold is processed normally.
	inj.err = nil
	engine.HandleEvent(down(keyevent.VKLWin, 100))
	engine.HandleEvent(up(keyevent.VKLWin, 160))

	if len(inj.sent) != 1 {
		t.Fatalf("injected %d keys after recovery, want 1", len(inj.sent))
	}
	if len(decisions) != 2 || !decisions[1].Suppressed {
		t.Error("second hold should be suppressed normally")
	}
}

func TestDecisionObserverSeesOutcome(t *testing.T) {
	inj := &fakeInjector{}
	var decisions []Decision
	engine := NewEngine(Config{
		OnDecision: func(d Decision) { decisions = append(decisions, d) },
	}, inj)

	engine.HandleEvent(down(keyevent.VKLWin, 0))
	engine.HandleEvent(up(keyevent.VKLWin, 50))
	engine.HandleEvent(down(keyevent.VKLMenu, 100))
	engine.HandleEvent(up(keyevent.VKRMenu, 350))

	if len(decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(decisions))
	}
	if decisions[0].Trigger != keyevent.Win || decisions[0].Duration() != 50*time.Millisecond {
		t.Errorf("first decision = (%v, %v)", decisions[0].Trigger, decisions[0].Duration())
	}
	if decisions[1].Trigger != keyevent.Alt || decisions[1].Duration() != 250*time.Millisecond {
		t.Errorf("second decision = (%v, %v)", decisions[1].Trigger, decisions[1].Duration())
	}
	for i, d := range decisions {
		if !d.Suppressed {
			t.Errorf("decision %d not suppressed under the default policy", i)
		}
	}
}

func TestRunConsumesInArrivalOrder(t *testing.T) {
	inj := &fakeInjector{}
	var decisions []Decision
	engine := NewEngine(Config{
		OnDecision: func(d Decision) { decisions = append(decisions, d) },
	}, inj)

	events := make(chan keyevent.KeyEvent, 8)
	events <- down(keyevent.VKLWin, 0)
	events <- up(keyevent.VKLWin, 30)
	events <- down(keyevent.VKLMenu, 40)
	events <- up(keyevent.VKLMenu, 70)
	close(events)

	engine.Run(events)

	if len(decisions) != 2 {
		t.Fatalf("got %d decisions, want 2", len(decisions))
	}
	if decisions[0].Trigger != keyevent.Win || decisions[1].Trigger != keyevent.Alt {
		t.Errorf("decision order = %v, %v; want win then alt", decisions[0].Trigger, decisions[1].Trigger)
	}
}

func TestCallbackMayChooseDummyKey(t *testing.T) {
	inj := &fakeInjector{}
	engine := NewEngine(Config{
		OnReleased: func(hold tracker.Hold) (keyevent.VirtualKey, bool) {
			return 0x87, true // F24
		},
	}, inj)

	engine.HandleEvent(down(keyevent.VKRWin, 0))
	engine.HandleEvent(up(keyevent.VKRWin, 10))

	if len(inj.sent) != 1 || inj.sent[0] != 0x87 {
		t.Errorf("injected %v, want a single F24 release", inj.sent)
	}
}
