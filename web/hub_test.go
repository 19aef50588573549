package web

import (
	"encoding/json"
	"testing"
	"time"
)

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{hub: h, send: make(chan []byte, buffer)}
}

func recvMessage(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed before a message arrived")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("broadcast payload is not a JSON envelope: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a broadcast")
		return Message{}
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := newTestClient(h, 4)
	second := newTestClient(h, 4)
	h.register <- first
	h.register <- second

	h.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: "paused"},
	})

	for _, c := range []*Client{first, second} {
		msg := recvMessage(t, c)
		if msg.Type != MessageTypeStatus {
			t.Errorf("message type = %q, want %q", msg.Type, MessageTypeStatus)
		}
		data, ok := msg.Data.(map[string]any)
		if !ok || data["status"] != "paused" {
			t.Errorf("message data = %v, want status paused", msg.Data)
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := newTestClient(h, 1)
	fast := newTestClient(h, 4)
	h.register <- slow
	h.register <- fast

	// Fill the slow client's queue so the next broadcast cannot be
	// delivered to it.
	slow.send <- []byte("backlog")

	h.BroadcastMessage(Message{
		Type: MessageTypeDecision,
		Data: DecisionMessage{Trigger: "win", DurationMs: 50, Suppressed: true},
	})

	// The fast client still receives the decision.
	msg := recvMessage(t, fast)
	if msg.Type != MessageTypeDecision {
		t.Errorf("fast client got %q, want %q", msg.Type, MessageTypeDecision)
	}

	// The slow client was dropped: after its backlog drains, the send
	// channel is closed instead of carrying the decision.
	if got := <-slow.send; string(got) != "backlog" {
		t.Fatalf("first slow read = %q, want the backlog item", got)
	}
	select {
	case _, ok := <-slow.send:
		if ok {
			t.Error("slow client received a broadcast after overflowing")
		}
	case <-time.After(time.Second):
		t.Error("slow client's send channel was not closed")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newTestClient(h, 1)
	h.register <- c
	h.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("unexpected message on an unregistered client")
		}
	case <-time.After(time.Second):
		t.Error("send channel not closed on unregister")
	}

	// A later broadcast must not reach the removed client; the hub
	// keeps running for the rest.
	h.BroadcastMessage(Message{Type: MessageTypeStatus, Data: StatusMessage{Status: "running"}})

	still := newTestClient(h, 1)
	h.register <- still
	h.BroadcastMessage(Message{Type: MessageTypeStatus, Data: StatusMessage{Status: "running"}})
	if msg := recvMessage(t, still); msg.Type != MessageTypeStatus {
		t.Errorf("surviving client got %q, want %q", msg.Type, MessageTypeStatus)
	}
}
