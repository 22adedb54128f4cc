package websocket

import (
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{hub: hub, send: make(chan []byte, 8)}
	b := &Client{hub: hub, send: make(chan []byte, 8)}
	hub.register <- a
	hub.register <- b
	waitFor(t, func() bool { return hub.ClientCount() == 2 }, "clients never registered")

	hub.Broadcast([]byte(`{"change":"score"}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if string(msg) != `{"change":"score"}` {
				t.Errorf("message = %s", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client never received the broadcast")
		}
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := &Client{hub: hub, send: make(chan []byte, 8)}
	hub.register <- c
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.unregister <- c
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "client never unregistered")

	// The send channel closes so the write pump can exit.
	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("send channel delivered a message instead of closing")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send channel never closed")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No buffer and no reader: the first broadcast cannot be delivered.
	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.register <- slow
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client never registered")

	hub.Broadcast([]byte("update"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "slow client never dropped")
}
