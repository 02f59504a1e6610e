package ws

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHubRoutesPerUser(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	alice := uuid.New()
	bob := uuid.New()
	aliceConn := &Client{hub: h, userID: alice, send: make(chan []byte, 4)}
	bobConn := &Client{hub: h, userID: bob, send: make(chan []byte, 4)}
	h.Register(aliceConn)
	h.Register(bobConn)
	waitFor(t, "both clients registered", func() bool { return h.ClientCount() == 2 })

	h.Deliver(alice, []byte(`{"type":"skill_reviewed"}`))

	select {
	case msg := <-aliceConn.send:
		if string(msg) != `{"type":"skill_reviewed"}` {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("delivery never reached the target user")
	}
	select {
	case msg := <-bobConn.send:
		t.Fatalf("payload leaked to another user: %q", msg)
	default:
	}
}

func TestHubDropsSlowClientsWithoutStalling(t *testing.T) {
	h := NewHub(nil)
	go h.Run()

	userID := uuid.New()

	// More stuck connections than the unregister buffer holds; every
	// send channel is unbuffered with no reader, so each delivery
	// attempt hits the slow path.
	slow := make([]*Client, 0, 200)
	for i := 0; i < 200; i++ {
		c := &Client{hub: h, userID: userID, send: make(chan []byte)}
		slow = append(slow, c)
		h.Register(c)
	}
	waitFor(t, "slow clients registered", func() bool { return h.ClientCount() == 200 })

	h.Deliver(userID, []byte(`{"type":"assignment_updated"}`))
	waitFor(t, "slow clients dropped", func() bool { return h.ClientCount() == 0 })

	for _, c := range slow {
		select {
		case _, ok := <-c.send:
			if ok {
				t.Fatalf("unexpected payload on a dropped client")
			}
		default:
			t.Fatalf("dropped client's send channel was not closed")
		}
	}

	// The loop must still serve registrations and deliveries.
	fresh := &Client{hub: h, userID: userID, send: make(chan []byte, 1)}
	h.Register(fresh)
	waitFor(t, "fresh client registered", func() bool { return h.ClientCount() == 1 })

	h.Deliver(userID, []byte(`ping`))
	select {
	case msg := <-fresh.send:
		if string(msg) != "ping" {
			t.Fatalf("unexpected payload %q", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hub stopped delivering after dropping slow clients")
	}
}
