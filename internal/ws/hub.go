package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Hub routes notification payloads to the connections of a single user.
// Review verdicts and assignment transitions are delivered here.
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery
	mutex      sync.RWMutex
	logger     *log.Logger
}

type delivery struct {
	userID  uuid.UUID
	payload []byte
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		deliver:    make(chan delivery, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			conns := h.byUser[client.userID]
			if conns == nil {
				conns = make(map[*Client]struct{})
				h.byUser[client.userID] = conns
			}
			conns[client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.userID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.drop(client)

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.byUser[d.userID]))
			for c := range h.byUser[d.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.payload:
				default:
					// Slow consumer. Dropped inline; a send into
					// h.unregister here would deadlock Run against
					// its own channel.
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, client)
	if conns := h.byUser[client.userID]; conns != nil {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.byUser, client.userID)
		}
	}
	close(client.send)
	total := len(h.clients)
	h.mutex.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.userID, total)
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Deliver queues a payload for every live connection of userID. Dropped
// silently when the hub buffer is full; notifications are advisory.
func (h *Hub) Deliver(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS delivery dropped | reason=buffer_full user=%s", userID)
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
