package websocket

import (
	"encoding/json"
	"sync"

	"github.com/dom/league-matchmaker/internal/domain"
	"github.com/rs/zerolog"
)

// Hub fans match events out to every connected client
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	seq        int
	log        zerolog.Logger
	mu         sync.RWMutex
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		log:        log.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				close(client.send)
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug().Str("subject", client.subject).Msg("client registered")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Slow consumer, drop it rather than block the feed
					delete(h.clients, client)
					close(client.send)
					h.log.Warn().Str("subject", client.subject).Msg("dropped slow client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and closes every client. It blocks until Run has returned.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister removes a client, doing nothing once the hub has stopped
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// PublishMatchCreated announces a freshly built match
func (h *Hub) PublishMatchCreated(match *domain.MatchResult) {
	h.publish(MessageTypeMatchCreated, MatchPayload{Match: match})
}

// PublishMatchReported announces a match reported back by a driver
func (h *Hub) PublishMatchReported(match *domain.MatchResult, nextEpoch *string) {
	h.publish(MessageTypeMatchReported, MatchPayload{Match: match, NextEpoch: nextEpoch})
}

func (h *Hub) publish(msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		h.log.Error().Err(err).Str("type", string(msgType)).Msg("failed to build message")
		return
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.seq++
	msg.Seq = h.seq
	h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Str("type", string(msgType)).Msg("failed to marshal message")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.log.Warn().Str("type", string(msgType)).Msg("broadcast queue full, message dropped")
	}
}
