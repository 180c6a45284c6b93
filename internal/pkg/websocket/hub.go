package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
)

// Hub maintains the set of connected clients and pushes events to them
type Hub struct {
	// Registered clients organized by user ID. A user may hold several connections.
	clients map[int64]map[*Client]bool

	// Outbound events waiting to be fanned out
	push chan *delivery

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Stops Run
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is the envelope sent to clients
type Event struct {
	// Type of event: "notification", "message", "club_message"
	Type string `json:"type"`

	Payload interface{} `json:"payload"`

	Timestamp time.Time `json:"timestamp"`
}

type delivery struct {
	userIDs []int64
	data    []byte
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		push:       make(chan *delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run handles client registrations and deliveries until Stop is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.push:
			h.deliver(d)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Stop closes every connection and ends Run
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	metrics.PushConnections.Inc()

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	conns, ok := h.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.send)
	metrics.PushConnections.Dec()
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

func (h *Hub) deliver(d *delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, userID := range d.userIDs {
		for client := range h.clients[userID] {
			select {
			case client.send <- d.data:
			default:
				// Slow consumer, drop the connection
				h.removeLocked(client)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conns := range h.clients {
		for client := range conns {
			h.removeLocked(client)
		}
	}
}

// PushToUsers queues an event for every connection of the given users.
// Users without a live connection are skipped; the event is never persisted here.
func (h *Hub) PushToUsers(userIDs []int64, eventType string, payload interface{}) {
	if len(userIDs) == 0 {
		return
	}

	data, err := json.Marshal(Event{Type: eventType, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error().Err(err).Str("type", eventType).Msg("Failed to marshal event")
		return
	}

	select {
	case h.push <- &delivery{userIDs: userIDs, data: data}:
	default:
		h.logger.Warn().Str("type", eventType).Int("users", len(userIDs)).Msg("Push queue full, dropping event")
	}
}

// SendToUser queues an event for one user
func (h *Hub) SendToUser(userID int64, eventType string, payload interface{}) {
	h.PushToUsers([]int64{userID}, eventType, payload)
}

// GetClientsCount returns the number of live connections of a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}
