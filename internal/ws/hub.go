package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"GolfInbox/entity"
	"GolfInbox/internal/lib/sl"
)

const (
	EventConversationRead = "conversation_read"

	clientMarkRead = "mark_read"
)

// ClientMessageHandler handles incoming WebSocket messages from staff dashboards.
type ClientMessageHandler interface {
	HandleMarkRead(username, source, conversationID string) error
}

// Event represents a WebSocket event sent to staff dashboards.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	handler    ClientMessageHandler
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log.With(sl.Module("ws.hub")),
	}
}

// SetHandler sets the handler for incoming client messages.
func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run is the hub's event loop; it returns when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.Warn("failed to encode ws event", sl.Err(err))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastConversationRead tells every dashboard a conversation was read.
// The event is dropped when the hub is saturated.
func (h *Hub) BroadcastConversationRead(event entity.ConversationRead) {
	select {
	case h.broadcast <- &Event{Type: EventConversationRead, Data: event}:
	default:
		h.log.Warn("ws broadcast queue full, event dropped",
			slog.String("type", EventConversationRead),
			slog.String("conversation_id", event.ConversationID),
		)
	}
}

// clientEvent represents an incoming WebSocket message from a dashboard.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message from a client.
func (h *Hub) HandleClientMessage(username string, raw []byte) {
	if h.handler == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		h.log.Warn("failed to parse client ws message", sl.Err(err))
		return
	}

	switch event.Type {
	case clientMarkRead:
		var data struct {
			Source         string `json:"source"`
			ConversationID string `json:"conversation_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			h.log.Warn("failed to parse mark_read data", sl.Err(err))
			return
		}
		if data.Source == "" || data.ConversationID == "" {
			return
		}
		if err := h.handler.HandleMarkRead(username, data.Source, data.ConversationID); err != nil {
			h.log.Error("failed to handle mark_read",
				slog.String("username", username),
				slog.String("source", data.Source),
				slog.String("conversation_id", data.ConversationID),
				sl.Err(err),
			)
		}
	}
}
