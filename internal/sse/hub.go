// Package sse pushes game events and tile progress to browser clients.
package sse

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one message on the stream
type Event struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Payload   any    `json:"payload"`
}

// Client is a connected stream. A nil filter receives every event type.
type Client struct {
	ID     string
	Events chan Event
	filter map[string]bool
}

func (c *Client) wants(eventType string) bool {
	return c.filter == nil || c.filter[eventType]
}

// Hub fans events out to clients. Slow clients miss events rather than
// stalling the broadcaster.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	now       func() time.Time
	onDrop    func(eventType string)
	onClients func(count int)
}

// HubOption configures a Hub
type HubOption func(*Hub)

// WithHubClock replaces time.Now for event timestamps
func WithHubClock(now func() time.Time) HubOption {
	return func(h *Hub) { h.now = now }
}

// WithDropHook is called whenever a broadcast is discarded because the hub is saturated
func WithDropHook(fn func(eventType string)) HubOption {
	return func(h *Hub) { h.onDrop = fn }
}

// WithClientCountHook receives the client count after every register and unregister
func WithClientCountHook(fn func(count int)) HubOption {
	return func(h *Hub) { h.onClients = fn }
}

// NewHub creates a hub; call Start before broadcasting
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, client := range h.clients {
			close(client.Events)
			delete(h.clients, id)
		}
		h.mu.Unlock()
		h.reportClients(0)
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			count := len(h.clients)
			h.mu.Unlock()
			h.reportClients(count)

		case id := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[id]; ok {
				close(client.Events)
				delete(h.clients, id)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.reportClients(count)

		case evt := <-h.broadcast:
			h.deliver(evt)

		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) reportClients(count int) {
	if h.onClients != nil {
		h.onClients(count)
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(evt.Type) {
			continue
		}
		select {
		case client.Events <- evt:
		default:
		}
	}
}

// Register adds a client interested in eventTypes (all types when empty)
func (h *Hub) Register(eventTypes []string) *Client {
	client := &Client{
		ID:     uuid.New().String(),
		Events: make(chan Event, ClientEventBuffer),
	}
	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if client.filter == nil {
			client.filter = make(map[string]bool)
		}
		client.filter[t] = true
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.Events)
	}
	return client
}

// Unregister removes a client and closes its channel
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. Returns false when
// the queue is full and the event was dropped.
func (h *Hub) Broadcast(eventType string, payload any) bool {
	evt := h.newEvent(eventType, payload)

	select {
	case h.broadcast <- evt:
		return true
	default:
		if h.onDrop != nil {
			h.onDrop(eventType)
		}
		return false
	}
}

func (h *Hub) newEvent(eventType string, payload any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: h.now().UnixMilli(),
		Payload:   payload,
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders evt in text/event-stream framing
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if evt.ID != "" {
		b.WriteString("id: " + evt.ID + "\n")
	}
	b.WriteString("event: " + evt.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
