package sse

import (
	"context"
	"encoding/json"
	"sync"
)

const (
	EventTaskCreated  = "task_created"
	EventTaskUpdated  = "task_updated"
	EventTaskDeleted  = "task_deleted"
	EventMemberJoined = "member_joined"
	EventMemberLeft   = "member_left"
	EventListDeleted  = "list_deleted"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type TaskDeletedEvent struct {
	TodoListID int64 `json:"todolist_id"`
	TaskID     int64 `json:"task_id"`
}

type MemberEvent struct {
	TodoListID int64 `json:"todolist_id"`
	UserID     int64 `json:"user_id"`
}

type ListDeletedEvent struct {
	TodoListID int64 `json:"todolist_id"`
}

type Client struct {
	ID        string
	TodoLists map[int64]bool
	Send      chan []byte
}

type ListMessage struct {
	TodoListID int64
	Event      Event
}

// Hub fans list events out to the clients subscribed to that list.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *ListMessage
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *ListMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled. On
// return every client's Send channel is closed and later Register and
// Unregister calls return immediately.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				if client.TodoLists[msg.TodoListID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	for id, client := range h.clients {
		close(client.Send)
		delete(h.clients, id)
	}
	h.mu.Unlock()
	close(h.done)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Subscribe(clientID string, listID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.TodoLists[listID] = true
	}
}

func (h *Hub) Unsubscribe(clientID string, listID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.TodoLists, listID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues an event for the subscribers of listID. It never blocks:
// when the queue is full the event is dropped.
func (h *Hub) Publish(listID int64, eventType string, data interface{}) {
	msg := &ListMessage{
		TodoListID: listID,
		Event:      Event{Type: eventType, Data: data},
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}
