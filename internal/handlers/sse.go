package handlers

import (
	"fmt"
	"net/http"

	"github.com/dimitrije/todo-api/internal/sse"
	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type SSEHandler struct {
	hub             HubInterface
	todoListService TodoListServiceInterface
}

func NewSSEHandler(hub HubInterface, todoListService TodoListServiceInterface) *SSEHandler {
	return &SSEHandler{
		hub:             hub,
		todoListService: todoListService,
	}
}

// Connect streams the events of one list until the client goes away.
func (h *SSEHandler) Connect(c *drift.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.todoListService.GetByID(ctx, listID); err != nil {
		writeError(c, err)
		return
	}

	sseCtx := c.SSE()

	clientID := uuid.New().String()
	client := &sse.Client{
		ID:        clientID,
		TodoLists: map[int64]bool{listID: true},
		Send:      make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": clientID,
	}, "system", ""); err != nil {
		return
	}

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Subscribe adds another list to an open stream.
func (h *SSEHandler) Subscribe(c *drift.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		writeDetail(c, http.StatusBadRequest, "client_id is required")
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.todoListService.GetByID(c.Request.Context(), listID); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Subscribe(clientID, listID)

	_ = c.JSON(200, dto.MessageResponse{
		Message: fmt.Sprintf("subscribed to todolist %d", listID),
	})
}

func (h *SSEHandler) Unsubscribe(c *drift.Context) {
	clientID := c.Param("clientId")
	if clientID == "" {
		writeDetail(c, http.StatusBadRequest, "client_id is required")
		return
	}

	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.hub.Unsubscribe(clientID, listID)

	_ = c.JSON(200, dto.MessageResponse{
		Message: fmt.Sprintf("unsubscribed from todolist %d", listID),
	})
}
