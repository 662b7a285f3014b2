package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/todo-api/internal/models"
	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/internal/sse"
	"github.com/dimitrije/todo-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSSETest(t *testing.T) (*testutil.MockTodoListService, *sse.Hub, http.Handler) {
	t.Helper()
	mockTodoListService := new(testutil.MockTodoListService)
	hub := sse.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	handler := NewSSEHandler(hub, mockTodoListService)

	app := drift.New()
	app.Get("/todolists/:id/events", handler.Connect)
	app.Post("/sse/:clientId/subscribe/:id", handler.Subscribe)
	app.Post("/sse/:clientId/unsubscribe/:id", handler.Unsubscribe)
	return mockTodoListService, hub, app
}

// readDataLine returns the payload of the next "data:" line of the stream.
func readDataLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func TestSSEHandler_Connect_StreamsListEvents(t *testing.T) {
	mockTodoListService, hub, app := setupSSETest(t)

	mockTodoListService.On("GetByID", mock.Anything, int64(10)).
		Return(&models.TodoList{ID: 10, Name: "Groceries", OwnerID: 1}, nil)

	server := httptest.NewServer(app)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/todolists/10/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reader := bufio.NewReader(resp.Body)

	var connected map[string]string
	require.NoError(t, json.Unmarshal([]byte(readDataLine(t, reader)), &connected))
	assert.Equal(t, "connected", connected["type"])
	assert.NotEmpty(t, connected["client_id"])

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(99, sse.EventTaskDeleted, sse.TaskDeletedEvent{TodoListID: 99, TaskID: 1})
	hub.Publish(10, sse.EventTaskDeleted, sse.TaskDeletedEvent{TodoListID: 10, TaskID: 7})

	var event sse.Event
	require.NoError(t, json.Unmarshal([]byte(readDataLine(t, reader)), &event))
	assert.Equal(t, sse.EventTaskDeleted, event.Type)

	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), data["todolist_id"])
	assert.Equal(t, float64(7), data["task_id"])
}

func TestSSEHandler_Connect_UnknownList(t *testing.T) {
	mockTodoListService, _, app := setupSSETest(t)

	mockTodoListService.On("GetByID", mock.Anything, int64(99)).Return(nil, services.ErrListNotFound)

	req := httptest.NewRequest(http.MethodGet, "/todolists/99/events", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSSEHandler_Connect_InvalidID(t *testing.T) {
	_, _, app := setupSSETest(t)

	req := httptest.NewRequest(http.MethodGet, "/todolists/abc/events", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSSEHandler_Subscribe(t *testing.T) {
	mockTodoListService, hub, app := setupSSETest(t)

	mockTodoListService.On("GetByID", mock.Anything, int64(3)).
		Return(&models.TodoList{ID: 3, Name: "Work", OwnerID: 1}, nil)

	client := &sse.Client{ID: "client-1", TodoLists: map[int64]bool{}, Send: make(chan []byte, 8)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/sse/client-1/subscribe/3", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"subscribed to todolist 3"}`, rec.Body.String())

	hub.Publish(3, sse.EventListDeleted, sse.ListDeletedEvent{TodoListID: 3})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), sse.EventListDeleted)
	case <-time.After(time.Second):
		t.Fatal("did not receive message")
	}
}

func TestSSEHandler_Subscribe_UnknownList(t *testing.T) {
	mockTodoListService, _, app := setupSSETest(t)

	mockTodoListService.On("GetByID", mock.Anything, int64(8)).Return(nil, services.ErrListNotFound)

	req := httptest.NewRequest(http.MethodPost, "/sse/client-1/subscribe/8", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSSEHandler_Unsubscribe(t *testing.T) {
	_, hub, app := setupSSETest(t)

	client := &sse.Client{ID: "client-1", TodoLists: map[int64]bool{3: true}, Send: make(chan []byte, 8)}
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodPost, "/sse/client-1/unsubscribe/3", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	hub.Publish(3, sse.EventListDeleted, sse.ListDeletedEvent{TodoListID: 3})

	select {
	case <-client.Send:
		t.Fatal("unsubscribed client should not receive message")
	case <-time.After(50 * time.Millisecond):
	}
}
