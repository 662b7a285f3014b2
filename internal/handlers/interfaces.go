package handlers

import (
	"context"

	"github.com/dimitrije/todo-api/internal/models"
	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/internal/sse"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, username string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// TodoListServiceInterface defines the methods used by handlers from TodoListService
type TodoListServiceInterface interface {
	Create(ctx context.Context, ownerID int64, shared bool, name string) (*models.TodoList, error)
	GetByID(ctx context.Context, listID int64) (*models.TodoList, error)
	ListForUser(ctx context.Context, userID int64) ([]models.TodoList, error)
	Join(ctx context.Context, userID int64, inviteCode string) (*services.JoinResult, error)
	Members(ctx context.Context, listID int64) ([]models.Member, error)
	Leave(ctx context.Context, listID, userID int64) error
	Delete(ctx context.Context, listID int64) error
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	ListByTodoList(ctx context.Context, listID int64) ([]models.Task, error)
	Create(ctx context.Context, task models.Task) (*models.Task, error)
	Update(ctx context.Context, taskID int64, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, taskID int64) (int64, error)
}

// EventPublisher pushes list events to connected clients
type EventPublisher interface {
	Publish(listID int64, eventType string, data any)
}

// HubInterface defines the methods used by the SSE handler from the Hub
type HubInterface interface {
	EventPublisher
	Register(client *sse.Client)
	Unregister(client *sse.Client)
	Subscribe(clientID string, listID int64)
	Unsubscribe(clientID string, listID int64)
}

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ UserServiceInterface     = (*services.UserService)(nil)
	_ TodoListServiceInterface = (*services.TodoListService)(nil)
	_ TaskServiceInterface     = (*services.TaskService)(nil)
	_ HubInterface             = (*sse.Hub)(nil)
)
