package testutil

import (
	"context"

	"github.com/dimitrije/todo-api/internal/models"
	"github.com/dimitrije/todo-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockTodoListService mocks the TodoListService
type MockTodoListService struct {
	mock.Mock
}

func (m *MockTodoListService) Create(ctx context.Context, ownerID int64, shared bool, name string) (*models.TodoList, error) {
	args := m.Called(ctx, ownerID, shared, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TodoList), args.Error(1)
}

func (m *MockTodoListService) GetByID(ctx context.Context, listID int64) (*models.TodoList, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TodoList), args.Error(1)
}

func (m *MockTodoListService) ListForUser(ctx context.Context, userID int64) ([]models.TodoList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TodoList), args.Error(1)
}

func (m *MockTodoListService) Join(ctx context.Context, userID int64, inviteCode string) (*services.JoinResult, error) {
	args := m.Called(ctx, userID, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.JoinResult), args.Error(1)
}

func (m *MockTodoListService) Members(ctx context.Context, listID int64) ([]models.Member, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockTodoListService) Leave(ctx context.Context, listID, userID int64) error {
	args := m.Called(ctx, listID, userID)
	return args.Error(0)
}

func (m *MockTodoListService) Delete(ctx context.Context, listID int64) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListByTodoList(ctx context.Context, listID int64) ([]models.Task, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, task models.Task) (*models.Task, error) {
	args := m.Called(ctx, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID int64, patch models.TaskPatch) (*models.Task, error) {
	args := m.Called(ctx, taskID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID int64) (int64, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher mocks the SSE hub's publishing side
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(listID int64, eventType string, data any) {
	m.Called(listID, eventType, data)
}

// MockPinger mocks the database health probe
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
