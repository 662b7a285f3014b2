package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with a unique username
func (f *Fixtures) CreateUser(t *testing.T) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{Username: fmt.Sprintf("user%d", f.counter)}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO users (username) VALUES ($1) RETURNING user_id
	`, user.Username).Scan(&user.ID)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// CreateTodoList creates a list owned by owner. Shared lists get a
// deterministic invite code.
func (f *Fixtures) CreateTodoList(t *testing.T, owner *models.User, shared bool) *models.TodoList {
	t.Helper()
	f.counter++

	list := &models.TodoList{
		Name:    fmt.Sprintf("List %d", f.counter),
		Shared:  shared,
		OwnerID: owner.ID,
	}
	if shared {
		code := fmt.Sprintf("T%04d", f.counter)
		list.InviteCode = &code
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO todolists (name, shared_flag, user_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING todolist_id
	`, list.Name, list.Shared, list.OwnerID, list.InviteCode).Scan(&list.ID)
	if err != nil {
		t.Fatalf("failed to create todolist: %v", err)
	}

	return list
}

// AddMember adds user as a member of list
func (f *Fixtures) AddMember(t *testing.T, list *models.TodoList, user *models.User) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO todolist_shares (todolist_id, user_id) VALUES ($1, $2)
	`, list.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to add member: %v", err)
	}
}

// CreateTask creates a task in list owned by owner
func (f *Fixtures) CreateTask(t *testing.T, list *models.TodoList, owner *models.User, opts ...TaskOption) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		Description: fmt.Sprintf("Task %d", f.counter),
		Progress:    models.ProgressUncompleted,
		TodoListID:  list.ID,
		OwnerID:     owner.ID,
	}

	for _, opt := range opts {
		opt(task)
	}

	err := f.db.Pool.QueryRow(context.Background(), `
		INSERT INTO tasks (description, progress, assignee, date_due, todolist_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING task_id, date_created
	`, task.Description, string(task.Progress), task.AssigneeID, task.DueDate,
		task.TodoListID, task.OwnerID,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// TaskOption configures a test task
type TaskOption func(*models.Task)

// WithAssignee assigns the task to user
func WithAssignee(user *models.User) TaskOption {
	return func(task *models.Task) {
		task.AssigneeID = &user.ID
	}
}

// WithDueDate sets the task's due date
func WithDueDate(due time.Time) TaskOption {
	return func(task *models.Task) {
		task.DueDate = &due
	}
}

// WithProgress sets the task's progress
func WithProgress(p models.Progress) TaskOption {
	return func(task *models.Task) {
		task.Progress = p
	}
}

// CountRows returns the number of rows in table matching where
func (f *Fixtures) CountRows(t *testing.T, table, where string, args ...any) int {
	t.Helper()

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	if err := f.db.Pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
