package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/models"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `task_id, description, progress, assignee, date_due, date_created, todolist_id, owner_id`

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner, extra ...any) (*models.Task, error) {
	var task models.Task
	var progress string
	dest := append([]any{
		&task.ID, &task.Description, &progress, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.TodoListID, &task.OwnerID,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	task.Progress = models.Progress(progress)
	return &task, nil
}

// ListByTodoList returns the tasks of a list with the assignee's username
// resolved. Unassigned tasks, or tasks whose assignee no longer exists,
// carry a nil AssigneeName.
func (s *TaskService) ListByTodoList(ctx context.Context, listID int64) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.task_id, t.description, t.progress, t.assignee, t.date_due, t.date_created,
		       t.todolist_id, t.owner_id, u.username
		FROM tasks t
		LEFT JOIN users u ON u.user_id = t.assignee
		WHERE t.todolist_id = $1
		ORDER BY t.task_id
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var assignee *string
		task, err := scanTask(rows, &assignee)
		if err != nil {
			return nil, err
		}
		task.AssigneeName = assignee
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (s *TaskService) GetByID(ctx context.Context, taskID int64) (*models.Task, error) {
	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE task_id = $1
	`, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Create inserts a task. An empty progress defaults to Uncompleted; the
// returned task carries the server-assigned id and creation time.
func (s *TaskService) Create(ctx context.Context, in models.Task) (*models.Task, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if in.Progress == "" {
		in.Progress = models.ProgressUncompleted
	}
	if !in.Progress.Valid() {
		return nil, ErrInvalidProgress
	}

	task, err := scanTask(s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (description, progress, assignee, date_due, todolist_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taskColumns,
		in.Description, string(in.Progress), in.AssigneeID, in.DueDate, in.TodoListID, in.OwnerID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update applies the fields present in patch to the task and returns the
// updated row.
func (s *TaskService) Update(ctx context.Context, taskID int64, patch models.TaskPatch) (*models.Task, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM tasks WHERE task_id = $1)
	`, taskID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check task: %w", err)
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	sets, args, err := buildTaskUpdate(patch)
	if err != nil {
		return nil, err
	}
	args = append(args, taskID)

	task, err := scanTask(tx.QueryRow(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+
			fmt.Sprintf(` WHERE task_id = $%d RETURNING `, len(args))+taskColumns,
		args...,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// deleted concurrently after the existence check
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return task, nil
}

// buildTaskUpdate turns a patch into SET clauses with positional
// placeholders, in a fixed column order.
func buildTaskUpdate(patch models.TaskPatch) ([]string, []any, error) {
	if patch.Empty() {
		return nil, nil, ErrNoFieldsToUpdate
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if desc == "" {
			return nil, nil, ErrDescriptionRequired
		}
		set("description", desc)
	}
	if patch.Progress != nil {
		if !patch.Progress.Valid() {
			return nil, nil, ErrInvalidProgress
		}
		set("progress", string(*patch.Progress))
	}
	if patch.AssigneeSet {
		set("assignee", patch.AssigneeID)
	}
	if patch.DueDateSet {
		set("date_due", patch.DueDate)
	}
	return sets, args, nil
}

// Delete removes a task and returns the id of the list it belonged to.
func (s *TaskService) Delete(ctx context.Context, taskID int64) (int64, error) {
	var listID int64
	err := s.db.Pool.QueryRow(ctx, `
		DELETE FROM tasks WHERE task_id = $1 RETURNING todolist_id
	`, taskID).Scan(&listID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrTaskNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	return listID, nil
}

// DueDateLayout is the wire format of task due dates.
const DueDateLayout = "2006-01-02"

// ParseDueDate accepts a calendar date or an RFC 3339 timestamp, which is
// truncated to its date.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DueDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
