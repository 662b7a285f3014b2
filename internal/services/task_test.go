package services

import (
	"context"
	"testing"
	"time"

	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskRowColumns = []string{
	"task_id", "description", "progress", "assignee", "date_due", "date_created", "todolist_id", "owner_id",
}

func setupTaskService(t *testing.T) (*TaskService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewTaskService(&database.DB{Pool: mock}), mock
}

func int64Ptr(v int64) *int64 { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestTaskService_Create_DefaultsToUncompleted(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("Buy milk", "Uncompleted", (*int64)(nil), (*time.Time)(nil), int64(10), int64(1)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns).
			AddRow(int64(100), "Buy milk", "Uncompleted", nil, nil, now, int64(10), int64(1)))

	task, err := svc.Create(context.Background(), models.Task{
		Description: "Buy milk",
		TodoListID:  10,
		OwnerID:     1,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), task.ID)
	assert.Equal(t, models.ProgressUncompleted, task.Progress)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.DueDate)
	assert.True(t, now.Equal(task.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Create_WithAssigneeAndDueDate(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()
	assignee := int64Ptr(2)
	due := datePtr(2025, time.March, 14)

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs("Taxes", "Completed", assignee, due, int64(10), int64(1)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns).
			AddRow(int64(101), "Taxes", "Completed", assignee, due, now, int64(10), int64(1)))

	task, err := svc.Create(context.Background(), models.Task{
		Description: "Taxes",
		Progress:    models.ProgressCompleted,
		AssigneeID:  assignee,
		DueDate:     due,
		TodoListID:  10,
		OwnerID:     1,
	})

	require.NoError(t, err)
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, int64(2), *task.AssigneeID)
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Equal(t, models.ProgressCompleted, task.Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Create_RejectsInvalidProgress(t *testing.T) {
	svc, mock := setupTaskService(t)

	_, err := svc.Create(context.Background(), models.Task{
		Description: "x",
		Progress:    "Blocked",
		TodoListID:  10,
		OwnerID:     1,
	})

	assert.ErrorIs(t, err, ErrInvalidProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Create_DescriptionRequired(t *testing.T) {
	svc, mock := setupTaskService(t)

	_, err := svc.Create(context.Background(), models.Task{TodoListID: 10, OwnerID: 1})

	assert.ErrorIs(t, err, ErrDescriptionRequired)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_ListByTodoList_ResolvesAssigneeName(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()
	bob := "bob"

	mock.ExpectQuery(`SELECT .+ FROM tasks t LEFT JOIN users u ON u.user_id = t.assignee WHERE t.todolist_id`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(append(taskRowColumns, "username")).
			AddRow(int64(1), "A", "Uncompleted", int64Ptr(2), nil, now, int64(10), int64(1), &bob).
			AddRow(int64(2), "B", "Completed", nil, nil, now, int64(10), int64(1), nil))

	tasks, err := svc.ListByTodoList(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[0].AssigneeName)
	assert.Equal(t, "bob", *tasks[0].AssigneeName)
	assert.Nil(t, tasks[1].AssigneeName)
	assert.Equal(t, models.ProgressCompleted, tasks[1].Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_ListByTodoList_Empty(t *testing.T) {
	svc, mock := setupTaskService(t)

	mock.ExpectQuery(`SELECT .+ FROM tasks t`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(append(taskRowColumns, "username")))

	tasks, err := svc.ListByTodoList(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_Progress(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()
	completed := models.ProgressCompleted

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`UPDATE tasks SET progress = \$1 WHERE task_id = \$2 RETURNING`).
		WithArgs("Completed", int64(5)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns).
			AddRow(int64(5), "A", "Completed", nil, nil, now, int64(10), int64(1)))
	mock.ExpectCommit()

	task, err := svc.Update(context.Background(), 5, models.TaskPatch{Progress: &completed})

	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, task.Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_MultipleFieldsAndClearAssignee(t *testing.T) {
	svc, mock := setupTaskService(t)
	now := time.Now()
	desc := "Renamed"
	due := datePtr(2025, time.April, 1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`UPDATE tasks SET description = \$1, assignee = \$2, date_due = \$3 WHERE task_id = \$4`).
		WithArgs("Renamed", (*int64)(nil), due, int64(5)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns).
			AddRow(int64(5), "Renamed", "Uncompleted", nil, due, now, int64(10), int64(1)))
	mock.ExpectCommit()

	task, err := svc.Update(context.Background(), 5, models.TaskPatch{
		Description: &desc,
		AssigneeSet: true,
		DueDateSet:  true,
		DueDate:     due,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", task.Description)
	assert.Nil(t, task.AssigneeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_InvalidProgress(t *testing.T) {
	svc, mock := setupTaskService(t)
	blocked := models.Progress("Blocked")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 5, models.TaskPatch{Progress: &blocked})

	assert.ErrorIs(t, err, ErrInvalidProgress)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_NoFields(t *testing.T) {
	svc, mock := setupTaskService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 5, models.TaskPatch{})

	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_NotFound(t *testing.T) {
	svc, mock := setupTaskService(t)
	completed := models.ProgressCompleted

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(404)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 404, models.TaskPatch{Progress: &completed})

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Update_DeletedBeforeUpdate(t *testing.T) {
	svc, mock := setupTaskService(t)
	completed := models.ProgressCompleted

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM tasks WHERE task_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`UPDATE tasks SET progress = \$1 WHERE task_id = \$2 RETURNING`).
		WithArgs("Completed", int64(5)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 5, models.TaskPatch{Progress: &completed})

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Delete(t *testing.T) {
	svc, mock := setupTaskService(t)

	mock.ExpectQuery(`DELETE FROM tasks WHERE task_id = .+ RETURNING todolist_id`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"todolist_id"}).AddRow(int64(10)))

	listID, err := svc.Delete(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, int64(10), listID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskService_Delete_NotFound(t *testing.T) {
	svc, mock := setupTaskService(t)

	mock.ExpectQuery(`DELETE FROM tasks WHERE task_id`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Delete(context.Background(), 404)

	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildTaskUpdate_ColumnOrder(t *testing.T) {
	desc := "d"
	progress := models.ProgressUncompleted
	assignee := int64(3)

	sets, args, err := buildTaskUpdate(models.TaskPatch{
		Description: &desc,
		Progress:    &progress,
		AssigneeSet: true,
		AssigneeID:  &assignee,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"description = $1", "progress = $2", "assignee = $3"}, sets)
	assert.Len(t, args, 3)
}

func TestBuildTaskUpdate_EmptyDescription(t *testing.T) {
	empty := "  "
	_, _, err := buildTaskUpdate(models.TaskPatch{Description: &empty})
	assert.ErrorIs(t, err, ErrDescriptionRequired)
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", d.Format(DueDateLayout))

	d, err = ParseDueDate("2025-03-14T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", d.Format(DueDateLayout))

	_, err = ParseDueDate("14/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}
