package dto

import "time"

type CreateTaskRequest struct {
	Description string  `json:"description"`
	Assignee    *int64  `json:"assignee,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	TodoListID  int64   `json:"todolist_id"`
	OwnerID     int64   `json:"owner_id"`
	Progress    *string `json:"progress,omitempty"`
}

// UpdateTaskRequest holds a partial update. Assignee and DueDate may be
// sent as null to clear them.
type UpdateTaskRequest struct {
	Description *string          `json:"description"`
	Assignee    Optional[int64]  `json:"assignee"`
	DueDate     Optional[string] `json:"due_date"`
	Progress    *string          `json:"progress"`
}

// TaskResponse is a task row as stored: assignee is the user id.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Progress    string    `json:"progress"`
	Assignee    *int64    `json:"assignee"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	TodoListID  int64     `json:"todolist_id"`
	OwnerID     int64     `json:"owner_id"`
}

// TaskListItem is a task as listed for a todolist: assignee is the
// assignee's username.
type TaskListItem struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Progress    string    `json:"progress"`
	Assignee    *string   `json:"assignee"`
	AssigneeID  *int64    `json:"assignee_id"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	TodoListID  int64     `json:"todolist_id"`
	OwnerID     int64     `json:"owner_id"`
}

type TasksResponse struct {
	Tasks []TaskListItem `json:"tasks"`
}

type TaskEnvelope struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}
