package models

import "time"

type Progress string

const (
	ProgressUncompleted Progress = "Uncompleted"
	ProgressCompleted   Progress = "Completed"
)

func (p Progress) Valid() bool {
	return p == ProgressUncompleted || p == ProgressCompleted
}

type Task struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Progress    Progress   `json:"progress"`
	AssigneeID  *int64     `json:"assignee_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	TodoListID  int64      `json:"todolist_id"`
	OwnerID     int64      `json:"owner_id"`

	// Set only by queries that join the assignee's user row.
	AssigneeName *string `json:"assignee,omitempty"`
}

// TaskPatch carries the fields of a partial task update. A nil pointer
// means the field was absent; the *Set flags distinguish an explicit null
// (clear the value) from absence for the nullable columns.
type TaskPatch struct {
	Description *string
	Progress    *Progress
	AssigneeSet bool
	AssigneeID  *int64
	DueDateSet  bool
	DueDate     *time.Time
}

func (p TaskPatch) Empty() bool {
	return p.Description == nil && p.Progress == nil && !p.AssigneeSet && !p.DueDateSet
}
