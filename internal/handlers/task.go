package handlers

import (
	"net/http"

	"github.com/dimitrije/todo-api/internal/models"
	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/internal/sse"
	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	msgTaskCreated = "Task created successfully"
	msgTaskUpdated = "Task updated successfully"
	msgTaskDeleted = "Task deleted successfully"
)

type TaskHandler struct {
	taskService TaskServiceInterface
	events      EventPublisher
}

func NewTaskHandler(taskService TaskServiceInterface, events EventPublisher) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		events:      events,
	}
}

func formatDueDate(task *models.Task) *string {
	if task.DueDate == nil {
		return nil
	}
	s := task.DueDate.Format(services.DueDateLayout)
	return &s
}

func toTaskResponse(task *models.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		Description: task.Description,
		Progress:    string(task.Progress),
		Assignee:    task.AssigneeID,
		DueDate:     formatDueDate(task),
		CreatedAt:   task.CreatedAt,
		TodoListID:  task.TodoListID,
		OwnerID:     task.OwnerID,
	}
}

// List serves GET /tasks/:id where id is the todolist's id.
func (h *TaskHandler) List(c *drift.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByTodoList(c.Request.Context(), listID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.TasksResponse{Tasks: make([]dto.TaskListItem, 0, len(tasks))}
	for i := range tasks {
		t := &tasks[i]
		resp.Tasks = append(resp.Tasks, dto.TaskListItem{
			ID:          t.ID,
			Description: t.Description,
			Progress:    string(t.Progress),
			Assignee:    t.AssigneeName,
			AssigneeID:  t.AssigneeID,
			DueDate:     formatDueDate(t),
			CreatedAt:   t.CreatedAt,
			TodoListID:  t.TodoListID,
			OwnerID:     t.OwnerID,
		})
	}
	_ = c.JSON(200, resp)
}

func (h *TaskHandler) Create(c *drift.Context) {
	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.TodoListID <= 0 {
		writeDetail(c, http.StatusBadRequest, "todolist_id is required")
		return
	}
	if req.OwnerID <= 0 {
		writeDetail(c, http.StatusBadRequest, "owner_id is required")
		return
	}

	in := models.Task{
		Description: req.Description,
		AssigneeID:  req.Assignee,
		TodoListID:  req.TodoListID,
		OwnerID:     req.OwnerID,
	}
	if req.Progress != nil {
		in.Progress = models.Progress(*req.Progress)
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := services.ParseDueDate(*req.DueDate)
		if err != nil {
			writeError(c, err)
			return
		}
		in.DueDate = &due
	}

	task, err := h.taskService.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toTaskResponse(task)
	h.events.Publish(task.TodoListID, sse.EventTaskCreated, resp)

	_ = c.JSON(200, dto.TaskEnvelope{Message: msgTaskCreated, Task: resp})
}

// Update applies a partial update. Fields absent from the body are left
// untouched; assignee and due_date may be null to clear them.
func (h *TaskHandler) Update(c *drift.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		writeDetail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := models.TaskPatch{
		Description: req.Description,
		AssigneeSet: req.Assignee.Set,
		AssigneeID:  req.Assignee.Value,
		DueDateSet:  req.DueDate.Set,
	}
	if req.Progress != nil {
		p := models.Progress(*req.Progress)
		patch.Progress = &p
	}
	if req.DueDate.Value != nil && *req.DueDate.Value != "" {
		due, err := services.ParseDueDate(*req.DueDate.Value)
		if err != nil {
			writeError(c, err)
			return
		}
		patch.DueDate = &due
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, patch)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := toTaskResponse(task)
	h.events.Publish(task.TodoListID, sse.EventTaskUpdated, resp)

	_ = c.JSON(200, dto.TaskEnvelope{Message: msgTaskUpdated, Task: resp})
}

func (h *TaskHandler) Delete(c *drift.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listID, err := h.taskService.Delete(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(listID, sse.EventTaskDeleted, sse.TaskDeletedEvent{
		TodoListID: listID,
		TaskID:     taskID,
	})

	_ = c.JSON(200, dto.MessageResponse{Message: msgTaskDeleted})
}
