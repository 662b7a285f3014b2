package handlers

import (
	"net/http"

	"github.com/dimitrije/todo-api/internal/models"
	"github.com/dimitrije/todo-api/internal/sse"
	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	msgListCreated   = "ToDoList created successfully"
	msgJoined        = "Successfully joined the ToDoList"
	msgAlreadyMember = "User is already a member of this ToDoList"
	msgLeft          = "Successfully left the ToDoList"
	msgListDeleted   = "ToDoList deleted successfully"
)

type TodoListHandler struct {
	todoListService TodoListServiceInterface
	events          EventPublisher
}

func NewTodoListHandler(todoListService TodoListServiceInterface, events EventPublisher) *TodoListHandler {
	return &TodoListHandler{
		todoListService: todoListService,
		events:          events,
	}
}

func toTodoListResponse(l models.TodoList) dto.TodoListResponse {
	return dto.TodoListResponse{
		ID:         l.ID,
		Name:       l.Name,
		Shared:     l.Shared,
		OwnerID:    l.OwnerID,
		InviteCode: l.InviteCode,
	}
}

func (h *TodoListHandler) Create(c *drift.Context) {
	var req dto.CreateTodoListRequest
	if hasBody(c) {
		if err := c.BindJSON(&req); err != nil {
			writeDetail(c, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		var err error
		if req.UserID, err = queryInt64(c, "user_id"); err != nil {
			writeDetail(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.Shared, err = queryBool(c, "shared"); err != nil {
			writeDetail(c, http.StatusBadRequest, err.Error())
			return
		}
		req.Name = c.QueryParam("name")
	}

	if req.UserID <= 0 {
		writeDetail(c, http.StatusBadRequest, "user_id is required")
		return
	}

	list, err := h.todoListService.Create(c.Request.Context(), req.UserID, req.Shared, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(200, dto.CreateTodoListResponse{
		Message:    msgListCreated,
		TodoListID: list.ID,
		Name:       list.Name,
		Shared:     list.Shared,
		InviteCode: list.InviteCode,
	})
}

// ListForUser serves GET /todolists/:id where id is the user's id.
func (h *TodoListHandler) ListForUser(c *drift.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lists, err := h.todoListService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.TodoListsResponse{TodoLists: make([]dto.TodoListResponse, 0, len(lists))}
	for _, l := range lists {
		resp.TodoLists = append(resp.TodoLists, toTodoListResponse(l))
	}
	_ = c.JSON(200, resp)
}

// PostAction serves POST /todolists/:id. The router cannot hold a static
// /todolists/join next to /todolists/:id/leave, so "join" is matched here.
func (h *TodoListHandler) PostAction(c *drift.Context) {
	if c.Param("id") != "join" {
		writeDetail(c, http.StatusNotFound, "not found")
		return
	}
	h.Join(c)
}

func (h *TodoListHandler) Join(c *drift.Context) {
	var req dto.JoinTodoListRequest
	if hasBody(c) {
		if err := c.BindJSON(&req); err != nil {
			writeDetail(c, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		var err error
		if req.UserID, err = queryInt64(c, "user_id"); err != nil {
			writeDetail(c, http.StatusBadRequest, err.Error())
			return
		}
		req.InviteCode = c.QueryParam("invite_code")
	}

	if req.UserID <= 0 {
		writeDetail(c, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.todoListService.Join(c.Request.Context(), req.UserID, req.InviteCode)
	if err != nil {
		writeError(c, err)
		return
	}

	if result.AlreadyMember {
		_ = c.JSON(200, dto.MessageResponse{Message: msgAlreadyMember})
		return
	}

	h.events.Publish(result.TodoListID, sse.EventMemberJoined, sse.MemberEvent{
		TodoListID: result.TodoListID,
		UserID:     req.UserID,
	})

	_ = c.JSON(200, dto.MessageResponse{Message: msgJoined})
}

func (h *TodoListHandler) Members(c *drift.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.todoListService.Members(c.Request.Context(), listID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.MembersResponse{Users: make([]dto.MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Users = append(resp.Users, dto.MemberResponse{
			ID:       m.UserID,
			Username: m.Username,
			Role:     m.Role,
		})
	}
	_ = c.JSON(200, resp)
}

func (h *TodoListHandler) Leave(c *drift.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.LeaveTodoListRequest
	if hasBody(c) {
		if err := c.BindJSON(&req); err != nil {
			writeDetail(c, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		var err error
		if req.UserID, err = queryInt64(c, "user_id"); err != nil {
			writeDetail(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.UserID <= 0 {
		writeDetail(c, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := h.todoListService.Leave(c.Request.Context(), listID, req.UserID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(listID, sse.EventMemberLeft, sse.MemberEvent{
		TodoListID: listID,
		UserID:     req.UserID,
	})

	_ = c.JSON(200, dto.MessageResponse{Message: msgLeft})
}

func (h *TodoListHandler) Delete(c *drift.Context) {
	listID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.todoListService.Delete(c.Request.Context(), listID); err != nil {
		writeError(c, err)
		return
	}

	h.events.Publish(listID, sse.EventListDeleted, sse.ListDeletedEvent{TodoListID: listID})

	_ = c.JSON(200, dto.MessageResponse{Message: msgListDeleted})
}
