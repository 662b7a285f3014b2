package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/todo-api/internal/services"
	"github.com/dimitrije/todo-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	msgRegistered    = "User registered successfully"
	msgUsernameTaken = "Username already exists"
	msgLoggedIn      = "Login successful"
	msgUserNotFound  = "User not found"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

func bindAuthRequest(c *drift.Context) (dto.AuthRequest, bool) {
	var req dto.AuthRequest
	if hasBody(c) {
		if err := c.BindJSON(&req); err != nil {
			writeDetail(c, http.StatusBadRequest, "invalid request body")
			return req, false
		}
	} else {
		req.Username = c.QueryParam("username")
	}
	return req, true
}

func (h *UserHandler) Register(c *drift.Context) {
	req, ok := bindAuthRequest(c)
	if !ok {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username)
	if errors.Is(err, services.ErrUsernameTaken) {
		_ = c.JSON(200, dto.AuthResponse{Success: false, Message: msgUsernameTaken})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(200, dto.AuthResponse{
		Success: true,
		UserID:  &user.ID,
		Message: msgRegistered,
	})
}

// Login looks the username up; it never creates an account.
func (h *UserHandler) Login(c *drift.Context) {
	req, ok := bindAuthRequest(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, services.ErrUserNotFound) {
		_ = c.JSON(200, dto.AuthResponse{Success: false, Message: msgUserNotFound})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(200, dto.AuthResponse{
		Success: true,
		UserID:  &user.ID,
		Message: msgLoggedIn,
	})
}

func (h *UserHandler) Get(c *drift.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		_ = c.JSON(200, dto.UserExistsResponse{Exists: false, UserID: id})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	_ = c.JSON(200, dto.UserExistsResponse{
		Exists:   true,
		UserID:   user.ID,
		Username: user.Username,
	})
}

func (h *UserHandler) List(c *drift.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.UsersResponse{Users: make([]dto.UserRow, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, dto.UserRow{UserID: u.ID, Username: u.Username})
	}
	_ = c.JSON(200, resp)
}
