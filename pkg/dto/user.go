package dto

type UserRow struct {
	UserID   int64  `json:"UserID"`
	Username string `json:"Username"`
}

type UsersResponse struct {
	Users []UserRow `json:"users"`
}

type UserExistsResponse struct {
	Exists   bool   `json:"exists"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// AuthRequest is the body of both register and login.
type AuthRequest struct {
	Username string `json:"username"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	UserID  *int64 `json:"user_id,omitempty"`
	Message string `json:"message"`
}
