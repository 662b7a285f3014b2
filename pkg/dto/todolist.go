package dto

type CreateTodoListRequest struct {
	UserID int64  `json:"user_id"`
	Shared bool   `json:"shared"`
	Name   string `json:"name"`
}

type CreateTodoListResponse struct {
	Message    string  `json:"message"`
	TodoListID int64   `json:"todolist_id"`
	Name       string  `json:"name"`
	Shared     bool    `json:"shared"`
	InviteCode *string `json:"inviteCode"`
}

type TodoListResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Shared     bool    `json:"shared"`
	OwnerID    int64   `json:"owner_id"`
	InviteCode *string `json:"inviteCode"`
}

type TodoListsResponse struct {
	TodoLists []TodoListResponse `json:"todolists"`
}

type JoinTodoListRequest struct {
	UserID     int64  `json:"user_id"`
	InviteCode string `json:"invite_code"`
}

type LeaveTodoListRequest struct {
	UserID int64 `json:"user_id"`
}

type MemberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MembersResponse struct {
	Users []MemberResponse `json:"users"`
}
