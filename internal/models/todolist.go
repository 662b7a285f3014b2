package models

// Access roles reported for a list.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type TodoList struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Shared     bool    `json:"shared"`
	OwnerID    int64   `json:"owner_id"`
	InviteCode *string `json:"invite_code,omitempty"`
}

// Member is a user with access to a list, either its owner or a member
// joined through the invite code.
type Member struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
