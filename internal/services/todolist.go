package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/todo-api/internal/database"
	"github.com/dimitrije/todo-api/internal/models"
	"github.com/jackc/pgx/v5"
)

type TodoListService struct {
	db           *database.DB
	generateCode func() (string, error)
}

func NewTodoListService(db *database.DB) *TodoListService {
	return &TodoListService{db: db, generateCode: GenerateInviteCode}
}

// JoinResult reports which list an invite code resolved to and whether the
// user already had access to it.
type JoinResult struct {
	TodoListID    int64
	AlreadyMember bool
}

// Create inserts a list owned by ownerID. Shared lists get a fresh invite
// code; a collision with an existing code is retried with a new one.
func (s *TodoListService) Create(ctx context.Context, ownerID int64, shared bool, name string) (*models.TodoList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		var code *string
		if shared {
			c, err := s.generateCode()
			if err != nil {
				return nil, fmt.Errorf("failed to generate invite code: %w", err)
			}
			code = &c
		}

		var list models.TodoList
		err := s.db.Pool.QueryRow(ctx, `
			INSERT INTO todolists (name, shared_flag, user_id, invite_code)
			VALUES ($1, $2, $3, $4)
			RETURNING todolist_id, name, shared_flag, user_id, invite_code
		`, name, shared, ownerID, code).Scan(
			&list.ID, &list.Name, &list.Shared, &list.OwnerID, &list.InviteCode,
		)
		if err == nil {
			return &list, nil
		}
		if shared && isUniqueViolation(err, database.InviteCodeUniqueConstraint) {
			continue
		}
		return nil, fmt.Errorf("failed to create todolist: %w", err)
	}

	return nil, ErrInviteCodeExhausted
}

func (s *TodoListService) GetByID(ctx context.Context, listID int64) (*models.TodoList, error) {
	var list models.TodoList
	err := s.db.Pool.QueryRow(ctx, `
		SELECT todolist_id, name, shared_flag, user_id, invite_code
		FROM todolists WHERE todolist_id = $1
	`, listID).Scan(&list.ID, &list.Name, &list.Shared, &list.OwnerID, &list.InviteCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todolist: %w", err)
	}
	return &list, nil
}

// ListForUser returns the lists userID owns plus the lists shared with
// them. A user without lists gets an empty slice.
func (s *TodoListService) ListForUser(ctx context.Context, userID int64) ([]models.TodoList, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT l.todolist_id, l.name, l.shared_flag, l.user_id, l.invite_code
		FROM todolists l
		WHERE l.user_id = $1
		UNION
		SELECT l.todolist_id, l.name, l.shared_flag, l.user_id, l.invite_code
		FROM todolists l
		JOIN todolist_shares s ON s.todolist_id = l.todolist_id
		WHERE s.user_id = $1 AND l.user_id <> $1
		ORDER BY todolist_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.TodoList{}
	for rows.Next() {
		var l models.TodoList
		if err := rows.Scan(&l.ID, &l.Name, &l.Shared, &l.OwnerID, &l.InviteCode); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// Join resolves an invite code and adds userID as a member of the list.
// Joining a list the user already owns or belongs to is a no-op.
func (s *TodoListService) Join(ctx context.Context, userID int64, inviteCode string) (*JoinResult, error) {
	inviteCode = normalizeInviteCode(inviteCode)
	if inviteCode == "" {
		return nil, ErrInviteCodeRequired
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var listID, ownerID int64
	err = tx.QueryRow(ctx, `
		SELECT todolist_id, user_id FROM todolists WHERE invite_code = $1
	`, inviteCode).Scan(&listID, &ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invite code: %w", err)
	}

	result := &JoinResult{TodoListID: listID}
	if ownerID == userID {
		result.AlreadyMember = true
		return result, nil
	}

	var isMember bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM todolist_shares WHERE todolist_id = $1 AND user_id = $2)
	`, listID, userID).Scan(&isMember)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if isMember {
		result.AlreadyMember = true
		return result, nil
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO todolist_shares (todolist_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (todolist_id, user_id) DO NOTHING
	`, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// Members returns the owner of the list followed by its members.
func (s *TodoListService) Members(ctx context.Context, listID int64) ([]models.Member, error) {
	// 'owner' sorts after 'member', so DESC puts the owner first.
	rows, err := s.db.Pool.Query(ctx, `
		SELECT u.user_id, u.username, 'owner' AS role
		FROM todolists l
		JOIN users u ON u.user_id = l.user_id
		WHERE l.todolist_id = $1
		UNION ALL
		SELECT u.user_id, u.username, 'member' AS role
		FROM todolist_shares s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.todolist_id = $1
		ORDER BY role DESC, user_id
	`, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.UserID, &m.Username, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *TodoListService) Leave(ctx context.Context, listID, userID int64) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM todolist_shares WHERE todolist_id = $1 AND user_id = $2
	`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to leave todolist: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete removes the list's tasks, then its memberships, then the list,
// in one transaction.
func (s *TodoListService) Delete(ctx context.Context, listID int64) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM todolists WHERE todolist_id = $1)
	`, listID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check todolist: %w", err)
	}
	if !exists {
		return ErrListNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE todolist_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete tasks: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM todolist_shares WHERE todolist_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete memberships: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM todolists WHERE todolist_id = $1`, listID); err != nil {
		return fmt.Errorf("failed to delete todolist: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
