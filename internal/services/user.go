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

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a user with the given name. The existence check and the
// insert share a transaction; the insert is also guarded by the unique
// constraint so a concurrent registration of the same name yields
// ErrUsernameTaken rather than a store error.
func (s *UserService) Register(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	user := models.User{Username: username}
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT ON CONSTRAINT `+database.UsernameUniqueConstraint+` DO NOTHING
		RETURNING user_id
	`, username).Scan(&user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id, username FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id, username FROM users WHERE user_id = $1
	`, id).Scan(&user.ID, &user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT user_id, username FROM users ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
