package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Handlers map ErrValidation to 400 and ErrNotFound to 404;
// anything else is a store error.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

var (
	ErrUsernameRequired    = validationError("username is required")
	ErrNameRequired        = validationError("name is required")
	ErrDescriptionRequired = validationError("description is required")
	ErrInvalidProgress     = validationError("invalid progress value, must be 'Uncompleted' or 'Completed'")
	ErrNoFieldsToUpdate    = validationError("No fields to update")
	ErrInviteCodeRequired  = validationError("invite code is required")
	ErrInvalidDueDate      = validationError("invalid due date, expected YYYY-MM-DD")

	ErrUserNotFound   = notFoundError("user not found")
	ErrListNotFound   = notFoundError("todolist not found")
	ErrTaskNotFound   = notFoundError("task not found")
	ErrInviteNotFound = notFoundError("invalid invite code")
	ErrMemberNotFound = notFoundError("User is not a member of this ToDoList")

	// ErrUsernameTaken is a conflict, reported to the client as an
	// unsuccessful registration rather than an HTTP error.
	ErrUsernameTaken = errors.New("username already exists")

	ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")
)

// kindError carries a client-facing message and reports itself as its
// kind through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

func validationError(msg string) error { return &kindError{kind: ErrValidation, msg: msg} }
func notFoundError(msg string) error   { return &kindError{kind: ErrNotFound, msg: msg} }

const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraint
}
