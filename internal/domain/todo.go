package domain

import (
	"fmt"
	"time"
)

// Common validation errors for Todo
var (
	ErrEmptyTodoTitle  = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyTodoUserID = fmt.Errorf("%w: todo user ID cannot be empty", ErrValidation)
)

// Todo represents a todo list owned by a single user. Items belonging to
// the list are modeled separately as Item.
type Todo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTodo creates a new Todo owned by the given user and sets the
// creation/update timestamps. The ID is assigned by the database on insert.
// Returns an error if validation fails.
func NewTodo(userID int64, title string) (*Todo, error) {
	now := time.Now().UTC()
	todo := &Todo{
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// Validate checks if the Todo has valid data.
// Returns an error if any field fails validation.
func (t *Todo) Validate() error {
	if t.UserID <= 0 {
		return ErrEmptyTodoUserID
	}

	if t.Title == "" {
		return ErrEmptyTodoTitle
	}

	return nil
}

// Rename changes the todo's title and bumps the UpdatedAt timestamp.
// Returns an error if the new title is invalid.
func (t *Todo) Rename(title string) error {
	if title == "" {
		return ErrEmptyTodoTitle
	}

	t.Title = title
	t.UpdatedAt = time.Now().UTC()
	return nil
}
