package domain

import (
	"fmt"
	"time"
)

// Common validation errors for Item
var (
	ErrEmptyItemName   = fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	ErrEmptyItemTodoID = fmt.Errorf("%w: item todo ID cannot be empty", ErrValidation)
)

// Item represents a single entry in a todo list. It tracks whether the
// entry has been completed.
type Item struct {
	ID        int64     `json:"id"`
	TodoID    int64     `json:"todo_id"`
	Name      string    `json:"name"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewItem creates a new Item in the given todo list, initially not done,
// and sets the creation/update timestamps. The ID is assigned by the
// database on insert. Returns an error if validation fails.
func NewItem(todoID int64, name string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		TodoID:    todoID,
		Name:      name,
		Done:      false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.TodoID <= 0 {
		return ErrEmptyItemTodoID
	}

	if i.Name == "" {
		return ErrEmptyItemName
	}

	return nil
}

// Rename changes the item's name and bumps the UpdatedAt timestamp.
// Returns an error if the new name is invalid.
func (i *Item) Rename(name string) error {
	if name == "" {
		return ErrEmptyItemName
	}

	i.Name = name
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// SetDone updates the item's completion state and bumps the UpdatedAt
// timestamp.
func (i *Item) SetDone(done bool) {
	i.Done = done
	i.UpdatedAt = time.Now().UTC()
}
