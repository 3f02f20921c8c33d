package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/todos-api/internal/domain"
)

// TodoStore defines the interface for todo data persistence. Every read and
// write is scoped to an owning user; a todo belonging to someone else is
// indistinguishable from a missing one.
type TodoStore interface {
	// Create saves a new todo to the store and sets the database-assigned ID
	// on the given todo.
	// Returns validation errors from the domain Todo if data is invalid.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetForUser retrieves a todo by ID, scoped to the owning user.
	// Returns ErrTodoNotFound if no such todo exists for that user.
	GetForUser(ctx context.Context, id, userID int64) (*domain.Todo, error)

	// ListByUser retrieves the user's todos ordered by creation time,
	// newest first. Limit and offset paginate the result; a limit <= 0
	// returns an empty slice.
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Todo, error)

	// Update saves changes to an existing todo, scoped to its owning user.
	// Returns ErrTodoNotFound if no such todo exists for that user.
	// Returns validation errors if the todo data is invalid.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete removes a todo and, through the schema's cascade, its items.
	// Returns ErrTodoNotFound if no such todo exists for that user.
	Delete(ctx context.Context, id, userID int64) error

	// WithTx returns a new TodoStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) TodoStore
}
