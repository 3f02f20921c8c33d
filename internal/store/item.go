package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/todos-api/internal/domain"
)

// ItemStore defines the interface for item data persistence. Every read and
// write is scoped to a parent todo, which callers resolve through the
// TodoStore first so ownership checks happen exactly once.
type ItemStore interface {
	// Create saves a new item to the store and sets the database-assigned ID
	// on the given item.
	// Returns validation errors from the domain Item if data is invalid.
	Create(ctx context.Context, item *domain.Item) error

	// GetForTodo retrieves an item by ID, scoped to its parent todo.
	// Returns ErrItemNotFound if no such item exists in that todo.
	GetForTodo(ctx context.Context, id, todoID int64) (*domain.Item, error)

	// ListByTodo retrieves a page of items in a todo ordered by creation
	// time, oldest first. A limit <= 0 or a page past the end of the data
	// returns an empty slice, never an error.
	ListByTodo(ctx context.Context, todoID int64, limit, offset int) ([]*domain.Item, error)

	// ListByTodoIDs retrieves all items belonging to any of the given todos,
	// keyed by todo ID and ordered oldest first within each todo. Todos
	// without items have no map entry. Used to embed items into a page of
	// todos with a single query.
	ListByTodoIDs(ctx context.Context, todoIDs []int64) (map[int64][]*domain.Item, error)

	// Update saves changes to an existing item, scoped to its parent todo.
	// Returns ErrItemNotFound if no such item exists in that todo.
	// Returns validation errors if the item data is invalid.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item, scoped to its parent todo.
	// Returns ErrItemNotFound if no such item exists in that todo.
	Delete(ctx context.Context, id, todoID int64) error

	// WithTx returns a new ItemStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) ItemStore
}
