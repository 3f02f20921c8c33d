package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// Create implements store.ItemStore.Create
// It saves a new item to the database, handling domain validation. The
// database-assigned ID is written back to the given item.
// Returns store.ErrInvalidEntity if the parent todo doesn't exist
// (foreign key violation).
func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", item.TodoID))
		return err
	}

	query := `
		INSERT INTO items (todo_id, name, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		item.TodoID,
		item.Name,
		item.Done,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during item creation",
				slog.String("error", err.Error()),
				slog.Int64("todo_id", item.TodoID))
			return fmt.Errorf("%w: todo with ID %d not found",
				store.ErrInvalidEntity, item.TodoID)
		}

		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", item.TodoID))
		return err
	}

	log.Info("item created successfully",
		slog.Int64("item_id", item.ID),
		slog.Int64("todo_id", item.TodoID))
	return nil
}

// GetForTodo implements store.ItemStore.GetForTodo
// It retrieves an item by ID, scoped to its parent todo.
// Returns store.ErrItemNotFound if no such item exists in that todo.
func (s *PostgresItemStore) GetForTodo(ctx context.Context, id, todoID int64) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving item",
		slog.Int64("item_id", id),
		slog.Int64("todo_id", todoID))

	query := `
		SELECT id, todo_id, name, done, created_at, updated_at
		FROM items
		WHERE id = $1 AND todo_id = $2
	`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id, todoID).Scan(
		&item.ID,
		&item.TodoID,
		&item.Name,
		&item.Done,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found",
				slog.Int64("item_id", id),
				slog.Int64("todo_id", todoID))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return nil, err
	}

	return &item, nil
}

// ListByTodo implements store.ItemStore.ListByTodo
// It retrieves a page of items in a todo ordered by creation time, oldest
// first. Returns an empty slice when the page is past the end of the data.
func (s *PostgresItemStore) ListByTodo(
	ctx context.Context,
	todoID int64,
	limit, offset int,
) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Item{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing items",
		slog.Int64("todo_id", todoID),
		slog.Int("limit", limit),
		slog.Int("offset", offset))

	query := `
		SELECT id, todo_id, name, done, created_at, updated_at
		FROM items
		WHERE todo_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, todoID, limit, offset)
	if err != nil {
		log.Error("failed to query items",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todoID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID,
			&item.TodoID,
			&item.Name,
			&item.Done,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no items found
	if items == nil {
		items = []*domain.Item{}
	}

	log.Debug("listed items",
		slog.Int64("todo_id", todoID),
		slog.Int("count", len(items)))
	return items, nil
}

// ListByTodoIDs implements store.ItemStore.ListByTodoIDs
// It retrieves all items for the given todos in one query, keyed by todo ID
// and ordered oldest first within each todo. Todos without items have no map
// entry.
func (s *PostgresItemStore) ListByTodoIDs(
	ctx context.Context,
	todoIDs []int64,
) (map[int64][]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	grouped := make(map[int64][]*domain.Item)
	if len(todoIDs) == 0 {
		return grouped, nil
	}

	log.Debug("listing items for todos", slog.Int("todo_count", len(todoIDs)))

	query := `
		SELECT id, todo_id, name, done, created_at, updated_at
		FROM items
		WHERE todo_id = ANY($1)
		ORDER BY todo_id ASC, created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, todoIDs)
	if err != nil {
		log.Error("failed to query items for todos",
			slog.String("error", err.Error()),
			slog.Int("todo_count", len(todoIDs)))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	for rows.Next() {
		var item domain.Item
		err := rows.Scan(
			&item.ID,
			&item.TodoID,
			&item.Name,
			&item.Done,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		grouped[item.TodoID] = append(grouped[item.TodoID], &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return grouped, nil
}

// Update implements store.ItemStore.Update
// It saves changes to an existing item, scoped to its parent todo.
// Returns store.ErrItemNotFound if no such item exists in that todo.
func (s *PostgresItemStore) Update(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE items
		SET name = $1, done = $2, updated_at = $3
		WHERE id = $4 AND todo_id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Name,
		item.Done,
		updatedAt,
		item.ID,
		item.TodoID,
	)

	if err != nil {
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("item_id", item.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("item not found for update",
			slog.Int64("item_id", item.ID),
			slog.Int64("todo_id", item.TodoID))
		return store.ErrItemNotFound
	}

	item.UpdatedAt = updatedAt

	log.Info("item updated successfully",
		slog.Int64("item_id", item.ID))
	return nil
}

// Delete implements store.ItemStore.Delete
// It removes an item, scoped to its parent todo.
// Returns store.ErrItemNotFound if no such item exists in that todo.
func (s *PostgresItemStore) Delete(ctx context.Context, id, todoID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM items
		WHERE id = $1 AND todo_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, todoID)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("item_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("item not found for delete",
			slog.Int64("item_id", id),
			slog.Int64("todo_id", todoID))
		return store.ErrItemNotFound
	}

	log.Info("item deleted successfully",
		slog.Int64("item_id", id))
	return nil
}

// WithTx implements store.ItemStore.WithTx
// It returns a new store bound to the given transaction, keeping the same
// logger.
func (s *PostgresItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &PostgresItemStore{
		db:     tx,
		logger: s.logger,
	}
}
