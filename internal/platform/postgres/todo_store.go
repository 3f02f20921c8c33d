package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/platform/logger"
	"github.com/phrazzld/todos-api/internal/store"
)

// PostgresTodoStore implements the store.TodoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the
// TodoStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

// Ensure PostgresTodoStore implements store.TodoStore interface
var _ store.TodoStore = (*PostgresTodoStore)(nil)

// Create implements store.TodoStore.Create
// It saves a new todo to the database, handling domain validation. The
// database-assigned ID is written back to the given todo.
// Returns store.ErrInvalidEntity if the owning user doesn't exist.
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", todo.UserID))
		return err
	}

	query := `
		INSERT INTO todos (user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		todo.UserID,
		todo.Title,
		todo.CreatedAt,
		todo.UpdatedAt,
	).Scan(&todo.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during todo creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", todo.UserID))
			return MapError(err)
		}

		log.Error("failed to create todo",
			slog.String("error", err.Error()),
			slog.Int64("user_id", todo.UserID))
		return err
	}

	log.Info("todo created successfully",
		slog.Int64("todo_id", todo.ID),
		slog.Int64("user_id", todo.UserID))
	return nil
}

// GetForUser implements store.TodoStore.GetForUser
// It retrieves a todo by ID, scoped to the owning user.
// Returns store.ErrTodoNotFound if no such todo exists for that user.
func (s *PostgresTodoStore) GetForUser(ctx context.Context, id, userID int64) (*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving todo",
		slog.Int64("todo_id", id),
		slog.Int64("user_id", userID))

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	var todo domain.Todo
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("todo not found",
				slog.Int64("todo_id", id),
				slog.Int64("user_id", userID))
			return nil, store.ErrTodoNotFound
		}
		log.Error("failed to get todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return nil, err
	}

	return &todo, nil
}

// ListByUser implements store.TodoStore.ListByUser
// It retrieves the user's todos ordered by creation time, newest first.
// Returns an empty slice if the page is past the end of the data.
func (s *PostgresTodoStore) ListByUser(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]*domain.Todo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		return []*domain.Todo{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing todos",
		slog.Int64("user_id", userID),
		slog.Int("limit", limit),
		slog.Int("offset", offset))

	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to query todos",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var todos []*domain.Todo
	for rows.Next() {
		var todo domain.Todo
		err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan todo row",
				slog.String("error", err.Error()))
			return nil, err
		}
		todos = append(todos, &todo)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no todos found
	if todos == nil {
		todos = []*domain.Todo{}
	}

	log.Debug("listed todos",
		slog.Int64("user_id", userID),
		slog.Int("count", len(todos)))
	return todos, nil
}

// Update implements store.TodoStore.Update
// It saves changes to an existing todo, scoped to its owning user.
// Returns store.ErrTodoNotFound if no such todo exists for that user.
func (s *PostgresTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := todo.Validate(); err != nil {
		log.Warn("todo validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todo.ID))
		return err
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE todos
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		todo.Title,
		updatedAt,
		todo.ID,
		todo.UserID,
	)

	if err != nil {
		log.Error("failed to update todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todo.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", todo.ID))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("todo not found for update",
			slog.Int64("todo_id", todo.ID),
			slog.Int64("user_id", todo.UserID))
		return store.ErrTodoNotFound
	}

	todo.UpdatedAt = updatedAt

	log.Info("todo updated successfully",
		slog.Int64("todo_id", todo.ID))
	return nil
}

// Delete implements store.TodoStore.Delete
// It removes a todo, scoped to the owning user. Items belonging to the todo
// are removed by the schema's ON DELETE CASCADE.
// Returns store.ErrTodoNotFound if no such todo exists for that user.
func (s *PostgresTodoStore) Delete(ctx context.Context, id, userID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		log.Error("failed to delete todo",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("todo_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("todo not found for delete",
			slog.Int64("todo_id", id),
			slog.Int64("user_id", userID))
		return store.ErrTodoNotFound
	}

	log.Info("todo deleted successfully",
		slog.Int64("todo_id", id))
	return nil
}

// WithTx implements store.TodoStore.WithTx
// It returns a new store bound to the given transaction, keeping the same
// logger.
func (s *PostgresTodoStore) WithTx(tx *sql.Tx) store.TodoStore {
	return &PostgresTodoStore{
		db:     tx,
		logger: s.logger,
	}
}
