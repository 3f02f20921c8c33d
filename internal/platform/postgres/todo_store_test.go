package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresTodoStore(t *testing.T) {
	t.Parallel()

	t.Run("nil db panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			NewPostgresTodoStore(nil, nil)
		})
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		t.Parallel()

		s := NewPostgresTodoStore(&sql.DB{}, nil)
		require.NotNil(t, s)
		assert.NotNil(t, s.logger)
	})
}

func TestTodoStoreCreate(t *testing.T) {
	t.Run("success assigns ID", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectQuery(`(?s)INSERT INTO todos \(user_id, title, created_at, updated_at\).*RETURNING id`).
			WithArgs(int64(7), "Groceries", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

		todo := domain.NewTodo(7, "Groceries")

		err := s.Create(context.Background(), todo)
		require.NoError(t, err)
		assert.Equal(t, int64(42), todo.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user maps to ErrInvalidEntity", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectQuery(`INSERT INTO todos`).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "todos_user_id_fkey"})

		todo := domain.NewTodo(404, "Groceries")

		err := s.Create(context.Background(), todo)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid todo never reaches the database", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		todo := &domain.Todo{UserID: 7, Title: ""}

		err := s.Create(context.Background(), todo)
		assert.ErrorIs(t, err, domain.ErrEmptyTodoTitle)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoStoreGetForUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		rows := sqlmock.NewRows(
			[]string{"id", "user_id", "title", "created_at", "updated_at"},
		).AddRow(int64(42), int64(7), "Groceries", fixedTime, fixedTime)

		mock.ExpectQuery(`(?s)FROM todos.*WHERE id = \$1 AND user_id = \$2`).
			WithArgs(int64(42), int64(7)).
			WillReturnRows(rows)

		todo, err := s.GetForUser(context.Background(), 42, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(42), todo.ID)
		assert.Equal(t, int64(7), todo.UserID)
		assert.Equal(t, "Groceries", todo.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("another user's todo maps to ErrTodoNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectQuery(`FROM todos`).
			WithArgs(int64(42), int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetForUser(context.Background(), 42, 99)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoStoreListByUser(t *testing.T) {
	t.Run("returns page of todos", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		rows := sqlmock.NewRows(
			[]string{"id", "user_id", "title", "created_at", "updated_at"},
		).
			AddRow(int64(43), int64(7), "Packing", fixedTime.Add(time.Hour), fixedTime.Add(time.Hour)).
			AddRow(int64(42), int64(7), "Groceries", fixedTime, fixedTime)

		mock.ExpectQuery(`(?s)FROM todos.*WHERE user_id = \$1.*ORDER BY created_at DESC, id DESC.*LIMIT \$2 OFFSET \$3`).
			WithArgs(int64(7), 20, 0).
			WillReturnRows(rows)

		todos, err := s.ListByUser(context.Background(), 7, 20, 0)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, "Packing", todos[0].Title)
		assert.Equal(t, "Groceries", todos[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("page past the end returns empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		rows := sqlmock.NewRows(
			[]string{"id", "user_id", "title", "created_at", "updated_at"},
		)

		mock.ExpectQuery(`FROM todos`).
			WithArgs(int64(7), 20, 40).
			WillReturnRows(rows)

		todos, err := s.ListByUser(context.Background(), 7, 20, 40)
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive limit skips the query", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		todos, err := s.ListByUser(context.Background(), 7, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, todos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative offset is clamped to zero", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		rows := sqlmock.NewRows(
			[]string{"id", "user_id", "title", "created_at", "updated_at"},
		)

		mock.ExpectQuery(`FROM todos`).
			WithArgs(int64(7), 20, 0).
			WillReturnRows(rows)

		_, err := s.ListByUser(context.Background(), 7, 20, -5)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error passes through", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`FROM todos`).
			WithArgs(int64(7), 20, 0).
			WillReturnError(dbErr)

		_, err := s.ListByUser(context.Background(), 7, 20, 0)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoStoreUpdate(t *testing.T) {
	t.Run("success bumps UpdatedAt", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectExec(`(?s)UPDATE todos.*SET title = \$1, updated_at = \$2.*WHERE id = \$3 AND user_id = \$4`).
			WithArgs("Groceries and pharmacy", sqlmock.AnyArg(), int64(42), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		todo := &domain.Todo{
			ID:        42,
			UserID:    7,
			Title:     "Groceries and pharmacy",
			CreatedAt: fixedTime,
			UpdatedAt: fixedTime,
		}

		err := s.Update(context.Background(), todo)
		require.NoError(t, err)
		assert.True(t, todo.UpdatedAt.After(fixedTime), "UpdatedAt should be refreshed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing todo maps to ErrTodoNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectExec(`UPDATE todos`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		todo := &domain.Todo{ID: 42, UserID: 99, Title: "Groceries"}

		err := s.Update(context.Background(), todo)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoStoreDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectExec(`(?s)DELETE FROM todos.*WHERE id = \$1 AND user_id = \$2`).
			WithArgs(int64(42), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.Delete(context.Background(), 42, 7)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing todo maps to ErrTodoNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresTodoStore(db, nil)

		mock.ExpectExec(`DELETE FROM todos`).
			WithArgs(int64(42), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.Delete(context.Background(), 42, 99)
		assert.ErrorIs(t, err, store.ErrTodoNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTodoStoreWithTx(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresTodoStore(db, nil)

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	txStore, ok := s.WithTx(tx).(*PostgresTodoStore)
	require.True(t, ok, "WithTx should return a *PostgresTodoStore")
	assert.Equal(t, store.DBTX(tx), txStore.db)
}
