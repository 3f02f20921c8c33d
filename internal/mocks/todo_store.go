package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/store"
)

// MockTodoStore implements store.TodoStore for testing
type MockTodoStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, todo *domain.Todo) error
	GetForUserFn func(ctx context.Context, id, userID int64) (*domain.Todo, error)
	ListByUserFn func(ctx context.Context, userID int64, limit, offset int) ([]*domain.Todo, error)
	UpdateFn     func(ctx context.Context, todo *domain.Todo) error
	DeleteFn     func(ctx context.Context, id, userID int64) error

	// Data for default implementation
	Todos  map[int64]*domain.Todo
	NextID int64
}

// NewMockTodoStore creates a new mock store with initialized defaults
func NewMockTodoStore() *MockTodoStore {
	return &MockTodoStore{
		Todos: make(map[int64]*domain.Todo),
	}
}

// Create implements the TodoStore interface
func (m *MockTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, todo)
	}

	m.NextID++
	todo.ID = m.NextID
	m.Todos[todo.ID] = todo
	return nil
}

// GetForUser implements the TodoStore interface
func (m *MockTodoStore) GetForUser(ctx context.Context, id, userID int64) (*domain.Todo, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	todo, exists := m.Todos[id]
	if !exists || todo.UserID != userID {
		return nil, store.ErrTodoNotFound
	}

	return todo, nil
}

// ListByUser implements the TodoStore interface. The default
// implementation orders newest first, matching the real store.
func (m *MockTodoStore) ListByUser(
	ctx context.Context,
	userID int64,
	limit, offset int,
) ([]*domain.Todo, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}

	owned := make([]*domain.Todo, 0)
	for _, todo := range m.Todos {
		if todo.UserID == userID {
			owned = append(owned, todo)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})

	start, end := pageBounds(len(owned), limit, offset)
	return owned[start:end], nil
}

// Update implements the TodoStore interface
func (m *MockTodoStore) Update(ctx context.Context, todo *domain.Todo) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, todo)
	}

	existing, exists := m.Todos[todo.ID]
	if !exists || existing.UserID != todo.UserID {
		return store.ErrTodoNotFound
	}

	m.Todos[todo.ID] = todo
	return nil
}

// Delete implements the TodoStore interface
func (m *MockTodoStore) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	todo, exists := m.Todos[id]
	if !exists || todo.UserID != userID {
		return store.ErrTodoNotFound
	}

	delete(m.Todos, id)
	return nil
}

// WithTx implements the TodoStore interface for transaction support
func (m *MockTodoStore) WithTx(tx *sql.Tx) store.TodoStore {
	// Transaction-scoped behavior is the same mock
	return m
}

// pageBounds clamps limit and offset against n rows and returns the
// selected window, with the same out-of-range behavior as the real
// stores: a non-positive limit or a page past the end selects nothing.
func pageBounds(n, limit, offset int) (start, end int) {
	if limit <= 0 || offset >= n {
		return 0, 0
	}
	if offset < 0 {
		offset = 0
	}
	end = offset + limit
	if end > n {
		end = n
	}
	return offset, end
}
