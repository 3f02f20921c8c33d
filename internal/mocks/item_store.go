package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/phrazzld/todos-api/internal/domain"
	"github.com/phrazzld/todos-api/internal/store"
)

// MockItemStore implements store.ItemStore for testing
type MockItemStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, item *domain.Item) error
	GetForTodoFn    func(ctx context.Context, id, todoID int64) (*domain.Item, error)
	ListByTodoFn    func(ctx context.Context, todoID int64, limit, offset int) ([]*domain.Item, error)
	ListByTodoIDsFn func(ctx context.Context, todoIDs []int64) (map[int64][]*domain.Item, error)
	UpdateFn        func(ctx context.Context, item *domain.Item) error
	DeleteFn        func(ctx context.Context, id, todoID int64) error

	// Data for default implementation
	Items  map[int64]*domain.Item
	NextID int64
}

// NewMockItemStore creates a new mock store with initialized defaults
func NewMockItemStore() *MockItemStore {
	return &MockItemStore{
		Items: make(map[int64]*domain.Item),
	}
}

// Create implements the ItemStore interface
func (m *MockItemStore) Create(ctx context.Context, item *domain.Item) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}

	m.NextID++
	item.ID = m.NextID
	m.Items[item.ID] = item
	return nil
}

// GetForTodo implements the ItemStore interface
func (m *MockItemStore) GetForTodo(ctx context.Context, id, todoID int64) (*domain.Item, error) {
	if m.GetForTodoFn != nil {
		return m.GetForTodoFn(ctx, id, todoID)
	}

	item, exists := m.Items[id]
	if !exists || item.TodoID != todoID {
		return nil, store.ErrItemNotFound
	}

	return item, nil
}

// ListByTodo implements the ItemStore interface. The default
// implementation orders oldest first, matching the real store.
func (m *MockItemStore) ListByTodo(
	ctx context.Context,
	todoID int64,
	limit, offset int,
) ([]*domain.Item, error) {
	if m.ListByTodoFn != nil {
		return m.ListByTodoFn(ctx, todoID, limit, offset)
	}

	owned := make([]*domain.Item, 0)
	for _, item := range m.Items {
		if item.TodoID == todoID {
			owned = append(owned, item)
		}
	}
	sortItemsOldestFirst(owned)

	start, end := pageBounds(len(owned), limit, offset)
	return owned[start:end], nil
}

// ListByTodoIDs implements the ItemStore interface
func (m *MockItemStore) ListByTodoIDs(
	ctx context.Context,
	todoIDs []int64,
) (map[int64][]*domain.Item, error) {
	if m.ListByTodoIDsFn != nil {
		return m.ListByTodoIDsFn(ctx, todoIDs)
	}

	wanted := make(map[int64]bool, len(todoIDs))
	for _, id := range todoIDs {
		wanted[id] = true
	}

	grouped := make(map[int64][]*domain.Item)
	for _, item := range m.Items {
		if wanted[item.TodoID] {
			grouped[item.TodoID] = append(grouped[item.TodoID], item)
		}
	}
	for _, items := range grouped {
		sortItemsOldestFirst(items)
	}

	return grouped, nil
}

// Update implements the ItemStore interface
func (m *MockItemStore) Update(ctx context.Context, item *domain.Item) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, item)
	}

	existing, exists := m.Items[item.ID]
	if !exists || existing.TodoID != item.TodoID {
		return store.ErrItemNotFound
	}

	m.Items[item.ID] = item
	return nil
}

// Delete implements the ItemStore interface
func (m *MockItemStore) Delete(ctx context.Context, id, todoID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, todoID)
	}

	item, exists := m.Items[id]
	if !exists || item.TodoID != todoID {
		return store.ErrItemNotFound
	}

	delete(m.Items, id)
	return nil
}

// WithTx implements the ItemStore interface for transaction support
func (m *MockItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	// Transaction-scoped behavior is the same mock
	return m
}

func sortItemsOldestFirst(items []*domain.Item) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
