package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/store"
)

// Verify interface compliance at compile time
var _ store.ItemStore = (*MockItemStore)(nil)

// MockItemStore implements store.ItemStore for testing. The default
// implementation is a working in-memory store that emits a change signal on
// every mutation, like the real sqlite store does. Function fields override
// individual methods; error fields make the default implementation fail.
type MockItemStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, item *domain.ReviewItem) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)
	UpdateFn  func(ctx context.Context, id uuid.UUID, mutate func(*domain.ReviewItem) error) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	ListFn    func(ctx context.Context) ([]domain.ReviewItem, error)

	// Errors for the default implementation
	CreateError error
	UpdateError error
	DeleteError error
	ListError   error

	mu      sync.Mutex
	items   map[uuid.UUID]domain.ReviewItem
	changes chan struct{}
}

// NewMockItemStore creates a new mock store with initialized defaults.
func NewMockItemStore() *MockItemStore {
	return &MockItemStore{
		items:   make(map[uuid.UUID]domain.ReviewItem),
		changes: make(chan struct{}, 16),
	}
}

// Seed inserts items directly without validation or change signals.
func (m *MockItemStore) Seed(items ...domain.ReviewItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[item.ID] = item
	}
}

// Len returns the number of stored items.
func (m *MockItemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Create implements the ItemStore interface.
func (m *MockItemStore) Create(ctx context.Context, item *domain.ReviewItem) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	if _, exists := m.items[item.ID]; exists {
		m.mu.Unlock()
		return store.ErrDuplicate
	}
	m.items[item.ID] = *item
	m.mu.Unlock()

	m.notify()
	return nil
}

// GetByID implements the ItemStore interface.
func (m *MockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	out := item
	return &out, nil
}

// Update implements the ItemStore interface.
func (m *MockItemStore) Update(ctx context.Context, id uuid.UUID, mutate func(*domain.ReviewItem) error) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, mutate)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	item, ok := m.items[id]
	if !ok {
		m.mu.Unlock()
		return store.ErrItemNotFound
	}
	if err := mutate(&item); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := item.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.items[id] = item
	m.mu.Unlock()

	m.notify()
	return nil
}

// Delete implements the ItemStore interface. Missing IDs are a no-op.
func (m *MockItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.DeleteError != nil {
		return m.DeleteError
	}

	m.mu.Lock()
	delete(m.items, id)
	m.mu.Unlock()

	m.notify()
	return nil
}

// List implements the ItemStore interface.
func (m *MockItemStore) List(ctx context.Context) ([]domain.ReviewItem, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ReviewItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, item)
	}
	return out, nil
}

// Changes implements the ItemStore interface.
func (m *MockItemStore) Changes() <-chan struct{} {
	return m.changes
}

func (m *MockItemStore) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}
