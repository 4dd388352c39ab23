package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexitrack/lexitrack/internal/domain"
)

// ItemStore defines the interface for review item persistence.
//
// Change notification is deliberately coarse: implementations signal that
// "something changed" without saying what, and consumers are expected to
// re-query. Notifications may be dropped if nobody is draining the channel;
// they are a refresh hint, not a durable event log.
type ItemStore interface {
	// Create saves a new item to the store.
	// The item must be valid according to domain validation rules.
	// Returns ErrDuplicate if an item with the same ID already exists.
	Create(ctx context.Context, item *domain.ReviewItem) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error)

	// Update applies the mutator to the stored item and persists the result
	// as one write. The mutator receives a copy of the current state; the
	// write only happens if the mutator returns nil and the mutated item
	// still passes domain validation. Returns ErrItemNotFound if the item
	// does not exist.
	Update(ctx context.Context, id uuid.UUID, mutate func(item *domain.ReviewItem) error) error

	// Delete removes an item from the store by its ID. Deleting an ID that
	// is no longer present is a no-op, not an error: deletes are expected
	// to race with other mutations during batch operations.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all live items in the store, in no particular order.
	List(ctx context.Context) ([]domain.ReviewItem, error)

	// Changes returns the channel on which the store signals mutations.
	// The channel is never closed while the store is open.
	Changes() <-chan struct{}
}

// StudyDayStore persists the set of calendar days on which a study session
// was recorded. Days are stored as "YYYY-MM-DD" strings in the process's
// local calendar. The set is append-only; marking an existing day is a no-op.
type StudyDayStore interface {
	// MarkDay records the given day as studied. Idempotent.
	MarkDay(ctx context.Context, day string) error

	// ListDays returns all recorded days, in no particular order.
	ListDays(ctx context.Context) ([]string, error)
}
