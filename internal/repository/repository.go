// Package repository maintains an in-memory, always-sorted mirror of the
// item store and exposes the derived read views (due queue, language
// groupings) without forcing every consumer back to the store.
//
// The mirror is a fully-owned snapshot: consumers get value copies, never
// references into live store state, so a delete or refresh can never pull
// an item out from under a reader.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/store"
)

// ItemRepository mirrors the store's review items, sorted by CreatedAt
// descending (newest first).
//
// Refresh and OptimisticRemove are serialized by a single mutex, and a
// refresh publishes its result as one atomic slice swap: readers observe
// either the old mirror or the new one, never a partially-built state.
// While suppressed, Refresh is a no-op; this lets a multi-step mutation
// (batch delete) manage the mirror manually via OptimisticRemove without an
// async change-driven refresh racing the in-flight deletes and resurrecting
// rows that are about to disappear.
type ItemRepository struct {
	itemStore store.ItemStore
	logger    *slog.Logger

	mu         sync.Mutex
	items      []domain.ReviewItem
	suppressed bool
}

// NewItemRepository creates a repository mirroring the given store. The
// mirror starts empty; call Refresh to populate it.
func NewItemRepository(itemStore store.ItemStore, logger *slog.Logger) *ItemRepository {
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ItemRepository{
		itemStore: itemStore,
		logger:    logger.With("component", "item_repository"),
	}
}

// Refresh re-reads all items from the store and replaces the mirror in one
// swap. If the repository is suppressed it returns immediately without
// touching the mirror or the store. On a store read failure the existing
// mirror is left unchanged and the error is returned.
func (r *ItemRepository) Refresh(ctx context.Context) error {
	r.mu.Lock()
	if r.suppressed {
		r.mu.Unlock()
		r.logger.Debug("refresh suppressed, skipping")
		return nil
	}
	r.mu.Unlock()

	// The store read happens outside the lock so a slow read never blocks
	// readers of the current mirror.
	fetched, err := r.itemStore.List(ctx)
	if err != nil {
		r.logger.Error("failed to refresh item mirror", "error", err)
		return fmt.Errorf("failed to refresh items: %w", err)
	}

	sort.SliceStable(fetched, func(i, j int) bool {
		return fetched[i].CreatedAt.After(fetched[j].CreatedAt)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.suppressed {
		// Suppression was switched on while the read was in flight; the
		// caller managing the mirror wins.
		r.logger.Debug("refresh result discarded, suppression enabled mid-read")
		return nil
	}
	r.items = fetched

	r.logger.Debug("item mirror refreshed", "item_count", len(fetched))
	return nil
}

// SetSuppressed toggles refresh suppression. While suppressed, change-driven
// and explicit refreshes are dropped; the caller is expected to keep the
// mirror coherent via OptimisticRemove and to call Refresh after lifting
// suppression.
func (r *ItemRepository) SetSuppressed(suppressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppressed = suppressed
}

// Suppressed reports whether refreshes are currently suppressed.
func (r *ItemRepository) Suppressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}

// OptimisticRemove immediately strips the given items from the mirror
// without touching the store, for snappy feedback while the real deletes
// are still in flight. IDs not present in the mirror are ignored.
func (r *ItemRepository) OptimisticRemove(ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	doomed := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]domain.ReviewItem, 0, len(r.items))
	for _, item := range r.items {
		if _, gone := doomed[item.ID]; !gone {
			kept = append(kept, item)
		}
	}
	removed := len(r.items) - len(kept)
	r.items = kept

	r.logger.Debug("optimistically removed items", "removed", removed, "remaining", len(kept))
}

// Snapshot returns a copy of the full mirror, newest first.
func (r *ItemRepository) Snapshot() []domain.ReviewItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ReviewItem, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items currently mirrored.
func (r *ItemRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// ItemsDue returns all non-mastered items due at ref, most overdue first:
// items with no next-review time sort before everything else, then set
// times ascending.
func (r *ItemRepository) ItemsDue(ref time.Time) []domain.ReviewItem {
	r.mu.Lock()
	due := make([]domain.ReviewItem, 0)
	for _, item := range r.items {
		if item.IsDue(ref) {
			due = append(due, item)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		a, b := due[i].NextReviewAt, due[j].NextReviewAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})

	return due
}

// ItemsForLanguage returns the mirrored items for one language, or the
// whole mirror when lang is empty.
func (r *ItemRepository) ItemsForLanguage(lang string) []domain.ReviewItem {
	if lang == "" {
		return r.Snapshot()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ReviewItem, 0)
	for _, item := range r.items {
		if item.Language == lang {
			out = append(out, item)
		}
	}
	return out
}

// AvailableLanguages returns the distinct language tags present in the
// mirror, sorted lexicographically.
func (r *ItemRepository) AvailableLanguages() []string {
	r.mu.Lock()
	seen := make(map[string]struct{})
	for _, item := range r.items {
		seen[item.Language] = struct{}{}
	}
	r.mu.Unlock()

	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
