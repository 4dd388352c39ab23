// Package history tracks which calendar days had at least one graded study
// session, and derives streaks from that set. Days are bucketed in the
// process's local calendar so that "today" matches what the person studying
// would call today.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// dayFormat is the storage key for a calendar day.
const dayFormat = "2006-01-02"

// History is the in-memory set of studied days, optionally written through
// to a store.StudyDayStore so the set survives restarts. The set is
// append-only: days are never removed.
type History struct {
	mu     sync.Mutex
	days   map[string]struct{}
	store  DayStore
	logger *slog.Logger
}

// DayStore is the persistence hook History writes through to. It matches
// store.StudyDayStore; declared locally so History can be used without the
// store package (and with a nil store in tests).
type DayStore interface {
	MarkDay(ctx context.Context, day string) error
	ListDays(ctx context.Context) ([]string, error)
}

// New creates a History. dayStore may be nil, in which case the set lives
// only in memory for the session.
func New(dayStore DayStore, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{
		days:   make(map[string]struct{}),
		store:  dayStore,
		logger: logger.With("component", "study_history"),
	}
}

// Load primes the in-memory set from the day store. No-op without a store.
func (h *History) Load(ctx context.Context) error {
	if h.store == nil {
		return nil
	}

	days, err := h.store.ListDays(ctx)
	if err != nil {
		return fmt.Errorf("failed to load study history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, day := range days {
		h.days[day] = struct{}{}
	}

	h.logger.Debug("study history loaded", "day_count", len(h.days))
	return nil
}

// RecordSession marks the calendar day containing now as studied. Repeated
// calls on the same day are no-ops, including the write-through.
func (h *History) RecordSession(ctx context.Context, now time.Time) error {
	day := now.Local().Format(dayFormat)

	h.mu.Lock()
	if _, ok := h.days[day]; ok {
		h.mu.Unlock()
		return nil
	}
	h.days[day] = struct{}{}
	h.mu.Unlock()

	if h.store != nil {
		if err := h.store.MarkDay(ctx, day); err != nil {
			return fmt.Errorf("failed to persist study day %s: %w", day, err)
		}
	}

	return nil
}

// HasStudied reports whether the calendar day containing date is marked.
func (h *History) HasStudied(date time.Time) bool {
	day := date.Local().Format(dayFormat)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.days[day]
	return ok
}

// CurrentStreak counts consecutive studied days ending at now. It starts at
// 1 if today is marked (0 otherwise), then walks backward one day at a time
// until it hits the first unmarked day.
func (h *History) CurrentStreak(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	streak := 0
	today := now.Local().Format(dayFormat)
	if _, ok := h.days[today]; ok {
		streak++
	}

	day := now.Local().AddDate(0, 0, -1)
	for {
		if _, ok := h.days[day.Format(dayFormat)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// RecentHistory returns the last days calendar days including today, oldest
// first, regardless of whether each was studied. Callers pair it with
// HasStudied to render a calendar strip.
func (h *History) RecentHistory(days int, now time.Time) []time.Time {
	if days <= 0 {
		return nil
	}

	out := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		out = append(out, now.Local().AddDate(0, 0, -i))
	}
	return out
}
