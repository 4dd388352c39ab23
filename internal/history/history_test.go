package history

import (
	"context"
	"errors"
	"testing"
	"time"
)

// recordingDayStore captures MarkDay calls and can fail on demand.
type recordingDayStore struct {
	marked  []string
	days    []string
	markErr error
	listErr error
}

func (s *recordingDayStore) MarkDay(_ context.Context, day string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, day)
	return nil
}

func (s *recordingDayStore) ListDays(_ context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.days, nil
}

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 15, 4, 5, 0, time.Local)
}

func TestRecordSessionIsIdempotent(t *testing.T) {
	store := &recordingDayStore{}
	h := New(store, nil)
	ctx := context.Background()
	now := localDate(2025, 6, 10)

	if err := h.RecordSession(ctx, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	streakAfterFirst := h.CurrentStreak(now)

	// Same day again, different time of day.
	if err := h.RecordSession(ctx, now.Add(3*time.Hour)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := h.CurrentStreak(now); got != streakAfterFirst {
		t.Errorf("Expected streak unchanged at %d, got %d", streakAfterFirst, got)
	}

	if len(store.marked) != 1 {
		t.Errorf("Expected one write-through, got %d", len(store.marked))
	}
}

func TestHasStudied(t *testing.T) {
	h := New(nil, nil)
	ctx := context.Background()
	now := localDate(2025, 6, 10)

	if h.HasStudied(now) {
		t.Error("Expected day unmarked before recording")
	}

	if err := h.RecordSession(ctx, now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !h.HasStudied(now) {
		t.Error("Expected day marked after recording")
	}
	if h.HasStudied(now.AddDate(0, 0, -1)) {
		t.Error("Expected previous day unmarked")
	}
}

func TestCurrentStreak(t *testing.T) {
	ctx := context.Background()
	now := localDate(2025, 6, 10)

	testCases := []struct {
		name     string
		studied  []int // day offsets from now, 0 = today
		expected int
	}{
		{"nothing studied", nil, 0},
		{"only today", []int{0}, 1},
		{"today and yesterday", []int{0, -1}, 2},
		{"five consecutive days", []int{0, -1, -2, -3, -4}, 5},
		{"gap breaks the streak", []int{0, -1, -3, -4}, 2},
		{"studied yesterday but not today", []int{-1, -2}, 2},
		{"old streak does not count", []int{-5, -6, -7}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := New(nil, nil)
			for _, offset := range tc.studied {
				if err := h.RecordSession(ctx, now.AddDate(0, 0, offset)); err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
			}

			if got := h.CurrentStreak(now); got != tc.expected {
				t.Errorf("Expected streak %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestRecentHistory(t *testing.T) {
	h := New(nil, nil)
	now := localDate(2025, 6, 10)

	days := h.RecentHistory(7, now)
	if len(days) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(days))
	}

	// Oldest first, ending today.
	if got := days[0].Format(dayFormat); got != "2025-06-04" {
		t.Errorf("Expected first day 2025-06-04, got %s", got)
	}
	if got := days[6].Format(dayFormat); got != "2025-06-10" {
		t.Errorf("Expected last day 2025-06-10, got %s", got)
	}

	for i := 1; i < len(days); i++ {
		if !days[i].After(days[i-1]) {
			t.Errorf("Expected ascending order at index %d", i)
		}
	}

	if got := h.RecentHistory(0, now); got != nil {
		t.Errorf("Expected nil for zero days, got %v", got)
	}
}

func TestLoadPrimesFromStore(t *testing.T) {
	now := localDate(2025, 6, 10)
	store := &recordingDayStore{days: []string{"2025-06-10", "2025-06-09", "2025-06-08"}}
	h := New(store, nil)

	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := h.CurrentStreak(now); got != 3 {
		t.Errorf("Expected streak 3 after load, got %d", got)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	now := localDate(2025, 6, 10)
	boom := errors.New("disk full")

	h := New(&recordingDayStore{markErr: boom}, nil)
	if err := h.RecordSession(ctx, now); !errors.Is(err, boom) {
		t.Errorf("Expected write-through error to propagate, got %v", err)
	}

	h = New(&recordingDayStore{listErr: boom}, nil)
	if err := h.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Expected load error to propagate, got %v", err)
	}
}
