package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewReviewItem(t *testing.T) {
	now := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

	item, err := NewReviewItem("gato", "cat", "es", "from a children's book", now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}

	if item.Term != "gato" || item.Translation != "cat" || item.Language != "es" {
		t.Errorf("Unexpected fields: %+v", item)
	}

	if !item.CreatedAt.Equal(now) {
		t.Errorf("Expected CreatedAt %v, got %v", now, item.CreatedAt)
	}

	if item.MasteryLevel != 0 || item.ReviewCount != 0 || item.IsMastered {
		t.Errorf("Expected fully unreviewed item, got %+v", item)
	}

	if item.LastReviewedAt != nil {
		t.Errorf("Expected nil LastReviewedAt, got %v", item.LastReviewedAt)
	}

	// New items are immediately reviewable.
	if item.NextReviewAt == nil || !item.NextReviewAt.Equal(now) {
		t.Errorf("Expected NextReviewAt %v, got %v", now, item.NextReviewAt)
	}
}

func TestNewReviewItemEmptyTerm(t *testing.T) {
	now := time.Now().UTC()

	for _, term := range []string{"", "   ", "\t\n"} {
		_, err := NewReviewItem(term, "cat", "es", "", now)
		if !errors.Is(err, ErrItemTermEmpty) {
			t.Errorf("Expected ErrItemTermEmpty for term %q, got %v", term, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("Expected error to wrap ErrValidation, got %v", err)
		}
	}
}

func TestNewReviewItemAllowsEmptyTranslation(t *testing.T) {
	// The translation may be filled in later, e.g. after an async lookup.
	item, err := NewReviewItem("gato", "", "es", "", time.Now().UTC())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Translation != "" {
		t.Errorf("Expected empty translation, got %q", item.Translation)
	}
}

func TestReviewItemValidate(t *testing.T) {
	now := time.Now().UTC()
	valid := ReviewItem{
		ID:           uuid.New(),
		Term:         "gato",
		Translation:  "cat",
		Language:     "es",
		CreatedAt:    now,
		NextReviewAt: &now,
	}

	testCases := []struct {
		name     string
		mutate   func(*ReviewItem)
		expected error
	}{
		{"valid item", func(i *ReviewItem) {}, nil},
		{"nil ID", func(i *ReviewItem) { i.ID = uuid.Nil }, ErrItemIDEmpty},
		{"empty term", func(i *ReviewItem) { i.Term = " " }, ErrItemTermEmpty},
		{"mastery below range", func(i *ReviewItem) { i.MasteryLevel = -1 }, ErrItemMasteryOutOfRange},
		{"mastery above range", func(i *ReviewItem) { i.MasteryLevel = 6 }, ErrItemMasteryOutOfRange},
		{"negative review count", func(i *ReviewItem) { i.ReviewCount = -1 }, ErrItemNegativeReviewCount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := valid
			tc.mutate(&item)

			err := item.Validate()
			if tc.expected == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestMatchesTranslation(t *testing.T) {
	item := ReviewItem{Translation: "cat"}

	testCases := []struct {
		answer   string
		expected bool
	}{
		{"cat", true},
		{"Cat", true},
		{"CAT", true},
		{"  cat  ", true},
		{"\tcat\n", true},
		{"ca", false},
		{"cats", false},
		{"", false},
		{"c at", false},
	}

	for _, tc := range testCases {
		if got := item.MatchesTranslation(tc.answer); got != tc.expected {
			t.Errorf("MatchesTranslation(%q) = %v, expected %v", tc.answer, got, tc.expected)
		}
	}
}

func TestIsDue(t *testing.T) {
	ref := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	past := ref.Add(-time.Hour)
	future := ref.Add(time.Hour)

	testCases := []struct {
		name     string
		item     ReviewItem
		expected bool
	}{
		{"nil next review is due immediately", ReviewItem{}, true},
		{"past next review is due", ReviewItem{NextReviewAt: &past}, true},
		{"next review exactly at reference is due", ReviewItem{NextReviewAt: &ref}, true},
		{"future next review is not due", ReviewItem{NextReviewAt: &future}, false},
		{"mastered item is never due", ReviewItem{IsMastered: true, NextReviewAt: &past}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.IsDue(ref); got != tc.expected {
				t.Errorf("IsDue() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
