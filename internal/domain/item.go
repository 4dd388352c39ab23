package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewItem-specific validation errors
var (
	// ErrItemIDEmpty is returned when an item ID is empty or nil.
	ErrItemIDEmpty = errors.New("review item ID cannot be empty")

	// ErrItemTermEmpty is returned when an item's term is empty.
	ErrItemTermEmpty = errors.New("review item term cannot be empty")

	// ErrItemMasteryOutOfRange is returned when the mastery level is outside [0, MaxMasteryLevel].
	ErrItemMasteryOutOfRange = errors.New("mastery level out of range")

	// ErrItemNegativeReviewCount is returned when the review count is negative.
	ErrItemNegativeReviewCount = errors.New("review count cannot be negative")
)

// MaxMasteryLevel is the top rung of the mastery ladder. An item at this
// level is considered mastered and is excluded from review queues.
const MaxMasteryLevel = 5

// ReviewItem is a single vocabulary entry being learned, together with its
// spaced repetition state. MasteryLevel and NextReviewAt are only ever
// updated together by the schedule engine; IsMastered is derived from
// MasteryLevel but persisted so stores can query on it directly.
//
// A nil NextReviewAt means the item is due immediately.
type ReviewItem struct {
	ID             uuid.UUID  `json:"id"`
	Term           string     `json:"term"`
	Translation    string     `json:"translation"`
	Language       string     `json:"language"`
	Note           string     `json:"note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	ReviewCount    int        `json:"review_count"`
	MasteryLevel   int        `json:"mastery_level"`
	IsMastered     bool       `json:"is_mastered"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
}

// NewReviewItem creates a new ReviewItem with the given fields. The item
// starts fully unreviewed at mastery level 0 and is immediately due for
// review. The translation may be empty and filled in later; the term is
// mandatory. Returns an error if validation fails.
func NewReviewItem(term, translation, language, note string, now time.Time) (*ReviewItem, error) {
	due := now
	item := &ReviewItem{
		ID:           uuid.New(),
		Term:         term,
		Translation:  translation,
		Language:     language,
		Note:         note,
		CreatedAt:    now,
		ReviewCount:  0,
		MasteryLevel: 0,
		IsMastered:   false,
		NextReviewAt: &due,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ReviewItem has valid data.
// Returns an error if any field fails validation.
func (i *ReviewItem) Validate() error {
	if i.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrItemIDEmpty)
	}

	if strings.TrimSpace(i.Term) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrItemTermEmpty)
	}

	if i.MasteryLevel < 0 || i.MasteryLevel > MaxMasteryLevel {
		return fmt.Errorf("%w: %w", ErrValidation, ErrItemMasteryOutOfRange)
	}

	if i.ReviewCount < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrItemNegativeReviewCount)
	}

	return nil
}

// MatchesTranslation reports whether a user-submitted answer counts as
// correct for this item: after trimming leading/trailing whitespace the
// answer must equal the translation, ignoring case. No fuzzy matching.
func (i *ReviewItem) MatchesTranslation(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), i.Translation)
}

// IsDue reports whether the item should be offered for review at the given
// reference time. Mastered items are never due; a nil NextReviewAt is
// treated as "due immediately".
func (i *ReviewItem) IsDue(ref time.Time) bool {
	if i.IsMastered {
		return false
	}
	if i.NextReviewAt == nil {
		return true
	}
	return !i.NextReviewAt.After(ref)
}
