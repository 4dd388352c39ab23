package story

import (
	"context"
	"errors"

	"github.com/lexitrack/lexitrack/internal/domain"
)

// Generator produces a daily story from a set of vocabulary items.
type Generator interface {
	// GenerateStory writes a short story in the given language that uses
	// the items' terms, together with comprehension questions. langCode is
	// the BCP-47 code and langName the human-readable language name used
	// in the prompt.
	GenerateStory(ctx context.Context, items []domain.ReviewItem, langCode, langName string) (*DailyStory, error)
}

// Generator error sentinels.
var (
	// ErrNotConfigured indicates the backend has no API credentials.
	ErrNotConfigured = errors.New("story generator not configured")

	// ErrGenerationFailed indicates the backend call failed.
	ErrGenerationFailed = errors.New("story generation failed")

	// ErrInvalidResponse indicates the backend returned material that could
	// not be turned into a story.
	ErrInvalidResponse = errors.New("invalid story generation response")

	// ErrContentBlocked indicates the backend refused the request on safety
	// grounds. Not retryable.
	ErrContentBlocked = errors.New("story content blocked by safety filters")

	// ErrNoWords indicates there were no vocabulary items to build from.
	ErrNoWords = errors.New("no vocabulary words for story generation")
)
