package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/lexitrack/lexitrack/internal/story"
)

// StoryStore defines the interface for daily story persistence. Stories are
// cached one per language per calendar day; the day key uses the same
// "YYYY-MM-DD" local-calendar format as StudyDayStore.
type StoryStore interface {
	// CreateStory saves a generated story under the given day key.
	// Returns ErrDuplicate if a story for the same language and day exists.
	CreateStory(ctx context.Context, s *story.DailyStory, day string) error

	// GetStoryByID retrieves a story by its unique ID.
	// Returns ErrStoryNotFound if the story does not exist.
	GetStoryByID(ctx context.Context, id uuid.UUID) (*story.DailyStory, error)

	// GetTodayStory retrieves the story generated for the given language and
	// day, if any. Returns ErrStoryNotFound when none was generated yet.
	GetTodayStory(ctx context.Context, language, day string) (*story.DailyStory, error)

	// ListStories returns past stories, newest first. An empty language
	// returns stories for all languages.
	ListStories(ctx context.Context, language string) ([]story.DailyStory, error)

	// UpdateStoryQuiz persists the quiz completion state for a story.
	// Returns ErrStoryNotFound if the story does not exist.
	UpdateStoryQuiz(ctx context.Context, id uuid.UUID, completed bool, score int) error
}
