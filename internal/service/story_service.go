package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexitrack/lexitrack/internal/platform/logger"
	"github.com/lexitrack/lexitrack/internal/repository"
	"github.com/lexitrack/lexitrack/internal/store"
	"github.com/lexitrack/lexitrack/internal/story"
)

// storyDayFormat keys the one-story-per-day cache, in the local calendar
// like the study history.
const storyDayFormat = "2006-01-02"

// StoryService owns the daily story workflow: at most one story is generated
// per language per calendar day, past stories are kept for re-reading, and
// each story's quiz can be completed once.
type StoryService struct {
	stories   store.StoryStore
	repo      *repository.ItemRepository
	generator story.Generator
	logger    *slog.Logger

	now func() time.Time
}

// NewStoryService creates a new StoryService. The generator may be nil when
// no backend is configured; DailyStory then returns story.ErrNotConfigured
// instead of generating, while cached stories stay readable.
func NewStoryService(
	stories store.StoryStore,
	repo *repository.ItemRepository,
	generator story.Generator,
	logger *slog.Logger,
) *StoryService {
	if stories == nil {
		panic("stories store cannot be nil")
	}
	if repo == nil {
		panic("repo cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &StoryService{
		stories:   stories,
		repo:      repo,
		generator: generator,
		logger:    logger.With("component", "story_service"),
		now:       func() time.Time { return time.Now() },
	}
}

// DailyStory returns today's story for the language, generating and
// persisting one on the first call of the day. The second return value
// reports whether the story came from the cache.
func (s *StoryService) DailyStory(ctx context.Context, langCode, langName string) (*story.DailyStory, bool, error) {
	day := s.now().Local().Format(storyDayFormat)
	log := logger.FromContextOrDefault(ctx, s.logger)

	cached, err := s.stories.GetTodayStory(ctx, langCode, day)
	if err == nil {
		log.Debug("serving cached daily story", "language", langCode, "day", day)
		return cached, true, nil
	}
	if !store.IsNotFoundError(err) {
		return nil, false, fmt.Errorf("failed to look up today's story: %w", err)
	}

	if s.generator == nil {
		return nil, false, story.ErrNotConfigured
	}

	items := s.repo.ItemsForLanguage(langCode)
	generated, err := s.generator.GenerateStory(ctx, items, langCode, langName)
	if err != nil {
		return nil, false, err
	}

	if err := s.stories.CreateStory(ctx, generated, day); err != nil {
		return nil, false, fmt.Errorf("failed to persist daily story: %w", err)
	}

	log.Info("generated daily story",
		"language", langCode,
		"day", day,
		"words", len(generated.WordIDs))
	return generated, false, nil
}

// History returns past stories for the language, newest first. An empty
// language returns all of them.
func (s *StoryService) History(ctx context.Context, langCode string) ([]story.DailyStory, error) {
	stories, err := s.stories.ListStories(ctx, langCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load story history: %w", err)
	}
	return stories, nil
}

// CompleteQuiz grades the answers against the stored story and persists the
// result. A story's quiz can only be completed once.
func (s *StoryService) CompleteQuiz(ctx context.Context, id uuid.UUID, answers []int) (int, error) {
	stored, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to load story for quiz: %w", err)
	}

	score, err := stored.CompleteQuiz(answers)
	if err != nil {
		return 0, err
	}

	if err := s.stories.UpdateStoryQuiz(ctx, id, true, score); err != nil {
		return 0, fmt.Errorf("failed to persist quiz result: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("story quiz completed",
		"story_id", id,
		"score", score,
		"questions", len(stored.Questions))
	return score, nil
}
