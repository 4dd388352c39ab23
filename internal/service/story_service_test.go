package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/mocks"
	"github.com/lexitrack/lexitrack/internal/repository"
	"github.com/lexitrack/lexitrack/internal/story"
)

// countingGenerator returns a fixed story and counts invocations.
type countingGenerator struct {
	calls int
	err   error
}

func (g *countingGenerator) GenerateStory(_ context.Context, items []domain.ReviewItem, langCode, _ string) (*story.DailyStory, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}

	wordIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		wordIDs[i] = item.ID
	}
	questions := []story.QuizQuestion{
		{ID: uuid.New(), Question: "Was passiert?", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 1},
		{ID: uuid.New(), Question: "Wer kommt?", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 3},
	}
	return story.NewDailyStory("Der Garten", "Es war einmal...", langCode, wordIDs, questions, time.Now().UTC())
}

type storyFixture struct {
	stores    *mocks.MockStoryStore
	generator *countingGenerator
	service   *StoryService
}

func newStoryFixture(t *testing.T) *storyFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	itemStore := mocks.NewMockItemStore()
	repo := repository.NewItemRepository(itemStore, logger)

	item, err := domain.NewReviewItem("Schmetterling", "butterfly", "de", "", baseTime)
	require.NoError(t, err)
	itemStore.Seed(*item)
	require.NoError(t, repo.Refresh(context.Background()))

	f := &storyFixture{
		stores:    mocks.NewMockStoryStore(),
		generator: &countingGenerator{},
	}
	svc := NewStoryService(f.stores, repo, f.generator, logger)
	svc.now = func() time.Time { return baseTime }
	f.service = svc
	return f
}

func TestDailyStoryGeneratesAndPersists(t *testing.T) {
	f := newStoryFixture(t)

	s, cached, err := f.service.DailyStory(context.Background(), "de", "German")
	require.NoError(t, err)

	assert.False(t, cached)
	assert.Equal(t, "Der Garten", s.Title)
	assert.Len(t, s.WordIDs, 1)
	assert.Equal(t, 1, f.generator.calls)
	assert.Equal(t, 1, f.stores.Len())
}

func TestDailyStoryServedFromCache(t *testing.T) {
	f := newStoryFixture(t)
	ctx := context.Background()

	first, cached, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)
	require.False(t, cached)

	// The second request of the day must not hit the generator again.
	second, cached, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.generator.calls)
	assert.Equal(t, 1, f.stores.Len())
}

func TestDailyStoryNewDayGeneratesAgain(t *testing.T) {
	f := newStoryFixture(t)
	ctx := context.Background()

	_, _, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)

	f.service.now = func() time.Time { return baseTime.AddDate(0, 0, 1) }

	_, cached, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, f.generator.calls)
	assert.Equal(t, 2, f.stores.Len())
}

func TestDailyStoryPerLanguageCache(t *testing.T) {
	f := newStoryFixture(t)
	ctx := context.Background()

	_, _, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)

	// A different language the same day gets its own story.
	_, cached, err := f.service.DailyStory(ctx, "sv", "Swedish")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, f.generator.calls)
}

func TestDailyStoryWithoutGenerator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	itemStore := mocks.NewMockItemStore()
	repo := repository.NewItemRepository(itemStore, logger)
	stores := mocks.NewMockStoryStore()

	svc := NewStoryService(stores, repo, nil, logger)
	svc.now = func() time.Time { return baseTime }

	_, _, err := svc.DailyStory(context.Background(), "de", "German")
	require.ErrorIs(t, err, story.ErrNotConfigured)
}

func TestDailyStoryGenerationFailureNotPersisted(t *testing.T) {
	f := newStoryFixture(t)
	f.generator.err = story.ErrGenerationFailed

	_, _, err := f.service.DailyStory(context.Background(), "de", "German")
	require.ErrorIs(t, err, story.ErrGenerationFailed)
	assert.Equal(t, 0, f.stores.Len())
}

func TestCompleteQuizPersistsScore(t *testing.T) {
	f := newStoryFixture(t)
	ctx := context.Background()

	s, _, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)

	// Correct indexes are 1 and 3; one right, one wrong.
	score, err := f.service.CompleteQuiz(ctx, s.ID, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	stored, err := f.stores.GetStoryByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.QuizCompleted)
	assert.Equal(t, 1, stored.QuizScore)

	// The persisted completion blocks a second attempt.
	_, err = f.service.CompleteQuiz(ctx, s.ID, []int{1, 3})
	require.ErrorIs(t, err, story.ErrQuizAlreadyScored)
}

func TestCompleteQuizMissingStory(t *testing.T) {
	f := newStoryFixture(t)

	_, err := f.service.CompleteQuiz(context.Background(), uuid.New(), []int{0})
	require.Error(t, err)
}

func TestStoryHistory(t *testing.T) {
	f := newStoryFixture(t)
	ctx := context.Background()

	_, _, err := f.service.DailyStory(ctx, "de", "German")
	require.NoError(t, err)

	stories, err := f.service.History(ctx, "de")
	require.NoError(t, err)
	assert.Len(t, stories, 1)

	f.stores.ListError = errors.New("disk gone")
	_, err = f.service.History(ctx, "de")
	require.Error(t, err)
}
