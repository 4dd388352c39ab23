package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexitrack/lexitrack/internal/store"
	"github.com/lexitrack/lexitrack/internal/story"
)

func newStoredStory(t *testing.T, db *DB, language, day string, createdAt time.Time) *story.DailyStory {
	t.Helper()

	questions := []story.QuizQuestion{
		{ID: uuid.New(), Question: "Was passiert?", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 1},
	}
	s, err := story.NewDailyStory("Der Garten", "Es war einmal...", language,
		[]uuid.UUID{uuid.New(), uuid.New()}, questions, createdAt)
	require.NoError(t, err)
	require.NoError(t, db.CreateStory(context.Background(), s, day))
	return s
}

func TestStoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	s := newStoredStory(t, db, "de", "2025-07-01", createdAt)

	got, err := db.GetStoryByID(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "Der Garten", got.Title)
	assert.Equal(t, "Es war einmal...", got.Content)
	assert.Equal(t, "de", got.Language)
	assert.Equal(t, s.WordIDs, got.WordIDs)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, s.Questions[0].ID, got.Questions[0].ID)
	assert.Equal(t, 1, got.Questions[0].CorrectIndex)
	assert.True(t, got.CreatedAt.Equal(createdAt))
	assert.False(t, got.QuizCompleted)
}

func TestGetTodayStory(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	s := newStoredStory(t, db, "de", "2025-07-01", createdAt)

	got, err := db.GetTodayStory(ctx, "de", "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	// Another language or another day has no story yet.
	_, err = db.GetTodayStory(ctx, "sv", "2025-07-01")
	require.ErrorIs(t, err, store.ErrStoryNotFound)
	_, err = db.GetTodayStory(ctx, "de", "2025-07-02")
	require.ErrorIs(t, err, store.ErrStoryNotFound)
}

func TestCreateStoryRejectsSecondStoryPerDay(t *testing.T) {
	db := openTestDB(t)

	createdAt := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	newStoredStory(t, db, "de", "2025-07-01", createdAt)

	questions := []story.QuizQuestion{
		{ID: uuid.New(), Question: "q?", Options: []string{"A", "B"}, CorrectIndex: 0},
	}
	dup, err := story.NewDailyStory("Zweite", "Noch eine...", "de", nil, questions, createdAt)
	require.NoError(t, err)

	err = db.CreateStory(context.Background(), dup, "2025-07-01")
	require.ErrorIs(t, err, store.ErrDuplicate)

	// A different language on the same day is fine.
	other, err := story.NewDailyStory("Annan", "Det var en gång...", "sv", nil, questions, createdAt)
	require.NoError(t, err)
	require.NoError(t, db.CreateStory(context.Background(), other, "2025-07-01"))
}

func TestListStoriesNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	old := newStoredStory(t, db, "de", "2025-07-01", base)
	recent := newStoredStory(t, db, "de", "2025-07-02", base.AddDate(0, 0, 1))
	newStoredStory(t, db, "sv", "2025-07-01", base)

	stories, err := db.ListStories(ctx, "de")
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, recent.ID, stories[0].ID)
	assert.Equal(t, old.ID, stories[1].ID)

	all, err := db.ListStories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateStoryQuiz(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	createdAt := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	s := newStoredStory(t, db, "de", "2025-07-01", createdAt)

	require.NoError(t, db.UpdateStoryQuiz(ctx, s.ID, true, 3))

	got, err := db.GetStoryByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, got.QuizCompleted)
	assert.Equal(t, 3, got.QuizScore)
}

func TestUpdateStoryQuizMissing(t *testing.T) {
	db := openTestDB(t)

	err := db.UpdateStoryQuiz(context.Background(), uuid.New(), true, 2)
	require.ErrorIs(t, err, store.ErrStoryNotFound)
}
