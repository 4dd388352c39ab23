package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/lexitrack/lexitrack/internal/store"
	"github.com/lexitrack/lexitrack/internal/story"
)

// Verify interface compliance at compile time
var _ store.StoryStore = (*MockStoryStore)(nil)

// MockStoryStore implements store.StoryStore for testing, mirroring the
// MockItemStore layout: a working in-memory default with per-method override
// hooks and error injection.
type MockStoryStore struct {
	CreateStoryFn   func(ctx context.Context, s *story.DailyStory, day string) error
	GetTodayStoryFn func(ctx context.Context, language, day string) (*story.DailyStory, error)

	CreateError error
	ListError   error
	UpdateError error

	mu      sync.Mutex
	stories map[uuid.UUID]storedStory
}

type storedStory struct {
	story story.DailyStory
	day   string
}

// NewMockStoryStore creates a new mock story store with initialized defaults.
func NewMockStoryStore() *MockStoryStore {
	return &MockStoryStore{
		stories: make(map[uuid.UUID]storedStory),
	}
}

// Len returns the number of stored stories.
func (m *MockStoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stories)
}

// CreateStory implements the StoryStore interface.
func (m *MockStoryStore) CreateStory(ctx context.Context, s *story.DailyStory, day string) error {
	if m.CreateStoryFn != nil {
		return m.CreateStoryFn(ctx, s, day)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.stories {
		if existing.story.Language == s.Language && existing.day == day {
			return fmt.Errorf("%w: story for %s on %s", store.ErrDuplicate, s.Language, day)
		}
	}
	m.stories[s.ID] = storedStory{story: *s, day: day}
	return nil
}

// GetStoryByID implements the StoryStore interface.
func (m *MockStoryStore) GetStoryByID(ctx context.Context, id uuid.UUID) (*story.DailyStory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.stories[id]
	if !ok {
		return nil, store.ErrStoryNotFound
	}
	out := stored.story
	return &out, nil
}

// GetTodayStory implements the StoryStore interface.
func (m *MockStoryStore) GetTodayStory(ctx context.Context, language, day string) (*story.DailyStory, error) {
	if m.GetTodayStoryFn != nil {
		return m.GetTodayStoryFn(ctx, language, day)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, stored := range m.stories {
		if stored.story.Language == language && stored.day == day {
			out := stored.story
			return &out, nil
		}
	}
	return nil, store.ErrStoryNotFound
}

// ListStories implements the StoryStore interface.
func (m *MockStoryStore) ListStories(ctx context.Context, language string) ([]story.DailyStory, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]story.DailyStory, 0, len(m.stories))
	for _, stored := range m.stories {
		if language == "" || stored.story.Language == language {
			out = append(out, stored.story)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStoryQuiz implements the StoryStore interface.
func (m *MockStoryStore) UpdateStoryQuiz(ctx context.Context, id uuid.UUID, completed bool, score int) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.stories[id]
	if !ok {
		return store.ErrStoryNotFound
	}
	stored.story.QuizCompleted = completed
	stored.story.QuizScore = score
	m.stories[id] = stored
	return nil
}
