// Package story defines the daily reading story and its comprehension quiz.
// Stories are generated from the learner's vocabulary by an LLM backend.
package story

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation sentinels.
var (
	ErrStoryTitleEmpty    = errors.New("story title cannot be empty")
	ErrStoryContentEmpty  = errors.New("story content cannot be empty")
	ErrQuestionMalformed  = errors.New("quiz question is malformed")
	ErrNoQuestions        = errors.New("story has no quiz questions")
	ErrQuizAlreadyScored  = errors.New("quiz already completed")
	ErrAnswerCountInvalid = errors.New("answer count does not match question count")
)

// QuizQuestion is a single multiple-choice comprehension question.
type QuizQuestion struct {
	ID           uuid.UUID `json:"id"`
	Question     string    `json:"question"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correctIndex"`
}

// Validate checks that the question is answerable.
func (q QuizQuestion) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("%w: empty question text", ErrQuestionMalformed)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: needs at least two options", ErrQuestionMalformed)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d out of range", ErrQuestionMalformed, q.CorrectIndex)
	}
	return nil
}

// DailyStory is a generated story with its quiz and completion state.
type DailyStory struct {
	ID            uuid.UUID
	Title         string
	Content       string
	Language      string
	WordIDs       []uuid.UUID
	Questions     []QuizQuestion
	CreatedAt     time.Time
	QuizCompleted bool
	QuizScore     int
}

// NewDailyStory assembles a story from generated material, validating the
// quiz along the way.
func NewDailyStory(title, content, language string, wordIDs []uuid.UUID, questions []QuizQuestion, now time.Time) (*DailyStory, error) {
	if title == "" {
		return nil, ErrStoryTitleEmpty
	}
	if content == "" {
		return nil, ErrStoryContentEmpty
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	return &DailyStory{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Language:  language,
		WordIDs:   wordIDs,
		Questions: questions,
		CreatedAt: now,
	}, nil
}

// CompleteQuiz grades the given answers (selected option index per question)
// and records the score. Completing an already-completed quiz is an error.
func (s *DailyStory) CompleteQuiz(answers []int) (int, error) {
	if s.QuizCompleted {
		return 0, ErrQuizAlreadyScored
	}
	if len(answers) != len(s.Questions) {
		return 0, ErrAnswerCountInvalid
	}

	score := 0
	for i, q := range s.Questions {
		if answers[i] == q.CorrectIndex {
			score++
		}
	}

	s.QuizCompleted = true
	s.QuizScore = score
	return score, nil
}
