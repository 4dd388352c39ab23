package story

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validQuestions() []QuizQuestion {
	return []QuizQuestion{
		{ID: uuid.New(), Question: "Was passiert zuerst?", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 0},
		{ID: uuid.New(), Question: "Wer ist die Hauptfigur?", Options: []string{"A", "B", "C", "D"}, CorrectIndex: 2},
	}
}

func TestNewDailyStory(t *testing.T) {
	now := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	wordIDs := []uuid.UUID{uuid.New(), uuid.New()}

	s, err := NewDailyStory("Der Schmetterling", "Es war einmal...", "de", wordIDs, validQuestions(), now)
	if err != nil {
		t.Fatalf("NewDailyStory() error = %v", err)
	}

	if s.ID == uuid.Nil {
		t.Error("Expected a generated ID")
	}
	if s.QuizCompleted {
		t.Error("New story must not be marked quiz-completed")
	}
	if s.QuizScore != 0 {
		t.Errorf("QuizScore = %d, want 0", s.QuizScore)
	}
	if !s.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", s.CreatedAt, now)
	}
	if len(s.WordIDs) != 2 {
		t.Errorf("len(WordIDs) = %d, want 2", len(s.WordIDs))
	}
}

func TestNewDailyStoryValidation(t *testing.T) {
	now := time.Now().UTC()

	testCases := []struct {
		name      string
		title     string
		content   string
		questions []QuizQuestion
		wantErr   error
	}{
		{"empty title", "", "content", validQuestions(), ErrStoryTitleEmpty},
		{"empty content", "title", "", validQuestions(), ErrStoryContentEmpty},
		{"no questions", "title", "content", nil, ErrNoQuestions},
		{
			"question without text",
			"title", "content",
			[]QuizQuestion{{Options: []string{"A", "B"}, CorrectIndex: 0}},
			ErrQuestionMalformed,
		},
		{
			"too few options",
			"title", "content",
			[]QuizQuestion{{Question: "q?", Options: []string{"A"}, CorrectIndex: 0}},
			ErrQuestionMalformed,
		},
		{
			"correct index out of range",
			"title", "content",
			[]QuizQuestion{{Question: "q?", Options: []string{"A", "B"}, CorrectIndex: 2}},
			ErrQuestionMalformed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDailyStory(tc.title, tc.content, "de", nil, tc.questions, now)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("NewDailyStory() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestCompleteQuiz(t *testing.T) {
	now := time.Now().UTC()
	s, err := NewDailyStory("title", "content", "de", nil, validQuestions(), now)
	if err != nil {
		t.Fatalf("NewDailyStory() error = %v", err)
	}

	// Correct answers are indexes 0 and 2; answer one right, one wrong.
	score, err := s.CompleteQuiz([]int{0, 1})
	if err != nil {
		t.Fatalf("CompleteQuiz() error = %v", err)
	}
	if score != 1 {
		t.Errorf("score = %d, want 1", score)
	}
	if !s.QuizCompleted {
		t.Error("Expected QuizCompleted after grading")
	}
	if s.QuizScore != 1 {
		t.Errorf("QuizScore = %d, want 1", s.QuizScore)
	}

	// A second attempt is rejected and the score stands.
	if _, err := s.CompleteQuiz([]int{0, 2}); !errors.Is(err, ErrQuizAlreadyScored) {
		t.Errorf("second CompleteQuiz() error = %v, want ErrQuizAlreadyScored", err)
	}
	if s.QuizScore != 1 {
		t.Errorf("QuizScore after rejected retry = %d, want 1", s.QuizScore)
	}
}

func TestCompleteQuizAnswerCountMismatch(t *testing.T) {
	s, err := NewDailyStory("title", "content", "de", nil, validQuestions(), time.Now().UTC())
	if err != nil {
		t.Fatalf("NewDailyStory() error = %v", err)
	}

	if _, err := s.CompleteQuiz([]int{0}); !errors.Is(err, ErrAnswerCountInvalid) {
		t.Errorf("CompleteQuiz() error = %v, want ErrAnswerCountInvalid", err)
	}
	if s.QuizCompleted {
		t.Error("Mismatched answers must not complete the quiz")
	}
}
