package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lexitrack/lexitrack/internal/store"
	"github.com/lexitrack/lexitrack/internal/story"
)

// Verify interface compliance at compile time
var _ store.StoryStore = (*DB)(nil)

const storyColumns = `id, title, content, language, word_ids, questions,
	created_at, quiz_completed, quiz_score`

// CreateStory implements store.StoryStore.
func (db *DB) CreateStory(ctx context.Context, s *story.DailyStory, day string) error {
	wordIDs, err := json.Marshal(s.WordIDs)
	if err != nil {
		return store.NewStoreError("story", "create", "encode word IDs failed", err)
	}
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return store.NewStoreError("story", "create", "encode questions failed", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO stories (id, title, content, language, word_ids, questions,
			created_at, day, quiz_completed, quiz_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID.String(),
		s.Title,
		s.Content,
		s.Language,
		string(wordIDs),
		string(questions),
		s.CreatedAt,
		day,
		s.QuizCompleted,
		s.QuizScore,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: story for %s on %s", store.ErrDuplicate, s.Language, day)
		}
		return store.NewStoreError("story", "create", "insert failed", err)
	}
	return nil
}

// GetStoryByID implements store.StoryStore.
func (db *DB) GetStoryByID(ctx context.Context, id uuid.UUID) (*story.DailyStory, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+storyColumns+`
		FROM stories WHERE id = ?
	`, id.String())
	return scanStory(row)
}

// GetTodayStory implements store.StoryStore.
func (db *DB) GetTodayStory(ctx context.Context, language, day string) (*story.DailyStory, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+storyColumns+`
		FROM stories WHERE language = ? AND day = ?
	`, language, day)
	return scanStory(row)
}

// ListStories implements store.StoryStore.
func (db *DB) ListStories(ctx context.Context, language string) ([]story.DailyStory, error) {
	query := `SELECT ` + storyColumns + ` FROM stories`
	args := []any{}
	if language != "" {
		query += ` WHERE language = ?`
		args = append(args, language)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("story", "list", "query failed", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var stories []story.DailyStory
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, store.NewStoreError("story", "list", "row scan failed", err)
		}
		stories = append(stories, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("story", "list", "row iteration failed", err)
	}
	return stories, nil
}

// UpdateStoryQuiz implements store.StoryStore.
func (db *DB) UpdateStoryQuiz(ctx context.Context, id uuid.UUID, completed bool, score int) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE stories SET quiz_completed = ?, quiz_score = ? WHERE id = ?
	`, completed, score, id.String())
	if err != nil {
		return store.NewStoreError("story", "update", "write failed", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("story", "update", "rows affected failed", err)
	}
	if affected == 0 {
		return store.ErrStoryNotFound
	}
	return nil
}

func scanStory(row scanner) (*story.DailyStory, error) {
	var (
		idText    string
		wordIDs   string
		questions string
		s         story.DailyStory
	)

	err := row.Scan(
		&idText,
		&s.Title,
		&s.Content,
		&s.Language,
		&wordIDs,
		&questions,
		&s.CreatedAt,
		&s.QuizCompleted,
		&s.QuizScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStoryNotFound
		}
		return nil, store.NewStoreError("story", "get", "row scan failed", err)
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return nil, store.NewStoreError("story", "get", "malformed story ID", err)
	}
	s.ID = id

	if err := json.Unmarshal([]byte(wordIDs), &s.WordIDs); err != nil {
		return nil, store.NewStoreError("story", "get", "decode word IDs failed", err)
	}
	if err := json.Unmarshal([]byte(questions), &s.Questions); err != nil {
		return nil, store.NewStoreError("story", "get", "decode questions failed", err)
	}

	return &s, nil
}
