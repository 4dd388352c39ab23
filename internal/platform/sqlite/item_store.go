// Package sqlite provides the durable store implementation backed by an
// embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Registers the sqlite driver

	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/platform/logger"
	"github.com/lexitrack/lexitrack/internal/store"
)

// Verify interface compliance at compile time
var (
	_ store.ItemStore     = (*DB)(nil)
	_ store.StudyDayStore = (*DB)(nil)
)

const itemColumns = `id, term, translation, language, note, created_at,
	last_reviewed_at, review_count, mastery_level, is_mastered, next_review_at`

// DB wraps the SQL database connection and implements store.ItemStore and
// store.StudyDayStore. Every successful mutation pushes a coarse signal on
// the change channel; the signal carries no payload and is dropped rather
// than queued when nobody is draining it.
type DB struct {
	conn    *sql.DB
	changes chan struct{}
	logger  *slog.Logger
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := conn.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{
		conn:    conn,
		changes: make(chan struct{}, 16),
		logger:  logger.With("component", "sqlite_store"),
	}, nil
}

// Close closes the database connection and the change channel.
func (db *DB) Close() error {
	err := db.conn.Close()
	close(db.changes)
	return err
}

// Changes implements store.ItemStore.
func (db *DB) Changes() <-chan struct{} {
	return db.changes
}

// Create implements store.ItemStore.
func (db *DB) Create(ctx context.Context, item *domain.ReviewItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID.String(),
		item.Term,
		item.Translation,
		item.Language,
		item.Note,
		item.CreatedAt,
		nullTime(item.LastReviewedAt),
		item.ReviewCount,
		item.MasteryLevel,
		item.IsMastered,
		nullTime(item.NextReviewAt),
	)
	if err != nil {
		return store.NewStoreError("item", "create", "insert failed", err)
	}

	logger.FromContextOrDefault(ctx, db.logger).Debug("item created", "item_id", item.ID)
	db.notifyChange()
	return nil
}

// GetByID implements store.ItemStore.
func (db *DB) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewItem, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM items WHERE id = ?
	`, id.String())

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, store.NewStoreError("item", "get", "row scan failed", err)
	}
	return item, nil
}

// Update implements store.ItemStore. The read and write run in one
// transaction so concurrent updates cannot interleave between them.
func (db *DB) Update(ctx context.Context, id uuid.UUID, mutate func(item *domain.ReviewItem) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return store.NewStoreError("item", "update", "begin transaction failed", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row := tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM items WHERE id = ?
	`, id.String())

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrItemNotFound
		}
		return store.NewStoreError("item", "update", "row scan failed", err)
	}

	if err := mutate(item); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET term = ?, translation = ?, language = ?, note = ?,
			last_reviewed_at = ?, review_count = ?, mastery_level = ?,
			is_mastered = ?, next_review_at = ?
		WHERE id = ?
	`,
		item.Term,
		item.Translation,
		item.Language,
		item.Note,
		nullTime(item.LastReviewedAt),
		item.ReviewCount,
		item.MasteryLevel,
		item.IsMastered,
		nullTime(item.NextReviewAt),
		id.String(),
	)
	if err != nil {
		return store.NewStoreError("item", "update", "write failed", err)
	}

	if err := tx.Commit(); err != nil {
		return store.NewStoreError("item", "update", "commit failed", err)
	}

	logger.FromContextOrDefault(ctx, db.logger).Debug("item updated", "item_id", id)
	db.notifyChange()
	return nil
}

// Delete implements store.ItemStore. Deleting a missing ID is a no-op.
func (db *DB) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := db.conn.ExecContext(ctx, `
		DELETE FROM items WHERE id = ?
	`, id.String())
	if err != nil {
		return store.NewStoreError("item", "delete", "delete failed", err)
	}

	logger.FromContextOrDefault(ctx, db.logger).Debug("item deleted", "item_id", id)
	db.notifyChange()
	return nil
}

// List implements store.ItemStore.
func (db *DB) List(ctx context.Context) ([]domain.ReviewItem, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
	`)
	if err != nil {
		return nil, store.NewStoreError("item", "list", "query failed", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []domain.ReviewItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, store.NewStoreError("item", "list", "row scan failed", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("item", "list", "row iteration failed", err)
	}
	return items, nil
}

// MarkDay implements store.StudyDayStore. Idempotent by primary key.
func (db *DB) MarkDay(ctx context.Context, day string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO study_days (day) VALUES (?)
		ON CONFLICT(day) DO NOTHING
	`, day)
	if err != nil {
		return store.NewStoreError("study_day", "mark", "insert failed", err)
	}
	return nil
}

// ListDays implements store.StudyDayStore.
func (db *DB) ListDays(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT day FROM study_days`)
	if err != nil {
		return nil, store.NewStoreError("study_day", "list", "query failed", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, store.NewStoreError("study_day", "list", "row scan failed", err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("study_day", "list", "row iteration failed", err)
	}
	return days, nil
}

// notifyChange pushes a coarse change signal without blocking the mutation
// that produced it.
func (db *DB) notifyChange() {
	select {
	case db.changes <- struct{}{}:
	default:
	}
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*domain.ReviewItem, error) {
	var (
		idText       string
		lastReviewed sql.NullTime
		nextReview   sql.NullTime
		item         domain.ReviewItem
	)

	err := row.Scan(
		&idText,
		&item.Term,
		&item.Translation,
		&item.Language,
		&item.Note,
		&item.CreatedAt,
		&lastReviewed,
		&item.ReviewCount,
		&item.MasteryLevel,
		&item.IsMastered,
		&nextReview,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidID, err)
	}
	item.ID = id
	item.LastReviewedAt = timePtr(lastReviewed)
	item.NextReviewAt = timePtr(nextReview)

	return &item, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	out := t.Time
	return &out
}
