package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lexitrack/lexitrack/internal/domain"
	"github.com/lexitrack/lexitrack/internal/domain/schedule"
	"github.com/lexitrack/lexitrack/internal/history"
	"github.com/lexitrack/lexitrack/internal/platform/logger"
	"github.com/lexitrack/lexitrack/internal/repository"
	"github.com/lexitrack/lexitrack/internal/store"
)

// AnswerResult reports the outcome of grading a review answer.
type AnswerResult struct {
	// Correct is whether the submitted answer matched the translation.
	Correct bool

	// Item is the item after the scheduling outcome was applied.
	Item domain.ReviewItem
}

// Stats is a summary of the learner's collection and progress.
type Stats struct {
	TotalItems    int
	MasteredItems int
	DueItems      int
	CurrentStreak int
}

// ItemService coordinates the review workflow: capturing vocabulary,
// grading answers through the schedule engine, and keeping the repository
// mirror consistent across batch deletes.
type ItemService struct {
	itemStore store.ItemStore
	repo      *repository.ItemRepository
	engine    schedule.Engine
	history   *history.History
	logger    *slog.Logger

	deleteGrace time.Duration

	// now and sleep are injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewItemService creates a new ItemService with the given dependencies.
// Panics if any required dependency is nil, as this is a programming error.
func NewItemService(
	itemStore store.ItemStore,
	repo *repository.ItemRepository,
	engine schedule.Engine,
	hist *history.History,
	deleteGrace time.Duration,
	logger *slog.Logger,
) *ItemService {
	if itemStore == nil {
		panic("itemStore cannot be nil")
	}
	if repo == nil {
		panic("repo cannot be nil")
	}
	if engine == nil {
		panic("engine cannot be nil")
	}
	if hist == nil {
		panic("history cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ItemService{
		itemStore:   itemStore,
		repo:        repo,
		engine:      engine,
		history:     hist,
		logger:      logger.With("component", "item_service"),
		deleteGrace: deleteGrace,
		now:         func() time.Time { return time.Now().UTC() },
		sleep:       time.Sleep,
	}
}

// AddItem captures a new vocabulary item and persists it.
func (s *ItemService) AddItem(ctx context.Context, term, translation, language, note string) (*domain.ReviewItem, error) {
	item, err := domain.NewReviewItem(term, translation, language, note, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.itemStore.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to store new item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("added vocabulary item",
		"item_id", item.ID,
		"language", item.Language)
	return item, nil
}

// EditItem updates the text fields of an existing item. Scheduling state is
// never touched here; only reviews move an item through the ladder.
func (s *ItemService) EditItem(ctx context.Context, id uuid.UUID, term, translation, language, note string) error {
	err := s.itemStore.Update(ctx, id, func(item *domain.ReviewItem) error {
		item.Term = term
		item.Translation = translation
		item.Language = language
		item.Note = note
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to edit item: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("edited vocabulary item", "item_id", id)
	return nil
}

// SubmitAnswer grades a review answer, applies the scheduling outcome and
// persists it. Correct answers also mark today as a study day.
func (s *ItemService) SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (*AnswerResult, error) {
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load item for review: %w", err)
	}

	now := s.now()
	correct := item.MatchesTranslation(answer)
	updated := s.engine.ApplyOutcome(*item, correct, now)

	err = s.itemStore.Update(ctx, id, func(it *domain.ReviewItem) error {
		it.MasteryLevel = updated.MasteryLevel
		it.IsMastered = updated.IsMastered
		it.ReviewCount = updated.ReviewCount
		it.LastReviewedAt = updated.LastReviewedAt
		it.NextReviewAt = updated.NextReviewAt
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist review outcome: %w", err)
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	if correct {
		if err := s.history.RecordSession(ctx, now); err != nil {
			// The review itself succeeded; a history write failure must not
			// fail the answer.
			log.Warn("failed to record study day",
				"item_id", id,
				"error", err)
		}
	}

	log.Info("graded review answer",
		"item_id", id,
		"correct", correct,
		"mastery_level", updated.MasteryLevel)

	return &AnswerResult{Correct: correct, Item: updated}, nil
}

// DeleteItems removes a batch of items. The repository mirror is updated
// optimistically and refresh suppression stays on until the store has had a
// grace period to settle, so coalesced change signals from the individual
// deletes cannot resurrect the removed rows in the UI.
func (s *ItemService) DeleteItems(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return ErrNoItemsSelected
	}

	s.repo.SetSuppressed(true)
	s.repo.OptimisticRemove(ids)

	var errs []error
	for _, id := range ids {
		if err := s.itemStore.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", id, err))
		}
	}

	s.sleep(s.deleteGrace)
	s.repo.SetSuppressed(false)

	if err := s.repo.Refresh(ctx); err != nil {
		errs = append(errs, fmt.Errorf("refresh after delete: %w", err))
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	if len(errs) > 0 {
		log.Error("batch delete finished with errors",
			"requested", len(ids),
			"failed", len(errs))
		return errors.Join(errs...)
	}

	log.Info("deleted items", "count", len(ids))
	return nil
}

// Stats summarizes the current collection from the repository mirror.
func (s *ItemService) Stats(ctx context.Context) (Stats, error) {
	now := s.now()
	items := s.repo.Snapshot()

	stats := Stats{
		TotalItems:    len(items),
		DueItems:      len(s.repo.ItemsDue(now)),
		CurrentStreak: s.history.CurrentStreak(now),
	}
	for _, item := range items {
		if item.IsMastered {
			stats.MasteredItems++
		}
	}
	return stats, nil
}
