// Package schedule implements the spaced repetition ladder that decides when
// a review item next comes due. The calculation is pure: it takes an item,
// an answer outcome, and the current time, and returns a complete new item
// state without touching any shared state or performing I/O. Persisting the
// result is the caller's job.
package schedule

import (
	"time"

	"github.com/lexitrack/lexitrack/internal/domain"
)

// Engine defines the interface for scheduling operations.
type Engine interface {
	// ApplyOutcome computes the item's next scheduling state from an
	// answer outcome. It never fails: the transition is total over any
	// well-formed ReviewItem.
	ApplyOutcome(item domain.ReviewItem, correct bool, now time.Time) domain.ReviewItem
}

// ladderEngine is the standard implementation of the Engine interface.
type ladderEngine struct {
	params *Params
}

// NewEngine creates a new scheduling engine with default parameters.
func NewEngine() Engine {
	return &ladderEngine{params: NewDefaultParams()}
}

// NewEngineWithParams creates a new scheduling engine with custom parameters.
func NewEngineWithParams(params *Params) Engine {
	return &ladderEngine{params: params}
}

// ApplyOutcome implements the Engine interface.
func (e *ladderEngine) ApplyOutcome(item domain.ReviewItem, correct bool, now time.Time) domain.ReviewItem {
	return applyOutcome(item, correct, now, e.params)
}

// applyOutcome produces the item's next state after a graded answer.
//
// A correct answer moves the item one rung up the ladder (capped at
// MaxMasteryLevel) and schedules the next review after the interval for the
// new level. An incorrect answer moves it one rung down (floored at 0) and
// makes the item immediately due again. MasteryLevel and NextReviewAt are
// always written together, and IsMastered is re-derived, so the returned
// item is internally consistent regardless of the input's history.
func applyOutcome(item domain.ReviewItem, correct bool, now time.Time, params *Params) domain.ReviewItem {
	next := item

	if correct {
		next.MasteryLevel = item.MasteryLevel + 1
		if next.MasteryLevel > params.MaxMasteryLevel {
			next.MasteryLevel = params.MaxMasteryLevel
		}
		due := now.AddDate(0, 0, params.IntervalDaysFor(next.MasteryLevel))
		next.NextReviewAt = &due
	} else {
		next.MasteryLevel = item.MasteryLevel - 1
		if next.MasteryLevel < 0 {
			next.MasteryLevel = 0
		}
		// Immediately due again.
		due := now
		next.NextReviewAt = &due
	}

	next.ReviewCount = item.ReviewCount + 1
	reviewed := now
	next.LastReviewedAt = &reviewed
	next.IsMastered = next.MasteryLevel >= params.MaxMasteryLevel

	return next
}
