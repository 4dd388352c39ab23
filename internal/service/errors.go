package service

import "errors"

// Sentinel errors for expected conditions; callers branch with errors.Is.
var (
	// ErrNoItemsSelected indicates a batch operation was invoked with an
	// empty ID list.
	ErrNoItemsSelected = errors.New("no items selected")
)
