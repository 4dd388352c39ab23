package translation

import "errors"

var (
	// ErrNotConfigured indicates the provider has no credentials and cannot
	// serve requests.
	ErrNotConfigured = errors.New("translation provider not configured")

	// ErrRequestFailed indicates the provider request could not be completed.
	ErrRequestFailed = errors.New("translation request failed")

	// ErrBadResponse indicates the provider returned a response that could
	// not be interpreted.
	ErrBadResponse = errors.New("unexpected translation response")
)
