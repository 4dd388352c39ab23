package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "wrapped generic error",
			err:      fmt.Errorf("failed to do something: %w", errors.New("some error")),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrItemNotFound",
			err:      ErrItemNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrItemNotFound",
			err:      fmt.Errorf("failed to find item: %w", ErrItemNotFound),
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrItemNotFound",
			err:      NewStoreError("item", "get", "row missing", ErrItemNotFound),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsNotFoundError(tc.err); got != tc.expected {
				t.Errorf("IsNotFoundError(%v) = %v, expected %v", tc.err, got, tc.expected)
			}
		})
	}
}

func TestStoreErrorMessage(t *testing.T) {
	underlying := errors.New("disk full")
	err := NewStoreError("item", "create", "insert failed", underlying)

	expected := "create operation on item failed: insert failed: disk full"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, underlying) {
		t.Error("Expected StoreError to unwrap to the underlying error")
	}

	bare := NewStoreError("item", "delete", "no connection", nil)
	if bare.Error() != "delete operation on item failed: no connection" {
		t.Errorf("Unexpected message: %q", bare.Error())
	}
}
