// Package events turns the store's raw change notifications into refresh
// triggers the repository can act on.
//
// A single user action can surface as several low-level store mutations, and
// refreshing the in-memory mirror once per raw event causes redundant reads
// and visible thrashing in anything rendering the mirror. The Coalescer
// debounces the raw stream: a refresh signal fires only after a quiet window
// elapses with no further events, so a settled burst produces exactly one
// refresh.
package events
