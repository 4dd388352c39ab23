// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline fakes in individual test files, the mock store
// here is shared by the repository, coalescer, and service tests so the
// behavior under test stays consistent across packages. Function fields
// allow a test to override a single method; unset methods fall back to a
// working in-memory implementation.
package mocks
