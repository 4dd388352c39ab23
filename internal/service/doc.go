// Package service contains the application-specific use cases. It
// orchestrates interactions between domain objects, the durable store
// (internal/store) and the in-memory repository mirror to fulfill the
// review workflow.
//
// Services receive dependencies through constructor injection and return
// sentinel errors for expected conditions so callers can branch with
// errors.Is.
package service
