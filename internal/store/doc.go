// Package store defines the persistence contracts the review core depends
// on. The interfaces abstract the underlying storage mechanism so the
// scheduling and repository logic stay independent of any particular
// database technology.
package store
