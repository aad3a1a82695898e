// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the services, so that validation and authorization rules stay independent
// of the database. Implementations live in internal/platform/postgres.
package store
