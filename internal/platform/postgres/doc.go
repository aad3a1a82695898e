// Package postgres provides PostgreSQL-specific implementations of the
// store.UserStore and store.TaskStore interfaces, the mapping from driver
// errors to store errors, and the embedded goose migrations that create the
// schema.
package postgres
