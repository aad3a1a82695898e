// Package service contains the application use cases: registration and
// login, admin user management and task management. It orchestrates the
// stores defined in internal/store and the token and password primitives in
// internal/service/auth.
//
// Services validate input with go-playground/validator and report failures
// as *domain.ValidationError keyed by JSON field name. Missing records come
// back as the store's not-found sentinels. Any other failure is wrapped in a
// *ServiceError so the API layer can tell expected outcomes from faults with
// errors.Is and errors.As.
//
// Task writes and user updates and deletes run inside store.RunInTransaction.
// Validation always happens before a transaction is opened.
package service
