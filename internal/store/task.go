package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskapi/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// Mutating methods are meant to be called through WithTx inside
// store.RunInTransaction:
//
//	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
//	    return taskStore.WithTx(tx).Delete(ctx, id)
//	})
type TaskStore interface {
	// Create inserts a task and fills in ID, CreatedAt and UpdatedAt.
	// Returns ErrUnknownUser if UserID does not reference an existing user.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetView retrieves a task joined with its owner's ID and name.
	// Returns ErrTaskNotFound if the task does not exist.
	GetView(ctx context.Context, id int64) (*domain.TaskView, error)

	// List returns one page of tasks with their owners, ordered by ID.
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error)

	// ListByOwnerRole returns one page of tasks whose owner has the given role.
	ListByOwnerRole(
		ctx context.Context,
		role string,
		page domain.PageRequest,
	) (*domain.Page[domain.TaskView], error)

	// ListByUser returns every task owned by userID, ordered by ID.
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)

	// Update overwrites user_id, name, description and status and refreshes UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist and ErrUnknownUser
	// if UserID does not reference an existing user.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
