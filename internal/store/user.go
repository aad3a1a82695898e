package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskapi/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create inserts a new user. The caller supplies an already hashed password.
	// On success ID, CreatedAt and UpdatedAt are filled in from the database.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByNameAndEmail retrieves the user whose name and email both match exactly.
	// Returns ErrUserNotFound otherwise.
	GetByNameAndEmail(ctx context.Context, name, email string) (*domain.User, error)

	// EmailExists reports whether a user other than excludeID owns email.
	// Pass 0 as excludeID to check against every user.
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)

	// List returns one page of users ordered by ID.
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.User], error)

	// Update writes name, email, password and role of an existing user and
	// refreshes UpdatedAt.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID. Their tasks are
	// removed by the ON DELETE CASCADE foreign key.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
