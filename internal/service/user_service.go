package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/platform/logger"
	"github.com/phrazzld/taskapi/internal/service/auth"
	"github.com/phrazzld/taskapi/internal/store"
)

// UpdateUserInput is a partial update. A nil field is left unchanged; a
// non-nil field is validated with the same rules as on creation, so an
// explicit empty string fails as required.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserService provides the admin operations over user accounts.
type UserService interface {
	// ListUsers returns one page of users without their email addresses.
	ListUsers(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.UserListItem], error)

	// GetUser retrieves a user by ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, id int64) (*domain.UserDetail, error)

	// CreateUser creates a user with the same rules as registration but
	// without issuing a token.
	CreateUser(ctx context.Context, input NewUserInput) (*domain.UserSummary, error)

	// UpdateUser applies a partial update. Validation runs before the user is
	// looked up, so invalid input is reported even for a missing user.
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.UserSummary, error)

	// DeleteUser removes a user and, through the foreign key, their tasks.
	DeleteUser(ctx context.Context, id int64) error

	// ListUserTasks returns every task owned by the user.
	// Returns store.ErrUserNotFound if the user does not exist.
	ListUserTasks(ctx context.Context, id int64) ([]domain.Task, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	taskStore store.TaskStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		taskStore: taskStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(
	ctx context.Context,
	page domain.PageRequest,
) (*domain.Page[domain.UserListItem], error) {
	users, err := s.userStore.List(ctx, page)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list users",
			slog.Int("page", page.Page),
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "list", err)
	}

	return domain.MapPage(users, func(u domain.User) domain.UserListItem {
		return u.ListItem()
	}), nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int64) (*domain.UserDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, err
		}
		log.Error("failed to retrieve user",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "get", err)
	}

	detail := user.Detail()
	return &detail, nil
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, input NewUserInput) (*domain.UserSummary, error) {
	user, err := createUser(ctx, s.userStore, s.hasher, input)
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to create user",
				slog.String("error", err.Error()))
		}
		return nil, wrapUnexpected("user", "create", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("user created",
		slog.Int64("user_id", user.ID))

	summary := user.Summary()
	return &summary, nil
}

// UpdateUser implements UserService.
// Following the pattern of getting the complete user first, then updating
// only the provided fields inside one transaction.
func (s *UserServiceImpl) UpdateUser(
	ctx context.Context,
	id int64,
	input UpdateUserInput,
) (*domain.UserSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	verr := domain.NewValidationError()
	if input.Name != nil {
		validateField(verr, "name", *input.Name, nameRules)
	}
	if input.Email != nil {
		validateField(verr, "email", *input.Email, emailRules)
	}
	if input.Password != nil {
		validateField(verr, "password", *input.Password, passwordRules)
	}
	if input.Role != nil {
		validateField(verr, "role", *input.Role, roleRules)
	}

	if input.Email != nil && !verr.Has("email") {
		taken, err := s.userStore.EmailExists(ctx, *input.Email, id)
		if err != nil {
			log.Error("failed to check email uniqueness",
				slog.Int64("user_id", id),
				slog.String("error", err.Error()))
			return nil, NewServiceError("user", "update", err)
		}
		if taken {
			verr.Add("email", emailTakenMessage)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	var hashed string
	if input.Password != nil {
		var err error
		if hashed, err = s.hasher.Hash(*input.Password); err != nil {
			return nil, NewServiceError("user", "update", err)
		}
	}

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Password != nil {
			user.HashedPassword = hashed
		}
		if input.Role != nil {
			user.Role = *input.Role
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("attempted to update non-existent user", slog.Int64("user_id", id))
			return nil, err
		}
		log.Error("failed to update user",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "update", err)
	}

	log.Info("user updated", slog.Int64("user_id", id))
	summary := updated.Summary()
	return &summary, nil
}

// DeleteUser implements UserService.
// Uses a transaction to ensure atomicity of the operation
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("attempted to delete non-existent user", slog.Int64("user_id", id))
			return err
		}
		log.Error("failed to delete user",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return NewServiceError("user", "delete", err)
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}

// ListUserTasks implements UserService.
func (s *UserServiceImpl) ListUserTasks(ctx context.Context, id int64) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.userStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		log.Error("failed to retrieve user for task listing",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "list tasks", err)
	}

	tasks, err := s.taskStore.ListByUser(ctx, id)
	if err != nil {
		log.Error("failed to list user tasks",
			slog.Int64("user_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("user", "list tasks", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}
