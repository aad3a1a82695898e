package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/platform/logger"
	"github.com/phrazzld/taskapi/internal/store"
)

// TaskInput carries every writable task field. Create and update both
// replace all four values.
type TaskInput struct {
	UserID      int64  `json:"user_id"     validate:"required"`
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status"      validate:"required,max=50"`
}

// UnmarshalJSON accepts user_id as a JSON number or a numeric string. An
// empty string or null leaves it unset.
func (in *TaskInput) UnmarshalJSON(data []byte) error {
	type plain TaskInput
	aux := struct {
		*plain
		UserID json.RawMessage `json:"user_id"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := parseFlexibleID(aux.UserID)
	if err != nil {
		return &json.UnmarshalTypeError{
			Value: "user_id",
			Type:  reflect.TypeOf(in.UserID),
			Field: "user_id",
		}
	}
	in.UserID = id
	return nil
}

func parseFlexibleID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		if text == "" {
			return 0, nil
		}
	}
	return strconv.ParseInt(text, 10, 64)
}

// TaskService provides task CRUD. Any authenticated user may act on any task.
type TaskService interface {
	// ListTasks returns one page of tasks with their owners.
	ListTasks(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error)

	// ListTasksByRole returns one page of tasks whose owner shares the
	// caller's role.
	ListTasksByRole(
		ctx context.Context,
		callerID int64,
		page domain.PageRequest,
	) (*domain.Page[domain.TaskView], error)

	// GetTask retrieves a task with its owner.
	// Returns store.ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id int64) (*domain.TaskView, error)

	// CreateTask validates input and inserts a task in a transaction.
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// UpdateTask validates input, then replaces every field of an existing
	// task in a transaction. Returns store.ErrTaskNotFound without touching
	// the store when the task is missing.
	UpdateTask(ctx context.Context, id int64, input TaskInput) (*domain.Task, error)

	// DeleteTask removes a task in a transaction.
	// Returns store.ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id int64) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// ListTasks implements TaskService.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	tasks, err := s.taskStore.List(ctx, page)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.Int("page", page.Page),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "list", err)
	}
	return tasks, nil
}

// ListTasksByRole implements TaskService.
func (s *TaskServiceImpl) ListTasksByRole(
	ctx context.Context,
	callerID int64,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	caller, err := s.userStore.GetByID(ctx, callerID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to load caller for role listing",
				slog.Int64("user_id", callerID),
				slog.String("error", err.Error()))
		}
		return nil, wrapUnexpected("task", "list by role", err)
	}

	tasks, err := s.taskStore.ListByOwnerRole(ctx, caller.Role, page)
	if err != nil {
		log.Error("failed to list tasks by role",
			slog.String("role", caller.Role),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "list by role", err)
	}
	return tasks, nil
}

// GetTask implements TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.TaskView, error) {
	view, err := s.taskStore.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, err
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "get", err)
	}
	return view, nil
}

// CreateTask implements TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateTask(ctx, input); err != nil {
		return nil, wrapUnexpected("task", "create", err)
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		if errors.Is(err, store.ErrUnknownUser) {
			return nil, domain.NewFieldError("user_id", unknownUserMessage)
		}
		log.Error("failed to create task",
			slog.Int64("user_id", input.UserID),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.UserID))
	return task, nil
}

// UpdateTask implements TaskService.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id int64, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validateTask(ctx, input); err != nil {
		return nil, wrapUnexpected("task", "update", err)
	}

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.taskStore.WithTx(tx)

		task, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		task.UserID = input.UserID
		task.Name = input.Name
		task.Description = input.Description
		task.Status = input.Status

		if err := txStore.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			log.Debug("attempted to update non-existent task", slog.Int64("task_id", id))
			return nil, err
		case errors.Is(err, store.ErrUnknownUser):
			return nil, domain.NewFieldError("user_id", unknownUserMessage)
		}
		log.Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "update", err)
	}

	log.Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// DeleteTask implements TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("attempted to delete non-existent task", slog.Int64("task_id", id))
			return err
		}
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return NewServiceError("task", "delete", err)
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// validateTask checks the struct rules and that user_id names an existing user.
func (s *TaskServiceImpl) validateTask(ctx context.Context, input TaskInput) error {
	verr := validateStruct(input)

	if !verr.Has("user_id") {
		if _, err := s.userStore.GetByID(ctx, input.UserID); err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				return err
			}
			verr.Add("user_id", unknownUserMessage)
		}
	}
	return verr.OrNil()
}
