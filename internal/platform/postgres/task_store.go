package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/platform/logger"
	"github.com/phrazzld/taskapi/internal/store"
)

const (
	taskColumns = `id, user_id, name, description, status, created_at, updated_at`

	taskViewSelect = `
		SELECT t.id, t.user_id, t.name, t.description, t.status, t.created_at, u.id, u.name
		FROM tasks t
		JOIN users u ON u.id = t.user_id
	`
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (user_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, task.UserID, task.Name, task.Description, task.Status).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation", slog.Int64("user_id", task.UserID))
			return fmt.Errorf("%w: user with ID %d not found", store.ErrUnknownUser, task.UserID)
		}
		log.Error("failed to create task", slog.String("error", err.Error()), slog.Int64("user_id", task.UserID))
		return dbError("task", "create", err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID), slog.Int64("user_id", task.UserID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, dbError("task", "get", err)
	}

	return task, nil
}

// GetView implements store.TaskStore.GetView
func (s *PostgresTaskStore) GetView(ctx context.Context, id int64) (*domain.TaskView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	view, err := scanTaskView(s.db.QueryRowContext(ctx, taskViewSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task view", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return nil, dbError("task", "get", err)
	}

	return view, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error) {
	return s.listViews(ctx, page,
		`SELECT COUNT(*) FROM tasks`,
		taskViewSelect+` ORDER BY t.id LIMIT $1 OFFSET $2`)
}

// ListByOwnerRole implements store.TaskStore.ListByOwnerRole
func (s *PostgresTaskStore) ListByOwnerRole(
	ctx context.Context,
	role string,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	return s.listViews(ctx, page,
		`SELECT COUNT(*) FROM tasks t JOIN users u ON u.id = t.user_id WHERE u.role = $1`,
		taskViewSelect+` WHERE u.role = $3 ORDER BY t.id LIMIT $1 OFFSET $2`,
		role)
}

// listViews runs a count query and a page query sharing the same filter
// arguments. The page query receives LIMIT and OFFSET as $1 and $2, followed
// by filterArgs.
func (s *PostgresTaskStore) listViews(
	ctx context.Context,
	page domain.PageRequest,
	countQuery, pageQuery string,
	filterArgs ...any,
) (*domain.Page[domain.TaskView], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&total); err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return nil, dbError("task", "list", err)
	}

	args := append([]any{page.Limit(), page.Offset()}, filterArgs...)
	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, dbError("task", "list", err)
	}
	defer func() { _ = rows.Close() }()

	views := make([]domain.TaskView, 0)
	for rows.Next() {
		view, err := scanTaskView(rows)
		if err != nil {
			return nil, dbError("task", "list", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating task rows", slog.String("error", err.Error()))
		return nil, dbError("task", "list", err)
	}

	return &domain.Page[domain.TaskView]{
		Items:       views,
		CurrentPage: page.Page,
		PerPage:     page.Limit(),
		Total:       total,
	}, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		log.Error("failed to list user tasks", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, dbError("task", "list", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, dbError("task", "list", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("task", "list", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET user_id = $1, name = $2, description = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := s.db.QueryRowContext(ctx, query, task.UserID, task.Name, task.Description, task.Status, task.ID).
		Scan(&task.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return store.ErrTaskNotFound
		case IsForeignKeyViolation(err):
			log.Warn("foreign key violation during task update",
				slog.Int64("task_id", task.ID), slog.Int64("user_id", task.UserID))
			return fmt.Errorf("%w: user with ID %d not found", store.ErrUnknownUser, task.UserID)
		}
		log.Error("failed to update task", slog.String("error", err.Error()), slog.Int64("task_id", task.ID))
		return dbError("task", "update", err)
	}

	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task", slog.String("error", err.Error()), slog.Int64("task_id", id))
		return dbError("task", "delete", err)
	}
	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTaskView(row rowScanner) (*domain.TaskView, error) {
	var v domain.TaskView
	err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Description, &v.Status, &v.CreatedAt, &v.User.ID, &v.User.Name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
