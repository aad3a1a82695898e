package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TestifyMockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetView is a mock implementation of store.TaskStore.GetView
func (m *TestifyMockTaskStore) GetView(ctx context.Context, id int64) (*domain.TaskView, error) {
	args := m.Called(ctx, id)
	if view, ok := args.Get(0).(*domain.TaskView); ok {
		return view, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List
func (m *TestifyMockTaskStore) List(
	ctx context.Context,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	args := m.Called(ctx, page)
	if p, ok := args.Get(0).(*domain.Page[domain.TaskView]); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByOwnerRole is a mock implementation of store.TaskStore.ListByOwnerRole
func (m *TestifyMockTaskStore) ListByOwnerRole(
	ctx context.Context,
	role string,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	args := m.Called(ctx, role, page)
	if p, ok := args.Get(0).(*domain.Page[domain.TaskView]); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.TaskStore.ListByUser
func (m *TestifyMockTaskStore) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks, ok := args.Get(0).([]domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TestifyMockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TestifyMockTaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx is a mock implementation of store.TaskStore.WithTx.
// It returns the mock itself so expectations set on it apply inside transactions.
func (m *TestifyMockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
