package mocks

import (
	"context"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/service"
)

// MockAuthService implements service.AuthService for testing
type MockAuthService struct {
	RegisterFn func(ctx context.Context, input service.NewUserInput) (*service.AuthResult, error)
	LoginFn    func(ctx context.Context, input service.LoginInput) (*service.AuthResult, error)
}

var _ service.AuthService = (*MockAuthService)(nil)

// Register implements service.AuthService
func (m *MockAuthService) Register(ctx context.Context, input service.NewUserInput) (*service.AuthResult, error) {
	return m.RegisterFn(ctx, input)
}

// Login implements service.AuthService
func (m *MockAuthService) Login(ctx context.Context, input service.LoginInput) (*service.AuthResult, error) {
	return m.LoginFn(ctx, input)
}

// MockUserService implements service.UserService for testing. Each method
// calls the matching function field, which must be set by the test.
type MockUserService struct {
	ListUsersFn     func(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.UserListItem], error)
	GetUserFn       func(ctx context.Context, id int64) (*domain.UserDetail, error)
	CreateUserFn    func(ctx context.Context, input service.NewUserInput) (*domain.UserSummary, error)
	UpdateUserFn    func(ctx context.Context, id int64, input service.UpdateUserInput) (*domain.UserSummary, error)
	DeleteUserFn    func(ctx context.Context, id int64) error
	ListUserTasksFn func(ctx context.Context, id int64) ([]domain.Task, error)
}

var _ service.UserService = (*MockUserService)(nil)

// ListUsers implements service.UserService
func (m *MockUserService) ListUsers(
	ctx context.Context,
	page domain.PageRequest,
) (*domain.Page[domain.UserListItem], error) {
	return m.ListUsersFn(ctx, page)
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, id int64) (*domain.UserDetail, error) {
	return m.GetUserFn(ctx, id)
}

// CreateUser implements service.UserService
func (m *MockUserService) CreateUser(ctx context.Context, input service.NewUserInput) (*domain.UserSummary, error) {
	return m.CreateUserFn(ctx, input)
}

// UpdateUser implements service.UserService
func (m *MockUserService) UpdateUser(
	ctx context.Context,
	id int64,
	input service.UpdateUserInput,
) (*domain.UserSummary, error) {
	return m.UpdateUserFn(ctx, id, input)
}

// DeleteUser implements service.UserService
func (m *MockUserService) DeleteUser(ctx context.Context, id int64) error {
	return m.DeleteUserFn(ctx, id)
}

// ListUserTasks implements service.UserService
func (m *MockUserService) ListUserTasks(ctx context.Context, id int64) ([]domain.Task, error) {
	return m.ListUserTasksFn(ctx, id)
}

// MockTaskService implements service.TaskService for testing. Each method
// calls the matching function field, which must be set by the test.
type MockTaskService struct {
	ListTasksFn       func(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error)
	ListTasksByRoleFn func(ctx context.Context, callerID int64, page domain.PageRequest) (*domain.Page[domain.TaskView], error)
	GetTaskFn         func(ctx context.Context, id int64) (*domain.TaskView, error)
	CreateTaskFn      func(ctx context.Context, input service.TaskInput) (*domain.Task, error)
	UpdateTaskFn      func(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error)
	DeleteTaskFn      func(ctx context.Context, id int64) error
}

var _ service.TaskService = (*MockTaskService)(nil)

// ListTasks implements service.TaskService
func (m *MockTaskService) ListTasks(
	ctx context.Context,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	return m.ListTasksFn(ctx, page)
}

// ListTasksByRole implements service.TaskService
func (m *MockTaskService) ListTasksByRole(
	ctx context.Context,
	callerID int64,
	page domain.PageRequest,
) (*domain.Page[domain.TaskView], error) {
	return m.ListTasksByRoleFn(ctx, callerID, page)
}

// GetTask implements service.TaskService
func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.TaskView, error) {
	return m.GetTaskFn(ctx, id)
}

// CreateTask implements service.TaskService
func (m *MockTaskService) CreateTask(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
	return m.CreateTaskFn(ctx, input)
}

// UpdateTask implements service.TaskService
func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error) {
	return m.UpdateTaskFn(ctx, id, input)
}

// DeleteTask implements service.TaskService
func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	return m.DeleteTaskFn(ctx, id)
}
