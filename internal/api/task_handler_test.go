package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/taskapi/internal/domain"
	"github.com/phrazzld/taskapi/internal/mocks"
	"github.com/phrazzld/taskapi/internal/service"
	"github.com/phrazzld/taskapi/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskCreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func sampleTaskView(id int64) domain.TaskView {
	return domain.TaskView{
		ID:          id,
		UserID:      1,
		Name:        "Write docs",
		Description: "Describe the API",
		Status:      "open",
		CreatedAt:   taskCreatedAt,
		User:        domain.TaskOwner{ID: 1, Name: "Ana"},
	}
}

func TestTaskList(t *testing.T) {
	var gotPage domain.PageRequest
	tasks := &mocks.MockTaskService{
		ListTasksFn: func(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error) {
			gotPage = page
			return &domain.Page[domain.TaskView]{
				Items:       []domain.TaskView{sampleTaskView(5)},
				CurrentPage: page.Page,
				PerPage:     page.Limit(),
				Total:       101,
			}, nil
		},
	}
	router := newTestRouter(nil, nil, NewTaskHandler(tasks))

	rr := doRequest(t, router, http.MethodGet, "/tasks?page=2", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, gotPage.Page)
	assert.JSONEq(t, `{
		"data": [{
			"id": 5, "user_id": 1, "name": "Write docs", "description": "Describe the API",
			"status": "open", "created_at": "2026-01-02T03:04:05Z", "user": {"id": 1, "name": "Ana"}
		}],
		"current_page": 2,
		"total": 101,
		"message": "Tasks retrieved successfully"
	}`, rr.Body.String())
}

func TestTaskListEmptyPage(t *testing.T) {
	tasks := &mocks.MockTaskService{
		ListTasksFn: func(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error) {
			return &domain.Page[domain.TaskView]{CurrentPage: 1, PerPage: 100}, nil
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodGet, "/tasks?page=abc", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":[],"current_page":1,"total":0,"message":"Tasks retrieved successfully"}`,
		rr.Body.String())
}

func TestTaskListFailure(t *testing.T) {
	tasks := &mocks.MockTaskService{
		ListTasksFn: func(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.TaskView], error) {
			return nil, service.NewServiceError("task", "list", errors.New("connection reset"))
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodGet, "/tasks", "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	resp := decodeBody[DataResponse](t, rr)
	assert.Equal(t, "Failed to retrieve tasks", resp.Error)
	assert.Contains(t, resp.Message, "connection reset")
}

func TestTaskListByRoleUsesCaller(t *testing.T) {
	var gotCaller int64
	tasks := &mocks.MockTaskService{
		ListTasksByRoleFn: func(
			ctx context.Context,
			callerID int64,
			page domain.PageRequest,
		) (*domain.Page[domain.TaskView], error) {
			gotCaller = callerID
			return &domain.Page[domain.TaskView]{Items: []domain.TaskView{sampleTaskView(9)}, CurrentPage: 1, Total: 1}, nil
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodGet, "/tasks-by-role", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testCallerID, gotCaller)
	resp := decodeBody[DataResponse](t, rr)
	assert.Len(t, resp.Data, 1)
}

func TestTaskListByRoleWithoutCaller(t *testing.T) {
	handler := NewTaskHandler(&mocks.MockTaskService{})
	rr := doRequest(t, http.HandlerFunc(handler.ListByRole), http.MethodGet, "/tasks-by-role", "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTaskGet(t *testing.T) {
	tasks := &mocks.MockTaskService{
		GetTaskFn: func(ctx context.Context, id int64) (*domain.TaskView, error) {
			if id != 5 {
				return nil, store.ErrTaskNotFound
			}
			view := sampleTaskView(5)
			return &view, nil
		},
	}
	router := newTestRouter(nil, nil, NewTaskHandler(tasks))

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "existing task",
			path:           "/task/5",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing task",
			path:           "/task/6",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Task not found"}`,
		},
		{
			name:           "non-numeric id",
			path:           "/task/abc",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Task not found"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodGet, tc.path, "")
			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				return
			}
			resp := decodeBody[DataResponse](t, rr)
			assert.Equal(t, "Task retrieved successfully", resp.Message)
		})
	}
}

func TestTaskCreate(t *testing.T) {
	var got service.TaskInput
	tasks := &mocks.MockTaskService{
		CreateTaskFn: func(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
			got = input
			return &domain.Task{
				ID: 11, UserID: input.UserID, Name: input.Name, Description: input.Description,
				Status: input.Status, CreatedAt: taskCreatedAt, UpdatedAt: taskCreatedAt,
			}, nil
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPost, "/task",
		`{"user_id":1,"name":"Write docs","description":"Describe the API","status":"open"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, service.TaskInput{UserID: 1, Name: "Write docs", Description: "Describe the API", Status: "open"}, got)
	resp := decodeBody[DataResponse](t, rr)
	assert.Equal(t, "Task created successfully", resp.Message)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 11, data["id"])
}

func TestTaskCreateUnknownUser(t *testing.T) {
	tasks := &mocks.MockTaskService{
		CreateTaskFn: func(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
			return nil, domain.NewFieldError("user_id", "The selected user id is invalid.")
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPost, "/task",
		`{"user_id":404,"name":"n","description":"d","status":"open"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid data","messages":{"user_id":["The selected user id is invalid."]}}`,
		rr.Body.String())
}

func TestTaskCreateMalformedJSON(t *testing.T) {
	got := service.TaskInput{Name: "sentinel"}
	tasks := &mocks.MockTaskService{
		CreateTaskFn: func(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
			got = input
			return nil, domain.NewFieldError("user_id", "The user id field is required.")
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPost, "/task",
		`{"name":"Write docs","user_id":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid data","messages":{"user_id":["The user id field is required."]}}`,
		rr.Body.String())
	assert.Equal(t, service.TaskInput{}, got, "a body that fails to parse is treated as empty")
}

func TestTaskCreateAcceptsNumericStringUserID(t *testing.T) {
	var got service.TaskInput
	tasks := &mocks.MockTaskService{
		CreateTaskFn: func(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
			got = input
			return &domain.Task{ID: 12, UserID: input.UserID, Name: input.Name}, nil
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPost, "/task",
		`{"user_id":"7","name":"Write docs","description":"Describe the API","status":"open"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, int64(7), got.UserID)
}

func TestTaskCreateWrongFieldType(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		messages string
	}{
		{
			name:     "non numeric user id",
			body:     `{"user_id":"seven","name":"n","description":"d","status":"open"}`,
			messages: `{"user_id":["The user id must be an integer."]}`,
		},
		{
			name:     "boolean user id",
			body:     `{"user_id":true,"name":"n","description":"d","status":"open"}`,
			messages: `{"user_id":["The user id must be an integer."]}`,
		},
		{
			name:     "numeric name",
			body:     `{"user_id":1,"name":5,"description":"d","status":"open"}`,
			messages: `{"name":["The name must be a string."]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks := &mocks.MockTaskService{
				CreateTaskFn: func(ctx context.Context, input service.TaskInput) (*domain.Task, error) {
					t.Fatal("service must not be called for a mistyped field")
					return nil, nil
				},
			}

			rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPost, "/task", tc.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.JSONEq(t, `{"error":"Invalid data","messages":`+tc.messages+`}`, rr.Body.String())
		})
	}
}

func TestTaskUpdateMissing(t *testing.T) {
	tasks := &mocks.MockTaskService{
		UpdateTaskFn: func(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error) {
			return nil, fmt.Errorf("failed to load task: %w", store.ErrTaskNotFound)
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPut, "/task/999",
		`{"user_id":1,"name":"n","description":"d","status":"done"}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, rr.Body.String())
}

func TestTaskUpdate(t *testing.T) {
	var gotID int64
	tasks := &mocks.MockTaskService{
		UpdateTaskFn: func(ctx context.Context, id int64, input service.TaskInput) (*domain.Task, error) {
			gotID = id
			return &domain.Task{ID: id, UserID: input.UserID, Name: input.Name, Status: input.Status}, nil
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodPut, "/task/3",
		`{"user_id":1,"name":"n","description":"d","status":"done"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(3), gotID)
	resp := decodeBody[DataResponse](t, rr)
	assert.Equal(t, "Task updated successfully", resp.Message)
}

func TestTaskDeleteTwice(t *testing.T) {
	existing := map[int64]bool{4: true}
	tasks := &mocks.MockTaskService{
		DeleteTaskFn: func(ctx context.Context, id int64) error {
			if !existing[id] {
				return store.ErrTaskNotFound
			}
			delete(existing, id)
			return nil
		},
	}
	router := newTestRouter(nil, nil, NewTaskHandler(tasks))

	rr := doRequest(t, router, http.MethodDelete, "/task/4", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task deleted successfully"}`, rr.Body.String())

	rr = doRequest(t, router, http.MethodDelete, "/task/4", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Task not found"}`, rr.Body.String())
}

func TestTaskDeleteDatabaseFailure(t *testing.T) {
	tasks := &mocks.MockTaskService{
		DeleteTaskFn: func(ctx context.Context, id int64) error {
			return service.NewServiceError("task", "delete",
				store.NewStoreError("task", "delete", "delete failed", errors.New("deadlock detected")))
		},
	}

	rr := doRequest(t, newTestRouter(nil, nil, NewTaskHandler(tasks)), http.MethodDelete, "/task/4", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to delete task","message":"deadlock detected"}`, rr.Body.String())
}
