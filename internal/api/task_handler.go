package api

import (
	"net/http"

	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/service"
	"github.com/phrazzld/taskapi/internal/store"
)

const taskNotFound = "Task not found"

// TaskHandler serves the task endpoints. Any authenticated user may act
// on any task.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.taskService.ListTasks(r.Context(), shared.PageFromQuery(r))
	if err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to retrieve tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageResponse(page, "Tasks retrieved successfully"))
}

// ListByRole handles GET /tasks-by-role, listing tasks whose owner shares
// the caller's role.
func (h *TaskHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	callerID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page, err := h.taskService.ListTasksByRole(r.Context(), callerID, shared.PageFromQuery(r))
	if err != nil {
		respondDataError(w, r, err, "User not found", "Failed to retrieve tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageResponse(page, "Tasks retrieved successfully"))
}

// Get handles GET /task/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondDataError(w, r, store.ErrTaskNotFound, taskNotFound, "")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to retrieve task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{
		Data:    task,
		Message: "Task retrieved successfully",
	})
}

// Create handles POST /task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.TaskInput
	if err := decodeRequest(r, &req); err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to create task")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req)
	if err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, DataResponse{
		Data:    task,
		Message: "Task created successfully",
	})
}

// Update handles PUT /task/{id}. All four fields are replaced.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondDataError(w, r, store.ErrTaskNotFound, taskNotFound, "")
		return
	}

	var req service.TaskInput
	if err := decodeRequest(r, &req); err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to update task")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, req)
	if err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{
		Data:    task,
		Message: "Task updated successfully",
	})
}

// Delete handles DELETE /task/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondDataError(w, r, store.ErrTaskNotFound, taskNotFound, "")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		respondDataError(w, r, err, taskNotFound, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{Message: "Task deleted successfully"})
}
