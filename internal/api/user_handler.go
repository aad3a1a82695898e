package api

import (
	"net/http"

	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/service"
	"github.com/phrazzld/taskapi/internal/store"
)

// UserHandler serves the admin user endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /admin/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.userService.ListUsers(r.Context(), shared.PageFromQuery(r))
	if err != nil {
		respondDataError(w, r, err, "User not found", "Failed to retrieve users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageResponse(page, "User retrieved successfully"))
}

// Get handles GET /admin/user/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondUserNotFound(w, r, store.ErrUserNotFound)
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			respondUserNotFound(w, r, err)
			return
		}
		respondDataError(w, r, err, "User not found", "Failed to retrieve user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DataResponse{
		Data:    user,
		Message: "User retrieved successfully",
	})
}

// Create handles POST /admin/user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.NewUserInput
	if err := decodeRequest(r, &req); err != nil {
		respondStatusError(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		respondStatusError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, StatusResponse{
		Status: 1,
		Msg:    "User created successfully!",
		User:   user,
	})
}

// Update handles PUT /admin/user/{id}. Only the fields present in the body
// are changed.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondStatusError(w, r, store.ErrUserNotFound)
		return
	}

	var req service.UpdateUserInput
	if err := decodeRequest(r, &req); err != nil {
		respondStatusError(w, r, err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, req)
	if err != nil {
		respondStatusError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status: 1,
		Msg:    "User updated successfully!",
		User:   user,
	})
}

// Delete handles DELETE /admin/user/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		respondStatusError(w, r, store.ErrUserNotFound)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondStatusError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status: 1,
		Msg:    "User deleted successfully!",
	})
}

// ListTasks handles GET /admin/user/{id}/tasks. The success body is a bare
// array of the user's tasks.
func (h *UserHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathID(r, "id")
	if !ok {
		shared.RespondWithJSON(w, r, http.StatusNotFound, MessageResponse{Message: "User not found"})
		return
	}

	tasks, err := h.userService.ListUserTasks(r.Context(), id)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithJSON(w, r, http.StatusNotFound, MessageResponse{Message: "User not found"})
			return
		}
		respondDataError(w, r, err, "User not found", "Failed to retrieve tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// respondUserNotFound writes the single-user not-found body.
func respondUserNotFound(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithJSON(w, r, http.StatusNotFound, DataResponse{
		Error:   "User not found",
		Message: errorCause(err),
	})
}
