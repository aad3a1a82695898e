package api

import (
	"net/http"

	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/service"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.NewUserInput
	if err := decodeRequest(r, &req); err != nil {
		respondStatusError(w, r, err)
		return
	}

	result, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondStatusError(w, r, err)
		return
	}

	user := result.User
	shared.RespondWithJSON(w, r, http.StatusCreated, StatusResponse{
		Status:      1,
		Msg:         "¡Success, user created!",
		AccessToken: result.Token,
		User:        &user,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginInput
	if err := decodeRequest(r, &req); err != nil {
		respondStatusError(w, r, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondStatusError(w, r, err)
		return
	}

	user := result.User
	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{
		Status:      1,
		Msg:         "User successfully logged in!",
		AccessToken: result.Token,
		User:        &user,
	})
}
