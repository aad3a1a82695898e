package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/stretchr/testify/require"
)

// testCallerID is the authenticated user injected into protected routes.
const testCallerID int64 = 1

// newTestRouter mounts the handlers on the production paths. Protected
// routes see testCallerID as the authenticated user.
func newTestRouter(auth *AuthHandler, users *UserHandler, tasks *TaskHandler) http.Handler {
	r := chi.NewRouter()

	if auth != nil {
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
	}

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(shared.WithUserID(req.Context(), testCallerID)))
			})
		})

		if users != nil {
			r.Get("/admin/users", users.List)
			r.Post("/admin/user", users.Create)
			r.Get("/admin/user/{id}", users.Get)
			r.Put("/admin/user/{id}", users.Update)
			r.Delete("/admin/user/{id}", users.Delete)
			r.Get("/admin/user/{id}/tasks", users.ListTasks)
		}
		if tasks != nil {
			r.Get("/tasks", tasks.List)
			r.Get("/tasks-by-role", tasks.ListByRole)
			r.Post("/task", tasks.Create)
			r.Get("/task/{id}", tasks.Get)
			r.Put("/task/{id}", tasks.Update)
			r.Delete("/task/{id}", tasks.Delete)
		}
	})

	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
