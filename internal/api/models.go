package api

import "github.com/phrazzld/taskapi/internal/domain"

// StatusResponse is the envelope of register, login and the admin user
// write endpoints. Status is 1 on success and 0 on failure.
type StatusResponse struct {
	Status      int                 `json:"status"`
	Msg         string              `json:"msg"`
	Errors      map[string][]string `json:"errors,omitempty"`
	AccessToken string              `json:"access_token,omitempty"`
	User        *domain.UserSummary `json:"user,omitempty"`
}

// DataResponse is the envelope of the task endpoints and the admin user
// reads. List endpoints also fill CurrentPage and Total.
type DataResponse struct {
	Data        any                 `json:"data,omitempty"`
	CurrentPage int                 `json:"current_page,omitempty"`
	Total       *int64              `json:"total,omitempty"`
	Message     string              `json:"message,omitempty"`
	Error       string              `json:"error,omitempty"`
	Messages    map[string][]string `json:"messages,omitempty"`
}

// MessageResponse is the not-found body of the user task listing, whose
// success body is a bare array.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// pageResponse builds the list envelope for one page of items.
func pageResponse[T any](page *domain.Page[T], message string) DataResponse {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	total := page.Total
	return DataResponse{
		Data:        items,
		CurrentPage: page.CurrentPage,
		Total:       &total,
		Message:     message,
	}
}
