package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"Ana"}`, want: "Ana"},
		{name: "unknown fields ignored", body: `{"name":"Ana","extra":1}`, want: "Ana"},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "wrong type", body: `{"name":42}`, wantErr: true},
		{name: "trailing data", body: `{"name":"Ana"} {"name":"Bob"}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	var v map[string]any
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)
}

func TestPageFromQuery(t *testing.T) {
	tests := map[string]int{
		"/tasks":            1,
		"/tasks?page=3":     3,
		"/tasks?page=0":     1,
		"/tasks?page=-2":    1,
		"/tasks?page=abc":   1,
		"/tasks?page=2&x=1": 2,
	}

	for target, want := range tests {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		page := PageFromQuery(req)
		assert.Equal(t, want, page.Page, target)
		assert.Equal(t, 100, page.PerPage, target)
	}
}
