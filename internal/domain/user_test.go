package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserProjections(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := &User{
		ID:             7,
		Name:           "Ana",
		Email:          "ana@x.com",
		HashedPassword: "$2a$10$hash",
		Role:           "user",
		CreatedAt:      created,
		UpdatedAt:      created,
	}

	summary := user.Summary()
	if summary.ID != 7 || summary.Name != "Ana" || summary.Email != "ana@x.com" || summary.Role != "user" {
		t.Errorf("unexpected summary: %+v", summary)
	}

	item := user.ListItem()
	if item.ID != 7 || item.Role != "user" || !item.CreatedAt.Equal(created) {
		t.Errorf("unexpected list item: %+v", item)
	}

	detail := user.Detail()
	if detail.Email != "ana@x.com" || !detail.CreatedAt.Equal(created) {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestUserJSONNeverContainsPassword(t *testing.T) {
	user := &User{ID: 1, Name: "Ana", Email: "ana@x.com", HashedPassword: "secret-hash", Role: "user"}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if strings.Contains(string(data), "secret-hash") || strings.Contains(string(data), "password") {
		t.Errorf("user JSON leaks password: %s", data)
	}
}

func TestUserListItemOmitsEmail(t *testing.T) {
	user := &User{ID: 1, Name: "Ana", Email: "ana@x.com", Role: "user"}

	data, err := json.Marshal(user.ListItem())
	if err != nil {
		t.Fatalf("marshal list item: %v", err)
	}
	if strings.Contains(string(data), "email") {
		t.Errorf("list item should not include email: %s", data)
	}
}
