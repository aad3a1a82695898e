package domain

import (
	"time"
)

// Field limits shared by request validation and the database schema.
const (
	MaxNameLength     = 255
	MaxRoleLength     = 50
	MaxStatusLength   = 50
	MinPasswordLength = 8
)

// User represents a registered account. Role is a free-form label; the
// system does not interpret it beyond grouping tasks by owner role.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserSummary is the projection returned by register, login and the admin
// write endpoints.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserListItem is the projection used by the admin user listing. Email is
// deliberately absent.
type UserListItem struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserDetail is the projection returned when fetching a single user.
type UserDetail struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the public summary projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// ListItem returns the listing projection of the user.
func (u *User) ListItem() UserListItem {
	return UserListItem{
		ID:        u.ID,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Detail returns the single-user projection.
func (u *User) Detail() UserDetail {
	return UserDetail{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
