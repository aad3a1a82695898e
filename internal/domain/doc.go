// Package domain contains the core business entities of the task API: users,
// the tasks they own, the projections returned to clients, and the error
// types shared by every layer. It has no knowledge of HTTP or SQL.
package domain
