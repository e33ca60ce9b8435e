// Package models defines the server-side records persisted in PostgreSQL.
package models

import "time"

// User is an account identified by a unique email. PasswordHash is never
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
