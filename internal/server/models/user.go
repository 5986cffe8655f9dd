// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a stored credential. PasswordHash is a bcrypt digest and is never
// serialised back to clients.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
}
