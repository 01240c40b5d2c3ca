// Package model defines the persisted entities of the service. Structs here
// map one-to-one onto database tables and are shared by the repository and
// handler layers.
package model

import "time"

// User represents an application user record as stored in the `users` table.
// PasswordHash carries the bcrypt digest of the user's password; the plain
// password itself is never persisted and the json:"-" tag keeps the hash out
// of every response body.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
