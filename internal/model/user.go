package model

import "time"

// User represents a customer account as stored in the `users` table
// (or users.json in the file store).  The owner is never a User; it
// lives only in configuration.
//
// Fields:
//
//	Email        – unique login, compared case-sensitively.
//	Name         – display name carried in the session.
//	PasswordHash – bcrypt hash of the password.
//	CreatedAt    – timestamp of creation.
type User struct {
	Email        string    `json:"email"`        // users.email
	Name         string    `json:"name"`         // users.name
	PasswordHash string    `json:"passwordHash"` // users.password_hash
	CreatedAt    time.Time `json:"createdAt"`    // users.created_at
}
