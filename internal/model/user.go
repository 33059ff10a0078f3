package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the backend: the json tag on
// PasswordHash excludes it from every user-shaped response.
//
// Fields:
//  ID           – uuid primary key of the user.
//  Email        – unique email address, stored as provided (trimmed).
//  PasswordHash – bcrypt hashed password, never serialized.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    `json:"id"`        // users.id
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
	UpdatedAt    time.Time `json:"updatedAt"` // users.updated_at
}
