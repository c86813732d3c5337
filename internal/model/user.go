package model

import "time"

// User represents an application account as stored in the `users`
// table. Passwords are persisted only as bcrypt hashes; the plaintext
// value never leaves the signup/login handlers.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	PasswordHash – bcrypt hashed password.
//	Name         – display name shown to other users (may be empty).
//	Email        – contact email address.
//	BirthDate    – optional date of birth.
//	Gender       – optional free-form gender string.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     // users.id
	Username     string     // users.username
	PasswordHash string     // users.password_hash
	Name         string     // users.name
	Email        string     // users.email
	BirthDate    *time.Time // users.birth_date (nullable)
	Gender       string     // users.gender
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
}

// DisplayName returns the user's display name, falling back to the
// username when no display name was set.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
