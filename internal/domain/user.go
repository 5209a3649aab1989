package domain

import "time"

// User represents a registered account. Email is the external lookup key and
// must be unique across all users. PasswordHash holds the salted digest of the
// user's password; the plaintext is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
