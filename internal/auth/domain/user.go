package domain

import "time"

// User is a stored credential. Usernames are unique and case-sensitive.
type User struct {
	ID           string
	Username     string
	PasswordHash string // argon2id PHC or bcrypt encoded
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the authorization view of u.
func (u User) Identity() (Identity, error) {
	return NewIdentity(u.Username, u.Role)
}
