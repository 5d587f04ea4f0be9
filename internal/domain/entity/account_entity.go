package entity

import (
	"time"
)

// Role represents an authorization role stored on the account row.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is the aggregate root for the registration domain.
// PasswordHash holds the bcrypt representation, never the plaintext.
type Account struct {
	ID                int64
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Role              Role
	IsVerified        bool
	VerificationToken string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewAccount builds an unsaved account with the registration defaults.
// ID and timestamps are left for the store to assign.
func NewAccount(email, passwordHash, firstName, lastName, verificationToken string) *Account {
	return &Account{
		Email:             email,
		PasswordHash:      passwordHash,
		FirstName:         firstName,
		LastName:          lastName,
		Role:              RoleUser,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}
}
