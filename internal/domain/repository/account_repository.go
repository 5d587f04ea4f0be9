package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/account-registration/internal/domain/entity"
)

var (
	// ErrAccountNotFound is returned by FindByEmail when no account matches.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailTaken is returned by Insert when the email is already stored.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository defines the durable account table used by registration.
// Emails passed in are already normalized. Any error other than the
// sentinels above means the store is unavailable.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	// Insert re-checks uniqueness at write time and fills ID, CreatedAt and
	// UpdatedAt on success.
	Insert(ctx context.Context, a *entity.Account) error
}
