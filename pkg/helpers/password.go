package helpers

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// ErrMalformedHash is returned by Verify when the stored value is not a bcrypt hash.
var ErrMalformedHash = errors.New("malformed password hash")

// BcryptHasher hashes passwords with bcrypt at a fixed cost. bcrypt embeds
// a fresh random salt in every hash. Hash calls are gated so at most
// `workers` run at once, keeping CPU-bound work from starving the server.
type BcryptHasher struct {
	cost int
	gate *semaphore.Weighted
}

// NewBcryptHasher builds a hasher; workers <= 0 means one per CPU.
func NewBcryptHasher(cost, workers int) *BcryptHasher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BcryptHasher{cost: cost, gate: semaphore.NewWeighted(int64(workers))}
}

// Hash hashes the plain text password using bcrypt
func (h *BcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := h.gate.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.gate.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a bcrypt hash with a plain password. A mismatch is
// (false, nil); only a malformed hash is an error.
func (h *BcryptHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.Join(ErrMalformedHash, err)
	}
}
