package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-registration/internal/domain/entity"
	"github.com/oksasatya/account-registration/internal/domain/repository"
	"github.com/oksasatya/account-registration/pkg/helpers"
)

func accountKey(email string) string { return "account:email:" + email }

// cachedAccount is what Redis holds. The password hash and verification
// token never leave the authoritative store.
type cachedAccount struct {
	ID         int64       `json:"id"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Role       entity.Role `json:"role"`
	IsVerified bool        `json:"is_verified"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func toCached(a *entity.Account) cachedAccount {
	return cachedAccount{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Role:       a.Role,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (c cachedAccount) account() *entity.Account {
	return &entity.Account{
		ID:         c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Role:       c.Role,
		IsVerified: c.IsVerified,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// AccountRepository is a read-through Redis cache in front of the
// authoritative store. Only existing accounts are cached, so a stale entry
// can never hide a registered email. Writes always go to the inner store.
// Accounts served from the cache carry no PasswordHash or
// VerificationToken; callers needing those must ask the inner store.
type AccountRepository struct {
	inner  repository.AccountRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

func NewAccountRepository(inner repository.AccountRepository, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *AccountRepository {
	return &AccountRepository{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	key := accountKey(email)
	var cached cachedAccount
	ok, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("account cache read failed")
	} else if ok {
		return cached.account(), nil
	}

	a, err := r.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.store(ctx, a)
	return a, nil
}

func (r *AccountRepository) Insert(ctx context.Context, a *entity.Account) error {
	if err := r.inner.Insert(ctx, a); err != nil {
		return err
	}
	r.store(ctx, a)
	return nil
}

func (r *AccountRepository) store(ctx context.Context, a *entity.Account) {
	key := accountKey(a.Email)
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, toCached(a), r.ttl); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("account cache write failed")
	}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
