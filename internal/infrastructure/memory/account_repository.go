package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/account-registration/internal/domain/entity"
	"github.com/oksasatya/account-registration/internal/domain/repository"
)

// AccountRepository keeps accounts in process memory. The unique check and
// the write happen under one lock, mirroring the database's unique index.
type AccountRepository struct {
	mu      sync.Mutex
	byEmail map[string]*entity.Account
	nextID  int64
	now     func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byEmail: map[string]*entity.Account{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) Insert(ctx context.Context, a *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[a.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.nextID++
	now := r.now()
	a.ID = r.nextID
	a.CreatedAt = now
	a.UpdatedAt = now

	cp := *a
	r.byEmail[a.Email] = &cp
	return nil
}

// Len reports how many accounts are stored. It is not part of
// repository.AccountRepository; tests use it to assert row counts.
func (r *AccountRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byEmail)
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
