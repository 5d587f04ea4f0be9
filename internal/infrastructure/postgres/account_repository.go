package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/account-registration/internal/domain/entity"
	"github.com/oksasatya/account-registration/internal/domain/repository"
)

const uniqueViolation = "23505"

// Querier is the subset of pgxpool.Pool used by the repository.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AccountRepository struct {
	db Querier
}

func NewAccountRepository(db Querier) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	a := &entity.Account{}
	var role string

	row := r.db.QueryRow(ctx, `
		SELECT id, email, password, first_name, last_name, role, is_verified,
		       COALESCE(verification_token, ''), created_at, updated_at
		FROM accounts
		WHERE email = $1
	`, email)

	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &role,
		&a.IsVerified, &a.VerificationToken, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by email: %w", err)
	}
	a.Role = entity.Role(role)

	return a, nil
}

// Insert writes the account in a single statement. ON CONFLICT makes the
// unique index the arbiter, so a concurrent writer that won the race yields
// no row instead of a half-written one.
func (r *AccountRepository) Insert(ctx context.Context, a *entity.Account) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (email, password, first_name, last_name, role, is_verified, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at
	`, a.Email, a.PasswordHash, a.FirstName, a.LastName, string(a.Role), a.IsVerified, a.VerificationToken)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrEmailTaken
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
