package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/account-registration/internal/domain/entity"
	repo "github.com/oksasatya/account-registration/internal/domain/repository"
	"github.com/oksasatya/account-registration/pkg/validation"
)

// PasswordHasher turns a plaintext secret into its stored representation.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
}

// TokenIssuer produces opaque email verification tokens.
type TokenIssuer interface {
	Issue() (string, error)
}

// Listener is told about every account that was committed to the store.
// Listener errors are logged and never change the registration outcome.
type Listener interface {
	AccountRegistered(ctx context.Context, a entity.Account) error
}

// Outcome tells the caller which branch registration ended in.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeInvalid
	OutcomeConflict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// RegisteredAccount is the public projection of a new account. It has no
// field for the password hash.
type RegisteredAccount struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	IsVerified        bool      `json:"isVerified"`
	CreatedAt         time.Time `json:"createdAt"`
	VerificationToken string    `json:"verificationToken"`
}

// Result is the control-flow result of Register. Account is set for
// OutcomeCreated, Violations for OutcomeInvalid, neither for OutcomeConflict.
type Result struct {
	Outcome    Outcome
	Account    *RegisteredAccount
	Violations []validation.Violation
}

type RegistrationService struct {
	Repo      repo.AccountRepository
	Validator *validation.CredentialValidator
	Hasher    PasswordHasher
	Tokens    TokenIssuer
	Listeners []Listener
	Logger    *logrus.Logger
}

func NewRegistrationService(repo repo.AccountRepository, validator *validation.CredentialValidator, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger, listeners ...Listener) *RegistrationService {
	return &RegistrationService{
		Repo:      repo,
		Validator: validator,
		Hasher:    hasher,
		Tokens:    tokens,
		Listeners: listeners,
		Logger:    logger,
	}
}

// Register validates payload, checks that the email is free, hashes the
// password, issues a verification token and stores the account. Validation
// and conflict are reported through Result; the error return is reserved
// for infrastructure failures and is passed through unchanged.
func (s *RegistrationService) Register(ctx context.Context, payload map[string]any) (Result, error) {
	checked := s.Validator.Validate(payload)
	if !checked.OK() {
		s.Logger.WithField("violations", len(checked.Violations)).Debug("registration rejected by validation")
		return Result{Outcome: OutcomeInvalid, Violations: checked.Violations}, nil
	}
	creds := checked.Credentials

	// Advisory only: the store's unique index decides at insert time.
	if _, err := s.Repo.FindByEmail(ctx, creds.Email); err == nil {
		s.Logger.Debug("registration rejected: email already registered")
		return Result{Outcome: OutcomeConflict}, nil
	} else if !errors.Is(err, repo.ErrAccountNotFound) {
		return Result{}, err
	}

	hash, err := s.Hasher.Hash(ctx, creds.Password)
	if err != nil {
		return Result{}, err
	}
	token, err := s.Tokens.Issue()
	if err != nil {
		return Result{}, err
	}

	account := entity.NewAccount(creds.Email, hash, creds.FirstName, creds.LastName, token)
	if err := s.Repo.Insert(ctx, account); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			s.Logger.Debug("registration lost insert race: email already registered")
			return Result{Outcome: OutcomeConflict}, nil
		}
		return Result{}, err
	}

	s.Logger.WithField("account_id", account.ID).Info("account registered")
	s.notify(ctx, *account)

	return Result{Outcome: OutcomeCreated, Account: project(account)}, nil
}

func (s *RegistrationService) notify(ctx context.Context, a entity.Account) {
	for _, l := range s.Listeners {
		if err := l.AccountRegistered(ctx, a); err != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Warn("account registered listener failed")
		}
	}
}

func project(a *entity.Account) *RegisteredAccount {
	return &RegisteredAccount{
		ID:                a.ID,
		Email:             a.Email,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		IsVerified:        a.IsVerified,
		CreatedAt:         a.CreatedAt,
		VerificationToken: a.VerificationToken,
	}
}
