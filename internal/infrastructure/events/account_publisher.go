package events

import (
	"context"
	"time"

	"github.com/oksasatya/account-registration/internal/domain/entity"
)

// AccountRegisteredType is the AMQP message type of AccountRegistered.
const AccountRegisteredType = "account.registered"

// AccountRegistered is the event a verification mailer consumes. It carries
// the verification token but never the password hash.
type AccountRegistered struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	VerificationToken string    `json:"verificationToken"`
	RegisteredAt      time.Time `json:"registeredAt"`
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

type AccountPublisher struct {
	pub Publisher
}

func NewAccountPublisher(pub Publisher) *AccountPublisher {
	return &AccountPublisher{pub: pub}
}

func (p *AccountPublisher) AccountRegistered(ctx context.Context, a entity.Account) error {
	return p.pub.PublishJSON(ctx, AccountRegisteredType, AccountRegistered{
		ID:                a.ID,
		Email:             a.Email,
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		VerificationToken: a.VerificationToken,
		RegisteredAt:      a.CreatedAt,
	})
}
