package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/account-registration/internal/domain/entity"
)

type publisherSpy struct {
	msgType string
	body    any
	err     error
}

func (p *publisherSpy) PublishJSON(_ context.Context, msgType string, body any) error {
	p.msgType, p.body = msgType, body
	return p.err
}

func TestAccountPublisher_AccountRegistered(t *testing.T) {
	spy := &publisherSpy{}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := entity.Account{
		ID:                9,
		Email:             "test@example.com",
		PasswordHash:      "$2a$12$secret",
		FirstName:         "John",
		LastName:          "Doe",
		VerificationToken: "abc",
		CreatedAt:         created,
	}

	require.NoError(t, NewAccountPublisher(spy).AccountRegistered(context.Background(), a))

	assert.Equal(t, AccountRegisteredType, spy.msgType)
	assert.Equal(t, AccountRegistered{
		ID:                9,
		Email:             "test@example.com",
		FirstName:         "John",
		LastName:          "Doe",
		VerificationToken: "abc",
		RegisteredAt:      created,
	}, spy.body)

	b, err := json.Marshal(spy.body)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}

func TestAccountPublisher_PropagatesError(t *testing.T) {
	down := errors.New("channel closed")
	err := NewAccountPublisher(&publisherSpy{err: down}).AccountRegistered(context.Background(), entity.Account{})

	assert.ErrorIs(t, err, down)
}
