package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
)

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email. Callers treat failures as best effort.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// EventPublisher forwards domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event kernel.DomainEvent) error
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// TokenIssuer mints access and refresh tokens that carry user id, email and role.
type TokenIssuer interface {
	Issue(u *user.User) (TokenPair, error)
}
