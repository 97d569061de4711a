package commands

import (
	"context"
	"errors"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginResult is the signed-in account and its tokens.
type LoginResult struct {
	User   *user.User
	Tokens ports.TokenPair
}

// LoginCommandHandler checks credentials and issues tokens. It only reads, so it uses the
// repositories without opening a transaction.
type LoginCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	tokens     ports.TokenIssuer
}

func NewLoginCommandHandler(uowFactory UserUoWFactory, hasher ports.PasswordHasher, tokens ports.TokenIssuer) LoginCommandHandler {
	return LoginCommandHandler{uowFactory: uowFactory, hasher: hasher, tokens: tokens}
}

func (h LoginCommandHandler) Handle(ctx context.Context, cmd LoginCommand) (LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return LoginResult{}, err
	}

	u, err := h.uowFactory.Create().UserRepository().GetByEmail(ctx, cmd.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	tokens, err := h.tokens.Issue(u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: u, Tokens: tokens}, nil
}
