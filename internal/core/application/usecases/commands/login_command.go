package commands

import (
	"errors"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrLoginCommandIsNotConstructed = errors.New("LoginCommand must be created via NewLoginCommand constructor")

// LoginCommand carries the credentials of a sign-in attempt.
type LoginCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string

	guard guard.ConstructorGuard
}

func NewLoginCommand(email, password string) (LoginCommand, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailErr, passwordErr error
	if email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(emailErr, passwordErr); err != nil {
		return LoginCommand{}, err
	}

	return LoginCommand{email: email, password: password, guard: guard.NewConstructorGuard()}, nil
}

func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string    { return c.email }
func (c LoginCommand) Password() string { return c.password }
