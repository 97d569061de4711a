package commands

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand or NewRegisterAgentCommand constructor",
	)
	ErrPasswordIsTooShort = errs.NewValueIsInvalidErrorWithCause(
		"password", fmt.Errorf("must be at least %d characters", MinPasswordLength),
	)
)

// RegisterUserCommand creates an account. Public sign-up always creates a customer;
// support agents register through NewRegisterAgentCommand and wait for approval.
//
// Example:
//
//	cmd, err := NewRegisterUserCommand(kernel.NewUUID(), "ann@example.com", "s3cret-pass", "Ann", "", "")
//	if err != nil {
//	    return err
//	}
//	u, err := handler.Handle(ctx, cmd)
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID        kernel.UUID
	email         string
	password      string
	name          string
	address       string
	contactNumber string
	role          user.Role

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand builds a customer registration.
func NewRegisterUserCommand(
	userID kernel.UUID,
	email, password, name, address, contactNumber string,
) (RegisterUserCommand, error) {
	return newRegisterCommand(userID, email, password, name, address, contactNumber, user.Customer)
}

// NewRegisterAgentCommand builds a support agent registration. The account starts
// unapproved.
func NewRegisterAgentCommand(userID kernel.UUID, email, password, name, contactNumber string) (RegisterUserCommand, error) {
	return newRegisterCommand(userID, email, password, name, "", contactNumber, user.SupportAgent)
}

func newRegisterCommand(
	userID kernel.UUID,
	email, password, name, address, contactNumber string,
	role user.Role,
) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		email:         strings.TrimSpace(email),
		name:          strings.TrimSpace(name),
		address:       strings.TrimSpace(address),
		contactNumber: strings.TrimSpace(contactNumber),
		role:          role,
		guard:         guard.NewConstructorGuard(),
	}

	var emailErr, nameErr error
	if cmd.email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if cmd.name == "" {
		nameErr = user.ErrNameIsRequired
	}

	if err := errors.Join(
		userID.Validate(),
		emailErr,
		cmd.setPassword(password),
		nameErr,
	); err != nil {
		return RegisterUserCommand{}, err
	}
	cmd.userID = userID
	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID   { return c.userID }
func (c RegisterUserCommand) Email() string         { return c.email }
func (c RegisterUserCommand) Password() string      { return c.password }
func (c RegisterUserCommand) Name() string          { return c.name }
func (c RegisterUserCommand) Address() string       { return c.address }
func (c RegisterUserCommand) ContactNumber() string { return c.contactNumber }
func (c RegisterUserCommand) Role() user.Role       { return c.role }

func (c *RegisterUserCommand) setPassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordIsTooShort
	}
	c.password = password
	return nil
}
