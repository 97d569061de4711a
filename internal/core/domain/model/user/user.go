package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrUserIsNotConstructed is returned when a User was not built by NewUser or RestoreUser.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
	// ErrNameIsRequired is returned for an empty display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrPasswordHashIsRequired is returned when no password hash is supplied.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("passwordHash")
)

// User is an account of any role. It is the aggregate that identifies customers,
// drivers, admins and support agents throughout the system.
//
// Business rules:
//   - Email is stored lower-cased and must be a plain address
//   - Support agents start unapproved; every other role is approved on creation
//   - Only support agents can be approved, and approval happens at most once
//
// Example:
//
//	u, err := user.NewUser(kernel.NewUUID(), "a@b.io", hash, "Asha", user.Customer, time.Now())
//	if err != nil {
//	    return err
//	}
type User struct {
	kernel.EventRecorder

	id            kernel.UUID
	email         string
	passwordHash  string
	name          string
	role          Role
	approved      bool
	address       string
	contactNumber string
	createdAt     time.Time
	updatedAt     time.Time

	guard guard.ConstructorGuard
}

// NewUser registers a new account. A support agent registration records an
// AgentRegisteredEvent so admins are told an approval is pending.
//
// Parameters:
//   - id: identifier of the new account
//   - email: login address, normalized to lower case
//   - passwordHash: an already hashed password; hashing is an adapter concern
//   - name: display name
//   - role: any valid Role
//   - now: creation time
func NewUser(id kernel.UUID, email, passwordHash, name string, role Role, now time.Time) (*User, error) {
	u := &User{
		guard:     guard.NewConstructorGuard(),
		approved:  role != SupportAgent,
		createdAt: now,
		updatedAt: now,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	if role == SupportAgent {
		u.Record(newAgentRegisteredEvent(u, now))
	}

	return u, nil
}

// RestoreUser rebuilds a User from persisted state without raising events.
func RestoreUser(
	id kernel.UUID,
	email, passwordHash, name string,
	role Role,
	approved bool,
	address, contactNumber string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	u := &User{
		guard:         guard.NewConstructorGuard(),
		approved:      approved,
		address:       address,
		contactNumber: contactNumber,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate reports whether the user was built through a constructor.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID          { return u.id }
func (u *User) Email() string            { return u.email }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) Name() string             { return u.name }
func (u *User) Role() Role               { return u.role }
func (u *User) IsApproved() bool         { return u.approved }
func (u *User) Address() string          { return u.address }
func (u *User) ContactNumber() string    { return u.contactNumber }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }
func (u *User) IsEqual(other *User) bool { return other != nil && u.id.IsEqual(other.id) }

// IsApprovedAgent reports whether the user may take or receive tickets.
func (u *User) IsApprovedAgent() bool {
	return u.role == SupportAgent && u.approved
}

// UpdateProfile replaces the editable profile fields. Nil arguments keep the
// current value.
func (u *User) UpdateProfile(name, address, contactNumber *string, now time.Time) error {
	if name != nil {
		if err := u.setName(*name); err != nil {
			return err
		}
	}
	if address != nil {
		u.address = strings.TrimSpace(*address)
	}
	if contactNumber != nil {
		u.contactNumber = strings.TrimSpace(*contactNumber)
	}
	u.updatedAt = now
	return nil
}

// ChangeRole moves the account to another role. Promoting to SupportAgent leaves the
// account unapproved; any other role is approved.
func (u *User) ChangeRole(role Role, now time.Time) error {
	if err := u.setRole(role); err != nil {
		return err
	}
	u.approved = role != SupportAgent
	u.updatedAt = now
	return nil
}

// Approve marks a support agent as approved.
//
// Returns:
//   - (true, nil) when the flag flipped; an AgentApprovedEvent is recorded
//   - (false, nil) when the agent was already approved
//   - StateConflictError when the account is not a support agent
func (u *User) Approve(now time.Time) (bool, error) {
	if u.role != SupportAgent {
		return false, errs.NewStateConflictError("user", "only support agents can be approved")
	}
	if u.approved {
		return false, nil
	}
	u.approved = true
	u.updatedAt = now
	u.Record(newAgentApprovedEvent(u, now))
	return true, nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not a plain address", email))
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
