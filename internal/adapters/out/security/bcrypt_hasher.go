// Package security hashes passwords and issues and verifies JWT access and refresh
// tokens.
package security

import (
	"errors"

	"logistics/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password Hash accepts.
const MinPasswordLength = 8

// BcryptHasher implements ports.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher uses bcrypt.DefaultCost when cost is out of bcrypt's range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", errs.NewValueIsOutOfRangeError("password length", len(password), MinPasswordLength, 72)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errs.NewValueIsOutOfRangeErrorWithCause("password length", len(password), MinPasswordLength, 72, err)
	}
	return string(hash), err
}

// Compare returns nil when password matches hash.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
