package security_test

import (
	"testing"
	"time"

	"logistics/internal/adapters/out/security"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := security.NewBcryptHasher(bcrypt.MinCost)

	t.Run("round_trip", func(t *testing.T) {
		hash, err := h.Hash("correct horse")

		require.NoError(t, err)
		assert.NotEqual(t, "correct horse", hash)
		assert.NoError(t, h.Compare(hash, "correct horse"))
		assert.Error(t, h.Compare(hash, "wrong horse"))
	})

	t.Run("short_password", func(t *testing.T) {
		_, err := h.Hash("short")

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func newService(t *testing.T, now time.Time) *security.JWTService {
	t.Helper()
	s, err := security.NewJWTService(security.TokenConfig{
		Secret:     "test-secret",
		Issuer:     "logistics",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return s.WithClock(func() time.Time { return now })
}

func newAgent(t *testing.T) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), "agent@example.com", "hash", "Agent", user.SupportAgent, time.Now())
	require.NoError(t, err)
	return u
}

func TestJWTService_IssueThenParse(t *testing.T) {
	// Given
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newService(t, now)
	u := newAgent(t)

	// When
	pair, err := s.Issue(u)
	require.NoError(t, err)
	principal, err := s.ParseAccess(pair.AccessToken)

	// Then
	require.NoError(t, err)
	assert.Equal(t, u.ID(), principal.UserID)
	assert.Equal(t, "agent@example.com", principal.Email)
	assert.Equal(t, user.SupportAgent, principal.Role)
	assert.Equal(t, now.Add(15*time.Minute), pair.AccessExpiresAt)
	assert.Equal(t, now.Add(24*time.Hour), pair.RefreshExpiresAt)

	refreshed, err := s.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID(), refreshed.UserID)
}

func TestJWTService_Rejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	pair, err := newService(t, now).Issue(newAgent(t))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		parse func() error
	}{
		{"expired_access", func() error {
			_, err := newService(t, now.Add(time.Hour)).ParseAccess(pair.AccessToken)
			return err
		}},
		{"refresh_used_as_access", func() error {
			_, err := newService(t, now).ParseAccess(pair.RefreshToken)
			return err
		}},
		{"access_used_as_refresh", func() error {
			_, err := newService(t, now).ParseRefresh(pair.AccessToken)
			return err
		}},
		{"other_secret", func() error {
			other, err := security.NewJWTService(security.TokenConfig{
				Secret: "another", Issuer: "logistics", AccessTTL: time.Minute, RefreshTTL: time.Hour,
			})
			require.NoError(t, err)
			_, err = other.WithClock(func() time.Time { return now }).ParseAccess(pair.AccessToken)
			return err
		}},
		{"garbage", func() error {
			_, err := newService(t, now).ParseAccess("not.a.token")
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.parse(), security.ErrInvalidToken)
		})
	}
}

func TestNewJWTService_Validation(t *testing.T) {
	_, err := security.NewJWTService(security.TokenConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour})
	assert.Error(t, err)

	_, err = security.NewJWTService(security.TokenConfig{Secret: "s"})
	assert.Error(t, err)
}
