package security

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "typ" claim.
const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

// ErrInvalidToken covers every reason a token is refused: bad signature, expiry,
// wrong type or malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// TokenConfig configures JWT issuance.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims are the custom claims of both token types.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Principal is the identity extracted from a verified access token.
type Principal struct {
	UserID kernel.UUID
	Email  string
	Role   user.Role
}

// JWTService signs and verifies HS256 tokens. It implements ports.TokenIssuer.
type JWTService struct {
	cfg TokenConfig
	now func() time.Time
}

// NewJWTService rejects an empty secret and non-positive lifetimes.
func NewJWTService(cfg TokenConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("jwt token lifetimes must be positive")
	}
	return &JWTService{cfg: cfg, now: time.Now}, nil
}

// WithClock replaces the time source; used by tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) Issue(u *user.User) (ports.TokenPair, error) {
	now := s.now()
	access, accessExp, err := s.sign(u, AccessToken, now, s.cfg.AccessTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, refreshExp, err := s.sign(u, RefreshToken, now, s.cfg.RefreshTTL)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *JWTService) sign(u *user.User, typ string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := Claims{
		UserID: u.ID().String(),
		Email:  u.Email(),
		Role:   u.Role().String(),
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID().String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        kernel.NewUUID().String(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, exp, nil
}

// ParseAccess verifies an access token and returns its principal.
func (s *JWTService) ParseAccess(token string) (Principal, error) {
	return s.parse(token, AccessToken)
}

// ParseRefresh verifies a refresh token and returns its principal.
func (s *JWTService) ParseRefresh(token string) (Principal, error) {
	return s.parse(token, RefreshToken)
}

func (s *JWTService) parse(token, typ string) (Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Type != typ {
		return Principal{}, fmt.Errorf("%w: expected %s token, got %q", ErrInvalidToken, typ, claims.Type)
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return Principal{UserID: id, Email: claims.Email, Role: role}, nil
}
