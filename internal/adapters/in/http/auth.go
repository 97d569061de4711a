package http

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"logistics/internal/adapters/out/security"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// AccessTokenParser verifies bearer tokens.
type AccessTokenParser interface {
	ParseAccess(token string) (security.Principal, error)
}

// RoleReader returns the role an account holds now.
type RoleReader interface {
	CurrentRole(ctx context.Context, id kernel.UUID) (user.Role, error)
}

// Authenticate requires a valid "Authorization: Bearer <access token>" header and stores
// the principal on the request context. When roles is set, the role claim is replaced
// by the stored role so a role change applies before the token expires; a token for a
// deleted account is rejected.
func Authenticate(tokens AccessTokenParser, roles RoleReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return fmt.Errorf("%w: bearer token is missing", security.ErrInvalidToken)
			}

			principal, err := tokens.ParseAccess(strings.TrimSpace(token))
			if err != nil {
				return err
			}
			if roles != nil {
				role, err := roles.CurrentRole(c.Request().Context(), principal.UserID)
				if errors.Is(err, errs.ErrObjectNotFound) {
					return fmt.Errorf("%w: account no longer exists", security.ErrInvalidToken)
				}
				if err != nil {
					return err
				}
				principal.Role = role
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole rejects principals whose role is not in roles. Route groups use it as a
// coarse filter; the use cases still check the policy themselves.
func RequireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFrom(c)
			if err != nil {
				return err
			}
			for _, r := range roles {
				if p.Role == r {
					return next(c)
				}
			}
			return errs.NewAccessDeniedError(p.Role.String(), c.Request().Method+" "+c.Path())
		}
	}
}

func principalFrom(c echo.Context) (security.Principal, error) {
	p, ok := c.Get(principalKey).(security.Principal)
	if !ok {
		return security.Principal{}, fmt.Errorf("%w: request is not authenticated", security.ErrInvalidToken)
	}
	return p, nil
}

func callerFrom(c echo.Context) (commands.Caller, error) {
	p, err := principalFrom(c)
	if err != nil {
		return commands.Caller{}, err
	}
	return commands.Caller{ID: p.UserID, Role: p.Role}, nil
}

func viewerFrom(c echo.Context) (queries.Viewer, error) {
	p, err := principalFrom(c)
	if err != nil {
		return queries.Viewer{}, err
	}
	return queries.Viewer{ID: p.UserID, Role: p.Role}, nil
}
