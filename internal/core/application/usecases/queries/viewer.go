package queries

import (
	"database/sql"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

// Viewer is the authenticated account a query reads for.
type Viewer struct {
	ID   kernel.UUID
	Role user.Role
}

// Validate rejects a viewer without identity or role.
func (v Viewer) Validate() error {
	if err := errors.Join(v.ID.Validate(), v.Role.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("viewer", err)
	}
	return nil
}

func toID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOptionalID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // absent reference
	}
	converted, err := toID(id.UUID)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func toOptionalTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
