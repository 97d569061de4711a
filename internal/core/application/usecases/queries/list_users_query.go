package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
	ErrGetProfileQueryIsNotConstructed = errors.New(
		"GetProfileQuery must be created via NewGetProfileQuery constructor",
	)
)

// UserView is an account without its password hash.
type UserView struct {
	ID            kernel.UUID `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          string      `json:"role"`
	Approved      bool        `json:"approved"`
	Address       string      `json:"address"`
	ContactNumber string      `json:"contact_number"`
	CreatedAt     time.Time   `json:"created_at"`
}

const userViewSelect = `
	SELECT
		id,
		email,
		name,
		role,
		approved,
		address,
		contact_number,
		created_at
	FROM users
`

// ListUsersQuery lists accounts for admins, newest first, optionally narrowed to a role.
type ListUsersQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer
	role   user.Role

	guard guard.ConstructorGuard
}

// NewListUsersQuery builds the listing. An empty role lists every account.
func NewListUsersQuery(viewer Viewer, role string) (ListUsersQuery, error) {
	if err := viewer.Validate(); err != nil {
		return ListUsersQuery{}, err
	}
	var filter user.Role
	if role != "" {
		parsed, err := user.ParseRole(role)
		if err != nil {
			return ListUsersQuery{}, err
		}
		filter = parsed
	}
	return ListUsersQuery{viewer: viewer, role: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

func (q ListUsersQuery) Viewer() Viewer { return q.viewer }

// Role returns the filter; UnknownRole means no filter.
func (q ListUsersQuery) Role() user.Role { return q.role }

// GetProfileQuery reads the viewer's own account.
type GetProfileQuery struct { //nolint:recvcheck //using for validation
	viewer Viewer

	guard guard.ConstructorGuard
}

func NewGetProfileQuery(viewer Viewer) (GetProfileQuery, error) {
	if err := viewer.Validate(); err != nil {
		return GetProfileQuery{}, err
	}
	return GetProfileQuery{viewer: viewer, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

func (q GetProfileQuery) Viewer() Viewer { return q.viewer }

// UserQueryHandler serves the admin user list and the profile page.
type UserQueryHandler struct {
	db     *gorm.DB
	policy *services.Policy
}

func NewUserQueryHandler(db *gorm.DB, policy *services.Policy) UserQueryHandler {
	return UserQueryHandler{db: db, policy: policy}
}

func (h UserQueryHandler) HandleList(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(query.Viewer().Role, services.ActionManageUsers); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	var (
		rows *sql.Rows
		err  error
	)
	if query.Role() == user.UnknownRole {
		rows, err = db.Raw(userViewSelect + " ORDER BY created_at DESC, id").Rows()
	} else {
		rows, err = db.Raw(userViewSelect+" WHERE role = ? ORDER BY created_at DESC, id", int(query.Role())).Rows()
	}
	if err != nil {
		return nil, err
	}
	return collectUserViews(rows)
}

// HandleProfile returns ObjectNotFoundError when the account was removed after the
// token was issued.
func (h UserQueryHandler) HandleProfile(ctx context.Context, query GetProfileQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}
	if err := h.policy.Authorize(query.Viewer().Role, services.ActionManageOwnProfile); err != nil {
		return UserView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(userViewSelect+" WHERE id = ?", query.Viewer().ID.Bytes()).Rows()
	if err != nil {
		return UserView{}, err
	}
	views, err := collectUserViews(rows)
	if err != nil {
		return UserView{}, err
	}
	if len(views) == 0 {
		return UserView{}, errs.NewObjectNotFoundError("userID", query.Viewer().ID)
	}
	return views[0], nil
}

// CurrentRole reads the stored role of an account. Tokens carry the role they were
// issued with, so authentication calls this to apply role changes immediately.
func (h UserQueryHandler) CurrentRole(ctx context.Context, id kernel.UUID) (user.Role, error) {
	var roles []int
	err := h.db.WithContext(ctx).
		Raw("SELECT role FROM users WHERE id = ?", id.Bytes()).
		Scan(&roles).Error
	if err != nil {
		return user.UnknownRole, err
	}
	if len(roles) == 0 {
		return user.UnknownRole, errs.NewObjectNotFoundError("userID", id)
	}
	return user.Role(roles[0]), nil
}

func collectUserViews(rows *sql.Rows) ([]UserView, error) {
	defer rows.Close()

	views := make([]UserView, 0)
	for rows.Next() {
		var (
			view UserView
			id   uuid.UUID
			role int
		)
		err := rows.Scan(
			&id,
			&view.Email,
			&view.Name,
			&role,
			&view.Approved,
			&view.Address,
			&view.ContactNumber,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if view.ID, err = toID(id); err != nil {
			return nil, err
		}
		view.Role = user.Role(role).String()
		view.CreatedAt = view.CreatedAt.UTC()
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
