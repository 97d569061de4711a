package userrepo

import (
	"context"
	"errors"
	"strings"

	"logistics/internal/adapters/out/postgres/pgerrs"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add saves a new account. A taken email is reported as errs.ErrAlreadyExists.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrs.IsDuplicate(err) {
			return errs.NewAlreadyExistsError("email", u.Email())
		}
		return err
	}
	return nil
}

// Update overwrites every column of the account.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if pgerrs.IsDuplicate(result.Error) {
			return errs.NewAlreadyExistsError("email", u.Email())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("userID", u.ID())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userID", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// GetByEmail matches case-insensitively, the way emails are normalized on registration.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("email", normalized)
		}
		return nil, err
	}
	return toDomain(dto)
}

// ListByRole returns the accounts in registration order.
func (r *GormUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&dtos, "role = ?", int(role)).Error; err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
