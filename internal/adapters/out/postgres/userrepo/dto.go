// Package userrepo persists user accounts.
package userrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO is the users table. Role is stored as its enum value; the email is unique
// after normalization by the domain.
type UserDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"size:254;not null;uniqueIndex:idx_users_email"`
	PasswordHash  string    `gorm:"not null"`
	Name          string    `gorm:"size:200;not null"`
	Role          int       `gorm:"not null;index"`
	Approved      bool      `gorm:"not null;default:false"`
	Address       string
	ContactNumber string    `gorm:"size:32;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:            u.ID().Bytes(),
		Email:         u.Email(),
		PasswordHash:  u.PasswordHash(),
		Name:          u.Name(),
		Role:          int(u.Role()),
		Approved:      u.IsApproved(),
		Address:       u.Address(),
		ContactNumber: u.ContactNumber(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(
		id,
		dto.Email, dto.PasswordHash, dto.Name,
		user.Role(dto.Role),
		dto.Approved,
		dto.Address, dto.ContactNumber,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
