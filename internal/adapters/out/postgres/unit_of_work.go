// Package postgres provides the GORM-based Unit of Work over the repositories of
// the application.
//
// A unit of work wraps one transaction. Repositories obtained after Begin run inside
// it; repositories obtained without Begin use the plain connection, which is how
// read-only lookups (login, notification audiences) avoid opening a transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to a single request; create one per operation.
package postgres

import (
	"context"

	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/notificationrepo"
	"logistics/internal/adapters/out/postgres/reviewrepo"
	"logistics/internal/adapters/out/postgres/ticketrepo"
	"logistics/internal/adapters/out/postgres/userrepo"
	"logistics/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists every table of the schema, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&deliveryrepo.DeliveryDTO{},
		&ticketrepo.TicketDTO{},
		&ticketrepo.NoteDTO{},
		&notificationrepo.NotificationDTO{},
		&reviewrepo.ReviewDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction when none
// is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a successful Commit there is nothing to
// roll back and gorm.ErrInvalidTransaction is returned, which the deferred rollback of
// the command handlers ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn())
}

func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn())
}
