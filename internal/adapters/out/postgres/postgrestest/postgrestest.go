// Package postgrestest starts a disposable PostgreSQL container with the application
// schema for integration tests.
package postgrestest

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables is every table created by the schema, for TRUNCATE between tests.
const Tables = "users, deliveries, support_tickets, ticket_internal_notes, notifications, reviews"

// Database is a running container and a connection to it.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and migrates it with migrate.
func Start(ctx context.Context, migrate func(context.Context, *gorm.DB) error) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}
	database := &Database{Container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}
	database.DB = db

	if err = migrate(ctx, db); err != nil {
		_ = database.Terminate(ctx)
		return nil, err
	}
	return database, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + Tables + " CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
