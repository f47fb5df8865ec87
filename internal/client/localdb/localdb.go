// Package localdb opens the client's sqlite database, applies migrations,
// and wires up the local repositories.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/tommieseals/asset-tracker/internal/client/credentials"
	"github.com/tommieseals/asset-tracker/internal/client/migrations"
	"github.com/tommieseals/asset-tracker/internal/client/repositories/snapshot"
)

// Repositories bundles the repositories backed by the local database.
type Repositories struct {
	Credentials credentials.Repository
	Snapshots   snapshot.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the local database at dsn, migrates it,
// and returns the handle together with the repositories. The caller owns the
// returned *sql.DB and must close it.
func Open(ctx context.Context, dsn string) (*sql.DB, *Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open local database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate local database: %w", err)
	}

	repos := &Repositories{
		Credentials: credentials.NewSQLiteRepository(db),
		Snapshots:   snapshot.NewSQLiteRepository(db),
	}
	return db, repos, nil
}
