package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tommieseals/asset-tracker/internal/dbx"
)

// Storage keys. Their names match what the web client keeps in browser
// storage, which keeps server-side debugging consistent.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get loads the stored pair. A missing or partial pair reads as absent.
func (r *SQLiteRepository) Get(ctx context.Context) (*Pair, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM credentials WHERE key IN (?, ?)`,
		keyAccessToken, keyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	var pair Pair
	found := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		switch key {
		case keyAccessToken:
			pair.AccessToken = value
			found++
		case keyRefreshToken:
			pair.RefreshToken = value
			found++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credential rows: %w", err)
	}

	if found != 2 || pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil, nil
	}
	return &pair, nil
}

// Set replaces the stored pair. Both keys are written in one transaction so
// a crash cannot leave a partial pair behind.
func (r *SQLiteRepository) Set(ctx context.Context, pair Pair) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{
			keyAccessToken:  pair.AccessToken,
			keyRefreshToken: pair.RefreshToken,
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set credential[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// Clear removes both tokens.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
