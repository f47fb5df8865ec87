package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tommieseals/asset-tracker/internal/client/models"
)

const snapshotName = "asset-collection"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, assets []models.Asset, fetchedAt time.Time) error {
	payload, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, snapshotName, payload, fetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context) (*Snapshot, error) {
	var payload []byte
	var fetchedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM snapshots WHERE name = ?`, snapshotName).
		Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var assets []models.Asset
	if err := json.Unmarshal(payload, &assets); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot timestamp: %w", err)
	}

	return &Snapshot{Assets: assets, FetchedAt: ts}, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, snapshotName)
	if err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
