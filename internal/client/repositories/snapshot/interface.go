// Package snapshot persists the most recent successfully fetched asset
// collection so the CLI can still show inventory when the server is
// unreachable. The snapshot is display-only: lifecycle actions never read
// from it, and it is never patched locally.
package snapshot

import (
	"context"
	"time"

	"github.com/tommieseals/asset-tracker/internal/client/models"
)

// Snapshot is a point-in-time copy of the asset collection.
type Snapshot struct {
	Assets    []models.Asset
	FetchedAt time.Time
}

type Repository interface {
	// Save replaces the stored snapshot.
	Save(ctx context.Context, assets []models.Asset, fetchedAt time.Time) error
	// Load returns the stored snapshot, or nil when none exists.
	Load(ctx context.Context) (*Snapshot, error)
	// Clear removes the snapshot (e.g. on logout).
	Clear(ctx context.Context) error
}
