package api

import (
	"context"

	"github.com/tommieseals/asset-tracker/internal/client/models"
)

// Client is the remote surface of the Asset Tracker service as seen by the
// application services.
type Client interface {
	// Login exchanges credentials for a token pair and stores it.
	Login(ctx context.Context, username, password string) error

	// CurrentUser returns the profile of the signed-in account.
	CurrentUser(ctx context.Context) (*models.User, error)

	// Dashboard returns the aggregate status counts.
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)

	// ListAssets returns the asset collection, filtered server-side by
	// category when category is non-empty.
	ListAssets(ctx context.Context, category string) ([]models.Asset, error)

	// GetAsset returns a single asset by id.
	GetAsset(ctx context.Context, id int64) (*models.Asset, error)

	// GetAssetByTag returns a single asset by its human-readable tag.
	GetAssetByTag(ctx context.Context, tag string) (*models.Asset, error)

	// SearchAssets runs a natural-language query through the search oracle
	// and returns its ranked result list.
	SearchAssets(ctx context.Context, query string) ([]models.Asset, error)

	// CheckOutAsset checks an asset out to the given user. Valid only for
	// available assets; the server is the authority and may reject.
	CheckOutAsset(ctx context.Context, id, userID int64, notes string) (*models.Asset, error)

	// CheckInAsset returns a checked-out asset. Valid only for checked-out
	// assets; the server is the authority and may reject.
	CheckInAsset(ctx context.Context, id int64, notes string) (*models.Asset, error)
}
