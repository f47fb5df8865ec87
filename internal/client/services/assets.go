package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tommieseals/asset-tracker/internal/client/api"
	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/client/repositories/snapshot"
	"github.com/tommieseals/asset-tracker/internal/logging"
)

// AssetService defines the inventory operations for the CLI.
//
// Reads (Dashboard, List, Search, Get, GetByTag) proxy the server. A
// successful List additionally refreshes the local snapshot, which LastKnown
// serves when the server is unreachable.
//
// Lifecycle actions (CheckOut, CheckIn) treat the server as the authority:
// on success they publish invalidations so every cached view of the
// collection is refetched rather than patched in place.
type AssetService interface {
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
	List(ctx context.Context, category string) ([]models.Asset, error)
	Search(ctx context.Context, query string) ([]models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	GetByTag(ctx context.Context, tag string) (*models.Asset, error)
	CheckOut(ctx context.Context, id int64, notes string) (*models.Asset, error)
	CheckIn(ctx context.Context, id int64, notes string) (*models.Asset, error)
	LastKnown(ctx context.Context) (*snapshot.Snapshot, error)
}

type assetService struct {
	client    api.Client
	snapshots snapshot.Repository
	bus       *InvalidationBus
	log       logging.Logger
	now       func() time.Time
}

func NewAssetService(client api.Client, snapshots snapshot.Repository, bus *InvalidationBus, log logging.Logger) AssetService {
	return &assetService{
		client:    client,
		snapshots: snapshots,
		bus:       bus,
		log:       log.With("component", "assets"),
		now:       time.Now,
	}
}

func (s *assetService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	return s.client.Dashboard(ctx)
}

// List fetches the asset collection. The unfiltered listing refreshes the
// local snapshot best effort; a snapshot write failure never fails the
// listing itself.
func (s *assetService) List(ctx context.Context, category string) ([]models.Asset, error) {
	assets, err := s.client.ListAssets(ctx, category)
	if err != nil {
		return nil, err
	}

	if category == "" {
		if err := s.snapshots.Save(ctx, assets, s.now()); err != nil {
			s.log.Warn(ctx, "failed to save snapshot", "error", err)
		}
	}
	return assets, nil
}

func (s *assetService) Search(ctx context.Context, query string) ([]models.Asset, error) {
	return s.client.SearchAssets(ctx, query)
}

func (s *assetService) Get(ctx context.Context, id int64) (*models.Asset, error) {
	return s.client.GetAsset(ctx, id)
}

func (s *assetService) GetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	return s.client.GetAssetByTag(ctx, tag)
}

// CheckOut checks the asset out to the signed-in user. The acting user id
// comes from the server's own profile endpoint, not from local state.
func (s *assetService) CheckOut(ctx context.Context, id int64, notes string) (*models.Asset, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user: %w", err)
	}

	asset, err := s.client.CheckOutAsset(ctx, id, user.ID, notes)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ResourceAssets, ResourceDashboard)
	s.log.Info(ctx, "asset checked out", "id", id, "user_id", user.ID)
	return asset, nil
}

func (s *assetService) CheckIn(ctx context.Context, id int64, notes string) (*models.Asset, error) {
	asset, err := s.client.CheckInAsset(ctx, id, notes)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ResourceAssets, ResourceDashboard)
	s.log.Info(ctx, "asset checked in", "id", id)
	return asset, nil
}

// LastKnown returns the cached snapshot, or nil when none exists.
func (s *assetService) LastKnown(ctx context.Context) (*snapshot.Snapshot, error) {
	return s.snapshots.Load(ctx)
}
