package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tommieseals/asset-tracker/internal/client/credentials"
	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/client/repositories/snapshot"
	"github.com/tommieseals/asset-tracker/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fakes ----

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	LoginErr error

	CurrentUserRet *models.User
	CurrentUserErr error

	DashboardRet *models.DashboardSummary
	DashboardErr error

	ListRet []models.Asset
	ListErr error

	GetRet *models.Asset
	GetErr error

	SearchRet []models.Asset
	SearchErr error

	CheckOutRet *models.Asset
	CheckOutErr error

	CheckInRet *models.Asset
	CheckInErr error

	// captured arguments
	LastLoginUser     string
	LastLoginPassword string
	LastListCategory  string
	LastSearchQuery   string
	LastCheckOutID    int64
	LastCheckOutUser  int64
	LastCheckOutNotes string
	LastCheckInID     int64
	LastCheckInNotes  string

	CurrentUserCalls int
}

func (f *fakeClient) Login(ctx context.Context, username, password string) error {
	f.LastLoginUser = username
	f.LastLoginPassword = password
	return f.LoginErr
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.CurrentUserCalls++
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	return f.DashboardRet, f.DashboardErr
}

func (f *fakeClient) ListAssets(ctx context.Context, category string) ([]models.Asset, error) {
	f.LastListCategory = category
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetAsset(ctx context.Context, id int64) (*models.Asset, error) {
	return f.GetRet, f.GetErr
}

func (f *fakeClient) GetAssetByTag(ctx context.Context, tag string) (*models.Asset, error) {
	return f.GetRet, f.GetErr
}

func (f *fakeClient) SearchAssets(ctx context.Context, query string) ([]models.Asset, error) {
	f.LastSearchQuery = query
	return f.SearchRet, f.SearchErr
}

func (f *fakeClient) CheckOutAsset(ctx context.Context, id, userID int64, notes string) (*models.Asset, error) {
	f.LastCheckOutID = id
	f.LastCheckOutUser = userID
	f.LastCheckOutNotes = notes
	return f.CheckOutRet, f.CheckOutErr
}

func (f *fakeClient) CheckInAsset(ctx context.Context, id int64, notes string) (*models.Asset, error) {
	f.LastCheckInID = id
	f.LastCheckInNotes = notes
	return f.CheckInRet, f.CheckInErr
}

// memCreds implements credentials.Repository in memory.
type memCreds struct {
	mu   sync.Mutex
	pair *credentials.Pair

	GetErr error
}

func (m *memCreds) Get(ctx context.Context) (*credentials.Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.pair == nil {
		return nil, nil
	}
	p := *m.pair
	return &p, nil
}

func (m *memCreds) Set(ctx context.Context, pair credentials.Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = &pair
	return nil
}

func (m *memCreds) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = nil
	return nil
}

// memSnapshots implements snapshot.Repository in memory.
type memSnapshots struct {
	mu   sync.Mutex
	snap *snapshot.Snapshot

	SaveErr  error
	ClearErr error

	SaveCalls int
}

func (m *memSnapshots) Save(ctx context.Context, assets []models.Asset, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.snap = &snapshot.Snapshot{Assets: assets, FetchedAt: fetchedAt}
	return nil
}

func (m *memSnapshots) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, nil
	}
	s := *m.snap
	return &s, nil
}

func (m *memSnapshots) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.snap = nil
	return nil
}
