package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/client/repositories/snapshot"
	"github.com/tommieseals/asset-tracker/internal/client/services"
	"github.com/tommieseals/asset-tracker/internal/client/viewmodel"
	"github.com/tommieseals/asset-tracker/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp wires an App around fake services, capturing output in the
// returned buffer.
func newTestApp(auth services.AuthService, assets services.AssetService, bus *services.InvalidationBus) (*App, *bytes.Buffer) {
	if bus == nil {
		bus = services.NewInvalidationBus()
	}
	out := &bytes.Buffer{}
	return &App{
		auth:     auth,
		assets:   assets,
		model:    viewmodel.NewModel(0),
		log:      testLogger(),
		out:      out,
		assetsCh: bus.Subscribe(services.ResourceAssets),
		dashCh:   bus.Subscribe(services.ResourceDashboard),
	}, out
}

// ---- fake services ----

type fakeAuthSvc struct {
	LoggedInRet bool
	LoggedInErr error

	LoginErr   error
	LoginCalls int
	LastUser   string
	LastPass   []byte

	LogoutErr   error
	LogoutCalls int

	CurrentUserRet   *models.User
	CurrentUserErr   error
	CurrentUserCalls int
}

func (f *fakeAuthSvc) Login(_ context.Context, username string, password []byte) error {
	f.LoginCalls++
	f.LastUser = username
	f.LastPass = append([]byte(nil), password...)
	return f.LoginErr
}

func (f *fakeAuthSvc) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeAuthSvc) LoggedIn(context.Context) (bool, error) {
	return f.LoggedInRet, f.LoggedInErr
}

func (f *fakeAuthSvc) CurrentUser(context.Context) (*models.User, error) {
	f.CurrentUserCalls++
	return f.CurrentUserRet, f.CurrentUserErr
}

type fakeAssetSvc struct {
	bus *services.InvalidationBus

	DashboardRet   *models.DashboardSummary
	DashboardErr   error
	DashboardCalls int

	ListRet          []models.Asset
	ListErr          error
	ListCalls        int
	LastListCategory string

	SearchRet       []models.Asset
	SearchErr       error
	SearchCalls     int
	LastSearchQuery string

	GetRet *models.Asset
	GetErr error

	CheckOutRet   *models.Asset
	CheckOutErr   error
	CheckOutCalls int

	CheckInRet   *models.Asset
	CheckInErr   error
	CheckInCalls int

	LastKnownRet *snapshot.Snapshot
	LastKnownErr error
}

func (f *fakeAssetSvc) Dashboard(context.Context) (*models.DashboardSummary, error) {
	f.DashboardCalls++
	return f.DashboardRet, f.DashboardErr
}

func (f *fakeAssetSvc) List(_ context.Context, category string) ([]models.Asset, error) {
	f.ListCalls++
	f.LastListCategory = category
	return f.ListRet, f.ListErr
}

func (f *fakeAssetSvc) Search(_ context.Context, query string) ([]models.Asset, error) {
	f.SearchCalls++
	f.LastSearchQuery = query
	return f.SearchRet, f.SearchErr
}

func (f *fakeAssetSvc) Get(context.Context, int64) (*models.Asset, error) {
	return f.GetRet, f.GetErr
}

func (f *fakeAssetSvc) GetByTag(context.Context, string) (*models.Asset, error) {
	return f.GetRet, f.GetErr
}

func (f *fakeAssetSvc) CheckOut(context.Context, int64, string) (*models.Asset, error) {
	f.CheckOutCalls++
	if f.CheckOutErr == nil && f.bus != nil {
		f.bus.Publish(services.ResourceAssets, services.ResourceDashboard)
	}
	return f.CheckOutRet, f.CheckOutErr
}

func (f *fakeAssetSvc) CheckIn(context.Context, int64, string) (*models.Asset, error) {
	f.CheckInCalls++
	if f.CheckInErr == nil && f.bus != nil {
		f.bus.Publish(services.ResourceAssets, services.ResourceDashboard)
	}
	return f.CheckInRet, f.CheckInErr
}

func (f *fakeAssetSvc) LastKnown(context.Context) (*snapshot.Snapshot, error) {
	return f.LastKnownRet, f.LastKnownErr
}
