package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/tommieseals/asset-tracker/internal/client/api"
	"github.com/tommieseals/asset-tracker/internal/client/config"
	"github.com/tommieseals/asset-tracker/internal/client/localdb"
	"github.com/tommieseals/asset-tracker/internal/client/services"
	"github.com/tommieseals/asset-tracker/internal/client/viewmodel"
	"github.com/tommieseals/asset-tracker/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	auth   services.AuthService
	assets services.AssetService
	model  *viewmodel.Model
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	db *sql.DB

	// invalidation signals published by lifecycle actions
	assetsCh <-chan struct{}
	dashCh   <-chan struct{}

	userName string
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, repos, err := localdb.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, repos.Credentials, log)

	bus := services.NewInvalidationBus()
	as := services.NewAuthService(apiClient, repos.Credentials, repos.Snapshots, log)
	is := services.NewAssetService(apiClient, repos.Snapshots, bus, log)

	return &App{
		config:   c,
		auth:     as,
		assets:   is,
		model:    viewmodel.NewModel(c.SearchMinLength),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		db:       db,
		assetsCh: bus.Subscribe(services.ResourceAssets),
		dashCh:   bus.Subscribe(services.ResourceDashboard),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.auth.LoggedIn(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to check session state", "error", err)
		return false
	}
	return ok
}
