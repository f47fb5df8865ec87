// Package services contains application services for the Asset Tracker client.
// This file defines the authentication service: sign-in, sign-out, and the
// session check the CLI consults before running protected commands.
package services

import (
	"context"
	"fmt"

	"github.com/tommieseals/asset-tracker/internal/client/api"
	"github.com/tommieseals/asset-tracker/internal/client/credentials"
	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/client/repositories/snapshot"
	"github.com/tommieseals/asset-tracker/internal/common"
	"github.com/tommieseals/asset-tracker/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server; on success a token pair is
//     persisted by the API client.
//   - Logout: drop the stored token pair and cached data. Local only, the
//     server is not called.
//   - LoggedIn: report whether a stored token pair exists. This is the only
//     session signal the CLI consults up front; token validity is settled
//     by the request pipeline when a protected call actually runs.
//   - CurrentUser: fetch the signed-in account's profile.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) (bool, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// authService is the concrete AuthService backed by the remote API client
// and the local credential and snapshot stores.
type authService struct {
	client    api.Client
	creds     credentials.Repository
	snapshots snapshot.Repository
	log       logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and local repositories.
func NewAuthService(client api.Client, creds credentials.Repository, snapshots snapshot.Repository, log logging.Logger) AuthService {
	return &authService{client: client, creds: creds, snapshots: snapshots, log: log.With("component", "auth")}
}

// Login authenticates with the server. The password buffer is wiped before
// returning regardless of outcome.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, username, string(password)); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.log.Info(ctx, "signed in", "username", username)
	return nil
}

// Logout clears the stored token pair and the cached asset snapshot. The
// snapshot wipe is best effort; a failure there does not keep the user
// signed in.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.creds.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	if err := a.snapshots.Clear(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear cached snapshot", "error", err)
	}
	a.log.Info(ctx, "signed out")
	return nil
}

// LoggedIn reports whether a token pair is stored locally.
func (a *authService) LoggedIn(ctx context.Context) (bool, error) {
	pair, err := a.creds.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read credentials: %w", err)
	}
	return pair != nil, nil
}

// CurrentUser fetches the signed-in account's profile from the server.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.client.CurrentUser(ctx)
}
