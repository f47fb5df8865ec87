package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tommieseals/asset-tracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// login prompts for credentials and authenticates. On success the token
// pair is persisted by the API client and the profile is fetched to greet
// the user by name.
func (a *App) login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Invalid username or password.")
			return nil
		}
		return err
	}

	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		// Signed in, just could not fetch the profile. Not fatal.
		a.log.Warn(ctx, "failed to fetch profile after login", "error", err)
		a.userName = userName
	} else {
		a.userName = user.Username
		fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
	}
	return nil
}

// logout drops the stored session and cached data.
func (a *App) logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// whoami prints the signed-in account's profile.
func (a *App) whoami(ctx context.Context) error {
	user, err := a.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (%s)\n", user.DisplayName(), user.Username)
	fmt.Fprintf(a.out, "Role: %s\n", user.Role)
	if user.Department != nil && *user.Department != "" {
		fmt.Fprintf(a.out, "Department: %s\n", *user.Department)
	}
	return nil
}

// printError translates pipeline errors into user-facing messages. A
// session expiry additionally drops the local identity so the prompt
// reflects the signed-out state.
func (a *App) printError(ctx context.Context, err error) {
	switch {
	case errors.Is(err, common.ErrSessionExpired):
		a.userName = ""
		fmt.Fprintln(a.out, "Your session has expired. Please 'login' again.")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Not authorized:", err)
	case errors.Is(err, common.ErrForbidden):
		fmt.Fprintln(a.out, "Forbidden:", err)
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Not found:", err)
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, "Rejected:", err)
	case errors.Is(err, common.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable. Try again later.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}
