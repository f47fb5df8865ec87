package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// protected lists the commands that require a stored session. The check is
// presence-only: whether the tokens are still valid is settled by the
// request pipeline when the command actually talks to the server.
var protected = map[string]bool{
	"logout":    true,
	"whoami":    true,
	"dashboard": true,
	"list":      true,
	"search":    true,
	"show":      true,
	"checkout":  true,
	"checkin":   true,
}

func (a *App) getStatus(ctx context.Context) string {
	if a.userName != "" {
		return fmt.Sprintf("(%s)", a.userName)
	}
	if a.isLoggedIn(ctx) {
		return "(signed in)"
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Asset Tracker CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "atcli %s> ", a.getStatus(ctx))
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		if quit := a.runCommand(ctx, parts[0], parts[1:]); quit {
			return
		}
	}
}

// runCommand dispatches a single REPL command. Returns true when the REPL
// should exit.
func (a *App) runCommand(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true
	case "help":
		a.help(ctx)
		return false
	}

	loggedIn := a.isLoggedIn(ctx)

	if cmd == "login" {
		// An existing session short-circuits: no prompt, no server call.
		if loggedIn {
			fmt.Fprintln(a.out, "Already signed in. Use 'logout' first to switch accounts.")
			return false
		}
		if err := a.login(ctx); err != nil {
			a.printError(ctx, err)
		}
		return false
	}

	if protected[cmd] && !loggedIn {
		fmt.Fprintln(a.out, "Please 'login' first.")
		return false
	}

	var err error
	switch cmd {
	case "logout":
		err = a.logout(ctx)
	case "whoami":
		err = a.whoami(ctx)
	case "dashboard":
		err = a.dashboard(ctx)
	case "list":
		err = a.list(ctx, args)
	case "search":
		err = a.search(ctx, args)
	case "show":
		err = a.show(ctx, args)
	case "checkout":
		err = a.checkOut(ctx, args)
	case "checkin":
		err = a.checkIn(ctx, args)
	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
		return false
	}

	if err != nil {
		a.printError(ctx, err)
	}
	return false
}

func (a *App) help(ctx context.Context) {
	if a.isLoggedIn(ctx) {
		fmt.Fprintln(a.out, "Available commands: dashboard, list [category], search <text>, show <id|tag>, checkout <id> [notes], checkin <id> [notes], whoami, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: login, help, exit")
	}
}
