// Package cli provides the interactive Asset Tracker command-line client.
//
// It wires configuration, the local sqlite store, the HTTP API client, and
// an interactive REPL. Typical flow: prompt for credentials, then browse
// inventory and run lifecycle actions against the server.
//
// Key features:
//   - Login / Logout (token pair persisted locally, refreshed transparently)
//   - Dashboard summary and category-filtered asset listing
//   - Natural-language search once the query is long enough
//   - Check-out / check-in with invalidate-and-refetch afterwards
//   - Last-known inventory snapshot when the server is unreachable
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
