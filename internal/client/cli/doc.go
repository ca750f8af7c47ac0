// Package cli provides the interactive Rosebud command-line client.
//
// It wires configuration, the local SQLite cache, API services, and an
// interactive REPL. Feeds render twice per command when a cached snapshot
// exists: first the cached copy, then the server's, once it arrives.
//
// Key features:
//   - Register / Login / Logout (logout wipes the local cache)
//   - Write today's rose/bud/thorn entry
//   - List own and group feeds, browse by tag
//   - Create and join groups by code
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
