// Package cli provides the FactOrg operator console.
//
// It shares the panel's backend client and services and adds an interactive
// REPL for batch XML uploads, product and invoice listings and spreadsheet
// exports. The session survives restarts: the refresh token is kept, sealed,
// in a local SQLite file (see package store).
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
