// Package session keeps the signed-in user for crate.
//
// # Overview
//
// A Session is a bearer token plus a username. Manager owns the in-memory
// copy and a Persister keeps it between runs. Both fields are written
// together and restored together; a file holding only one of them is treated
// as signed out.
//
// FileStore writes TOML through a temp file and rename. Watch follows that
// file with fsnotify so a login in one terminal shows up in another.
// ExpiresAt reads a JWT exp claim for display only.
package session
