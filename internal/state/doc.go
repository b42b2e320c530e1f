// Package state provides thread-safe state management for the crate client.
//
// # Overview
//
// Store is the coordination point between background fetches (router
// goroutines, the refresher) and the UI. Fetches write results through the
// Set* methods; the UI reads a Snapshot and re-renders when Subscribe signals
// a change.
//
// # Core Types
//
// Store:
//   - Mutex-guarded container, usable as a zero value
//   - Pure in-memory holder; persistence lives in the session and prefs packages
//
// Snapshot:
//   - Copy of the state at one instant; slices, maps and pointers are cloned
//   - Per-area Status (idle, loading, error with message)
//   - Album interactions keyed by catalog.AlbumKey
//   - Navigation (current and previous view, banner message) and search state
//
// # Interactions
//
// Each album the user touched maps to {Favorite, Rating}. An entry holding
// neither is deleted rather than kept as a placeholder. FavoriteAlbums and
// RatedAlbums are recomputed on every call and ordered by album key.
//
// # Change Notification
//
// Subscribe hands out a channel with a buffer of one. Writers never block:
// if a signal is already pending the new one is dropped, and readers always
// take a fresh Snapshot.
package state
