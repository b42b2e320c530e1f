// Package app provides the orchestration layer for the crate client.
//
// # Overview
//
// This package wires together configuration, logging, the Vinylhound client,
// the session, prefs, the state store, the router and the UI. It is the
// composition root; nothing below it knows about the others' construction.
//
// # Architecture
//
//  1. Load config (TOML or YAML file, .env, CRATE_* environment)
//  2. Build the logrus logger; the TUI owns the terminal so logs go to a file
//  3. Create the vinylhound.Client with the configured timeout
//  4. Restore the persisted session and the last-viewed album
//  5. Watch the session file so logins from another terminal show up here
//  6. Launch the background refresher
//  7. Navigate to the first route and run the TUI until exit or cancel
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config and overrides
//	       ├─────> logging.New()          Logger to file
//	       ├─────> vinylhound.NewClient() HTTP client
//	       ├─────> session.LoadSession()  Restore token + username
//	       ├─────> session.Watch()        Cross-process session sync
//	       ├─────> StartPoller()          Background refresh
//	       └─────> ui.Run()               Start TUI (blocks)
//
// # Refresh Behavior
//
// The poller asks the router to reload the current view on every tick
// (default 30 seconds). When the view's areas end in an error the next delay
// doubles, capped at five minutes, and resets after a clean refresh.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or log destination
//   - An unusable API base URL
//
// Recoverable errors (logged, shown in the banner, refresh continues):
//   - Backend and network failures during loads
//   - Session or prefs files that cannot be written
//   - A session watcher that cannot start
package app
