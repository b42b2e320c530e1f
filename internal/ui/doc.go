// Package ui provides the crate terminal interface.
//
// # Overview
//
// The interface is a Bubble Tea program styled with Lipgloss. It renders the
// state.Store snapshot and sends every user intent through router.Router:
// view switches become route paths, favorites and ratings become router
// actions. The UI never talks to the Vinylhound API directly.
//
// # Package Structure
//
//   - app.go: Model, Update loop, navigation history and Run
//   - views.go: per-view body builders (pure functions of a snapshot)
//   - header.go: header, message banner and key hint footer
//   - login.go: log in / sign up modal
//   - help.go: keyboard shortcut overlay
//   - theme.go: color themes and pre-built styles
//   - keys.go: key bindings
//
// # Event Flow
//
//  1. Run subscribes to the store and starts the program
//  2. Each store change arrives as a message and a fresh snapshot is taken
//  3. Keys resolve to router calls; blocking ones (login, favorite, rating)
//     run as commands and report back with actionDoneMsg
//  4. The body is rebuilt into a viewport whenever the snapshot, theme or
//     size changes
//
// # Key Bindings
//
//   - 1-6: Profile, News, Artists, Playlists, Collection, Favorite tracks
//   - /: Search the catalog
//   - j/k, g/G: Move the cursor; enter opens the row
//   - f, +/-, x: Toggle favorite, change or clear the rating
//   - L: Log in / sign up, or log out when signed in
//   - r: Refresh the view; esc: back
//   - T: Cycle theme; ?: help; e or Ctrl+C: exit
package ui
