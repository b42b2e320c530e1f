// Package router maps crate paths to view transitions.
//
// # Overview
//
// Navigate resolves a path against the route table, applies the guard, sets
// the current view in the state store and starts the loads that view needs.
// Guarded routes (news, artists, playlists, collections, favorites) redirect
// to the profile view with an informational message when no session token
// is present. Unknown paths fall back to "/".
//
// # Latest Wins
//
// Every area has one operation slot. Starting a load cancels the previous
// context for that area and bumps a generation counter; a finished load
// writes to the store only if its generation is still current. Search also
// ignores a repeat of the query already in flight.
//
// Actions (Login, SetFavorite, Rate, ...) run synchronously and report
// failures both as errors and as banner messages.
package router
