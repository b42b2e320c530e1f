package router

import (
	"net/url"
	"strings"

	"github.com/five82/crate/internal/state"
)

// Route paths.
const (
	PathHome           = "/"
	PathProfile        = "/profile"
	PathNews           = "/news"
	PathAlbum          = "/album/:id"
	PathArtists        = "/artists"
	PathArtistDetail   = "/artists/:slug"
	PathPlaylists      = "/playlists"
	PathPlaylistDetail = "/playlists/:id"
	PathSearch         = "/search"
	PathCollections    = "/collections"
	PathFavorites      = "/favorites"
)

// Route is one entry of the route table.
type Route struct {
	Pattern string
	View    state.View
	// Guarded routes need a session token.
	Guarded bool
}

var routes = []Route{
	{Pattern: PathHome, View: state.ViewProfile},
	{Pattern: PathProfile, View: state.ViewProfile},
	{Pattern: PathNews, View: state.ViewNews, Guarded: true},
	{Pattern: PathAlbum, View: state.ViewAlbum},
	{Pattern: PathArtists, View: state.ViewArtists, Guarded: true},
	{Pattern: PathArtistDetail, View: state.ViewArtists, Guarded: true},
	{Pattern: PathPlaylists, View: state.ViewPlaylists, Guarded: true},
	{Pattern: PathPlaylistDetail, View: state.ViewPlaylists, Guarded: true},
	{Pattern: PathSearch, View: state.ViewSearch},
	{Pattern: PathCollections, View: state.ViewCollections, Guarded: true},
	{Pattern: PathFavorites, View: state.ViewFavorites, Guarded: true},
}

// Match is a resolved navigation target.
type Match struct {
	Route  Route
	Params map[string]string
	Query  url.Values
}

// Param returns a path parameter or "".
func (m Match) Param(name string) string { return m.Params[name] }

// Resolve matches target against the route table. Trailing slashes are
// ignored and path parameters are unescaped.
func Resolve(target string) (Match, bool) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return Match{}, false
	}
	segments := splitPath(u.EscapedPath())
	for _, route := range routes {
		params, ok := matchSegments(splitPath(route.Pattern), segments)
		if ok {
			return Match{Route: route, Params: params, Query: u.Query()}, true
		}
	}
	return Match{}, false
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pattern {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			value, err := url.PathUnescape(path[i])
			if err != nil || value == "" {
				return nil, false
			}
			params[name] = value
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Route builders.

func BuildHome() string { return PathHome }
func BuildProfile() string { return PathProfile }
func BuildNews() string { return PathNews }
func BuildArtists() string { return PathArtists }
func BuildPlaylists() string { return PathPlaylists }
func BuildCollections() string { return PathCollections }
func BuildFavorites() string { return PathFavorites }

func BuildAlbum(id string) string { return "/album/" + url.PathEscape(id) }

func BuildArtist(slug string) string { return "/artists/" + url.PathEscape(slug) }

func BuildPlaylist(id string) string { return "/playlists/" + url.PathEscape(id) }

func BuildSearch(query string) string {
	return PathSearch + "?" + url.Values{"q": {query}}.Encode()
}
