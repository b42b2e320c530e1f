package router

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/state"
	"github.com/five82/crate/internal/vinylhound"
)

// GuardMessage is shown when a guarded route is opened without a session.
const GuardMessage = "Please log in or sign up to continue."

const (
	albumNotFound    = "Album not found."
	albumUnavailable = "Unable to load album details."
	searchFailed     = "Search failed. Please try again."
	artistNotFound   = "Artist not found."
)

var errArtistNotFound = errors.New("artist not found")

// Backend is the subset of the Vinylhound client the router drives.
type Backend interface {
	FetchAlbum(ctx context.Context, id, token string) (catalog.Album, error)
	ListAlbums(ctx context.Context, opts vinylhound.AlbumListOptions) ([]catalog.Album, error)
	FetchUserAlbums(ctx context.Context, token string) ([]catalog.Preference, error)
	SetAlbumFavorite(ctx context.Context, token, albumID string, favorite bool) (catalog.Preference, error)
	RateAlbum(ctx context.Context, token, albumID string, rating *int) (catalog.Preference, error)
	ListArtists(ctx context.Context, token string) ([]catalog.Artist, error)
	ArtistDetails(ctx context.Context, id string) (catalog.ArtistDetails, error)
	ListPlaylists(ctx context.Context, token string) ([]catalog.Playlist, error)
	FetchPlaylist(ctx context.Context, id, token string) (catalog.Playlist, error)
	ListCollections(ctx context.Context, filter vinylhound.CollectionFilter) (catalog.CollectionPage, error)
	CollectionStats(ctx context.Context, token string) (catalog.CollectionStats, error)
	ListFavoriteTracks(ctx context.Context, token string) ([]catalog.FavoriteTrack, error)
	FetchContent(ctx context.Context, token string) ([]string, error)
	Search(ctx context.Context, req vinylhound.SearchRequest) (catalog.SearchResults, error)
	Login(ctx context.Context, creds vinylhound.Credentials) (vinylhound.AuthResult, error)
	Signup(ctx context.Context, creds vinylhound.Credentials) (vinylhound.AuthResult, error)
}

var _ Backend = (*vinylhound.Client)(nil)

// Session is the session holder the router reads tokens from.
type Session interface {
	Token() string
	Login(token, username string) error
	Logout() error
}

// Options configures a Router.
type Options struct {
	Backend Backend
	Store   *state.Store
	Session Session
	Logger  logrus.FieldLogger
	// OnAlbum and OnArtist see every detail record that reaches the store.
	OnAlbum  func(catalog.Album)
	OnArtist func(catalog.Artist)
}

// Router maps paths to view transitions and starts the loads each view needs.
type Router struct {
	backend Backend
	store   *state.Store
	session Session
	log     logrus.FieldLogger

	onAlbum  func(catalog.Album)
	onArtist func(catalog.Artist)

	ops     map[state.Area]*operation
	pending pending
}

// New builds a Router. Backend, Store and Session are required.
func New(opts Options) *Router {
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	r := &Router{
		backend:  opts.Backend,
		store:    opts.Store,
		session:  opts.Session,
		log:      log,
		onAlbum:  opts.OnAlbum,
		onArtist: opts.OnArtist,
		ops:      make(map[state.Area]*operation),
	}
	for _, area := range []state.Area{
		state.AreaAlbums, state.AreaAlbum, state.AreaArtists, state.AreaArtist,
		state.AreaPlaylists, state.AreaPlaylist, state.AreaCollections,
		state.AreaFavorites, state.AreaContent, state.AreaSearch, state.AreaInteractions,
	} {
		r.ops[area] = &operation{}
	}
	return r
}

// Navigate resolves target and applies the transition. Loads run in the
// background under ctx; Navigate returns the path actually shown, which
// differs from target after a redirect.
func (r *Router) Navigate(ctx context.Context, target string) string {
	match, ok := Resolve(target)
	if !ok {
		r.log.WithField("path", target).Warn("route not found")
		return r.Navigate(ctx, PathHome)
	}
	if match.Route.Guarded && strings.TrimSpace(r.session.Token()) == "" {
		r.store.SetMessage(GuardMessage, state.MessageInfo)
		return r.Navigate(ctx, PathProfile)
	}

	switch match.Route.Pattern {
	case PathHome, PathProfile:
		r.store.Navigate(state.ViewProfile)
		r.loadContent(ctx, nil)
	case PathNews:
		r.store.Navigate(state.ViewNews)
		r.loadAlbums(ctx, nil)
		r.loadInteractions(ctx, nil)
	case PathAlbum:
		id := match.Param("id")
		r.store.SelectAlbum(id)
		r.store.Navigate(state.ViewAlbum)
		r.loadAlbum(ctx, id, nil)
	case PathArtists:
		r.store.SelectArtist("")
		r.store.SetArtist(nil)
		r.store.Navigate(state.ViewArtists)
		r.loadArtists(ctx, nil)
	case PathArtistDetail:
		slug := match.Param("slug")
		r.store.SelectArtist(slug)
		r.store.Navigate(state.ViewArtists)
		r.loadArtist(ctx, slug, nil)
	case PathPlaylists:
		r.store.SelectPlaylist("")
		r.store.SetPlaylist(nil)
		r.store.Navigate(state.ViewPlaylists)
		r.loadPlaylists(ctx, nil)
	case PathPlaylistDetail:
		id := match.Param("id")
		r.store.SelectPlaylist(id)
		r.store.Navigate(state.ViewPlaylists)
		r.loadPlaylist(ctx, id, nil)
	case PathSearch:
		r.store.Navigate(state.ViewSearch)
		r.RunSearch(ctx, match.Query.Get("q"))
	case PathCollections:
		r.store.Navigate(state.ViewCollections)
		r.loadCollections(ctx, nil)
	case PathFavorites:
		r.store.Navigate(state.ViewFavorites)
		r.loadFavorites(ctx, nil)
	}
	return canonicalPath(target)
}

// Refresh reloads whatever the current view shows without changing it. The
// returned channel closes once the loads it started have settled.
func (r *Router) Refresh(ctx context.Context) <-chan struct{} {
	snap := r.store.Snapshot()
	nav := snap.Navigation
	authed := r.session.Token() != ""
	group := &sync.WaitGroup{}
	switch nav.Current {
	case state.ViewAlbum:
		if nav.AlbumID != "" {
			r.loadAlbum(ctx, nav.AlbumID, group)
		}
	case state.ViewNews:
		if authed {
			r.loadAlbums(ctx, group)
			r.loadInteractions(ctx, group)
		}
	case state.ViewArtists:
		if authed {
			r.loadArtists(ctx, group)
		}
	case state.ViewPlaylists:
		if authed {
			r.loadPlaylists(ctx, group)
		}
	case state.ViewCollections:
		if authed {
			r.loadCollections(ctx, group)
		}
	case state.ViewFavorites:
		if authed {
			r.loadFavorites(ctx, group)
		}
	case state.ViewProfile:
		r.loadContent(ctx, group)
	}

	settled := make(chan struct{})
	go func() {
		group.Wait()
		close(settled)
	}()
	return settled
}

// Wait blocks until every background load running at the time of the call
// has settled.
func (r *Router) Wait() { r.pending.wait() }

// RunSearch starts a search for query. A blank query clears search state; a
// query equal to one still in flight is ignored.
func (r *Router) RunSearch(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	op := r.ops[state.AreaSearch]
	if query == "" {
		op.invalidate()
		r.store.ClearSearch()
		return
	}
	token := r.session.Token()
	r.launch(ctx, state.AreaSearch, query, nil, func(ctx context.Context) (func(), error) {
		results, err := r.backend.Search(ctx, vinylhound.SearchRequest{Query: query, Token: token})
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetSearch(query, results, "") }, nil
	}, func(err error) string {
		msg := userMessage(err, searchFailed)
		r.store.SetSearch(query, catalog.EmptySearchResults(), msg)
		return msg
	})
}

func (r *Router) loadAlbum(ctx context.Context, id string, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaAlbum, "", group, func(ctx context.Context) (func(), error) {
		album, err := r.backend.FetchAlbum(ctx, id, token)
		if err != nil {
			return nil, err
		}
		return func() {
			r.store.SetAlbum(&album)
			if r.onAlbum != nil {
				r.onAlbum(album)
			}
		}, nil
	}, func(err error) string {
		if vinylhound.IsNotFound(err) {
			return albumNotFound
		}
		return userMessage(err, albumUnavailable)
	})
}

func (r *Router) loadAlbums(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaAlbums, "", group, func(ctx context.Context) (func(), error) {
		albums, err := r.backend.ListAlbums(ctx, vinylhound.AlbumListOptions{Token: token})
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetAlbums(albums) }, nil
	}, nil)
}

// LoadInteractions replaces the favorite and rating map with the user's
// stored preferences. It is a no-op without a session.
func (r *Router) LoadInteractions(ctx context.Context) {
	r.loadInteractions(ctx, nil)
}

func (r *Router) loadInteractions(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	if token == "" {
		return
	}
	r.launch(ctx, state.AreaInteractions, "", group, func(ctx context.Context) (func(), error) {
		prefs, err := r.backend.FetchUserAlbums(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.ApplyInteractions(prefs) }, nil
	}, func(err error) string {
		return userMessage(err, "Unable to load album preferences.")
	})
}

func (r *Router) loadArtists(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaArtists, "", group, func(ctx context.Context) (func(), error) {
		artists, err := r.backend.ListArtists(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetArtists(artists) }, nil
	}, nil)
}

// loadArtist resolves slug against the saved artists, then fetches provider
// details for it. Until details arrive the store holds a placeholder.
func (r *Router) loadArtist(ctx context.Context, slug string, group *sync.WaitGroup) {
	token := r.session.Token()
	if current := r.store.Snapshot().Artist; current == nil || current.Artist.Slug != slug {
		r.store.SetArtist(&catalog.ArtistDetails{Artist: catalog.Artist{Slug: slug}})
	}
	r.launch(ctx, state.AreaArtist, "", group, func(ctx context.Context) (func(), error) {
		artist, found := findArtist(r.store.Snapshot().Artists, slug)
		if !found {
			artists, err := r.backend.ListArtists(ctx, token)
			if err != nil {
				return nil, err
			}
			artist, found = findArtist(artists, slug)
		}
		if !found {
			return nil, errArtistNotFound
		}
		details := catalog.ArtistDetails{Artist: artist}
		if artist.ExternalID != "" {
			fetched, err := r.backend.ArtistDetails(ctx, artist.ExternalID)
			if err != nil {
				return nil, err
			}
			details = fetched
			if details.Artist.Slug == "" {
				details.Artist.Slug = artist.Slug
			}
		}
		return func() {
			r.store.SetArtist(&details)
			if r.onArtist != nil {
				r.onArtist(details.Artist)
			}
		}, nil
	}, func(err error) string {
		if errors.Is(err, errArtistNotFound) {
			return artistNotFound
		}
		return errorText(err, "")
	})
}

func findArtist(artists []catalog.Artist, slug string) (catalog.Artist, bool) {
	for _, a := range artists {
		if a.Slug == slug || catalog.Slugify(a.Name) == slug {
			return a, true
		}
	}
	return catalog.Artist{}, false
}

func (r *Router) loadPlaylists(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaPlaylists, "", group, func(ctx context.Context) (func(), error) {
		playlists, err := r.backend.ListPlaylists(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetPlaylists(playlists) }, nil
	}, nil)
}

func (r *Router) loadPlaylist(ctx context.Context, id string, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaPlaylist, "", group, func(ctx context.Context) (func(), error) {
		playlist, err := r.backend.FetchPlaylist(ctx, id, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetPlaylist(&playlist) }, nil
	}, nil)
}

func (r *Router) loadCollections(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaCollections, "", group, func(ctx context.Context) (func(), error) {
		page, err := r.backend.ListCollections(ctx, vinylhound.CollectionFilter{Token: token})
		if err != nil {
			return nil, err
		}
		stats, err := r.backend.CollectionStats(ctx, token)
		if err != nil {
			r.log.WithError(err).Warn("unable to load collection stats")
			return func() { r.store.SetCollections(page) }, nil
		}
		return func() {
			r.store.SetCollections(page)
			r.store.SetCollectionStats(&stats)
		}, nil
	}, nil)
}

func (r *Router) loadFavorites(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	r.launch(ctx, state.AreaFavorites, "", group, func(ctx context.Context) (func(), error) {
		tracks, err := r.backend.ListFavoriteTracks(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetFavorites(tracks) }, nil
	}, nil)
}

func (r *Router) loadContent(ctx context.Context, group *sync.WaitGroup) {
	token := r.session.Token()
	if token == "" {
		return
	}
	r.launch(ctx, state.AreaContent, "", group, func(ctx context.Context) (func(), error) {
		lines, err := r.backend.FetchContent(ctx, token)
		if err != nil {
			return nil, err
		}
		return func() { r.store.SetContent(lines) }, nil
	}, nil)
}

// launch runs work for area in the background. Starting a new load for the
// same area cancels the previous one, and only the newest load may write to
// the store. describe turns an error into the status message; nil uses the
// error text. A non-nil group is marked done when the load settles.
func (r *Router) launch(parent context.Context, area state.Area, key string, group *sync.WaitGroup,
	work func(context.Context) (func(), error), describe func(error) string) {
	op := r.ops[area]
	ctx, gen, ok := op.begin(parent, key)
	if !ok {
		r.log.WithFields(logrus.Fields{"area": area, "key": key}).Debug("duplicate request ignored")
		return
	}
	op.commit(gen, func() { r.store.Loading(area) })

	r.pending.add()
	if group != nil {
		group.Add(1)
	}
	go func() {
		defer r.pending.done()
		if group != nil {
			defer group.Done()
		}
		defer op.finish(gen)

		apply, err := work(ctx)
		op.commit(gen, func() {
			if err == nil {
				apply()
				r.store.Idle(area)
				return
			}
			if ctx.Err() != nil {
				return
			}
			msg := errorText(err, "")
			if describe != nil {
				msg = describe(err)
			}
			r.log.WithFields(logrus.Fields{"area": area}).WithError(err).Warn("load failed")
			r.store.Fail(area, msg)
		})
	}()
}

func errorText(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// userMessage returns the server's own message for an HTTP failure and
// fallback for anything else.
func userMessage(err error, fallback string) string {
	var httpErr *vinylhound.HTTPError
	if errors.As(err, &httpErr) {
		if msg := strings.TrimSpace(httpErr.Message); msg != "" {
			return msg
		}
	}
	return fallback
}

func canonicalPath(target string) string {
	match, ok := Resolve(target)
	if !ok {
		return PathHome
	}
	switch match.Route.Pattern {
	case PathAlbum:
		return BuildAlbum(match.Param("id"))
	case PathArtistDetail:
		return BuildArtist(match.Param("slug"))
	case PathPlaylistDetail:
		return BuildPlaylist(match.Param("id"))
	case PathSearch:
		return BuildSearch(match.Query.Get("q"))
	}
	return match.Route.Pattern
}
