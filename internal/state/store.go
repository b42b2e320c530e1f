package state

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/five82/crate/internal/catalog"
)

// Phase is the tri-state load status of one area.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Status is the load status of one area. Message is only set in PhaseError.
type Status struct {
	Phase   Phase
	Message string
}

// Area names a domain area with its own load status.
type Area string

const (
	AreaAlbums       Area = "albums"
	AreaAlbum        Area = "album"
	AreaArtists      Area = "artists"
	AreaArtist       Area = "artist"
	AreaPlaylists    Area = "playlists"
	AreaPlaylist     Area = "playlist"
	AreaCollections  Area = "collections"
	AreaFavorites    Area = "favorites"
	AreaContent      Area = "content"
	AreaSearch       Area = "search"
	AreaInteractions Area = "interactions"
)

// View is a named screen.
type View string

const (
	ViewProfile     View = "profile"
	ViewNews        View = "news"
	ViewAlbum       View = "album"
	ViewArtists     View = "artists"
	ViewPlaylists   View = "playlists"
	ViewSearch      View = "search"
	ViewCollections View = "collections"
	ViewFavorites   View = "favorites"
)

// MessageKind classifies the banner message.
type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Navigation is the current screen plus the banner message.
type Navigation struct {
	Current     View
	Previous    View
	AlbumID     string
	ArtistSlug  string
	PlaylistID  string
	Message     string
	MessageKind MessageKind
}

// Search holds the latest applied search.
type Search struct {
	Query     string
	Results   catalog.SearchResults
	Error     string
	UpdatedAt time.Time
}

// Interaction is the user's favorite flag and rating for one album.
type Interaction struct {
	Favorite bool
	Rating   *int
}

// Empty reports whether the entry carries neither a favorite nor a rating.
func (i Interaction) Empty() bool {
	return !i.Favorite && i.Rating == nil
}

// AlbumInteraction pairs an interaction with its album key.
type AlbumInteraction struct {
	AlbumID string
	Interaction
}

// Snapshot is a copy of everything the UI renders.
type Snapshot struct {
	Statuses        map[Area]Status
	Albums          []catalog.Album
	Album           *catalog.Album
	Artists         []catalog.Artist
	Artist          *catalog.ArtistDetails
	Playlists       []catalog.Playlist
	Playlist        *catalog.Playlist
	Collections     catalog.CollectionPage
	CollectionStats *catalog.CollectionStats
	Favorites       []catalog.FavoriteTrack
	Content         []string
	Interactions    map[string]Interaction
	Navigation      Navigation
	Search          Search
	LastUpdated     time.Time
}

// Status returns the status of area, idle when never set.
func (s Snapshot) Status(area Area) Status {
	return s.Statuses[area]
}

// Interaction looks up an album by any form of its identifier.
func (s Snapshot) Interaction(albumID string) (Interaction, bool) {
	i, ok := s.Interactions[catalog.AlbumKey(albumID)]
	return i, ok
}

// FavoriteAlbums lists favorited entries ordered by album key.
func (s Snapshot) FavoriteAlbums() []AlbumInteraction {
	return s.filterInteractions(func(i Interaction) bool { return i.Favorite })
}

// RatedAlbums lists rated entries ordered by album key.
func (s Snapshot) RatedAlbums() []AlbumInteraction {
	return s.filterInteractions(func(i Interaction) bool { return i.Rating != nil })
}

func (s Snapshot) filterInteractions(keep func(Interaction) bool) []AlbumInteraction {
	keys := slices.Sorted(maps.Keys(s.Interactions))
	out := make([]AlbumInteraction, 0, len(keys))
	for _, key := range keys {
		entry := s.Interactions[key]
		if keep(entry) {
			out = append(out, AlbumInteraction{AlbumID: key, Interaction: entry})
		}
	}
	return out
}

// Store is the in-memory state container. It never touches disk; callers
// persist what they need through the prefs and session packages. The zero
// value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     []chan struct{}
}

// Subscribe returns a channel that receives a signal after every change.
// Signals coalesce; a slow reader sees one pending signal, not a backlog.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub == ch {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// update applies fn under the write lock and notifies subscribers.
func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snapshot)
	s.snapshot.LastUpdated = time.Now()

	// Sends never block, so notifying under the lock is safe and keeps
	// cancel from closing a channel mid-send.
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetStatus records the status of area.
func (s *Store) SetStatus(area Area, status Status) {
	s.update(func(snap *Snapshot) {
		if snap.Statuses == nil {
			snap.Statuses = make(map[Area]Status)
		}
		if status.Phase != PhaseError {
			status.Message = ""
		}
		snap.Statuses[area] = status
	})
}

// Loading marks area as loading.
func (s *Store) Loading(area Area) { s.SetStatus(area, Status{Phase: PhaseLoading}) }

// Fail marks area as failed with message.
func (s *Store) Fail(area Area, message string) {
	s.SetStatus(area, Status{Phase: PhaseError, Message: message})
}

// Idle marks area as settled.
func (s *Store) Idle(area Area) { s.SetStatus(area, Status{Phase: PhaseIdle}) }

func (s *Store) SetAlbums(albums []catalog.Album) {
	s.update(func(snap *Snapshot) { snap.Albums = slices.Clone(albums) })
}

// SetAlbum sets the album-detail record; nil clears it.
func (s *Store) SetAlbum(album *catalog.Album) {
	s.update(func(snap *Snapshot) { snap.Album = cloneAlbum(album) })
}

func (s *Store) SetArtists(artists []catalog.Artist) {
	s.update(func(snap *Snapshot) { snap.Artists = slices.Clone(artists) })
}

func (s *Store) SetArtist(details *catalog.ArtistDetails) {
	s.update(func(snap *Snapshot) {
		if details == nil {
			snap.Artist = nil
			return
		}
		dup := *details
		dup.Albums = slices.Clone(details.Albums)
		snap.Artist = &dup
	})
}

func (s *Store) SetPlaylists(playlists []catalog.Playlist) {
	s.update(func(snap *Snapshot) { snap.Playlists = slices.Clone(playlists) })
}

func (s *Store) SetPlaylist(playlist *catalog.Playlist) {
	s.update(func(snap *Snapshot) {
		if playlist == nil {
			snap.Playlist = nil
			return
		}
		dup := *playlist
		dup.Tracks = slices.Clone(playlist.Tracks)
		snap.Playlist = &dup
	})
}

func (s *Store) SetCollections(page catalog.CollectionPage) {
	s.update(func(snap *Snapshot) {
		page.Items = slices.Clone(page.Items)
		snap.Collections = page
	})
}

func (s *Store) SetCollectionStats(stats *catalog.CollectionStats) {
	s.update(func(snap *Snapshot) {
		if stats == nil {
			snap.CollectionStats = nil
			return
		}
		dup := *stats
		dup.ByGenre = maps.Clone(stats.ByGenre)
		dup.ByCondition = maps.Clone(stats.ByCondition)
		snap.CollectionStats = &dup
	})
}

func (s *Store) SetFavorites(tracks []catalog.FavoriteTrack) {
	s.update(func(snap *Snapshot) { snap.Favorites = slices.Clone(tracks) })
}

func (s *Store) SetContent(lines []string) {
	s.update(func(snap *Snapshot) { snap.Content = slices.Clone(lines) })
}

// ApplyInteractions replaces every interaction with those derived from prefs.
// Entries with neither a favorite nor a rating are skipped.
func (s *Store) ApplyInteractions(prefs []catalog.Preference) {
	next := make(map[string]Interaction, len(prefs))
	for _, p := range prefs {
		key := catalog.AlbumKey(p.AlbumID)
		if key == "" {
			continue
		}
		entry := Interaction{Favorite: p.Favorite, Rating: cloneInt(p.Rating)}
		if entry.Empty() {
			continue
		}
		next[key] = entry
	}
	s.update(func(snap *Snapshot) { snap.Interactions = next })
}

// UpdateInteraction edits the entry for albumID in place. An entry left with
// neither a favorite nor a rating is removed from the map.
func (s *Store) UpdateInteraction(albumID string, edit func(*Interaction)) {
	key := catalog.AlbumKey(albumID)
	if key == "" {
		return
	}
	s.update(func(snap *Snapshot) {
		if snap.Interactions == nil {
			snap.Interactions = make(map[string]Interaction)
		}
		entry := snap.Interactions[key]
		entry.Rating = cloneInt(entry.Rating)
		edit(&entry)
		if entry.Empty() {
			delete(snap.Interactions, key)
			return
		}
		snap.Interactions[key] = entry
	})
}

// ResetInteractions forgets every album interaction, as on logout.
func (s *Store) ResetInteractions() {
	s.update(func(snap *Snapshot) { snap.Interactions = nil })
}

// Navigate switches to view and remembers the one being left.
func (s *Store) Navigate(view View) {
	s.update(func(snap *Snapshot) {
		snap.Navigation.Previous = snap.Navigation.Current
		snap.Navigation.Current = view
	})
}

// SelectAlbum records the album id the detail view shows.
func (s *Store) SelectAlbum(id string) {
	s.update(func(snap *Snapshot) { snap.Navigation.AlbumID = id })
}

// SelectArtist records the artist slug; blank means the list.
func (s *Store) SelectArtist(slug string) {
	s.update(func(snap *Snapshot) { snap.Navigation.ArtistSlug = slug })
}

// SelectPlaylist records the playlist id; blank means the list.
func (s *Store) SelectPlaylist(id string) {
	s.update(func(snap *Snapshot) { snap.Navigation.PlaylistID = id })
}

func (s *Store) SetMessage(message string, kind MessageKind) {
	if kind == "" {
		kind = MessageInfo
	}
	s.update(func(snap *Snapshot) {
		snap.Navigation.Message = message
		snap.Navigation.MessageKind = kind
	})
}

func (s *Store) ClearMessage() { s.SetMessage("", MessageInfo) }

// SetSearch replaces the applied search and stamps it.
func (s *Store) SetSearch(query string, results catalog.SearchResults, errMessage string) {
	s.update(func(snap *Snapshot) {
		snap.Search = Search{
			Query:     query,
			Results:   cloneResults(results),
			Error:     errMessage,
			UpdatedAt: time.Now(),
		}
	})
}

// ClearSearch resets search to its empty state.
func (s *Store) ClearSearch() {
	s.update(func(snap *Snapshot) {
		snap.Search = Search{Results: catalog.EmptySearchResults()}
		delete(snap.Statuses, AreaSearch)
	})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Statuses = maps.Clone(s.snapshot.Statuses)
	snap.Albums = slices.Clone(s.snapshot.Albums)
	snap.Album = cloneAlbum(s.snapshot.Album)
	snap.Artists = slices.Clone(s.snapshot.Artists)
	snap.Playlists = slices.Clone(s.snapshot.Playlists)
	snap.Collections.Items = slices.Clone(s.snapshot.Collections.Items)
	snap.Favorites = slices.Clone(s.snapshot.Favorites)
	snap.Content = slices.Clone(s.snapshot.Content)
	snap.Search.Results = cloneResults(s.snapshot.Search.Results)
	if s.snapshot.Interactions != nil {
		snap.Interactions = make(map[string]Interaction, len(s.snapshot.Interactions))
		for k, v := range s.snapshot.Interactions {
			v.Rating = cloneInt(v.Rating)
			snap.Interactions[k] = v
		}
	}
	return snap
}

func cloneAlbum(album *catalog.Album) *catalog.Album {
	if album == nil {
		return nil
	}
	dup := *album
	dup.Artists = slices.Clone(album.Artists)
	dup.Genres = slices.Clone(album.Genres)
	dup.Tracks = slices.Clone(album.Tracks)
	return &dup
}

func cloneResults(r catalog.SearchResults) catalog.SearchResults {
	return catalog.SearchResults{
		Artists: slices.Clone(r.Artists),
		Albums:  slices.Clone(r.Albums),
		Tracks:  slices.Clone(r.Tracks),
	}
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
