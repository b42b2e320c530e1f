package vinylhound

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/crate/internal/catalog"
)

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func TestFetchAlbum_FetchesAndSortsTracks(t *testing.T) {
	var songsQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/albums/7":
			writeJSON(w, map[string]any{"id": 7, "title": "Moanin'", "artist": "Art Blakey", "tracks": []any{}})
		case "/api/v1/songs":
			songsQuery = r.URL.Query()
			writeJSON(w, map[string]any{"songs": []any{
				map[string]any{"id": 2, "title": "Are You Real", "track_num": 2},
				map[string]any{"id": 1, "title": "Moanin'", "track_num": 1},
				map[string]any{"id": 3, "title": "Along Came Betty", "track_num": 3},
			}})
		default:
			http.NotFound(w, r)
		}
	})

	album, err := client.FetchAlbum(context.Background(), "7", "")
	require.NoError(t, err)
	assert.Equal(t, "7", songsQuery.Get("album_id"))
	require.Len(t, album.Tracks, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{album.Tracks[0].TrackNumber, album.Tracks[1].TrackNumber, album.Tracks[2].TrackNumber})
	assert.Equal(t, "Moanin'", album.Tracks[0].Title)
	assert.Equal(t, "7", *album.Tracks[0].AlbumID)
}

func TestFetchAlbum_TrackFailureIsSoft(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/songs" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"id": "x", "title": "T"})
	})
	album, err := client.FetchAlbum(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, "T", album.Title)
	assert.NotNil(t, album.Tracks)
	assert.Empty(t, album.Tracks)
}

func TestFetchAlbum_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.NotFound)
	_, err := client.FetchAlbum(context.Background(), "missing", "")
	assert.True(t, IsNotFound(err))
}

func TestListAlbums_AttachesTracks(t *testing.T) {
	var albumsQuery url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/albums":
			albumsQuery = r.URL.Query()
			writeJSON(w, map[string]any{"albums": []any{
				map[string]any{"id": 1, "title": "A"},
				map[string]any{"id": 2, "title": "B", "tracks": []any{"keep"}},
			}})
		case "/api/v1/songs":
			writeJSON(w, map[string]any{"songs": []any{
				map[string]any{"title": "second", "album_id": 1, "track_num": 2},
				map[string]any{"title": "first", "album_id": "1", "track_num": 1},
				map[string]any{"title": "other", "album_id": 2, "track_num": 1},
			}})
		}
	})
	albums, err := client.ListAlbums(context.Background(), AlbumListOptions{IncludeTracks: true})
	require.NoError(t, err)
	assert.Equal(t, "true", albumsQuery.Get("tracks"))
	require.Len(t, albums, 2)
	require.Len(t, albums[0].Tracks, 2)
	assert.Equal(t, "first", albums[0].Tracks[0].Title)
	require.Len(t, albums[1].Tracks, 1)
	assert.Equal(t, "keep", albums[1].Tracks[0].Title)
}

func TestListAlbums_AttachFailureKeepsAlbums(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/songs" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, map[string]any{"albums": []any{map[string]any{"id": 1, "title": "A"}}})
	})
	albums, err := client.ListAlbums(context.Background(), AlbumListOptions{IncludeTracks: true})
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Empty(t, albums[0].Tracks)
}

func TestListAlbums_NoQueryWithoutTracks(t *testing.T) {
	var rawQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, map[string]any{"albums": []any{}})
	})
	albums, err := client.ListAlbums(context.Background(), AlbumListOptions{})
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
	assert.NotNil(t, albums)
}

func TestRateAlbum_RejectsOutOfRangeLocally(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	for _, r := range []int{0, 6, -1} {
		rating := r
		_, err := client.RateAlbum(context.Background(), "tok", "1", &rating)
		assert.ErrorIs(t, err, ErrValidation, "rating %d", r)
	}
	assert.Equal(t, int32(0), calls.Load())

	for r := 1; r <= 5; r++ {
		rating := r
		pref, err := client.RateAlbum(context.Background(), "tok", "1", &rating)
		require.NoError(t, err)
		assert.Equal(t, r, *pref.Rating)
	}
	_, err := client.RateAlbum(context.Background(), "tok", "1", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(6), calls.Load())

	_, err = client.RateAlbum(context.Background(), "", "1", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

// preferenceServer keeps one preference per album and merges partial writes
// the way the backend does.
type preferenceServer struct {
	mu     sync.Mutex
	prefs  map[string]map[string]any
	bodies []map[string]any
}

func (s *preferenceServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/me/albums/"), "/preference")
	var body map[string]any
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &body)
	s.bodies = append(s.bodies, body)
	current := s.prefs[id]
	if current == nil {
		current = map[string]any{"album_id": id, "favorited": false, "rating": nil}
		s.prefs[id] = current
	}
	for k, v := range body {
		current[k] = v
	}
	writeJSON(w, current)
}

func TestPreferenceWrites_AreIndependent(t *testing.T) {
	backend := &preferenceServer{prefs: map[string]map[string]any{}}
	client, _ := newTestClient(t, backend.ServeHTTP)
	ctx := context.Background()

	rating := 4
	_, err := client.RateAlbum(ctx, "tok", "9", &rating)
	require.NoError(t, err)

	pref, err := client.SetAlbumFavorite(ctx, "tok", "9", true)
	require.NoError(t, err)
	assert.True(t, pref.Favorite)
	require.NotNil(t, pref.Rating)
	assert.Equal(t, 4, *pref.Rating)
	assert.NotContains(t, backend.bodies[1], "rating")

	rating = 2
	pref, err = client.RateAlbum(ctx, "tok", "9", &rating)
	require.NoError(t, err)
	assert.True(t, pref.Favorite)
	assert.Equal(t, 2, *pref.Rating)
	assert.NotContains(t, backend.bodies[2], "favorited")

	pref, err = client.RateAlbum(ctx, "tok", "9", nil)
	require.NoError(t, err)
	assert.Nil(t, pref.Rating)
	assert.True(t, pref.Favorite)
	assert.Contains(t, backend.bodies[3], "rating")
	assert.Nil(t, backend.bodies[3]["rating"])
}

func TestSearch_DefaultsAndMissingLists(t *testing.T) {
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		writeJSON(w, map[string]any{"albums": []any{map[string]any{"title": "Blue"}}})
	})
	res, err := client.Search(context.Background(), SearchRequest{Query: "  blue  "})
	require.NoError(t, err)
	assert.Equal(t, "blue", body["query"])
	assert.Equal(t, "all", body["type"])
	assert.Equal(t, "spotify", body["provider"])
	assert.Equal(t, float64(20), body["limit"])
	assert.Equal(t, false, body["store_results"])
	assert.Len(t, res.Albums, 1)
	assert.NotNil(t, res.Artists)
	assert.NotNil(t, res.Tracks)

	_, err = client.Search(context.Background(), SearchRequest{Query: " "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSearchSongs_OnlySetsNonEmptyParams(t *testing.T) {
	var query url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		writeJSON(w, map[string]any{"songs": []any{map[string]any{"title": "x"}}})
	})
	tracks, err := client.SearchSongs(context.Background(), SongQuery{Query: "so what", Artist: " "})
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
	assert.Equal(t, url.Values{"q": {"so what"}}, query)
}

func TestCollections(t *testing.T) {
	var lastQuery url.Values
	var lastBody map[string]any
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		lastQuery = r.URL.Query()
		lastBody = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &lastBody)
		}
		switch {
		case r.URL.Path == "/api/v1/collections/stats":
			writeJSON(w, map[string]any{"total_owned": 2})
		case r.URL.Path == "/api/v1/collections" && r.Method == http.MethodGet:
			writeJSON(w, map[string]any{"collections": []any{map[string]any{"id": 1, "collection_type": "owned"}}})
		case strings.HasSuffix(r.URL.Path, "/move"):
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, map[string]any{"id": 5, "collection_type": lastBody["collection_type"]})
		}
	})
	ctx := context.Background()

	page, err := client.ListCollections(ctx, CollectionFilter{Token: "tok", Kind: catalog.CollectionOwned, YearFrom: 1960, Search: " "})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"type": {"owned"}, "year_from": {"1960"}}, lastQuery)
	assert.Equal(t, 1, page.Count)

	_, err = client.ListCollections(ctx, CollectionFilter{Token: "tok", Kind: "borrowed"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.AddToCollection(ctx, "tok", CollectionAdd{AlbumID: "3", Kind: "lent"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.ListCollections(ctx, CollectionFilter{})
	assert.ErrorIs(t, err, ErrValidation)
	before := calls.Load()

	item, err := client.AddToCollection(ctx, "tok", CollectionAdd{AlbumID: "3", Kind: catalog.CollectionWishlist})
	require.NoError(t, err)
	assert.Equal(t, before+1, calls.Load())
	assert.Equal(t, map[string]any{"album_id": "3", "collection_type": "wishlist"}, lastBody)
	assert.Equal(t, catalog.CollectionWishlist, item.Kind)

	moved, err := client.MoveCollectionItem(ctx, "tok", "5", catalog.CollectionOwned)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"target_type": "owned"}, lastBody)
	assert.Equal(t, catalog.CollectionOwned, moved.Kind)

	stats, err := client.CollectionStats(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOwned)
}

func TestFavorites_RequireToken(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"track_id": 4, "favorited_at": "now"})
	})
	ctx := context.Background()
	_, err := client.ListFavoriteTracks(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.FavoriteTrack(ctx, "", "4")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, client.UnfavoriteTrack(ctx, "", "4"), ErrValidation)
	assert.Equal(t, int32(0), calls.Load())

	fav, err := client.FavoriteTrack(ctx, "tok", "4")
	require.NoError(t, err)
	require.NotNil(t, fav)
	assert.Equal(t, "4", fav.TrackID)
	assert.Equal(t, "now", fav.FavoritedAt)
}

func TestAuth_FallsBackToLegacyPaths(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/login" {
			writeJSON(w, map[string]any{"token": "abc", "user": map[string]any{"username": "sam"}})
			return
		}
		http.NotFound(w, r)
	})
	res, err := client.Login(context.Background(), Credentials{Username: " sam ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, AuthResult{Token: "abc", Username: "sam"}, res)
	assert.Equal(t, []string{"/api/v1/auth/login", "/api/login"}, paths)

	_, err = client.Login(context.Background(), Credentials{Username: "sam"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestContent_FallsBackAndNormalizes(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path == "/api/v1/users/profile" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, map[string]any{"content": "first\n\n  second  "})
	})
	lines, err := client.FetchContent(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, lines)
	assert.Equal(t, "Bearer tok", gotAuth)
}

func TestPlaylists(t *testing.T) {
	var method, path string
	var body map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, map[string]any{"playlist": map[string]any{"id": 3, "name": "Late", "songs": []any{"a", "b"}}})
		}
	})
	ctx := context.Background()

	p, err := client.FetchPlaylist(ctx, "3", "")
	require.NoError(t, err)
	assert.Equal(t, "Late", p.Title)
	assert.Equal(t, 2, p.SongCount)

	_, err = client.CreatePlaylist(ctx, "", PlaylistInput{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, client.AddSongToPlaylist(ctx, "tok", "3", "11"))
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/api/v1/playlists/3/songs", path)
	assert.Equal(t, map[string]any{"song_id": "11"}, body)

	require.NoError(t, client.RemoveSongFromPlaylist(ctx, "tok", "3", "a/b"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/v1/playlists/3/songs/a/b", path)
}

// recordedRequest is what the endpoint table server saw.
type recordedRequest struct {
	method string
	path   string
	query  url.Values
	auth   string
	body   map[string]any
}

func TestEndpoints_RequestAndResult(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		response   any
		call       func(ctx context.Context, c *Client) (any, error)
		wantMethod string
		wantPath   string
		wantQuery  url.Values
		wantAuth   string
		wantBody   map[string]any
		check      func(t *testing.T, got any)
	}{
		{
			name:     "import album unwraps album",
			response: map[string]any{"album": map[string]any{"id": 5, "title": "Kind of Blue", "artist": "Miles Davis"}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.ImportAlbum(ctx, "tok", " sp-1 ", "")
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/import/album",
			wantAuth:   "Bearer tok",
			wantBody:   map[string]any{"album_id": "sp-1", "provider": "spotify"},
			check: func(t *testing.T, got any) {
				album := got.(catalog.Album)
				assert.Equal(t, "5", album.ID)
				assert.Equal(t, "Kind of Blue", album.Title)
			},
		},
		{
			name: "providers accept names and objects",
			response: map[string]any{"providers": []any{
				"spotify",
				map[string]any{"name": "discogs", "display_name": "Discogs", "enabled": false},
			}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.Providers(ctx)
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/providers",
			check: func(t *testing.T, got any) {
				assert.Equal(t, []catalog.Provider{
					{Name: "spotify", DisplayName: "spotify", Enabled: true},
					{Name: "discogs", DisplayName: "Discogs", Enabled: false},
				}, got)
			},
		},
		{
			name: "album details sorts top-level tracks",
			response: map[string]any{
				"album": map[string]any{"id": "ext1", "title": "Blue"},
				"tracks": []any{
					map[string]any{"title": "Carey", "track_number": 2},
					map[string]any{"title": "All I Want", "track_number": 1},
				},
			},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.AlbumDetails(ctx, "ext1")
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/album/details",
			wantQuery:  url.Values{"id": {"ext1"}},
			check: func(t *testing.T, got any) {
				details := got.(catalog.AlbumDetails)
				assert.Equal(t, "Blue", details.Album.Title)
				require.Len(t, details.Tracks, 2)
				assert.Equal(t, "All I Want", details.Tracks[0].Title)
				assert.Equal(t, "Carey", details.Tracks[1].Title)
				assert.Equal(t, details.Tracks, details.Album.Tracks)
			},
		},
		{
			name:     "update content",
			response: map[string]any{"content": []any{"first", "second"}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpdateContent(ctx, "tok", []string{"first", "second"})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/users/profile",
			wantAuth:   "Bearer tok",
			wantBody:   map[string]any{"content": []any{"first", "second"}},
			check: func(t *testing.T, got any) {
				assert.Equal(t, []string{"first", "second"}, got)
			},
		},
		{
			name:   "update content without body echoes input",
			status: http.StatusNoContent,
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpdateContent(ctx, "tok", nil)
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/users/profile",
			wantAuth:   "Bearer tok",
			wantBody:   map[string]any{"content": []any{}},
			check: func(t *testing.T, got any) {
				assert.Equal(t, []string{}, got)
			},
		},
		{
			name:     "save artist sends snake case fields",
			response: map[string]any{"artist": map[string]any{"external_id": "sp-9", "name": "Nina Simone", "image_url": "http://img/1"}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.SaveArtist(ctx, "tok", catalog.Artist{
					ExternalID: "sp-9",
					Name:       " Nina Simone ",
					ImageURL:   "http://img/1",
					Popularity: 70,
				})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v1/artists",
			wantAuth:   "Bearer tok",
			wantBody: map[string]any{
				"external_id":  "sp-9",
				"name":         "Nina Simone",
				"provider":     "spotify",
				"image_url":    "http://img/1",
				"biography":    "",
				"genres":       []any{},
				"popularity":   float64(70),
				"external_url": "",
			},
			check: func(t *testing.T, got any) {
				artist := got.(catalog.Artist)
				assert.Equal(t, "sp-9", artist.ExternalID)
				assert.Equal(t, "nina-simone", artist.Slug)
				assert.Equal(t, "http://img/1", artist.ImageURL)
			},
		},
		{
			name:     "fetch song unwraps song",
			response: map[string]any{"song": map[string]any{"id": 42, "title": "So What", "track_number": 1, "album_id": 5}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.FetchSong(ctx, "42", "")
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/songs/42",
			check: func(t *testing.T, got any) {
				track := got.(catalog.Track)
				assert.Equal(t, "42", track.ID)
				assert.Equal(t, "So What", track.Title)
				require.NotNil(t, track.AlbumID)
				assert.Equal(t, "5", *track.AlbumID)
			},
		},
		{
			name:   "remove album preference",
			status: http.StatusNoContent,
			call: func(ctx context.Context, c *Client) (any, error) {
				return nil, c.RemoveAlbumPreference(ctx, "tok", "9")
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/me/albums/9/preference",
			wantAuth:   "Bearer tok",
		},
		{
			name: "fetch collection item",
			response: map[string]any{
				"id": "c1", "album_id": "5", "collection_type": "owned",
				"purchase_price": 12.5, "album_title": "Kind of Blue",
			},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.FetchCollectionItem(ctx, "tok", "c1")
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/v1/collections/c1",
			wantAuth:   "Bearer tok",
			check: func(t *testing.T, got any) {
				item := got.(catalog.CollectionItem)
				assert.Equal(t, "c1", item.ID)
				assert.Equal(t, catalog.CollectionOwned, item.Kind)
				require.NotNil(t, item.PurchasePrice)
				assert.Equal(t, 12.5, *item.PurchasePrice)
				assert.Equal(t, "Kind of Blue", item.AlbumTitle)
			},
		},
		{
			name:     "update playlist keeps id when response omits it",
			response: map[string]any{"playlist": map[string]any{"name": "Late Night"}},
			call: func(ctx context.Context, c *Client) (any, error) {
				return c.UpdatePlaylist(ctx, "tok", "3", PlaylistInput{Title: "Late Night", IsPublic: true})
			},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/playlists/3",
			wantAuth:   "Bearer tok",
			wantBody:   map[string]any{"title": "Late Night", "is_public": true},
			check: func(t *testing.T, got any) {
				playlist := got.(catalog.Playlist)
				assert.Equal(t, "3", playlist.ID)
				assert.Equal(t, "Late Night", playlist.Title)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen recordedRequest
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				seen = recordedRequest{
					method: r.Method,
					path:   r.URL.Path,
					query:  r.URL.Query(),
					auth:   r.Header.Get("Authorization"),
				}
				if data, _ := io.ReadAll(r.Body); len(data) > 0 {
					_ = json.Unmarshal(data, &seen.body)
				}
				if tt.status != 0 {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.response)
			})

			got, err := tt.call(context.Background(), client)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, seen.method)
			assert.Equal(t, tt.wantPath, seen.path)
			assert.Equal(t, tt.wantAuth, seen.auth)
			if tt.wantQuery != nil {
				assert.Equal(t, tt.wantQuery, seen.query)
			}
			assert.Equal(t, tt.wantBody, seen.body)
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestEndpoints_ValidateBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	_, err := client.ImportAlbum(ctx, "tok", " ", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.AlbumDetails(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.UpdateContent(ctx, "", []string{"x"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.SaveArtist(ctx, "tok", catalog.Artist{Name: "  "})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.FetchSong(ctx, "", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, client.RemoveAlbumPreference(ctx, "", "9"), ErrValidation)
	_, err = client.FetchCollectionItem(ctx, "tok", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = client.UpdatePlaylist(ctx, "", "3", PlaylistInput{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int32(0), calls.Load())
}

func TestUpdateAlbumPreference_EmptyResponseEchoesWrittenFields(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	rating := 3
	pref, err := client.RateAlbum(ctx, "tok", "9", &rating)
	require.NoError(t, err)
	assert.Equal(t, "9", pref.AlbumID)
	require.NotNil(t, pref.Rating)
	assert.Equal(t, 3, *pref.Rating)
	assert.False(t, pref.Favorite, "favorite was not written, so it is left zero")

	pref, err = client.SetAlbumFavorite(ctx, "tok", "9", true)
	require.NoError(t, err)
	assert.True(t, pref.Favorite)
	assert.Nil(t, pref.Rating, "rating was not written, so it is left nil")
}
