package vinylhound

import (
	"context"
	"net/http"
	"net/url"

	"github.com/five82/crate/internal/catalog"
)

// AlbumListOptions configures ListAlbums.
type AlbumListOptions struct {
	Token string
	// IncludeTracks attaches every album's tracks using one extra
	// catalog-wide track fetch.
	IncludeTracks bool
}

// ListAlbums returns the album catalog.
func (c *Client) ListAlbums(ctx context.Context, opts AlbumListOptions) ([]catalog.Album, error) {
	query := url.Values{}
	if opts.IncludeTracks {
		query.Set("tracks", "true")
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/albums", RequestOptions{Token: opts.Token, Query: query})
	if err != nil {
		return nil, err
	}
	albums := catalog.NormalizeAlbums(value)
	if opts.IncludeTracks {
		c.attachTracks(ctx, albums, opts.Token)
	}
	return albums, nil
}

// attachTracks fills in track lists for albums that arrived without one.
// Failure leaves the albums untouched.
func (c *Client) attachTracks(ctx context.Context, albums []catalog.Album, token string) {
	missing := false
	for _, a := range albums {
		if len(a.Tracks) == 0 {
			missing = true
			break
		}
	}
	if !missing {
		return
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/songs", RequestOptions{Token: token})
	if err != nil {
		c.log.WithError(err).Warn("unable to attach tracks to album list")
		return
	}
	grouped := map[string][]catalog.Track{}
	for _, t := range catalog.NormalizeTracks(value, "") {
		if t.AlbumID == nil {
			continue
		}
		key := catalog.AlbumKey(*t.AlbumID)
		grouped[key] = append(grouped[key], t)
	}
	for i := range albums {
		if len(albums[i].Tracks) > 0 {
			continue
		}
		tracks := grouped[catalog.AlbumKey(albums[i].ID)]
		if len(tracks) == 0 {
			continue
		}
		tracks = append([]catalog.Track(nil), tracks...)
		catalog.SortTracks(tracks)
		albums[i].Tracks = tracks
	}
}

// FetchAlbum returns one album. When the album payload has no tracks they
// are fetched from the song listing; if that fails the album is still
// returned, with no tracks.
func (c *Client) FetchAlbum(ctx context.Context, id, token string) (catalog.Album, error) {
	if err := requireID(id, "album id"); err != nil {
		return catalog.Album{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/albums/"+escape(id), RequestOptions{Token: token})
	if err != nil {
		return catalog.Album{}, err
	}
	if nested := value.Field("album"); nested.Kind() == catalog.KindObject {
		value = nested
	}
	album := catalog.NormalizeAlbum(value)
	if album.ID == "" {
		album.ID = id
	}
	if len(album.Tracks) == 0 {
		album.Tracks = c.fetchAlbumTracks(ctx, id, token)
	}
	catalog.SortTracks(album.Tracks)
	return album, nil
}

func (c *Client) fetchAlbumTracks(ctx context.Context, id, token string) []catalog.Track {
	query := url.Values{}
	query.Set("album_id", id)
	value, err := c.Request(ctx, http.MethodGet, "/v1/songs", RequestOptions{Token: token, Query: query})
	if err != nil {
		c.log.WithError(err).WithField("album_id", id).Warn("unable to fetch album tracks")
		return []catalog.Track{}
	}
	return catalog.NormalizeTracks(value, id)
}

// FetchUserAlbums returns the signed-in user's album preferences.
func (c *Client) FetchUserAlbums(ctx context.Context, token string) ([]catalog.Preference, error) {
	if err := requireToken(token, "load album preferences"); err != nil {
		return nil, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/me/albums", RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizePreferences(value), nil
}

// PreferenceUpdate describes a write to the (favorite, rating) pair of one
// album. Nil fields are left unchanged on the server; ClearRating removes
// the rating.
type PreferenceUpdate struct {
	Favorite    *bool
	Rating      *int
	ClearRating bool
}

func (u PreferenceUpdate) validate() error {
	if u.Rating != nil && u.ClearRating {
		return invalid("rating", "cannot set and clear the rating at once")
	}
	if u.Rating != nil && !catalog.ValidRating(*u.Rating) {
		return invalid("rating", "must be between 1 and 5")
	}
	if u.Favorite == nil && u.Rating == nil && !u.ClearRating {
		return invalid("preference", "nothing to update")
	}
	return nil
}

func (u PreferenceUpdate) payload() map[string]any {
	out := map[string]any{}
	if u.Favorite != nil {
		out["favorited"] = *u.Favorite
	}
	if u.Rating != nil {
		out["rating"] = *u.Rating
	}
	if u.ClearRating {
		out["rating"] = nil
	}
	return out
}

// UpdateAlbumPreference writes the fields set in update and leaves the rest
// alone. When the server answers without an object the result only echoes
// update: a favorite or rating that was not written comes back zero and says
// nothing about the stored value.
func (c *Client) UpdateAlbumPreference(ctx context.Context, token, albumID string, update PreferenceUpdate) (catalog.Preference, error) {
	if err := requireToken(token, "update album preferences"); err != nil {
		return catalog.Preference{}, err
	}
	if err := requireID(albumID, "album id"); err != nil {
		return catalog.Preference{}, err
	}
	if err := update.validate(); err != nil {
		return catalog.Preference{}, err
	}
	body, err := marshalBody(update.payload())
	if err != nil {
		return catalog.Preference{}, err
	}
	value, err := c.Request(ctx, http.MethodPut, preferencePath(albumID), RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.Preference{}, err
	}
	if value.Kind() != catalog.KindObject {
		pref := catalog.Preference{AlbumID: albumID, Rating: update.Rating}
		if update.Favorite != nil {
			pref.Favorite = *update.Favorite
		}
		return pref, nil
	}
	pref := catalog.NormalizePreference(value)
	if pref.AlbumID == "" {
		pref.AlbumID = albumID
	}
	return pref, nil
}

// SetAlbumFavorite sets the favorite flag without touching the rating.
func (c *Client) SetAlbumFavorite(ctx context.Context, token, albumID string, favorite bool) (catalog.Preference, error) {
	return c.UpdateAlbumPreference(ctx, token, albumID, PreferenceUpdate{Favorite: &favorite})
}

// RateAlbum sets the rating (1..5) or clears it when rating is nil, without
// touching the favorite flag. Out-of-range ratings never reach the network.
func (c *Client) RateAlbum(ctx context.Context, token, albumID string, rating *int) (catalog.Preference, error) {
	if rating == nil {
		return c.UpdateAlbumPreference(ctx, token, albumID, PreferenceUpdate{ClearRating: true})
	}
	r := *rating
	return c.UpdateAlbumPreference(ctx, token, albumID, PreferenceUpdate{Rating: &r})
}

// RemoveAlbumPreference deletes the preference for albumID.
func (c *Client) RemoveAlbumPreference(ctx context.Context, token, albumID string) error {
	if err := requireToken(token, "remove album preferences"); err != nil {
		return err
	}
	if err := requireID(albumID, "album id"); err != nil {
		return err
	}
	_, err := c.Request(ctx, http.MethodDelete, preferencePath(albumID), RequestOptions{Token: token})
	return err
}

func preferencePath(albumID string) string {
	return "/v1/me/albums/" + escape(albumID) + "/preference"
}
