package vinylhound

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

// SongQuery filters the song listing. Blank fields are not sent.
type SongQuery struct {
	Query   string
	Artist  string
	Album   string
	AlbumID string
	Token   string
}

func (q SongQuery) values() url.Values {
	values := url.Values{}
	if s := strings.TrimSpace(q.Query); s != "" {
		values.Set("q", s)
	}
	if s := strings.TrimSpace(q.Artist); s != "" {
		values.Set("artist", s)
	}
	if s := strings.TrimSpace(q.Album); s != "" {
		values.Set("album", s)
	}
	if s := strings.TrimSpace(q.AlbumID); s != "" {
		values.Set("album_id", s)
	}
	return values
}

// SearchSongs lists songs matching q.
func (c *Client) SearchSongs(ctx context.Context, q SongQuery) ([]catalog.Track, error) {
	value, err := c.Request(ctx, http.MethodGet, "/v1/songs", RequestOptions{Token: q.Token, Query: q.values()})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeTracks(value, strings.TrimSpace(q.AlbumID)), nil
}

// FetchSong returns one song.
func (c *Client) FetchSong(ctx context.Context, id, token string) (catalog.Track, error) {
	if err := requireID(id, "song id"); err != nil {
		return catalog.Track{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/songs/"+escape(id), RequestOptions{Token: token})
	if err != nil {
		return catalog.Track{}, err
	}
	if nested := value.Field("song"); nested.Kind() == catalog.KindObject {
		value = nested
	}
	return catalog.NormalizeTrack(value, 0), nil
}
