package vinylhound

import (
	"context"
	"net/http"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

// PlaylistInput is the writable part of a playlist.
type PlaylistInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	IsPublic    bool     `json:"is_public"`
	Tags        []string `json:"tags,omitempty"`
}

// ListPlaylists returns the playlists visible to token.
func (c *Client) ListPlaylists(ctx context.Context, token string) ([]catalog.Playlist, error) {
	value, err := c.Request(ctx, http.MethodGet, "/v1/playlists", RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizePlaylists(value), nil
}

// FetchPlaylist returns one playlist with its songs.
func (c *Client) FetchPlaylist(ctx context.Context, id, token string) (catalog.Playlist, error) {
	if err := requireID(id, "playlist id"); err != nil {
		return catalog.Playlist{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, playlistPath(id), RequestOptions{Token: token})
	if err != nil {
		return catalog.Playlist{}, err
	}
	return playlistFrom(value, id), nil
}

// CreatePlaylist creates a playlist owned by the signed-in user.
func (c *Client) CreatePlaylist(ctx context.Context, token string, in PlaylistInput) (catalog.Playlist, error) {
	if err := requireToken(token, "create a playlist"); err != nil {
		return catalog.Playlist{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return catalog.Playlist{}, invalid("title", "must not be empty")
	}
	body, err := marshalBody(in)
	if err != nil {
		return catalog.Playlist{}, err
	}
	value, err := c.Request(ctx, http.MethodPost, "/v1/playlists", RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.Playlist{}, err
	}
	return playlistFrom(value, ""), nil
}

// UpdatePlaylist replaces the writable fields of a playlist.
func (c *Client) UpdatePlaylist(ctx context.Context, token, id string, in PlaylistInput) (catalog.Playlist, error) {
	if err := requireToken(token, "update a playlist"); err != nil {
		return catalog.Playlist{}, err
	}
	if err := requireID(id, "playlist id"); err != nil {
		return catalog.Playlist{}, err
	}
	body, err := marshalBody(in)
	if err != nil {
		return catalog.Playlist{}, err
	}
	value, err := c.Request(ctx, http.MethodPut, playlistPath(id), RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.Playlist{}, err
	}
	return playlistFrom(value, id), nil
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(ctx context.Context, token, id string) error {
	if err := requireToken(token, "delete a playlist"); err != nil {
		return err
	}
	if err := requireID(id, "playlist id"); err != nil {
		return err
	}
	_, err := c.Request(ctx, http.MethodDelete, playlistPath(id), RequestOptions{Token: token})
	return err
}

// AddSongToPlaylist appends a song to a playlist.
func (c *Client) AddSongToPlaylist(ctx context.Context, token, playlistID, songID string) error {
	if err := requireToken(token, "edit a playlist"); err != nil {
		return err
	}
	if err := requireID(playlistID, "playlist id"); err != nil {
		return err
	}
	if err := requireID(songID, "song id"); err != nil {
		return err
	}
	body, err := marshalBody(map[string]string{"song_id": strings.TrimSpace(songID)})
	if err != nil {
		return err
	}
	_, err = c.Request(ctx, http.MethodPost, playlistPath(playlistID)+"/songs", RequestOptions{Body: body, Token: token})
	return err
}

// RemoveSongFromPlaylist removes a song from a playlist.
func (c *Client) RemoveSongFromPlaylist(ctx context.Context, token, playlistID, songID string) error {
	if err := requireToken(token, "edit a playlist"); err != nil {
		return err
	}
	if err := requireID(playlistID, "playlist id"); err != nil {
		return err
	}
	if err := requireID(songID, "song id"); err != nil {
		return err
	}
	_, err := c.Request(ctx, http.MethodDelete, playlistPath(playlistID)+"/songs/"+escape(songID), RequestOptions{Token: token})
	return err
}

func playlistPath(id string) string {
	return "/v1/playlists/" + escape(id)
}

func playlistFrom(value catalog.Value, id string) catalog.Playlist {
	if nested := value.Field("playlist"); nested.Kind() == catalog.KindObject {
		value = nested
	}
	p := catalog.NormalizePlaylist(value)
	if p.ID == "" {
		p.ID = id
	}
	return p
}
