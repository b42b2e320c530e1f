package vinylhound

import (
	"context"
	"net/http"

	"github.com/five82/crate/internal/catalog"
)

const favoritesPath = "/v1/me/favorites/tracks"

// ListFavoriteTracks returns the signed-in user's favorite tracks.
func (c *Client) ListFavoriteTracks(ctx context.Context, token string) ([]catalog.FavoriteTrack, error) {
	if err := requireToken(token, "list favorite tracks"); err != nil {
		return nil, err
	}
	value, err := c.Request(ctx, http.MethodGet, favoritesPath, RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeFavoriteTracks(value), nil
}

// FavoriteTrack marks a track as favorite. It returns nil when the backend
// reports no change.
func (c *Client) FavoriteTrack(ctx context.Context, token, trackID string) (*catalog.FavoriteTrack, error) {
	if err := requireToken(token, "favorite a track"); err != nil {
		return nil, err
	}
	if err := requireID(trackID, "track id"); err != nil {
		return nil, err
	}
	value, err := c.Request(ctx, http.MethodPut, favoritesPath+"/"+escape(trackID), RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	if value.Kind() != catalog.KindObject {
		return nil, nil
	}
	fav := catalog.NormalizeFavoriteTrack(value)
	if fav.TrackID == "" {
		fav.TrackID = trackID
	}
	return &fav, nil
}

// UnfavoriteTrack removes a track from the favorites.
func (c *Client) UnfavoriteTrack(ctx context.Context, token, trackID string) error {
	if err := requireToken(token, "unfavorite a track"); err != nil {
		return err
	}
	if err := requireID(trackID, "track id"); err != nil {
		return err
	}
	_, err := c.Request(ctx, http.MethodDelete, favoritesPath+"/"+escape(trackID), RequestOptions{Token: token})
	return err
}
