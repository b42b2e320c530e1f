package vinylhound

import (
	"context"
	"net/http"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

type artistPayload struct {
	ExternalID  string   `json:"external_id"`
	Name        string   `json:"name"`
	Provider    string   `json:"provider"`
	ImageURL    string   `json:"image_url"`
	Biography   string   `json:"biography"`
	Genres      []string `json:"genres"`
	Popularity  int      `json:"popularity"`
	ExternalURL string   `json:"external_url"`
}

// ListArtists returns the artists saved in the catalog.
func (c *Client) ListArtists(ctx context.Context, token string) ([]catalog.Artist, error) {
	value, err := c.Request(ctx, http.MethodGet, "/v1/artists", RequestOptions{Token: token})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeArtists(value), nil
}

// SaveArtist stores an artist, typically one found through Search.
func (c *Client) SaveArtist(ctx context.Context, token string, artist catalog.Artist) (catalog.Artist, error) {
	name := strings.TrimSpace(artist.Name)
	if name == "" {
		return catalog.Artist{}, invalid("name", "must not be empty")
	}
	payload := artistPayload{
		ExternalID:  artist.ExternalID,
		Name:        name,
		Provider:    artist.Provider,
		ImageURL:    artist.ImageURL,
		Biography:   artist.Biography,
		Genres:      artist.Genres,
		Popularity:  artist.Popularity,
		ExternalURL: artist.ExternalURL,
	}
	if payload.Provider == "" {
		payload.Provider = defaultSearchProvider
	}
	if payload.Genres == nil {
		payload.Genres = []string{}
	}
	body, err := marshalBody(payload)
	if err != nil {
		return catalog.Artist{}, err
	}
	value, err := c.Request(ctx, http.MethodPost, "/v1/artists", RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.Artist{}, err
	}
	if nested := value.Field("artist"); nested.Kind() == catalog.KindObject {
		value = nested
	}
	if value.Kind() != catalog.KindObject {
		return artist, nil
	}
	return catalog.NormalizeArtist(value), nil
}
