package vinylhound

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

const (
	defaultSearchType     = "all"
	defaultSearchProvider = "spotify"
	defaultSearchLimit    = 20
)

// SearchRequest is a multi-kind catalog search.
type SearchRequest struct {
	Query        string
	Type         string
	Provider     string
	Limit        int
	StoreResults bool
	Token        string
}

type searchPayload struct {
	Query        string `json:"query"`
	Type         string `json:"type"`
	Provider     string `json:"provider"`
	Limit        int    `json:"limit"`
	StoreResults bool   `json:"store_results"`
}

// Search runs one query across artists, albums and tracks.
func (c *Client) Search(ctx context.Context, req SearchRequest) (catalog.SearchResults, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return catalog.EmptySearchResults(), invalid("query", "must not be empty")
	}
	payload := searchPayload{
		Query:        query,
		Type:         strings.TrimSpace(req.Type),
		Provider:     strings.TrimSpace(req.Provider),
		Limit:        req.Limit,
		StoreResults: req.StoreResults,
	}
	if payload.Type == "" {
		payload.Type = defaultSearchType
	}
	if payload.Provider == "" {
		payload.Provider = defaultSearchProvider
	}
	if payload.Limit <= 0 {
		payload.Limit = defaultSearchLimit
	}
	body, err := marshalBody(payload)
	if err != nil {
		return catalog.EmptySearchResults(), err
	}
	value, err := c.Request(ctx, http.MethodPost, "/v1/search", RequestOptions{Body: body, Token: req.Token})
	if err != nil {
		return catalog.EmptySearchResults(), err
	}
	return catalog.NormalizeSearchResults(value), nil
}

// ImportAlbum asks the backend to import an external album into the catalog.
func (c *Client) ImportAlbum(ctx context.Context, token, albumID, provider string) (catalog.Album, error) {
	if err := requireID(albumID, "album id"); err != nil {
		return catalog.Album{}, err
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		provider = defaultSearchProvider
	}
	body, err := marshalBody(map[string]string{"album_id": strings.TrimSpace(albumID), "provider": provider})
	if err != nil {
		return catalog.Album{}, err
	}
	value, err := c.Request(ctx, http.MethodPost, "/v1/import/album", RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.Album{}, err
	}
	if nested := value.Field("album"); nested.Kind() == catalog.KindObject {
		value = nested
	}
	return catalog.NormalizeAlbum(value), nil
}

// Providers lists the metadata providers the backend can search.
func (c *Client) Providers(ctx context.Context) ([]catalog.Provider, error) {
	value, err := c.Request(ctx, http.MethodGet, "/v1/providers", RequestOptions{})
	if err != nil {
		return nil, err
	}
	return catalog.NormalizeProviders(value), nil
}

// ArtistDetails looks up an external artist and its albums.
func (c *Client) ArtistDetails(ctx context.Context, id string) (catalog.ArtistDetails, error) {
	if err := requireID(id, "artist id"); err != nil {
		return catalog.ArtistDetails{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/artist", RequestOptions{Query: url.Values{"id": {strings.TrimSpace(id)}}})
	if err != nil {
		return catalog.ArtistDetails{}, err
	}
	return catalog.NormalizeArtistDetails(value), nil
}

// AlbumDetails looks up an external album and its tracks.
func (c *Client) AlbumDetails(ctx context.Context, id string) (catalog.AlbumDetails, error) {
	if err := requireID(id, "album id"); err != nil {
		return catalog.AlbumDetails{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/album/details", RequestOptions{Query: url.Values{"id": {strings.TrimSpace(id)}}})
	if err != nil {
		return catalog.AlbumDetails{}, err
	}
	return catalog.NormalizeAlbumDetails(value), nil
}
