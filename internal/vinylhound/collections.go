package vinylhound

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/five82/crate/internal/catalog"
)

// CollectionFilter narrows ListCollections. Zero fields are not sent.
type CollectionFilter struct {
	Token     string
	Kind      catalog.CollectionKind
	Artist    string
	Genre     string
	YearFrom  int
	YearTo    int
	Condition string
	Search    string
	Limit     int
	Offset    int
}

func (f CollectionFilter) values() (url.Values, error) {
	values := url.Values{}
	if f.Kind != "" {
		kind, err := validKind(string(f.Kind))
		if err != nil {
			return nil, err
		}
		values.Set("type", string(kind))
	}
	if s := strings.TrimSpace(f.Artist); s != "" {
		values.Set("artist", s)
	}
	if s := strings.TrimSpace(f.Genre); s != "" {
		values.Set("genre", s)
	}
	if f.YearFrom > 0 {
		values.Set("year_from", strconv.Itoa(f.YearFrom))
	}
	if f.YearTo > 0 {
		values.Set("year_to", strconv.Itoa(f.YearTo))
	}
	if s := strings.TrimSpace(f.Condition); s != "" {
		values.Set("condition", s)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		values.Set("search", s)
	}
	if f.Limit > 0 {
		values.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		values.Set("offset", strconv.Itoa(f.Offset))
	}
	return values, nil
}

func validKind(raw string) (catalog.CollectionKind, error) {
	kind, ok := catalog.ParseCollectionKind(raw)
	if !ok {
		return "", invalid("collection type", "must be wishlist or owned, got "+strconv.Quote(raw))
	}
	return kind, nil
}

// ListCollections returns one page of the user's collection.
func (c *Client) ListCollections(ctx context.Context, filter CollectionFilter) (catalog.CollectionPage, error) {
	if err := requireToken(filter.Token, "list collections"); err != nil {
		return catalog.CollectionPage{}, err
	}
	query, err := filter.values()
	if err != nil {
		return catalog.CollectionPage{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/collections", RequestOptions{Token: filter.Token, Query: query})
	if err != nil {
		return catalog.CollectionPage{}, err
	}
	return catalog.NormalizeCollectionPage(value), nil
}

// FetchCollectionItem returns one collection item.
func (c *Client) FetchCollectionItem(ctx context.Context, token, id string) (catalog.CollectionItem, error) {
	if err := requireToken(token, "load a collection item"); err != nil {
		return catalog.CollectionItem{}, err
	}
	if err := requireID(id, "collection id"); err != nil {
		return catalog.CollectionItem{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, collectionPath(id), RequestOptions{Token: token})
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	return catalog.NormalizeCollectionItem(value), nil
}

// CollectionAdd places an album on the wishlist or the shelf.
type CollectionAdd struct {
	AlbumID       string
	Kind          catalog.CollectionKind
	Notes         string
	DateAcquired  string
	PurchasePrice *float64
	Condition     string
}

// AddToCollection adds an album to the user's collection.
func (c *Client) AddToCollection(ctx context.Context, token string, in CollectionAdd) (catalog.CollectionItem, error) {
	if err := requireToken(token, "add to a collection"); err != nil {
		return catalog.CollectionItem{}, err
	}
	if err := requireID(in.AlbumID, "album id"); err != nil {
		return catalog.CollectionItem{}, err
	}
	kind, err := validKind(string(in.Kind))
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	payload := map[string]any{
		"album_id":        strings.TrimSpace(in.AlbumID),
		"collection_type": string(kind),
	}
	if in.Notes != "" {
		payload["notes"] = in.Notes
	}
	if in.DateAcquired != "" {
		payload["date_acquired"] = in.DateAcquired
	}
	if in.PurchasePrice != nil {
		payload["purchase_price"] = *in.PurchasePrice
	}
	if in.Condition != "" {
		payload["condition"] = in.Condition
	}
	body, err := marshalBody(payload)
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	value, err := c.Request(ctx, http.MethodPost, "/v1/collections", RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	return catalog.NormalizeCollectionItem(value), nil
}

// CollectionUpdate edits a collection item. Nil fields are left unchanged.
type CollectionUpdate struct {
	Notes         *string
	DateAcquired  *string
	PurchasePrice *float64
	Condition     *string
}

// UpdateCollectionItem edits a collection item.
func (c *Client) UpdateCollectionItem(ctx context.Context, token, id string, in CollectionUpdate) (catalog.CollectionItem, error) {
	if err := requireToken(token, "update a collection item"); err != nil {
		return catalog.CollectionItem{}, err
	}
	if err := requireID(id, "collection id"); err != nil {
		return catalog.CollectionItem{}, err
	}
	payload := map[string]any{}
	if in.Notes != nil {
		payload["notes"] = *in.Notes
	}
	if in.DateAcquired != nil {
		payload["date_acquired"] = *in.DateAcquired
	}
	if in.PurchasePrice != nil {
		payload["purchase_price"] = *in.PurchasePrice
	}
	if in.Condition != nil {
		payload["condition"] = *in.Condition
	}
	body, err := marshalBody(payload)
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	value, err := c.Request(ctx, http.MethodPut, collectionPath(id), RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	return catalog.NormalizeCollectionItem(value), nil
}

// RemoveFromCollection deletes a collection item.
func (c *Client) RemoveFromCollection(ctx context.Context, token, id string) error {
	if err := requireToken(token, "remove a collection item"); err != nil {
		return err
	}
	if err := requireID(id, "collection id"); err != nil {
		return err
	}
	_, err := c.Request(ctx, http.MethodDelete, collectionPath(id), RequestOptions{Token: token})
	return err
}

// MoveCollectionItem moves an item between the wishlist and the shelf.
func (c *Client) MoveCollectionItem(ctx context.Context, token, id string, target catalog.CollectionKind) (catalog.CollectionItem, error) {
	if err := requireToken(token, "move a collection item"); err != nil {
		return catalog.CollectionItem{}, err
	}
	if err := requireID(id, "collection id"); err != nil {
		return catalog.CollectionItem{}, err
	}
	kind, err := validKind(string(target))
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	body, err := marshalBody(map[string]string{"target_type": string(kind)})
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	value, err := c.Request(ctx, http.MethodPost, collectionPath(id)+"/move", RequestOptions{Body: body, Token: token})
	if err != nil {
		return catalog.CollectionItem{}, err
	}
	if value.Kind() != catalog.KindObject {
		return catalog.CollectionItem{ID: id, Kind: kind}, nil
	}
	return catalog.NormalizeCollectionItem(value), nil
}

// CollectionStats summarises the user's collection.
func (c *Client) CollectionStats(ctx context.Context, token string) (catalog.CollectionStats, error) {
	if err := requireToken(token, "load collection stats"); err != nil {
		return catalog.CollectionStats{}, err
	}
	value, err := c.Request(ctx, http.MethodGet, "/v1/collections/stats", RequestOptions{Token: token})
	if err != nil {
		return catalog.CollectionStats{}, err
	}
	return catalog.NormalizeCollectionStats(value), nil
}

func collectionPath(id string) string {
	return "/v1/collections/" + escape(id)
}
