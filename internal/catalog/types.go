package catalog

import (
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// Track is a canonical track or song.
type Track struct {
	ID            string  `json:"id,omitempty"`
	Title         string  `json:"title"`
	TrackNumber   int     `json:"trackNumber"`
	LengthSeconds *int    `json:"lengthSeconds,omitempty"`
	LengthLabel   *string `json:"lengthLabel,omitempty"`
	AlbumID       *string `json:"albumId,omitempty"`
	Artist        string  `json:"artist,omitempty"`
	Album         string  `json:"album,omitempty"`
}

// Album is a canonical album record.
type Album struct {
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Artists       []string `json:"artists"`
	ReleaseYear   *int     `json:"releaseYear,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
	Genres        []string `json:"genres"`
	AverageRating *float64 `json:"averageRating,omitempty"`
	RatingCount   int      `json:"ratingCount"`
	Rating        *int     `json:"rating,omitempty"`
	Favorite      bool     `json:"favorite"`
	Tracks        []Track  `json:"tracks"`
}

// Playlist is a canonical playlist.
type Playlist struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Owner       string   `json:"owner"`
	IsPublic    bool     `json:"isPublic"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	SongCount   int      `json:"songCount"`
	Tracks      []Track  `json:"tracks"`
}

// ParsedCreatedAt returns the creation timestamp as time.Time when possible.
func (p Playlist) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// CollectionKind separates the wishlist from owned records.
type CollectionKind string

const (
	CollectionWishlist CollectionKind = "wishlist"
	CollectionOwned    CollectionKind = "owned"
)

// ParseCollectionKind accepts exactly the two known kinds, case-insensitively.
func ParseCollectionKind(value string) (CollectionKind, bool) {
	switch CollectionKind(strings.ToLower(strings.TrimSpace(value))) {
	case CollectionWishlist:
		return CollectionWishlist, true
	case CollectionOwned:
		return CollectionOwned, true
	default:
		return "", false
	}
}

// CollectionItem is an album placed on a user's wishlist or shelf.
type CollectionItem struct {
	ID               string         `json:"id,omitempty"`
	UserID           string         `json:"userId,omitempty"`
	AlbumID          string         `json:"albumId,omitempty"`
	Kind             CollectionKind `json:"kind"`
	Notes            string         `json:"notes"`
	DateAdded        string         `json:"dateAdded,omitempty"`
	DateAcquired     string         `json:"dateAcquired,omitempty"`
	PurchasePrice    *float64       `json:"purchasePrice,omitempty"`
	Condition        string         `json:"condition,omitempty"`
	CreatedAt        string         `json:"createdAt,omitempty"`
	UpdatedAt        string         `json:"updatedAt,omitempty"`
	AlbumTitle       string         `json:"albumTitle,omitempty"`
	AlbumArtist      string         `json:"albumArtist,omitempty"`
	AlbumReleaseYear *int           `json:"albumReleaseYear,omitempty"`
	AlbumGenre       string         `json:"albumGenre,omitempty"`
	AlbumCoverURL    string         `json:"albumCoverUrl,omitempty"`
}

// ParsedDateAdded returns DateAdded as time.Time when possible.
func (c CollectionItem) ParsedDateAdded() time.Time {
	return parseTime(c.DateAdded)
}

// CollectionPage is one page of collection items plus the backend's total.
type CollectionPage struct {
	Items []CollectionItem `json:"collections"`
	Count int              `json:"count"`
}

// CollectionStats summarises a user's collection.
type CollectionStats struct {
	TotalWishlist int            `json:"totalWishlist"`
	TotalOwned    int            `json:"totalOwned"`
	TotalValue    float64        `json:"totalValue"`
	ByGenre       map[string]int `json:"byGenre"`
	ByCondition   map[string]int `json:"byCondition"`
}

// FavoriteTrack is one entry of the favorite-tracks list.
type FavoriteTrack struct {
	TrackID     string `json:"trackId,omitempty"`
	FavoritedAt string `json:"favoritedAt,omitempty"`
	Track       *Track `json:"track,omitempty"`
}

// Artist is a canonical artist record.
type Artist struct {
	ExternalID  string   `json:"externalId,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Name        string   `json:"name"`
	Provider    string   `json:"provider,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Biography   string   `json:"biography,omitempty"`
	Genres      []string `json:"genres"`
	Popularity  int      `json:"popularity"`
	ExternalURL string   `json:"externalUrl,omitempty"`
}

// ArtistDetails pairs an artist with its albums.
type ArtistDetails struct {
	Artist Artist  `json:"artist"`
	Albums []Album `json:"albums"`
}

// AlbumDetails pairs an external album with its full track list.
type AlbumDetails struct {
	Album  Album   `json:"album"`
	Tracks []Track `json:"tracks"`
}

// Preference is the per-user (favorite, rating) pair for one album.
type Preference struct {
	AlbumID  string `json:"albumId"`
	Favorite bool   `json:"favorite"`
	Rating   *int   `json:"rating,omitempty"`
	Album    *Album `json:"album,omitempty"`
}

// SearchResults holds the three result kinds of a multi-kind search.
type SearchResults struct {
	Artists []Artist `json:"artists"`
	Albums  []Album  `json:"albums"`
	Tracks  []Track  `json:"tracks"`
}

// Empty reports whether no kind returned anything.
func (r SearchResults) Empty() bool {
	return len(r.Artists)+len(r.Albums)+len(r.Tracks) == 0
}

// EmptySearchResults returns results with all three lists allocated.
func EmptySearchResults() SearchResults {
	return SearchResults{Artists: []Artist{}, Albums: []Album{}, Tracks: []Track{}}
}

// Provider is a music metadata provider offered by the backend.
type Provider struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Enabled     bool   `json:"enabled"`
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(timestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
