package catalog

import (
	"strings"
	"unicode"
)

const defaultArtistName = "Unknown artist"

// NormalizeArtist turns a raw artist into an Artist. A bare string is the
// artist's name.
func NormalizeArtist(v Value) Artist {
	a := Artist{Name: defaultArtistName, Genres: []string{}}
	switch v.Kind() {
	case KindObject:
	case KindString, KindNumber:
		if name, ok := v.Text(); ok {
			a.Name = name
		}
		a.Slug = Slugify(a.Name)
		return a
	case KindNull, KindBool, KindArray:
		return a
	default:
		return a
	}

	a.ExternalID = textOr(v, "", "externalId", "external_id", "id", "spotify_id")
	a.Name = textOr(v, defaultArtistName, "name", "title", "artist_name")
	a.Slug = textOr(v, Slugify(a.Name), "slug")
	a.Provider = textOr(v, "", "provider", "source")
	a.ImageURL = textOr(v, "", "imageUrl", "image_url", "imageURL")
	if a.ImageURL == "" {
		if images := v.Field("images").Items(); len(images) > 0 {
			a.ImageURL = textOr(images[0], "", "url")
		}
	}
	a.Biography = textOr(v, "", "biography", "bio")
	a.Genres = discoverGenres(v)
	a.Popularity, _ = countOf(v, "popularity")
	a.ExternalURL = textOr(v, "", "externalUrl", "external_url", "externalURL")
	if a.ExternalURL == "" {
		a.ExternalURL = textOr(v.Field("external_urls"), "", "spotify")
	}
	return a
}

// NormalizeArtists normalizes an artist list or a wrapper holding one.
func NormalizeArtists(v Value) []Artist {
	items := listOf(v, "artists", "items", "data")
	artists := make([]Artist, 0, len(items))
	for _, item := range items {
		artists = append(artists, NormalizeArtist(item))
	}
	return artists
}

// NormalizeArtistDetails reads an artist together with its discography. The
// artist may be nested under "artist" or spread over the top level.
func NormalizeArtistDetails(v Value) ArtistDetails {
	artist := v
	if nested := v.Field("artist"); nested.Kind() == KindObject {
		artist = nested
	}
	return ArtistDetails{
		Artist: NormalizeArtist(artist),
		Albums: NormalizeAlbums(Array(listOf(v, "albums")...)),
	}
}

// NormalizeAlbumDetails reads an external album with its tracks, sorted by
// track number.
func NormalizeAlbumDetails(v Value) AlbumDetails {
	raw := v
	if nested := v.Field("album"); nested.Kind() == KindObject {
		raw = nested
	}
	album := NormalizeAlbum(raw)
	tracks := album.Tracks
	if items := listOf(v, "tracks"); len(items) > 0 {
		tracks = NormalizeTracks(Array(items...), album.ID)
	}
	tracks = append([]Track{}, tracks...)
	SortTracks(tracks)
	album.Tracks = tracks
	return AlbumDetails{Album: album, Tracks: tracks}
}

// Slugify lowercases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
