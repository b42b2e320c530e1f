package catalog

import (
	"strings"
)

var coverFields = []string{
	"coverUrl", "cover_url", "coverURL", "cover_image_url", "coverImageUrl",
	"image_url", "imageUrl", "artwork", "cover",
}

// NormalizeAlbum turns any album-shaped value into an Album. A bare string is
// taken as the title. Slices on the result are never nil.
func NormalizeAlbum(v Value) Album {
	a := Album{Artists: []string{}, Genres: []string{}, Tracks: []Track{}}
	switch v.Kind() {
	case KindObject:
	case KindString, KindNumber:
		a.Title, _ = v.Text()
		return a
	case KindNull, KindBool, KindArray:
		return a
	default:
		return a
	}

	a.Title = textOr(v, "", "title", "name", "album_title", "albumTitle")
	a.Artists = stringList(v.Field("artists"))
	if artist, ok := nameOf(v.Field("artist"), "name"); ok {
		a.Artist = artist
	} else if artist, ok := firstText(v, "artist_name", "artistName", "album_artist"); ok {
		a.Artist = artist
	} else if len(a.Artists) > 0 {
		a.Artist = strings.Join(a.Artists, ", ")
	}
	if len(a.Artists) == 0 && a.Artist != "" {
		a.Artists = []string{a.Artist}
	}

	a.ID = albumID(v, a.Artist, a.Title)

	if year, ok := firstFloat(v, "releaseYear", "release_year", "year"); ok && year > 0 {
		a.ReleaseYear = intPtr(int(year))
	} else if date, ok := firstText(v, "releaseDate", "release_date"); ok {
		if year, ok := String(yearPrefix(date)).Float(); ok && year > 0 {
			a.ReleaseYear = intPtr(int(year))
		}
	}
	a.CoverURL = textOr(v, "", coverFields...)
	a.Genres = discoverGenres(v)

	if avg, ok := firstFloat(v, "averageRating", "average_rating", "ratingAverage", "rating_average", "avg_rating"); ok && avg >= 0 {
		a.AverageRating = floatPtr(avg)
	}
	a.RatingCount, _ = countOf(v, "ratingCount", "rating_count", "ratingsCount", "num_ratings")
	a.Rating = userRating(v)
	a.Favorite = favoriteFlag(v)

	if items := discoverTrackList(v); len(items) > 0 {
		for i, item := range items {
			t := NormalizeTrack(item, i)
			if t.AlbumID == nil && a.ID != "" {
				t.AlbumID = stringPtr(a.ID)
			}
			a.Tracks = append(a.Tracks, t)
		}
	}
	return a
}

// albumID follows the identifier chain and falls back to "artist-title" when
// both are known.
func albumID(v Value, artist, title string) string {
	if id, ok := firstText(v, "id", "external_id", "externalId", "_id", "slug"); ok {
		return id
	}
	if artist != "" && title != "" {
		return artist + "-" + title
	}
	return ""
}

func yearPrefix(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// discoverGenres reads the genre list from the first populated alias.
func discoverGenres(v Value) []string {
	for _, name := range []string{"genres", "genreList"} {
		field := v.Field(name)
		if field.Kind() != KindArray {
			continue
		}
		if list := stringList(field); len(list) > 0 {
			return list
		}
	}
	for _, name := range []string{"genre", "primaryGenre", "genreTags"} {
		if list := stringList(v.Field(name)); len(list) > 0 {
			return list
		}
	}
	return []string{}
}

// NormalizeAlbums normalizes an album list or a wrapper holding one.
func NormalizeAlbums(v Value) []Album {
	items := listOf(v, "albums", "items", "results", "data")
	albums := make([]Album, 0, len(items))
	for _, item := range items {
		albums = append(albums, NormalizeAlbum(item))
	}
	return albums
}
