package catalog

// NormalizePreference reads one (favorite, rating) entry. The flags may sit
// at the top level or inside a "preference" object; the album may be nested
// or be the entry itself.
func NormalizePreference(v Value) Preference {
	if v.Kind() != KindObject {
		return Preference{}
	}
	source := v
	if pref := v.Field("preference"); pref.Kind() == KindObject {
		source = pref
	}
	p := Preference{
		Favorite: favoriteFlag(source),
		Rating:   userRating(source),
	}
	nested := v.Field("album")
	if nested.Kind() == KindObject {
		album := NormalizeAlbum(nested)
		p.Album = &album
	}
	p.AlbumID = textOr(v, "", "albumId", "album_id")
	if p.AlbumID == "" && p.Album != nil {
		p.AlbumID = p.Album.ID
	}
	if p.AlbumID == "" {
		p.AlbumID = textOr(v, "", "id")
	}
	return p
}

// NormalizePreferences reads the user's album preference listing.
func NormalizePreferences(v Value) []Preference {
	items := listOf(v, "albums", "preferences", "items")
	out := make([]Preference, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizePreference(item))
	}
	return out
}
