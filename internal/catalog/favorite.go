package catalog

// NormalizeFavoriteTrack reads one favorite entry. The entry may wrap the
// track under "track" or be the track itself.
func NormalizeFavoriteTrack(v Value) FavoriteTrack {
	if v.Kind() != KindObject {
		return FavoriteTrack{}
	}
	nested := v.Field("track")
	fav := FavoriteTrack{
		TrackID:     textOr(v, "", "trackId", "track_id", "id"),
		FavoritedAt: textOr(v, "", "favoritedAt", "favorited_at"),
	}
	if fav.TrackID == "" {
		fav.TrackID = textOr(nested, "", "id", "track_id")
	}
	if nested.Kind() == KindObject {
		t := NormalizeTrack(nested, 0)
		if t.ID == "" {
			t.ID = fav.TrackID
		}
		fav.Track = &t
	}
	return fav
}

// NormalizeFavoriteTracks reads the favorite-tracks listing.
func NormalizeFavoriteTracks(v Value) []FavoriteTrack {
	items := listOf(v, "tracks", "favorites", "items")
	out := make([]FavoriteTrack, 0, len(items))
	for _, item := range items {
		out = append(out, NormalizeFavoriteTrack(item))
	}
	return out
}
