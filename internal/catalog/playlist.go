package catalog

const (
	defaultPlaylistTitle = "Untitled playlist"
	defaultCurator       = "Unknown curator"
)

// NormalizePlaylist turns a raw playlist into a Playlist.
func NormalizePlaylist(v Value) Playlist {
	p := Playlist{
		Title:  defaultPlaylistTitle,
		Owner:  defaultCurator,
		Tags:   []string{},
		Tracks: []Track{},
	}
	switch v.Kind() {
	case KindObject:
	case KindString, KindNumber:
		if title, ok := v.Text(); ok {
			p.Title = title
		}
		return p
	case KindNull, KindBool, KindArray:
		return p
	default:
		return p
	}

	p.ID = textOr(v, "", "id", "playlist_id", "playlistId", "_id")
	p.Title = textOr(v, defaultPlaylistTitle, "title", "name")
	if desc, ok := v.Field("description").Text(); ok {
		p.Description = desc
	}
	if owner, ok := nameOf(v.Field("owner"), "username", "name", "display_name"); ok {
		p.Owner = owner
	} else {
		p.Owner = textOr(v, defaultCurator, "owner_name", "ownerName", "curator", "username")
	}
	if public, ok := firstTruth(v, "isPublic", "is_public", "public"); ok {
		p.IsPublic = public
	}
	if tags := v.Field("tags"); tags.Kind() == KindArray {
		p.Tags = stringList(tags)
	}
	p.CreatedAt = textOr(v, "", "createdAt", "created_at")

	p.Tracks = NormalizeTracks(Array(discoverTrackList(v)...), "")
	if count, ok := countOf(v, "songCount", "song_count", "trackCount", "track_count"); ok {
		p.SongCount = count
	} else {
		p.SongCount = len(p.Tracks)
	}
	return p
}

// NormalizePlaylists normalizes a playlist list or a wrapper holding one.
func NormalizePlaylists(v Value) []Playlist {
	items := listOf(v, "playlists", "items", "data")
	playlists := make([]Playlist, 0, len(items))
	for _, item := range items {
		playlists = append(playlists, NormalizePlaylist(item))
	}
	return playlists
}
