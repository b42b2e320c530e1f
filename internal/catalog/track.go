package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var trackListFields = []string{"tracks", "trackList", "tracklist", "track_list", "songs", "songList", "song_list"}

var durationFields = []string{
	"lengthSeconds", "length_seconds", "durationSeconds", "duration_seconds",
	"duration", "length", "seconds",
}

// NormalizeTrack turns one raw track entry into a Track. index is the
// zero-based position of the entry in its list and supplies the fallback
// title and track number.
func NormalizeTrack(v Value, index int) Track {
	fallbackTitle := fmt.Sprintf("Track %d", index+1)
	switch v.Kind() {
	case KindObject:
		return normalizeTrackObject(v, index, fallbackTitle)
	case KindString, KindNumber:
		title, ok := v.Text()
		if !ok {
			title = fallbackTitle
		}
		return Track{Title: title, TrackNumber: index + 1}
	case KindNull, KindBool, KindArray:
		return Track{Title: fallbackTitle, TrackNumber: index + 1}
	default:
		return Track{Title: fallbackTitle, TrackNumber: index + 1}
	}
}

func normalizeTrackObject(v Value, index int, fallbackTitle string) Track {
	t := Track{
		Title:       textOr(v, fallbackTitle, "title", "name"),
		TrackNumber: index + 1,
	}
	if id, ok := firstText(v, "id", "track_id", "trackId", "song_id"); ok {
		t.ID = id
	}
	if f, ok := firstFloat(v, "trackNumber", "track_number", "track_num", "trackNum", "number"); ok && f >= 1 {
		t.TrackNumber = int(math.Floor(f))
	}

	if secs, ok := trackSeconds(v); ok {
		t.LengthSeconds = intPtr(secs)
	}
	if label, ok := firstText(v, "lengthLabel", "length_label", "durationLabel", "formattedDuration"); ok {
		t.LengthLabel = stringPtr(label)
	} else if t.LengthSeconds != nil && *t.LengthSeconds > 0 {
		t.LengthLabel = stringPtr(FormatDuration(*t.LengthSeconds))
	}

	if albumID, ok := firstText(v, "albumId", "album_id"); ok {
		t.AlbumID = stringPtr(albumID)
	}
	if artist, ok := nameOf(v.Field("artist"), "name"); ok {
		t.Artist = artist
	} else if artist, ok := firstText(v, "artist_name", "artistName"); ok {
		t.Artist = artist
	} else if artists := stringList(v.Field("artists")); len(artists) > 0 {
		t.Artist = strings.Join(artists, ", ")
	}
	if album, ok := nameOf(v.Field("album"), "title", "name"); ok {
		t.Album = album
	} else if album, ok := firstText(v, "album_title", "albumTitle"); ok {
		t.Album = album
	}
	return t
}

// trackSeconds resolves the first duration alias that is present. A present
// but unusable value yields "unknown" rather than falling through, so bad
// data never turns into a zero length.
func trackSeconds(v Value) (int, bool) {
	for _, name := range durationFields {
		if field := v.Field(name); !field.IsNull() {
			return ParseDuration(field)
		}
	}
	if ms, ok := v.Field("duration_ms").Float(); ok && ms >= 0 {
		return int(math.Floor(ms / 1000)), true
	}
	return 0, false
}

// ParseDuration reads a length in seconds from a number, a numeric string,
// or an "M:SS" / "H:MM:SS" label. Negative or unparseable input reports false.
func ParseDuration(v Value) (int, bool) {
	switch v.Kind() {
	case KindNumber:
		f, ok := v.Float()
		if !ok || f < 0 {
			return 0, false
		}
		return int(math.Floor(f)), true
	case KindString:
		s, ok := v.Text()
		if !ok {
			return 0, false
		}
		if strings.Contains(s, ":") {
			return parseClock(s)
		}
		f, ok := v.Float()
		if !ok || f < 0 {
			return 0, false
		}
		return int(math.Floor(f)), true
	case KindNull, KindBool, KindArray, KindObject:
		return 0, false
	default:
		return 0, false
	}
}

func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		if i > 0 && n >= 60 {
			return 0, false
		}
		total = total*60 + n
	}
	return total, true
}

// FormatDuration renders seconds as M:SS, or H:MM:SS past the hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// NormalizeTracks normalizes a track list. v may be the list itself or an
// object wrapping it. albumID fills in tracks that do not name their album.
func NormalizeTracks(v Value, albumID string) []Track {
	items := listOf(v, trackListFields...)
	tracks := make([]Track, 0, len(items))
	for i, item := range items {
		t := NormalizeTrack(item, i)
		if t.AlbumID == nil && albumID != "" {
			t.AlbumID = stringPtr(albumID)
		}
		tracks = append(tracks, t)
	}
	return tracks
}

// SortTracks orders tracks by track number, keeping the original order for
// ties.
func SortTracks(tracks []Track) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].TrackNumber < tracks[j].TrackNumber
	})
}

// discoverTrackList returns the first non-empty track list an album record
// carries under any of the known names.
func discoverTrackList(v Value) []Value {
	for _, name := range trackListFields {
		if items := v.Field(name).Items(); len(items) > 0 {
			return items
		}
	}
	return nil
}
