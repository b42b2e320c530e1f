package ui

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/router"
	"github.com/five82/crate/internal/state"
)

type entryKind int

const (
	kindText entryKind = iota
	kindHeading
	kindMuted
	kindError
	kindItem
)

// entry is one body line. Items carry the path enter opens and, for album
// rows, the album the favorite and rating keys act on.
type entry struct {
	text    string
	kind    entryKind
	target  string
	albumID string
}

func (e entry) selectable() bool {
	return e.kind == kindItem && (e.target != "" || e.albumID != "")
}

// viewer is what the body builders need besides the snapshot.
type viewer struct {
	authed   bool
	username string
	width    int
}

// buildEntries renders the current view of snap as body lines.
func buildEntries(snap state.Snapshot, v viewer) []entry {
	switch snap.Navigation.Current {
	case state.ViewNews:
		return newsEntries(snap, v)
	case state.ViewAlbum:
		return albumEntries(snap)
	case state.ViewArtists:
		if snap.Navigation.ArtistSlug != "" {
			return artistEntries(snap, v)
		}
		return artistListEntries(snap)
	case state.ViewPlaylists:
		if snap.Navigation.PlaylistID != "" {
			return playlistEntries(snap)
		}
		return playlistListEntries(snap)
	case state.ViewSearch:
		return searchEntries(snap, v)
	case state.ViewCollections:
		return collectionEntries(snap, v)
	case state.ViewFavorites:
		return favoriteEntries(snap)
	default:
		return profileEntries(snap, v)
	}
}

// selectables returns the indexes of entries the cursor can land on.
func selectables(entries []entry) []int {
	var out []int
	for i, e := range entries {
		if e.selectable() {
			out = append(out, i)
		}
	}
	return out
}

// statusEntries reports a loading or failed area. ok is false when the caller
// has nothing else worth showing.
func statusEntries(snap state.Snapshot, area state.Area, empty bool) ([]entry, bool) {
	st := snap.Status(area)
	switch st.Phase {
	case state.PhaseError:
		msg := st.Message
		if msg == "" {
			msg = "Something went wrong."
		}
		return []entry{{text: msg, kind: kindError}}, !empty
	case state.PhaseLoading:
		if empty {
			return []entry{{text: "Loading...", kind: kindMuted}}, false
		}
	}
	return nil, true
}

func heading(text string) entry { return entry{text: text, kind: kindHeading} }

func muted(text string) entry { return entry{text: text, kind: kindMuted} }

func blank() entry { return entry{} }

func profileEntries(snap state.Snapshot, v viewer) []entry {
	if !v.authed {
		return []entry{
			heading("Profile"),
			blank(),
			{text: "You are browsing as a guest."},
			muted("Press L to log in or sign up, / to search the catalog."),
		}
	}

	out := []entry{heading("Profile · " + v.username), blank()}

	status, ok := statusEntries(snap, state.AreaContent, len(snap.Content) == 0)
	out = append(out, status...)
	if ok {
		if len(snap.Content) == 0 {
			out = append(out, muted("No profile content yet."))
		}
		for _, line := range snap.Content {
			out = append(out, entry{text: line})
		}
	}

	out = append(out, blank(), heading("Favorite albums"))
	favs := snap.FavoriteAlbums()
	if len(favs) == 0 {
		out = append(out, muted("None yet. Press f on an album to add one."))
	}
	for _, fav := range favs {
		out = append(out, interactionEntry(snap, fav))
	}

	out = append(out, blank(), heading("Rated albums"))
	rated := snap.RatedAlbums()
	if len(rated) == 0 {
		out = append(out, muted("No ratings yet."))
	}
	for _, r := range rated {
		out = append(out, interactionEntry(snap, r))
	}
	return out
}

// interactionEntry labels an interaction with the album title when the album
// is loaded somewhere in the snapshot.
func interactionEntry(snap state.Snapshot, ai state.AlbumInteraction) entry {
	label := ai.AlbumID
	if a, ok := findAlbum(snap, ai.AlbumID); ok {
		label = albumLabel(a)
	}
	text := stars(ai.Rating) + "  " + label
	if ai.Favorite {
		text = "♥ " + text
	} else {
		text = "  " + text
	}
	return entry{text: text, kind: kindItem, target: router.BuildAlbum(ai.AlbumID), albumID: ai.AlbumID}
}

func findAlbum(snap state.Snapshot, id string) (catalog.Album, bool) {
	key := catalog.AlbumKey(id)
	if snap.Album != nil && catalog.AlbumKey(snap.Album.ID) == key {
		return *snap.Album, true
	}
	for _, a := range snap.Albums {
		if catalog.AlbumKey(a.ID) == key {
			return a, true
		}
	}
	return catalog.Album{}, false
}

func albumLabel(a catalog.Album) string {
	label := a.Title
	if a.Artist != "" {
		label += " · " + a.Artist
	}
	return label
}

func newsEntries(snap state.Snapshot, v viewer) []entry {
	out := []entry{heading("New releases"), blank()}
	status, ok := statusEntries(snap, state.AreaAlbums, len(snap.Albums) == 0)
	out = append(out, status...)
	if !ok {
		return out
	}
	if len(snap.Albums) == 0 {
		return append(out, muted("No albums in the catalog yet."))
	}
	for _, a := range snap.Albums {
		out = append(out, albumRow(snap, a, v.width))
	}
	return out
}

// albumRow is one album line: favorite mark, title, artist and the columns
// that fit the terminal width.
func albumRow(snap state.Snapshot, a catalog.Album, width int) entry {
	inter := albumInteraction(snap, a)
	mark := "  "
	if inter.Favorite {
		mark = "♥ "
	}

	titleWidth, artistWidth := 34, 24
	if width > 0 && width < LayoutCompactWidth {
		titleWidth, artistWidth = 24, 16
	}
	parts := []string{
		mark + padRight(truncate(a.Title, titleWidth), titleWidth),
		padRight(truncate(a.Artist, artistWidth), artistWidth),
	}
	if width == 0 || width >= LayoutCompactWidth {
		parts = append(parts, padRight(yearText(a.ReleaseYear), 4))
	}
	if width >= LayoutWideWidth {
		parts = append(parts, padRight(truncate(strings.Join(a.Genres, ", "), 20), 20))
	}
	parts = append(parts, stars(inter.Rating))
	if avg := average(a.AverageRating, a.RatingCount); avg != "" {
		parts = append(parts, "avg "+avg)
	}

	e := entry{text: strings.Join(parts, "  "), kind: kindItem, albumID: a.ID}
	if a.ID != "" {
		e.target = router.BuildAlbum(a.ID)
	}
	return e
}

// albumInteraction prefers the interaction map and falls back to what the
// album record itself carried.
func albumInteraction(snap state.Snapshot, a catalog.Album) state.Interaction {
	if i, ok := snap.Interaction(a.ID); ok {
		return i
	}
	return state.Interaction{Favorite: a.Favorite, Rating: a.Rating}
}

func yearText(year *int) string {
	if year == nil {
		return ""
	}
	return strconv.Itoa(*year)
}

func trackLength(t catalog.Track) string {
	if t.LengthLabel != nil && *t.LengthLabel != "" {
		return *t.LengthLabel
	}
	if t.LengthSeconds != nil {
		return catalog.FormatDuration(*t.LengthSeconds)
	}
	return ""
}

func albumEntries(snap state.Snapshot) []entry {
	a := snap.Album
	status, ok := statusEntries(snap, state.AreaAlbum, a == nil)
	if a == nil {
		out := []entry{heading("Album"), blank()}
		out = append(out, status...)
		if ok {
			out = append(out, muted("No album selected."))
		}
		return out
	}

	out := []entry{heading(a.Title)}
	out = append(out, status...)
	artist := a.Artist
	if artist == "" && len(a.Artists) > 0 {
		artist = strings.Join(a.Artists, ", ")
	}
	if artist != "" {
		out = append(out, entry{
			text:   "by " + artist,
			kind:   kindItem,
			target: router.BuildArtist(catalog.Slugify(artist)),
		})
	}

	var facts []string
	if y := yearText(a.ReleaseYear); y != "" {
		facts = append(facts, y)
	}
	if len(a.Genres) > 0 {
		facts = append(facts, strings.Join(a.Genres, ", "))
	}
	if avg := average(a.AverageRating, a.RatingCount); avg != "" {
		facts = append(facts, "average "+avg)
	}
	if len(facts) > 0 {
		out = append(out, muted(strings.Join(facts, " · ")))
	}

	inter := albumInteraction(snap, *a)
	fav := "not a favorite"
	if inter.Favorite {
		fav = "♥ favorite"
	}
	out = append(out, blank(), entry{
		text:    "Your rating " + stars(inter.Rating) + "   " + fav,
		kind:    kindItem,
		albumID: a.ID,
	})

	out = append(out, blank(), heading("Tracks"))
	if len(a.Tracks) == 0 {
		out = append(out, muted("No track list available."))
	}
	for _, t := range a.Tracks {
		num := "  "
		if t.TrackNumber > 0 {
			num = fmt.Sprintf("%2d", t.TrackNumber)
		}
		out = append(out, entry{text: num + "  " + padRight(truncate(t.Title, 48), 48) + "  " + trackLength(t)})
	}
	return out
}

func artistListEntries(snap state.Snapshot) []entry {
	out := []entry{heading("Artists"), blank()}
	status, ok := statusEntries(snap, state.AreaArtists, len(snap.Artists) == 0)
	out = append(out, status...)
	if !ok {
		return out
	}
	if len(snap.Artists) == 0 {
		return append(out, muted("No artists yet."))
	}
	for _, a := range snap.Artists {
		slug := cmp.Or(a.Slug, catalog.Slugify(a.Name))
		text := padRight(truncate(a.Name, 32), 32)
		if len(a.Genres) > 0 {
			text += "  " + truncate(strings.Join(a.Genres, ", "), 40)
		}
		out = append(out, entry{text: text, kind: kindItem, target: router.BuildArtist(slug)})
	}
	return out
}

func artistEntries(snap state.Snapshot, v viewer) []entry {
	d := snap.Artist
	status, ok := statusEntries(snap, state.AreaArtist, d == nil)
	if d == nil {
		out := []entry{heading("Artist"), blank()}
		out = append(out, status...)
		if ok {
			out = append(out, muted("Artist not loaded."))
		}
		return out
	}

	out := []entry{heading(d.Artist.Name)}
	out = append(out, status...)
	if len(d.Artist.Genres) > 0 {
		out = append(out, muted(strings.Join(d.Artist.Genres, ", ")))
	}
	if bio := strings.TrimSpace(d.Artist.Biography); bio != "" {
		out = append(out, blank())
		for _, line := range wrap(bio, max(v.width-4, 40)) {
			out = append(out, entry{text: line})
		}
	}
	out = append(out, blank(), heading("Albums"))
	if len(d.Albums) == 0 {
		out = append(out, muted("No albums found."))
	}
	for _, a := range d.Albums {
		out = append(out, albumRow(snap, a, v.width))
	}
	return out
}

func playlistListEntries(snap state.Snapshot) []entry {
	out := []entry{heading("Playlists"), blank()}
	status, ok := statusEntries(snap, state.AreaPlaylists, len(snap.Playlists) == 0)
	out = append(out, status...)
	if !ok {
		return out
	}
	if len(snap.Playlists) == 0 {
		return append(out, muted("No playlists yet."))
	}
	for _, p := range snap.Playlists {
		visibility := "private"
		if p.IsPublic {
			visibility = "public"
		}
		text := fmt.Sprintf("%s  %s  %3d songs  %s",
			padRight(truncate(p.Title, 32), 32), padRight(truncate(p.Owner, 16), 16), p.SongCount, visibility)
		e := entry{text: text, kind: kindItem}
		if p.ID != "" {
			e.target = router.BuildPlaylist(p.ID)
		}
		out = append(out, e)
	}
	return out
}

func playlistEntries(snap state.Snapshot) []entry {
	p := snap.Playlist
	status, ok := statusEntries(snap, state.AreaPlaylist, p == nil)
	if p == nil {
		out := []entry{heading("Playlist"), blank()}
		out = append(out, status...)
		if ok {
			out = append(out, muted("Playlist not loaded."))
		}
		return out
	}

	out := []entry{heading(p.Title)}
	out = append(out, status...)
	meta := "by " + cmp.Or(p.Owner, "unknown")
	if created := p.ParsedCreatedAt(); !created.IsZero() {
		meta += " · created " + created.Format("2006-01-02")
	}
	out = append(out, muted(meta))
	if p.Description != "" {
		out = append(out, entry{text: p.Description})
	}
	if len(p.Tags) > 0 {
		out = append(out, muted("#"+strings.Join(p.Tags, " #")))
	}
	out = append(out, blank(), heading("Tracks"))
	if len(p.Tracks) == 0 {
		out = append(out, muted("This playlist is empty."))
	}
	for i, t := range p.Tracks {
		out = append(out, trackEntry(i+1, t))
	}
	return out
}

// trackEntry links a track to its album when the album is known.
func trackEntry(n int, t catalog.Track) entry {
	text := fmt.Sprintf("%2d  %s  %s  %s", n,
		padRight(truncate(t.Title, 36), 36), padRight(truncate(t.Artist, 20), 20), trackLength(t))
	e := entry{text: text}
	if t.AlbumID != nil && *t.AlbumID != "" {
		e.kind = kindItem
		e.target = router.BuildAlbum(*t.AlbumID)
		e.albumID = *t.AlbumID
	}
	return e
}

func searchEntries(snap state.Snapshot, v viewer) []entry {
	s := snap.Search
	if s.Query == "" {
		return []entry{heading("Search"), blank(), muted("Press / and type a query.")}
	}

	out := []entry{heading(fmt.Sprintf("Search · %q", s.Query)), blank()}
	if snap.Status(state.AreaSearch).Phase == state.PhaseLoading {
		out = append(out, muted("Searching..."))
	}
	if s.Error != "" {
		return append(out, entry{text: s.Error, kind: kindError})
	}
	if s.Results.Empty() {
		return append(out, muted("No results."))
	}

	if len(s.Results.Artists) > 0 {
		out = append(out, heading("Artists"))
		for _, a := range s.Results.Artists {
			slug := cmp.Or(a.Slug, catalog.Slugify(a.Name))
			out = append(out, entry{text: a.Name, kind: kindItem, target: router.BuildArtist(slug)})
		}
		out = append(out, blank())
	}
	if len(s.Results.Albums) > 0 {
		out = append(out, heading("Albums"))
		for _, a := range s.Results.Albums {
			out = append(out, albumRow(snap, a, v.width))
		}
		out = append(out, blank())
	}
	if len(s.Results.Tracks) > 0 {
		out = append(out, heading("Tracks"))
		for i, t := range s.Results.Tracks {
			out = append(out, trackEntry(i+1, t))
		}
	}
	return out
}

func collectionEntries(snap state.Snapshot, v viewer) []entry {
	out := []entry{heading("Collection"), blank()}
	items := snap.Collections.Items
	status, ok := statusEntries(snap, state.AreaCollections, len(items) == 0)
	out = append(out, status...)
	if !ok {
		return out
	}

	if st := snap.CollectionStats; st != nil {
		out = append(out, entry{text: fmt.Sprintf("Owned %d · Wishlist %d · Value $%.2f",
			st.TotalOwned, st.TotalWishlist, st.TotalValue)})
		if line := countLine("Genres", st.ByGenre); line != "" {
			out = append(out, muted(line))
		}
		if line := countLine("Condition", st.ByCondition); line != "" {
			out = append(out, muted(line))
		}
		out = append(out, blank())
	}

	if len(items) == 0 {
		return append(out, muted("Your collection is empty."))
	}
	for _, owned := range []catalog.CollectionKind{catalog.CollectionOwned, catalog.CollectionWishlist} {
		title := "Owned"
		if owned == catalog.CollectionWishlist {
			title = "Wishlist"
		}
		var section []entry
		for _, item := range items {
			if item.Kind == owned {
				section = append(section, collectionRow(item, v.width))
			}
		}
		if len(section) == 0 {
			continue
		}
		out = append(out, heading(fmt.Sprintf("%s (%d)", title, len(section))))
		out = append(out, section...)
		out = append(out, blank())
	}
	if total := snap.Collections.Count; total > len(items) {
		out = append(out, muted(fmt.Sprintf("Showing %d of %d.", len(items), total)))
	}
	return out
}

func collectionRow(item catalog.CollectionItem, width int) entry {
	title := cmp.Or(item.AlbumTitle, item.AlbumID)
	parts := []string{
		padRight(truncate(title, 32), 32),
		padRight(truncate(item.AlbumArtist, 20), 20),
		padRight(yearText(item.AlbumReleaseYear), 4),
	}
	if item.Condition != "" {
		parts = append(parts, item.Condition)
	}
	if item.PurchasePrice != nil {
		parts = append(parts, fmt.Sprintf("$%.2f", *item.PurchasePrice))
	}
	if width >= LayoutWideWidth && item.Notes != "" {
		parts = append(parts, truncate(item.Notes, 30))
	}
	e := entry{text: strings.Join(parts, "  "), kind: kindItem, albumID: item.AlbumID}
	if item.AlbumID != "" {
		e.target = router.BuildAlbum(item.AlbumID)
	}
	return e
}

// countLine renders the largest buckets of counts, biggest first.
func countLine(label string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}
	keys := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(keys) > 5 {
		keys = keys[:5]
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return label + ": " + strings.Join(parts, ", ")
}

func favoriteEntries(snap state.Snapshot) []entry {
	out := []entry{heading("Favorite tracks"), blank()}
	status, ok := statusEntries(snap, state.AreaFavorites, len(snap.Favorites) == 0)
	out = append(out, status...)
	if !ok {
		return out
	}
	if len(snap.Favorites) == 0 {
		return append(out, muted("No favorite tracks yet."))
	}
	for i, fav := range snap.Favorites {
		if fav.Track == nil {
			out = append(out, muted(fmt.Sprintf("%2d  track %s", i+1, fav.TrackID)))
			continue
		}
		out = append(out, trackEntry(i+1, *fav.Track))
	}
	return out
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len([]rune(line))+1+len([]rune(w)) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
