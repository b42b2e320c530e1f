package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	require.NoError(t, err)
	return v
}

func renormalize[T any](t *testing.T, record T, normalize func(Value) T) T {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	return normalize(mustParse(t, string(data)))
}

func TestNormalizeTrack_StringEntries(t *testing.T) {
	assert.Equal(t, "Intro", NormalizeTrack(String("  Intro  "), 0).Title)
	assert.Equal(t, "Track 3", NormalizeTrack(String("   "), 2).Title)
	assert.Equal(t, "Track 1", NormalizeTrack(String(""), 0).Title)
	assert.Equal(t, 5, NormalizeTrack(String("x"), 4).TrackNumber)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want int
		ok   bool
	}{
		{"clock", String("3:45"), 225, true},
		{"hours", String("1:02:03"), 3723, true},
		{"seconds number", Number(200), 200, true},
		{"fractional", Number(200.9), 200, true},
		{"numeric string", String("61"), 61, true},
		{"zero", Number(0), 0, true},
		{"negative", Number(-5), 0, false},
		{"negative string", String("-5"), 0, false},
		{"garbage", String("abc"), 0, false},
		{"bad clock", String("3:75"), 0, false},
		{"too many parts", String("1:2:3:4"), 0, false},
		{"bool", Bool(true), 0, false},
		{"null", Null(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDuration(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTrack_LengthIsUnknownNotZero(t *testing.T) {
	track := NormalizeTrack(mustParse(t, `{"title":"A","duration":-30}`), 0)
	assert.Nil(t, track.LengthSeconds)
	assert.Nil(t, track.LengthLabel)

	track = NormalizeTrack(mustParse(t, `{"title":"A","length":"soon","seconds":100}`), 0)
	assert.Nil(t, track.LengthSeconds, "a present but unusable alias must not fall through")

	track = NormalizeTrack(mustParse(t, `{"title":"A","duration":"3:45"}`), 0)
	require.NotNil(t, track.LengthSeconds)
	assert.Equal(t, 225, *track.LengthSeconds)
	require.NotNil(t, track.LengthLabel)
	assert.Equal(t, "3:45", *track.LengthLabel)
}

func TestNormalizeTrack_Aliases(t *testing.T) {
	track := NormalizeTrack(mustParse(t, `{
		"track_id": 17, "name": "Song", "track_num": 4,
		"duration_seconds": 61, "album_id": 9,
		"artist": {"name": "Band"}, "album_title": "Record"
	}`), 0)
	assert.Equal(t, "17", track.ID)
	assert.Equal(t, "Song", track.Title)
	assert.Equal(t, 4, track.TrackNumber)
	require.NotNil(t, track.LengthSeconds)
	assert.Equal(t, 61, *track.LengthSeconds)
	assert.Equal(t, "1:01", *track.LengthLabel)
	require.NotNil(t, track.AlbumID)
	assert.Equal(t, "9", *track.AlbumID)
	assert.Equal(t, "Band", track.Artist)
	assert.Equal(t, "Record", track.Album)
}

func TestNormalizeAlbum_IDDerivation(t *testing.T) {
	album := NormalizeAlbum(mustParse(t, `{"artist":"X","title":"Y"}`))
	assert.Equal(t, "X-Y", album.ID)

	album = NormalizeAlbum(mustParse(t, `{"id":"abc","external_id":"e","_id":"u","slug":"s","artist":"X","title":"Y"}`))
	assert.Equal(t, "abc", album.ID)

	album = NormalizeAlbum(mustParse(t, `{"id":12,"artist":"X","title":"Y"}`))
	assert.Equal(t, "12", album.ID)

	album = NormalizeAlbum(mustParse(t, `{"_id":"u","slug":"s"}`))
	assert.Equal(t, "u", album.ID)

	album = NormalizeAlbum(mustParse(t, `{"title":"Only title"}`))
	assert.Empty(t, album.ID)
}

func TestNormalizeAlbum_FieldAliases(t *testing.T) {
	album := NormalizeAlbum(mustParse(t, `{
		"id": 3,
		"title": "Kind of Blue",
		"artists": [{"name": "Miles Davis"}, "John Coltrane"],
		"release_date": "1959-08-17",
		"cover_image_url": "http://img/kob.jpg",
		"primaryGenre": "Jazz",
		"ratingAverage": 4.5,
		"rating_count": 12,
		"userRating": 4.6,
		"is_favorite": "true",
		"songs": ["So What", {"title": "Freddie Freeloader", "trackNumber": 2}]
	}`))
	assert.Equal(t, "3", album.ID)
	assert.Equal(t, "Miles Davis, John Coltrane", album.Artist)
	assert.Equal(t, []string{"Miles Davis", "John Coltrane"}, album.Artists)
	require.NotNil(t, album.ReleaseYear)
	assert.Equal(t, 1959, *album.ReleaseYear)
	assert.Equal(t, "http://img/kob.jpg", album.CoverURL)
	assert.Equal(t, []string{"Jazz"}, album.Genres)
	require.NotNil(t, album.AverageRating)
	assert.Equal(t, 4.5, *album.AverageRating)
	assert.Equal(t, 12, album.RatingCount)
	require.NotNil(t, album.Rating)
	assert.Equal(t, 5, *album.Rating)
	assert.True(t, album.Favorite)
	require.Len(t, album.Tracks, 2)
	assert.Equal(t, "So What", album.Tracks[0].Title)
	assert.Equal(t, "3", *album.Tracks[0].AlbumID)
}

func TestNormalizeAlbum_FavoriteAndRatingPrecedence(t *testing.T) {
	album := NormalizeAlbum(mustParse(t, `{"favorited": false, "favorite": true, "user_rating": 2, "rating": 5}`))
	assert.False(t, album.Favorite)
	require.NotNil(t, album.Rating)
	assert.Equal(t, 2, *album.Rating)

	album = NormalizeAlbum(mustParse(t, `{"rating": 9}`))
	assert.Nil(t, album.Rating)
	album = NormalizeAlbum(mustParse(t, `{"rating": 0}`))
	assert.Nil(t, album.Rating)
}

func TestNormalizeAlbum_MalformedInput(t *testing.T) {
	for _, raw := range []Value{Null(), Bool(true), Array(), Number(3)} {
		album := NormalizeAlbum(raw)
		assert.NotNil(t, album.Artists)
		assert.NotNil(t, album.Genres)
		assert.NotNil(t, album.Tracks)
	}
	assert.Equal(t, "Blue Train", NormalizeAlbum(String(" Blue Train ")).Title)
}

func TestNormalizeAlbum_Idempotent(t *testing.T) {
	inputs := []string{
		`{"artist":"X","title":"Y"}`,
		`{"external_id":"sp:1","name":"Giant Steps","artist":{"name":"Coltrane"},"year":"1960",
		  "genres":["Jazz"," ","Hard bop"],"avg_rating":3.25,"ratingCount":-4,"favorite":1,"rating":"3",
		  "trackList":[{"name":"Giant Steps","duration":"4:43"},"Cousin Mary",{"track_number":0,"length":"x"}]}`,
		`{"slug":"a-love-supreme","cover":"c.jpg","genre":"Spiritual","tracks":[]}`,
		`"Just a title"`,
		`null`,
	}
	for _, in := range inputs {
		once := NormalizeAlbum(mustParse(t, in))
		twice := renormalize(t, once, NormalizeAlbum)
		assert.Equal(t, once, twice, "input %s", in)
	}
}

func TestNormalizeTracks_FillsAlbumIDAndKeepsOrder(t *testing.T) {
	tracks := NormalizeTracks(mustParse(t, `{"songs":[{"title":"B","track_num":2},{"title":"A","track_num":1},{"title":"C","track_num":3}]}`), "7")
	require.Len(t, tracks, 3)
	assert.Equal(t, "B", tracks[0].Title)
	for _, tr := range tracks {
		require.NotNil(t, tr.AlbumID)
		assert.Equal(t, "7", *tr.AlbumID)
	}
	SortTracks(tracks)
	assert.Equal(t, []int{1, 2, 3}, []int{tracks[0].TrackNumber, tracks[1].TrackNumber, tracks[2].TrackNumber})

	assert.Empty(t, NormalizeTracks(Null(), ""))
}

func TestSortTracks_IsStable(t *testing.T) {
	tracks := []Track{{Title: "a", TrackNumber: 2}, {Title: "b", TrackNumber: 1}, {Title: "c", TrackNumber: 2}}
	SortTracks(tracks)
	assert.Equal(t, []string{"b", "a", "c"}, []string{tracks[0].Title, tracks[1].Title, tracks[2].Title})
}

func TestNormalizePlaylist(t *testing.T) {
	p := NormalizePlaylist(mustParse(t, `{"playlist_id":5,"description":"late night","owner":{"username":"sam"},"is_public":true,"tags":["jazz",""],"created_at":"2024-01-02T03:04:05Z","songs":[{"title":"x"}]}`))
	assert.Equal(t, "5", p.ID)
	assert.Equal(t, "Untitled playlist", p.Title)
	assert.Equal(t, "sam", p.Owner)
	assert.True(t, p.IsPublic)
	assert.Equal(t, []string{"jazz"}, p.Tags)
	assert.Equal(t, 1, p.SongCount)
	assert.Equal(t, 2024, p.ParsedCreatedAt().Year())

	empty := NormalizePlaylist(Null())
	assert.Equal(t, "Unknown curator", empty.Owner)
	assert.Equal(t, empty, renormalize(t, empty, NormalizePlaylist))
	assert.Equal(t, p, renormalize(t, p, NormalizePlaylist))
}

func TestNormalizeCollectionItem(t *testing.T) {
	item := NormalizeCollectionItem(mustParse(t, `{"id":1,"user_id":2,"album_id":3,"collection_type":"OWNED","purchase_price":12.5,"album_title":"T","artist":"A","release_year":1999,"date_added":"2024-05-01"}`))
	assert.Equal(t, "1", item.ID)
	assert.Equal(t, "3", item.AlbumID)
	assert.Equal(t, CollectionOwned, item.Kind)
	require.NotNil(t, item.PurchasePrice)
	assert.Equal(t, 12.5, *item.PurchasePrice)
	assert.Equal(t, "T", item.AlbumTitle)
	assert.Equal(t, "A", item.AlbumArtist)
	assert.Equal(t, 1999, *item.AlbumReleaseYear)
	assert.Equal(t, 2024, item.ParsedDateAdded().Year())

	unknown := NormalizeCollectionItem(mustParse(t, `{"collection_type":"borrowed"}`))
	assert.Equal(t, CollectionWishlist, unknown.Kind)
	assert.Equal(t, item, renormalize(t, item, NormalizeCollectionItem))
}

func TestNormalizeCollectionPageAndStats(t *testing.T) {
	page := NormalizeCollectionPage(mustParse(t, `{"collections":[{"id":1},{"id":2}]}`))
	assert.Equal(t, 2, page.Count)
	page = NormalizeCollectionPage(mustParse(t, `{"collections":[{"id":1}],"count":40}`))
	assert.Equal(t, 40, page.Count)

	stats := NormalizeCollectionStats(mustParse(t, `{"total_owned":3,"total_value":99.5,"by_genre":{"Jazz":2}}`))
	assert.Equal(t, 0, stats.TotalWishlist)
	assert.Equal(t, 3, stats.TotalOwned)
	assert.Equal(t, 99.5, stats.TotalValue)
	assert.Equal(t, map[string]int{"Jazz": 2}, stats.ByGenre)
	assert.NotNil(t, stats.ByCondition)
}

func TestNormalizeFavoriteTrack(t *testing.T) {
	fav := NormalizeFavoriteTrack(mustParse(t, `{"favorited_at":"2024-01-01","track":{"track_id":8,"name":"Blue","artist_name":"Miles"}}`))
	assert.Equal(t, "8", fav.TrackID)
	assert.Equal(t, "2024-01-01", fav.FavoritedAt)
	require.NotNil(t, fav.Track)
	assert.Equal(t, "Blue", fav.Track.Title)
	assert.Equal(t, "Miles", fav.Track.Artist)

	assert.Equal(t, FavoriteTrack{}, NormalizeFavoriteTrack(String("nope")))
}

func TestNormalizeArtistAndDetails(t *testing.T) {
	details := NormalizeArtistDetails(mustParse(t, `{"artist":{"id":"sp1","name":"Nina Simone","images":[{"url":"i.jpg"}],"external_urls":{"spotify":"http://x"},"popularity":70},"albums":[{"id":1,"title":"Pastel Blues"}]}`))
	assert.Equal(t, "sp1", details.Artist.ExternalID)
	assert.Equal(t, "nina-simone", details.Artist.Slug)
	assert.Equal(t, "i.jpg", details.Artist.ImageURL)
	assert.Equal(t, "http://x", details.Artist.ExternalURL)
	assert.Equal(t, 70, details.Artist.Popularity)
	require.Len(t, details.Albums, 1)
	assert.Equal(t, "Pastel Blues", details.Albums[0].Title)

	artist := details.Artist
	assert.Equal(t, artist, renormalize(t, artist, NormalizeArtist))
}

func TestNormalizeAlbumDetails_SortsTracks(t *testing.T) {
	d := NormalizeAlbumDetails(mustParse(t, `{"album":{"id":"x","title":"T"},"tracks":[{"title":"b","track_number":2},{"title":"a","track_number":1}]}`))
	require.Len(t, d.Tracks, 2)
	assert.Equal(t, "a", d.Tracks[0].Title)
	assert.Equal(t, d.Tracks, d.Album.Tracks)
}

func TestNormalizePreference(t *testing.T) {
	prefs := NormalizePreferences(mustParse(t, `{"albums":[
		{"album_id":7,"preference":{"favorited":true,"rating":4}},
		{"album":{"id":8,"title":"T"},"rating":2},
		{"id":9,"favorite":false}
	]}`))
	require.Len(t, prefs, 3)
	assert.Equal(t, "7", prefs[0].AlbumID)
	assert.True(t, prefs[0].Favorite)
	assert.Equal(t, 4, *prefs[0].Rating)
	assert.Equal(t, "8", prefs[1].AlbumID)
	require.NotNil(t, prefs[1].Album)
	assert.Equal(t, "9", prefs[2].AlbumID)
	assert.Nil(t, prefs[2].Rating)
}

func TestNormalizeSearchResults(t *testing.T) {
	res := NormalizeSearchResults(mustParse(t, `{"artists":{"items":[{"name":"A"}]},"albums":[{"title":"B"}],"results":[{"type":"track","title":"C"},{"type":"playlist"}]}`))
	require.Len(t, res.Artists, 1)
	require.Len(t, res.Albums, 1)
	require.Len(t, res.Tracks, 1)
	assert.Equal(t, "C", res.Tracks[0].Title)

	empty := NormalizeSearchResults(String("nothing"))
	assert.True(t, empty.Empty())
	assert.NotNil(t, empty.Artists)
	assert.NotNil(t, empty.Albums)
	assert.NotNil(t, empty.Tracks)
}

func TestNormalizeProvidersAndContent(t *testing.T) {
	providers := NormalizeProviders(mustParse(t, `{"providers":["spotify",{"name":"discogs","display_name":"Discogs","enabled":false}]}`))
	require.Len(t, providers, 2)
	assert.True(t, providers[0].Enabled)
	assert.Equal(t, "Discogs", providers[1].DisplayName)
	assert.False(t, providers[1].Enabled)

	assert.Equal(t, []string{"one", "two"}, NormalizeContent(String(" one \r\n\n two ")))
	assert.Equal(t, []string{"a"}, NormalizeContent(mustParse(t, `{"content":"a\n"}`)))
	assert.Equal(t, []string{}, NormalizeContent(Null()))
}

func TestAlbumKey(t *testing.T) {
	assert.Equal(t, "7", AlbumKey("07"))
	assert.Equal(t, "7", AlbumKey(" 7 "))
	assert.Equal(t, "abc", AlbumKey("abc"))
	assert.Equal(t, "", AlbumKey(" "))
}
