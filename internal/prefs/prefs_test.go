package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/crate/internal/catalog"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "crate")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "custom.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"Slate\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: "Slate"}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Slate")
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestRememberAlbum_RoundTripsThroughSave(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	year := 1977
	album := catalog.Album{
		ID:          "42",
		Title:       "Rumours",
		Artist:      "Fleetwood Mac",
		Artists:     []string{"Fleetwood Mac"},
		ReleaseYear: &year,
		Genres:      []string{"rock"},
		Tracks:      []catalog.Track{{Title: "Dreams", TrackNumber: 2}},
	}

	p := Prefs{Theme: "Slate"}
	if err := p.RememberAlbum(album); err != nil {
		t.Fatalf("RememberAlbum returned error: %v", err)
	}
	if err := p.RememberArtist(catalog.Artist{Name: "Fleetwood Mac", Slug: "fleetwood-mac", Genres: []string{}}); err != nil {
		t.Fatalf("RememberArtist returned error: %v", err)
	}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got, ok := loaded.LastViewedAlbum()
	if !ok {
		t.Fatalf("LastViewedAlbum reported no album")
	}
	if got.Title != "Rumours" || got.ReleaseYear == nil || *got.ReleaseYear != 1977 {
		t.Fatalf("LastViewedAlbum = %+v, want Rumours (1977)", got)
	}
	if len(got.Tracks) != 1 || got.Tracks[0].Title != "Dreams" {
		t.Fatalf("Tracks = %+v, want [Dreams]", got.Tracks)
	}
	artist, ok := loaded.LastViewedArtist()
	if !ok || artist.Slug != "fleetwood-mac" {
		t.Fatalf("LastViewedArtist = %+v, %v", artist, ok)
	}
}

func TestLastViewedAlbum_CorruptBlob(t *testing.T) {
	p := Prefs{LastAlbum: "{not json"}
	if _, ok := p.LastViewedAlbum(); ok {
		t.Fatalf("LastViewedAlbum accepted a corrupt blob")
	}
	if _, ok := (Prefs{}).LastViewedArtist(); ok {
		t.Fatalf("LastViewedArtist reported an artist for empty prefs")
	}
}

func TestKeeper_ThemeChangeKeepsLastAlbum(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	k := NewKeeper(prefsFile)
	if got := k.Current().Theme; got != defaultTheme {
		t.Fatalf("Theme = %q, want %q", got, defaultTheme)
	}

	if err := k.RememberAlbum(catalog.Album{ID: "9", Title: "Blue"}); err != nil {
		t.Fatalf("RememberAlbum returned error: %v", err)
	}
	if err := k.SetTheme("Kanagawa"); err != nil {
		t.Fatalf("SetTheme returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Kanagawa")
	}
	album, ok := loaded.LastViewedAlbum()
	if !ok || album.ID != "9" {
		t.Fatalf("LastViewedAlbum = %+v, %v; want album 9", album, ok)
	}
}
