// Package prefs handles crate user preferences persistence.
// Preferences are stored in ~/.config/crate/prefs.toml.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/crate/internal/catalog"
)

// Prefs holds user preferences for crate. The last-viewed album and artist
// are kept as JSON blobs so the canonical records round-trip unchanged.
type Prefs struct {
	Theme      string `toml:"theme"`
	LastAlbum  string `toml:"last_album,omitempty"`
	LastArtist string `toml:"last_artist,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/crate/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}

	prefs := Prefs{Theme: defaultTheme}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// RememberAlbum records album as the last one viewed.
func (p *Prefs) RememberAlbum(album catalog.Album) error {
	data, err := json.Marshal(album)
	if err != nil {
		return fmt.Errorf("encode last album: %w", err)
	}
	p.LastAlbum = string(data)
	return nil
}

// RememberArtist records artist as the last one viewed.
func (p *Prefs) RememberArtist(artist catalog.Artist) error {
	data, err := json.Marshal(artist)
	if err != nil {
		return fmt.Errorf("encode last artist: %w", err)
	}
	p.LastArtist = string(data)
	return nil
}

// LastViewedAlbum decodes the remembered album. A blank or corrupt blob
// reports false.
func (p Prefs) LastViewedAlbum() (catalog.Album, bool) {
	var album catalog.Album
	if strings.TrimSpace(p.LastAlbum) == "" {
		return album, false
	}
	if err := json.Unmarshal([]byte(p.LastAlbum), &album); err != nil || album.ID == "" {
		return catalog.Album{}, false
	}
	return album, true
}

// LastViewedArtist decodes the remembered artist.
func (p Prefs) LastViewedArtist() (catalog.Artist, bool) {
	var artist catalog.Artist
	if strings.TrimSpace(p.LastArtist) == "" {
		return artist, false
	}
	if err := json.Unmarshal([]byte(p.LastArtist), &artist); err != nil || artist.Name == "" {
		return catalog.Artist{}, false
	}
	return artist, true
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
