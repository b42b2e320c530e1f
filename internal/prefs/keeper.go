package prefs

import (
	"sync"

	"github.com/five82/crate/internal/catalog"
)

// Keeper owns the prefs file for one process. Every change is saved right
// away; callers from different goroutines never overwrite each other's
// fields.
type Keeper struct {
	mu    sync.Mutex
	path  string
	prefs Prefs
}

// NewKeeper loads the prefs at path (defaults when missing).
func NewKeeper(path string) *Keeper {
	p, _ := Load(path)
	return &Keeper{path: path, prefs: p}
}

// Path is the file the keeper saves to.
func (k *Keeper) Path() string { return k.path }

// Current returns a copy of the held prefs.
func (k *Keeper) Current() Prefs {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.prefs
}

// SetTheme records the theme name.
func (k *Keeper) SetTheme(name string) error {
	return k.change(func(p *Prefs) error {
		p.Theme = name
		return nil
	})
}

// RememberAlbum records the last-viewed album.
func (k *Keeper) RememberAlbum(album catalog.Album) error {
	return k.change(func(p *Prefs) error { return p.RememberAlbum(album) })
}

// RememberArtist records the last-viewed artist.
func (k *Keeper) RememberArtist(artist catalog.Artist) error {
	return k.change(func(p *Prefs) error { return p.RememberArtist(artist) })
}

func (k *Keeper) change(fn func(*Prefs) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	next := k.prefs
	if err := fn(&next); err != nil {
		return err
	}
	if err := Save(k.path, next); err != nil {
		return err
	}
	k.prefs = next
	return nil
}
