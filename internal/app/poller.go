package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/crate/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// refresher reloads the current view. *router.Router satisfies it; the
// returned channel closes when that refresh has settled.
type refresher interface {
	Refresh(ctx context.Context) <-chan struct{}
}

// viewAreas lists the store areas each view depends on.
var viewAreas = map[state.View][]state.Area{
	state.ViewProfile:     {state.AreaContent},
	state.ViewNews:        {state.AreaAlbums},
	state.ViewAlbum:       {state.AreaAlbum},
	state.ViewArtists:     {state.AreaArtists, state.AreaArtist},
	state.ViewPlaylists:   {state.AreaPlaylists, state.AreaPlaylist},
	state.ViewCollections: {state.AreaCollections},
	state.ViewFavorites:   {state.AreaFavorites},
}

// StartPoller launches a background goroutine that refreshes the current
// view. After failed refreshes the delay doubles up to maxBackoff. It returns
// immediately.
func StartPoller(ctx context.Context, store *state.Store, r refresher, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		failures := 0
		for {
			timer := time.NewTimer(calculateBackoff(failures, interval))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if err := refresh(ctx, store, r); err != nil {
				failures++
				log.WithError(err).WithField("failures", failures).Warn("refresh failed")
				continue
			}
			failures = 0
		}
	}()
}

// refresh reloads the current view and reports the first error among the
// areas that view shows.
func refresh(ctx context.Context, store *state.Store, r refresher) error {
	select {
	case <-r.Refresh(ctx):
	case <-ctx.Done():
		return ctx.Err()
	}
	snap := store.Snapshot()
	for _, area := range viewAreas[snap.Navigation.Current] {
		if status := snap.Status(area); status.Phase == state.PhaseError {
			return errors.New(status.Message)
		}
	}
	return nil
}

// calculateBackoff returns base doubled once per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
