package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/crate/internal/catalog"
	"github.com/five82/crate/internal/config"
	"github.com/five82/crate/internal/logging"
	"github.com/five82/crate/internal/prefs"
	"github.com/five82/crate/internal/router"
	"github.com/five82/crate/internal/session"
	"github.com/five82/crate/internal/state"
	"github.com/five82/crate/internal/ui"
	"github.com/five82/crate/internal/vinylhound"
)

// Options configure the crate application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses the config value
	PollEvery  int    // seconds; zero uses the config value
	APIBaseURL string // overrides config and environment when set
	StartPath  string // first route; empty picks news or profile
	LogLevel   string
}

// Run boots the crate TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s := strings.TrimSpace(opts.APIBaseURL); s != "" {
		cfg.APIBaseURL = s
	}
	if s := strings.TrimSpace(opts.LogLevel); s != "" {
		cfg.LogLevel = s
	}
	if s := strings.TrimSpace(opts.PrefsPath); s != "" {
		cfg.PrefsPath = s
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	c, err := wire(ctx, cfg, logger)
	if err != nil {
		return err
	}

	StartPoller(ctx, c.store, c.router, cfg.PollInterval, logger)
	c.router.Navigate(ctx, startPath(opts.StartPath, c.sessions))

	return ui.Run(ui.Options{
		Context: ctx,
		Router:  c.router,
		Store:   c.store,
		Session: c.sessions,
		Prefs:   c.prefs,
		Logger:  logger,
		LogPath: cfg.LogFile,
	})
}

// components is everything Run hands to the UI.
type components struct {
	store    *state.Store
	router   *router.Router
	sessions *session.Manager
	prefs    *prefs.Keeper
}

func wire(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*components, error) {
	client, err := vinylhound.NewClient(vinylhound.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init vinylhound client: %w", err)
	}

	fileStore, err := session.NewFileStore(cfg.SessionPath)
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(fileStore, logger)
	store := &state.Store{}
	keeper := prefs.NewKeeper(cfg.PrefsPath)

	if s, ok := sessions.LoadSession(); ok {
		entry := logger.WithField("username", s.Username)
		if exp, ok := session.ExpiresAt(s.Token); ok {
			entry = entry.WithField("expires", exp.Format(time.RFC3339))
			if session.Expired(s.Token, time.Now()) {
				store.SetMessage("Your session has expired. Please log in again.", state.MessageInfo)
			}
		}
		entry.Info("session restored")
	}

	r := router.New(router.Options{
		Backend: client,
		Store:   store,
		Session: sessions,
		Logger:  logger,
		OnAlbum: func(a catalog.Album) {
			if err := keeper.RememberAlbum(a); err != nil {
				logger.WithError(err).Warn("unable to save last album")
			}
		},
		OnArtist: func(a catalog.Artist) {
			if err := keeper.RememberArtist(a); err != nil {
				logger.WithError(err).Warn("unable to save last artist")
			}
		},
	})

	if last, ok := keeper.Current().LastViewedAlbum(); ok {
		store.SetAlbum(&last)
		store.SelectAlbum(last.ID)
	}

	err = session.Watch(ctx, sessions, fileStore.Path(), func(s session.Session, ok bool) {
		if ok {
			store.SetMessage(fmt.Sprintf("Signed in as %s.", s.Username), state.MessageInfo)
			r.LoadInteractions(ctx)
		} else {
			r.ForgetUser()
			store.SetMessage("Signed out.", state.MessageInfo)
		}
		r.Refresh(ctx)
	})
	if err != nil {
		// Cross-process sync is a convenience; the client works without it.
		logger.WithError(err).Warn("session watcher unavailable")
	}

	return &components{store: store, router: r, sessions: sessions, prefs: keeper}, nil
}

func startPath(requested string, sessions *session.Manager) string {
	if s := strings.TrimSpace(requested); s != "" {
		return s
	}
	if sessions.IsAuthenticated() {
		return router.PathNews
	}
	return router.PathProfile
}
