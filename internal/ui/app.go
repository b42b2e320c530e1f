package ui

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/five82/crate/internal/prefs"
	"github.com/five82/crate/internal/router"
	"github.com/five82/crate/internal/session"
	"github.com/five82/crate/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Router    *router.Router
	Store     *state.Store
	Session   *session.Manager
	Prefs     *prefs.Keeper
	Logger    logrus.FieldLogger
	LogPath   string        // file the diagnostics view tails
	ClockTick time.Duration // drives the "updated" age in the header
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	router    *router.Router
	store     *state.Store
	sessions  *session.Manager
	prefs     *prefs.Keeper
	log       logrus.FieldLogger
	changes   <-chan struct{}
	clockTick time.Duration

	// UI state
	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	now    time.Time

	// Data state
	snapshot state.Snapshot

	// Navigation
	path     string
	history  []string
	selected int
	body     viewport.Model

	// Overlays
	showHelp  bool
	searching bool
	search    textinput.Model
	login     loginForm
	diag      diagnostics
	busy      bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	clock := opts.ClockTick
	if clock == 0 {
		clock = time.Second
	}

	themeName := ""
	if opts.Prefs != nil {
		themeName = opts.Prefs.Current().Theme
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "artists, albums, tracks"
	search.CharLimit = 200

	m := Model{
		ctx:       ctx,
		router:    opts.Router,
		store:     opts.Store,
		sessions:  opts.Session,
		prefs:     opts.Prefs,
		log:       log,
		clockTick: clock,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		now:       time.Now(),
		path:      router.PathHome,
		body:      viewport.New(0, 0),
		search:    search,
		login:     newLoginForm(),
		diag:      diagnostics{path: opts.LogPath, view: viewport.New(0, 0)},
	}
	if opts.Store != nil {
		m.snapshot = opts.Store.Snapshot()
		m.path = pathFor(m.snapshot.Navigation)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.clockTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-chromeHeight, 1)
		m.search.Width = max(msg.Width-6, 10)
		m.diag.view.Width = msg.Width
		m.diag.view.Height = max(msg.Height-2, 1)
		m.ready = true
		m.syncBody()
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd(m.clockTick)

	case changedMsg:
		cmds := []tea.Cmd{waitForChange(m.changes)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.syncBody()
		return m, nil

	case logLinesMsg:
		m.applyLogLines(msg)
		return m, nil

	case actionDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.log.WithError(msg.err).WithField("action", msg.action).Debug("action failed")
		}
		if m.login.visible {
			// A session that failed to persist is still usable for this run.
			if msg.err != nil && !m.authed() {
				m.login.err = msg.err.Error()
				return m, nil
			}
			m.login.close()
		}
		switch {
		case msg.err == nil && msg.path != "":
			m.open(msg.path)
		case msg.action == "logout":
			m.history = nil
			m.path = router.BuildProfile()
			m.refreshSnapshot()
		default:
			m.refreshSnapshot()
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.login.visible {
		return m.renderLogin()
	}
	if m.diag.visible {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.login.visible {
		return m.handleLoginKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.diag.visible {
		return m.handleDiagnosticsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefs != nil {
			if err := m.prefs.SetTheme(m.theme.Name); err != nil {
				m.log.WithError(err).Warn("unable to save theme")
			}
		}
		m.syncBody()
		m.syncDiagnostics()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snapshot.Search.Query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		return m.openDiagnostics()

	case key.Matches(msg, m.keys.Refresh):
		if m.router != nil {
			m.router.Refresh(m.ctx)
		}
		return m, nil

	case key.Matches(msg, m.keys.Account):
		if m.authed() {
			return m, m.runAction("logout", "", func(ctx context.Context) error {
				return m.router.Logout(ctx)
			})
		}
		m.login.open()
		return m, m.login.focusCmd()

	case key.Matches(msg, m.keys.ViewProfile):
		m.open(router.BuildProfile())
	case key.Matches(msg, m.keys.ViewNews):
		m.open(router.BuildNews())
	case key.Matches(msg, m.keys.ViewArtists):
		m.open(router.BuildArtists())
	case key.Matches(msg, m.keys.ViewPlaylists):
		m.open(router.BuildPlaylists())
	case key.Matches(msg, m.keys.ViewCollections):
		m.open(router.BuildCollections())
	case key.Matches(msg, m.keys.ViewFavorites):
		m.open(router.BuildFavorites())

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.syncBody()
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(selectables(m.entries())) - 1
		m.syncBody()
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.selectedEntry(); ok && e.target != "" {
			m.open(e.target)
		}

	case key.Matches(msg, m.keys.Favorite):
		return m, m.toggleFavorite()
	case key.Matches(msg, m.keys.RateUp):
		return m, m.adjustRating(1)
	case key.Matches(msg, m.keys.RateDown):
		return m, m.adjustRating(-1)
	case key.Matches(msg, m.keys.ClearRate):
		return m, m.setRating(nil)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		query := strings.TrimSpace(m.search.Value())
		if query == "" {
			if m.router != nil {
				m.router.RunSearch(m.ctx, "")
			}
			return m, nil
		}
		m.open(router.BuildSearch(query))
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// open navigates to target and records the path being left.
func (m *Model) open(target string) {
	if m.router == nil {
		return
	}
	shown := m.router.Navigate(m.ctx, target)
	if shown != m.path {
		m.history = append(m.history, m.path)
		if len(m.history) > 50 {
			m.history = m.history[1:]
		}
	}
	m.path = shown
	m.selected = 0
	m.body.GotoTop()
	m.refreshSnapshot()
}

// back returns to the previously opened path.
func (m *Model) back() {
	if m.router == nil || len(m.history) == 0 {
		return
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.path = m.router.Navigate(m.ctx, prev)
	m.selected = 0
	m.body.GotoTop()
	m.refreshSnapshot()
}

func (m *Model) refreshSnapshot() {
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.syncBody()
}

func (m Model) authed() bool {
	return m.sessions != nil && m.sessions.IsAuthenticated()
}

func (m Model) viewer() viewer {
	v := viewer{width: m.width}
	if m.sessions != nil {
		if s, ok := m.sessions.Current(); ok {
			v.authed = true
			v.username = s.Username
		}
	}
	return v
}

func (m Model) entries() []entry {
	return buildEntries(m.snapshot, m.viewer())
}

func (m Model) selectedEntry() (entry, bool) {
	entries := m.entries()
	idx := selectables(entries)
	if len(idx) == 0 {
		return entry{}, false
	}
	sel := min(max(m.selected, 0), len(idx)-1)
	return entries[idx[sel]], true
}

func (m *Model) moveSelection(delta int) {
	count := len(selectables(m.entries()))
	if count == 0 {
		return
	}
	m.selected = min(max(m.selected+delta, 0), count-1)
	m.syncBody()
}

// currentAlbumID is the album the favorite and rating keys act on.
func (m Model) currentAlbumID() string {
	if m.snapshot.Navigation.Current == state.ViewAlbum {
		if m.snapshot.Album != nil && m.snapshot.Album.ID != "" {
			return m.snapshot.Album.ID
		}
		return m.snapshot.Navigation.AlbumID
	}
	if e, ok := m.selectedEntry(); ok {
		return e.albumID
	}
	return ""
}

func (m Model) currentInteraction(albumID string) state.Interaction {
	if i, ok := m.snapshot.Interaction(albumID); ok {
		return i
	}
	if a, ok := findAlbum(m.snapshot, albumID); ok {
		return state.Interaction{Favorite: a.Favorite, Rating: a.Rating}
	}
	return state.Interaction{}
}

func (m Model) toggleFavorite() tea.Cmd {
	id := m.currentAlbumID()
	if id == "" || m.router == nil {
		return nil
	}
	next := !m.currentInteraction(id).Favorite
	return m.runAction("favorite", "", func(ctx context.Context) error {
		return m.router.SetFavorite(ctx, id, next)
	})
}

func (m Model) adjustRating(delta int) tea.Cmd {
	id := m.currentAlbumID()
	if id == "" {
		return nil
	}
	next := nextRating(m.currentInteraction(id).Rating, delta)
	return m.setRating(next)
}

func (m Model) setRating(rating *int) tea.Cmd {
	id := m.currentAlbumID()
	if id == "" || m.router == nil {
		return nil
	}
	return m.runAction("rate", "", func(ctx context.Context) error {
		return m.router.Rate(ctx, id, rating)
	})
}

// nextRating steps a rating within 1..5. Stepping down from 1 clears it and
// stepping up from unrated starts at 1.
func nextRating(current *int, delta int) *int {
	if current == nil {
		if delta <= 0 {
			return nil
		}
		one := 1
		return &one
	}
	v := *current + delta
	if v < 1 {
		return nil
	}
	v = min(v, 5)
	return &v
}

// syncBody rebuilds the viewport content and keeps the cursor on screen.
func (m *Model) syncBody() {
	entries := m.entries()
	idx := selectables(entries)
	if len(idx) == 0 {
		m.selected = 0
	} else {
		m.selected = min(max(m.selected, 0), len(idx)-1)
	}

	styles := m.theme.Styles()
	lines := make([]string, len(entries))
	selectedLine := -1
	for i, e := range entries {
		if len(idx) > 0 && i == idx[m.selected] {
			selectedLine = i
			lines[i] = styles.Selected.Width(max(m.width, 1)).Render(e.text)
			continue
		}
		lines[i] = renderEntry(styles, e)
	}
	m.body.SetContent(strings.Join(lines, "\n"))

	if selectedLine >= 0 && m.body.Height > 0 {
		switch {
		case selectedLine < m.body.YOffset:
			m.body.SetYOffset(selectedLine)
		case selectedLine >= m.body.YOffset+m.body.Height:
			m.body.SetYOffset(selectedLine - m.body.Height + 1)
		}
	}
}

func renderEntry(styles Styles, e entry) string {
	switch e.kind {
	case kindHeading:
		return styles.AccentText.Bold(true).Render(e.text)
	case kindMuted:
		return styles.MutedText.Render(e.text)
	case kindError:
		return styles.DangerText.Render(e.text)
	default:
		return styles.Text.Render(e.text)
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// pathFor maps the store's navigation back to a route path.
func pathFor(nav state.Navigation) string {
	switch nav.Current {
	case state.ViewNews:
		return router.BuildNews()
	case state.ViewAlbum:
		if nav.AlbumID != "" {
			return router.BuildAlbum(nav.AlbumID)
		}
	case state.ViewArtists:
		if nav.ArtistSlug != "" {
			return router.BuildArtist(nav.ArtistSlug)
		}
		return router.BuildArtists()
	case state.ViewPlaylists:
		if nav.PlaylistID != "" {
			return router.BuildPlaylist(nav.PlaylistID)
		}
		return router.BuildPlaylists()
	case state.ViewCollections:
		return router.BuildCollections()
	case state.ViewFavorites:
		return router.BuildFavorites()
	case state.ViewSearch:
		return router.PathSearch
	}
	return router.BuildProfile()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type changedMsg struct{}

// actionDoneMsg reports a finished blocking action. path, when set, is opened
// on success.
type actionDoneMsg struct {
	action string
	path   string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChange blocks until the store signals a change. A closed channel
// ends the subscription.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// runAction runs a blocking router call off the update loop.
func (m Model) runAction(action, path string, fn func(context.Context) error) tea.Cmd {
	if m.router == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, path: path, err: fn(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	if opts.Store != nil {
		ch, cancel := opts.Store.Subscribe()
		defer cancel()
		m.changes = ch
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
