package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crate/internal/state"
)

var viewTitles = map[state.View]string{
	state.ViewProfile:     "Profile",
	state.ViewNews:        "News",
	state.ViewAlbum:       "Album",
	state.ViewArtists:     "Artists",
	state.ViewPlaylists:   "Playlists",
	state.ViewSearch:      "Search",
	state.ViewCollections: "Collection",
	state.ViewFavorites:   "Favorites",
}

// renderHeader renders the top bar: logo, view, account and load state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	on := func(s lipgloss.Style) lipgloss.Style { return s.Background(bg) }
	gap := on(lipgloss.NewStyle()).Render("  ")

	view := viewTitles[m.snapshot.Navigation.Current]
	if view == "" {
		view = "Profile"
	}

	parts := []string{
		on(styles.Logo).Render("crate"),
		on(styles.Text.Bold(true)).Render(view),
	}

	v := m.viewer()
	if v.authed {
		parts = append(parts, on(styles.MutedText).Render("signed in as ")+on(styles.AccentText).Render(v.username))
	} else {
		parts = append(parts, on(styles.FaintText).Render("guest"))
	}

	if phase := m.viewPhase(); phase != state.PhaseIdle {
		parts = append(parts, styles.StatusStyle(phase.String()).Render(strings.ToUpper(phase.String())))
	}

	if updated := m.snapshot.LastUpdated; !updated.IsZero() && !m.now.IsZero() {
		age := m.now.Sub(updated)
		if age < 0 {
			age = 0
		}
		parts = append(parts, on(styles.FaintText).Render("updated "+humanizeDuration(age)+" ago"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, gap))
}

// viewPhase folds the statuses of the areas on screen into one phase; an
// error outranks loading.
func (m Model) viewPhase() state.Phase {
	phase := state.PhaseIdle
	for _, area := range viewAreas(m.snapshot.Navigation) {
		switch m.snapshot.Status(area).Phase {
		case state.PhaseError:
			return state.PhaseError
		case state.PhaseLoading:
			phase = state.PhaseLoading
		}
	}
	return phase
}

func viewAreas(nav state.Navigation) []state.Area {
	switch nav.Current {
	case state.ViewNews:
		return []state.Area{state.AreaAlbums}
	case state.ViewAlbum:
		return []state.Area{state.AreaAlbum}
	case state.ViewArtists:
		if nav.ArtistSlug != "" {
			return []state.Area{state.AreaArtist}
		}
		return []state.Area{state.AreaArtists}
	case state.ViewPlaylists:
		if nav.PlaylistID != "" {
			return []state.Area{state.AreaPlaylist}
		}
		return []state.Area{state.AreaPlaylists}
	case state.ViewSearch:
		return []state.Area{state.AreaSearch}
	case state.ViewCollections:
		return []state.Area{state.AreaCollections}
	case state.ViewFavorites:
		return []state.Area{state.AreaFavorites}
	default:
		return []state.Area{state.AreaContent}
	}
}

// renderBanner renders the message line, or the search prompt while typing.
func (m Model) renderBanner() string {
	styles := m.theme.Styles()
	if m.searching {
		return lipgloss.NewStyle().Width(m.width).Render(m.search.View())
	}

	nav := m.snapshot.Navigation
	if nav.Message == "" {
		return ""
	}
	kind := string(nav.MessageKind)
	if kind == "" {
		kind = string(state.MessageInfo)
	}
	badge := styles.StatusStyle(kind).Render(strings.ToUpper(kind))
	text := styles.Text
	if nav.MessageKind == state.MessageError {
		text = styles.DangerText
	}
	return badge + " " + text.Render(truncate(nav.Message, max(m.width-12, 10)))
}

// renderFooter renders the key hint bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := lipgloss.Color(m.theme.Surface)
	keyStyle := styles.WarningText.Background(bg)
	descStyle := styles.MutedText.Background(bg)

	bindings := m.keys.ShortHelp()
	if m.currentAlbumID() != "" {
		bindings = append(bindings, m.keys.Favorite, m.keys.RateUp)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, keyStyle.Render(h.Key)+descStyle.Render(" "+h.Desc))
	}
	gap := descStyle.Render("  ")
	return styles.Footer.Width(m.width).Render(strings.Join(parts, gap))
}
