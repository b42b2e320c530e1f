package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Back        key.Binding
	Refresh     key.Binding
	Account     key.Binding
	Diagnostics key.Binding

	// View switching
	ViewProfile     key.Binding
	ViewNews        key.Binding
	ViewArtists     key.Binding
	ViewPlaylists   key.Binding
	ViewCollections key.Binding
	ViewFavorites   key.Binding
	Search          key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Album actions
	Favorite   key.Binding
	RateUp     key.Binding
	RateDown   key.Binding
	ClearRate  key.Binding
	NextField  key.Binding
	ToggleMode key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh view"),
		),
		Account: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Log in / log out"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Show crate log"),
		),

		ViewProfile: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Profile"),
		),
		ViewNews: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "News"),
		),
		ViewArtists: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Artists"),
		),
		ViewPlaylists: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Playlists"),
		),
		ViewCollections: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Collections"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "Favorite tracks"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favorite"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Rate up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Rate down"),
		),
		ClearRate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear rating"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Next field"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Switch log in / sign up"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewProfile, k.ViewNews, k.ViewArtists, k.ViewPlaylists, k.ViewCollections, k.ViewFavorites, k.Search},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Back},
		{k.Favorite, k.RateUp, k.RateDown, k.ClearRate},
		{k.Refresh, k.Account, k.Diagnostics, k.CycleTheme, k.Help, k.Quit},
	}
}
