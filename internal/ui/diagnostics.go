package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/crate/internal/logtail"
)

const diagnosticsLines = 300

// diagnostics is the overlay that tails crate's own log file.
type diagnostics struct {
	visible bool
	path    string
	entries []logtail.Entry
	err     string
	view    viewport.Model
}

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, diagnosticsLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// logPathUsable reports whether path names a file rather than stderr or
// nothing at all.
func logPathUsable(path string) bool {
	path = strings.TrimSpace(path)
	return path != "" && path != "-"
}

func (m Model) openDiagnostics() (tea.Model, tea.Cmd) {
	m.diag.visible = true
	m.diag.view.Width = m.width
	m.diag.view.Height = max(m.height-2, 1)
	if !logPathUsable(m.diag.path) {
		m.diag.err = "Logging to a file is off; set log_file to use this view."
		m.diag.entries = nil
		m.syncDiagnostics()
		return m, nil
	}
	return m, readLogCmd(m.diag.path)
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Diagnostics):
		m.diag.visible = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if logPathUsable(m.diag.path) {
			return m, readLogCmd(m.diag.path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.diag.view.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.diag.view.LineUp(1)
	case key.Matches(msg, m.keys.Top):
		m.diag.view.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.diag.view.GotoBottom()
	}
	return m, nil
}

func (m *Model) applyLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.diag.err = msg.err.Error()
		m.diag.entries = nil
	} else {
		m.diag.err = ""
		m.diag.entries = logtail.ParseLines(msg.lines)
	}
	m.syncDiagnostics()
	m.diag.view.GotoBottom()
}

func (m *Model) syncDiagnostics() {
	styles := m.theme.Styles()
	if m.diag.err != "" {
		m.diag.view.SetContent(styles.DangerText.Render(m.diag.err))
		return
	}
	if len(m.diag.entries) == 0 {
		m.diag.view.SetContent(styles.MutedText.Render("No log lines yet."))
		return
	}

	lines := make([]string, len(m.diag.entries))
	for i, e := range m.diag.entries {
		if e.Level == "" {
			lines[i] = styles.Text.Render(e.Raw)
			continue
		}
		level := styles.StatusStyle(levelStatus(e.Level)).Render(padRight(strings.ToUpper(e.Level), 5))
		when := ""
		if e.Time != "" {
			when = styles.FaintText.Render(e.Time) + " "
		}
		lines[i] = when + level + " " + styles.Text.Render(e.Message)
	}
	m.diag.view.SetContent(strings.Join(lines, "\n"))
}

// levelStatus maps a log level onto the theme's status colors.
func levelStatus(level string) string {
	switch level {
	case "error":
		return "error"
	case "warn":
		return "favorite"
	case "info":
		return "info"
	default:
		return "idle"
	}
}

func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.Header.Width(m.width).Render(
		styles.Logo.Background(styles.Header.GetBackground()).Render("crate") + "  " + "log " + truncate(m.diag.path, max(m.width-20, 10)))
	footer := styles.Footer.Width(m.width).Render("j/k scroll · r reload · esc close")
	return title + "\n" + m.diag.view.View() + "\n" + footer
}
