package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/crate/internal/router"
	"github.com/five82/crate/internal/vinylhound"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldCount
)

// loginForm is the modal used for both log in and sign up.
type loginForm struct {
	visible bool
	signup  bool
	focus   int
	inputs  [fieldCount]textinput.Model
	err     string
}

func newLoginForm() loginForm {
	var f loginForm
	for i := range f.inputs {
		in := textinput.New()
		in.CharLimit = 128
		in.Width = 30
		switch i {
		case fieldUsername:
			in.Placeholder = "username"
		case fieldPassword:
			in.Placeholder = "password"
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs[i] = in
	}
	return f
}

func (f *loginForm) open() {
	f.visible = true
	f.err = ""
	f.focus = fieldUsername
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

func (f *loginForm) close() {
	f.visible = false
	f.err = ""
	for i := range f.inputs {
		f.inputs[i].Blur()
		f.inputs[i].Reset()
	}
}

// focusCmd focuses the active field and blurs the rest.
func (f *loginForm) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.focus {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (f loginForm) credentials() vinylhound.Credentials {
	return vinylhound.Credentials{
		Username: strings.TrimSpace(f.inputs[fieldUsername].Value()),
		Password: f.inputs[fieldPassword].Value(),
	}
}

func (f loginForm) title() string {
	if f.signup {
		return "Sign up"
	}
	return "Log in"
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case msg.Type == tea.KeyEsc:
		m.login.close()
		return m, nil
	case key.Matches(msg, m.keys.ToggleMode):
		m.login.signup = !m.login.signup
		m.login.err = ""
		return m, nil
	case key.Matches(msg, m.keys.NextField), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		m.login.focus = (m.login.focus + 1) % fieldCount
		return m, m.login.focusCmd()
	case msg.Type == tea.KeyEnter:
		if m.login.focus == fieldUsername {
			m.login.focus = fieldPassword
			return m, m.login.focusCmd()
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	creds := m.login.credentials()
	if creds.Username == "" || creds.Password == "" {
		m.login.err = "Username and password are required."
		return m, nil
	}
	if m.router == nil {
		return m, nil
	}

	m.busy = true
	m.login.err = ""
	r := m.router
	if m.login.signup {
		return m, m.runAction("signup", router.BuildNews(), func(ctx context.Context) error {
			return r.Signup(ctx, creds)
		})
	}
	return m, m.runAction("login", router.BuildNews(), func(ctx context.Context) error {
		return r.Login(ctx, creds)
	})
}

// renderLogin renders the login modal centered on screen.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(m.login.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Username", "Password"}
	for i, in := range m.login.inputs {
		label := styles.MutedText
		if i == m.login.focus {
			label = styles.AccentText
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.busy:
		b.WriteString(styles.InfoText.Render("Contacting Vinylhound..."))
	case m.login.err != "":
		b.WriteString(styles.DangerText.Render(m.login.err))
	default:
		other := "sign up"
		if m.login.signup {
			other = "log in"
		}
		b.WriteString(styles.FaintText.Render("enter submit · tab next · ctrl+s " + other + " · esc cancel"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
