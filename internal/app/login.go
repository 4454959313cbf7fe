package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginController owns the login screen: username/password fields, a status
// line, and the submit intent. A failed login offers auto-registration with
// the same credentials on the next enter.
type LoginController struct {
	username    textinput.Model
	password    textinput.Model
	focusIndex  int
	status      string
	statusError bool
	offerSignup bool
	busy        bool
}

func NewLoginController() *LoginController {
	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "username"
	username.Focus()
	username.CharLimit = 64
	username.Width = 32

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 64
	password.Width = 32

	return &LoginController{username: username, password: password}
}

type loginIntent int

const (
	loginIntentNone loginIntent = iota
	loginIntentSubmit
	loginIntentRegister
	loginIntentQuit
)

func (l *LoginController) Credentials() (username, password string) {
	return strings.TrimSpace(l.username.Value()), strings.TrimSpace(l.password.Value())
}

func (l *LoginController) SetStatus(status string, isErr bool) {
	l.status = status
	l.statusError = isErr
}

// OfferSignup flips the next submit into a register-then-login attempt.
func (l *LoginController) OfferSignup() {
	l.offerSignup = true
}

func (l *LoginController) SetBusy(busy bool) {
	l.busy = busy
}

func (l *LoginController) HandleKey(msg tea.KeyMsg) (loginIntent, tea.Cmd) {
	if l.busy {
		if msg.String() == "ctrl+c" {
			return loginIntentQuit, nil
		}
		return loginIntentNone, nil
	}
	switch msg.String() {
	case "ctrl+c", "esc":
		return loginIntentQuit, nil
	case "tab", "shift+tab", "up", "down":
		l.focusIndex = (l.focusIndex + 1) % 2
		if l.focusIndex == 0 {
			l.username.Focus()
			l.password.Blur()
		} else {
			l.username.Blur()
			l.password.Focus()
		}
		return loginIntentNone, nil
	case "enter":
		username, password := l.Credentials()
		if username == "" || password == "" {
			l.SetStatus("username and password are required", true)
			return loginIntentNone, nil
		}
		if l.offerSignup {
			l.offerSignup = false
			return loginIntentRegister, nil
		}
		return loginIntentSubmit, nil
	}
	var cmd tea.Cmd
	if l.focusIndex == 0 {
		l.username, cmd = l.username.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return loginIntentNone, cmd
}

func (l *LoginController) View(width, height int) string {
	title := loginTitleStyle.Render("parley")
	fields := lipgloss.JoinVertical(lipgloss.Left,
		inputLabelStyle.Render("username"),
		l.username.View(),
		"",
		inputLabelStyle.Render("password"),
		l.password.View(),
	)
	status := l.status
	if l.busy {
		status = "signing in..."
	}
	statusLine := statusInfoStyle.Render(status)
	if l.statusError && !l.busy {
		statusLine = statusErrorStyle.Render(status)
	}
	hint := hintStyle.Render("enter sign in · tab switch field · esc quit")
	box := loginBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", fields, "", statusLine, hint))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
