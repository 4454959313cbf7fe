package app

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptAddFriend
	promptCreateGroup
	promptAddMember
)

// PromptController is the single-line modal input used for roster actions:
// add friend (user id), create group (name), add member ("<group id>
// <user id>").
type PromptController struct {
	kind  promptKind
	input textinput.Model
	errs  string
}

func NewPromptController() *PromptController {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 64
	input.Width = 40
	return &PromptController{input: input}
}

func (p *PromptController) IsOpen() bool {
	return p != nil && p.kind != promptNone
}

func (p *PromptController) Open(kind promptKind) {
	p.kind = kind
	p.errs = ""
	p.input.SetValue("")
	switch kind {
	case promptAddFriend:
		p.input.Placeholder = "user id"
	case promptCreateGroup:
		p.input.Placeholder = "group name"
	case promptAddMember:
		p.input.Placeholder = "group id and user id"
	}
	p.input.Focus()
}

func (p *PromptController) Close() {
	p.kind = promptNone
	p.input.Blur()
	p.input.SetValue("")
	p.errs = ""
}

type promptResult struct {
	kind    promptKind
	userID  int64
	groupID int64
	name    string
}

// HandleKey consumes keys while open. A non-nil result means the prompt was
// submitted with valid input and closed.
func (p *PromptController) HandleKey(msg tea.KeyMsg) (*promptResult, bool, tea.Cmd) {
	if !p.IsOpen() {
		return nil, false, nil
	}
	switch msg.String() {
	case "esc":
		p.Close()
		return nil, true, nil
	case "enter":
		result, err := p.parse()
		if err != nil {
			p.errs = err.Error()
			return nil, true, nil
		}
		p.Close()
		return result, true, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return nil, true, cmd
}

func (p *PromptController) parse() (*promptResult, error) {
	raw := strings.TrimSpace(p.input.Value())
	if raw == "" {
		return nil, errors.New("input is required")
	}
	result := &promptResult{kind: p.kind}
	switch p.kind {
	case promptAddFriend:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, errors.New("enter a valid user id")
		}
		result.userID = id
	case promptCreateGroup:
		result.name = raw
	case promptAddMember:
		fields := strings.Fields(raw)
		if len(fields) != 2 {
			return nil, errors.New("enter a group id and a user id")
		}
		gid, err1 := strconv.ParseInt(fields[0], 10, 64)
		uid, err2 := strconv.ParseInt(fields[1], 10, 64)
		if err1 != nil || err2 != nil || gid <= 0 || uid <= 0 {
			return nil, errors.New("enter a valid group id and user id")
		}
		result.groupID = gid
		result.userID = uid
	}
	return result, nil
}

func (p *PromptController) Title() string {
	switch p.kind {
	case promptAddFriend:
		return "Add friend"
	case promptCreateGroup:
		return "Create group"
	case promptAddMember:
		return "Add member to group"
	}
	return ""
}

func (p *PromptController) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		confirmTitleStyle.Render(p.Title()),
		"",
		p.input.View(),
	)
	if p.errs != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, statusErrorStyle.Render(p.errs))
	}
	box := confirmBoxStyle.Width(48).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
