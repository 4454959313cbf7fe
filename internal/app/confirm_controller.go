package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmChoice int

const (
	confirmChoiceNone confirmChoice = iota
	confirmChoiceConfirm
	confirmChoiceCancel
)

const confirmMaxWidth = 60

// ConfirmController is a modal yes/no dialog, currently used for the
// unfriend action.
type ConfirmController struct {
	active       bool
	title        string
	message      string
	confirmLabel string
	cancelLabel  string
	selected     int
}

func NewConfirmController() *ConfirmController {
	return &ConfirmController{}
}

func (c *ConfirmController) IsOpen() bool {
	return c != nil && c.active
}

func (c *ConfirmController) Open(title, message, confirmLabel, cancelLabel string) {
	if c == nil {
		return
	}
	c.active = true
	c.title = strings.TrimSpace(title)
	c.message = strings.TrimSpace(message)
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}
	if cancelLabel == "" {
		cancelLabel = "Cancel"
	}
	c.confirmLabel = confirmLabel
	c.cancelLabel = cancelLabel
	c.selected = 0
}

func (c *ConfirmController) Close() {
	if c == nil {
		return
	}
	c.active = false
	c.title = ""
	c.message = ""
	c.selected = 0
}

// HandleKey consumes a key while the dialog is open. It reports whether the
// key was handled and which choice, if any, it resolved to.
func (c *ConfirmController) HandleKey(msg tea.KeyMsg) (bool, confirmChoice) {
	if !c.IsOpen() {
		return false, confirmChoiceNone
	}
	switch msg.String() {
	case "esc", "n", "N":
		return true, confirmChoiceCancel
	case "y", "Y":
		return true, confirmChoiceConfirm
	case "left", "right", "tab":
		c.selected = 1 - c.selected
		return true, confirmChoiceNone
	case "enter":
		if c.selected == 0 {
			return true, confirmChoiceConfirm
		}
		return true, confirmChoiceCancel
	}
	return true, confirmChoiceNone
}

func (c *ConfirmController) View(width, height int) string {
	boxWidth := confirmMaxWidth
	if width-4 < boxWidth {
		boxWidth = width - 4
	}
	confirm := confirmButtonStyle.Render(" " + c.confirmLabel + " ")
	cancel := confirmButtonStyle.Render(" " + c.cancelLabel + " ")
	if c.selected == 0 {
		confirm = confirmButtonActiveStyle.Render(" " + c.confirmLabel + " ")
	} else {
		cancel = confirmButtonActiveStyle.Render(" " + c.cancelLabel + " ")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)
	body := lipgloss.JoinVertical(lipgloss.Left,
		confirmTitleStyle.Render(c.title),
		"",
		lipgloss.NewStyle().Width(boxWidth-4).Render(c.message),
		"",
		buttons,
	)
	box := confirmBoxStyle.Width(boxWidth).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
