package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type ChatInput struct {
	input textinput.Model
}

func NewChatInput(width int) *ChatInput {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0
	input.Width = width
	return &ChatInput{input: input}
}

func (c *ChatInput) Resize(width int) {
	if width < 10 {
		width = 10
	}
	c.input.Width = width
}

func (c *ChatInput) Focus() {
	c.input.Focus()
}

func (c *ChatInput) Blur() {
	c.input.Blur()
}

func (c *ChatInput) Focused() bool {
	return c.input.Focused()
}

func (c *ChatInput) SetPlaceholder(value string) {
	c.input.Placeholder = value
}

func (c *ChatInput) Value() string {
	return c.input.Value()
}

func (c *ChatInput) Clear() {
	c.input.SetValue("")
}

func (c *ChatInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChatInput) View() string {
	return c.input.View()
}
