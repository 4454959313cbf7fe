package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "starting..."
	}
	if m.screen == screenLogin {
		return m.login.View(m.width, m.height)
	}
	if m.confirm.IsOpen() {
		return m.confirm.View(m.width, m.height)
	}
	if m.prompt.IsOpen() {
		return m.prompt.View(m.width, m.height)
	}

	tabsBar := renderTabsBar(m.tabs, m.width)
	contentHeight := m.viewport.Height

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.contextLine(),
		m.inputLine(),
		m.statusLine(),
	)
	sidebar := m.sidebar.View(contentHeight+3, m.focusSidebar)

	return lipgloss.JoinVertical(lipgloss.Left,
		tabsBar,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right),
	)
}

// contextLine is the single line between transcript and input: the open
// action menu, the active reply target, or blank.
func (m *Model) contextLine() string {
	if m.openMenuID != nil {
		return m.menuLine()
	}
	if m.replyTo != nil {
		snippet := m.replyTo.DisplayContent()
		if len(snippet) > 40 {
			snippet = snippet[:40] + "…"
		}
		return replyBarStyle.Render("replying to: " + snippet + "  (esc to cancel)")
	}
	return ""
}

func (m *Model) menuLine() string {
	target := m.menuTarget()
	if target == nil {
		return ""
	}
	parts := make([]string, 0, len(reactionEmojis)+3)
	for i, emoji := range reactionEmojis {
		label := fmt.Sprintf("[%d] %s", i+1, emoji)
		if m.reactions.Active(target.Msg.MessageID, emoji) {
			label += "✓"
		}
		parts = append(parts, label)
	}
	parts = append(parts, "[r]eply", "[c]opy")
	if target.Own && !target.Msg.Recalled() {
		parts = append(parts, "[d] recall")
	}
	return menuStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) inputLine() string {
	if m.tabs.Active() == nil {
		return hintStyle.Render("select a friend or group and press enter to chat")
	}
	return m.chatInput.View()
}

func (m *Model) statusLine() string {
	left := m.status
	if m.loading {
		left = m.loader.View() + " loading history"
	}
	hints := "tab focus · ctrl+o menu · ctrl+w close tab · ctrl+q sign out"
	if m.focusSidebar {
		hints = "enter open · a add friend · g new group · m add member · x unfriend"
	}
	line := statusLineStyle.Render(left)
	gap := m.width - lipgloss.Width(line) - lipgloss.Width(hints) - 2
	if gap < 1 {
		return line
	}
	return line + strings.Repeat(" ", gap) + hintStyle.Render(hints)
}
