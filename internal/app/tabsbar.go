package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"parley/internal/chat"
)

const maxTabTitleWidth = 16

// renderTabsBar draws the open-conversation tabs in opening order, marking
// the active one.
func renderTabsBar(tabs *chat.Tabs, width int) string {
	open := tabs.List()
	if len(open) == 0 {
		return tabsBarStyle.Width(width).Render(hintStyle.Render("no open conversations"))
	}
	parts := make([]string, 0, len(open))
	for _, tab := range open {
		title := runewidth.Truncate(tab.Title, maxTabTitleWidth, "…")
		if tab.Key == tabs.ActiveKey() {
			parts = append(parts, tabActiveStyle.Render(" "+title+" "))
		} else {
			parts = append(parts, tabStyle.Render(" "+title+" "))
		}
	}
	bar := strings.Join(parts, tabSeparatorStyle.Render("│"))
	return tabsBarStyle.Width(width).Render(lipgloss.NewStyle().MaxWidth(width).Render(bar))
}
