package app

import "github.com/charmbracelet/lipgloss"

var (
	loginTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	loginBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	inputLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	statusInfoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hintStyle        = lipgloss.NewStyle().Faint(true)

	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	sidebarHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	sidebarRowStyle      = lipgloss.NewStyle()
	sidebarSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	sidebarEmptyStyle    = lipgloss.NewStyle().Faint(true)

	tabsBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))
	tabStyle          = lipgloss.NewStyle().Faint(true)
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tabSeparatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	senderStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	ownSenderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	timeStyle        = lipgloss.NewStyle().Faint(true)
	recalledStyle    = lipgloss.NewStyle().Faint(true).Italic(true)
	reactionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	replyQuoteStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	selectedMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	replyBarStyle = lipgloss.NewStyle().Faint(true)

	statusLineStyle = lipgloss.NewStyle().Faint(true)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2)
	confirmTitleStyle        = lipgloss.NewStyle().Bold(true)
	confirmButtonStyle       = lipgloss.NewStyle().Faint(true)
	confirmButtonActiveStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
)
