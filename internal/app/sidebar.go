package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"

	"parley/internal/chat"
	"parley/internal/types"
)

type sidebarRowKind int

const (
	rowFriend sidebarRowKind = iota
	rowGroup
	rowRequest
)

type sidebarRow struct {
	kind    sidebarRowKind
	friend  types.Friend
	group   types.Group
	request types.FriendRequest
}

// SidebarController renders the roster (friends, groups, pending requests)
// as one navigable list.
type SidebarController struct {
	rows     []sidebarRow
	selected int
	width    int
}

func NewSidebarController(width int) *SidebarController {
	return &SidebarController{width: width}
}

func (s *SidebarController) Resize(width int) {
	s.width = width
}

// Refresh rebuilds the rows from roster state, keeping the selection pinned
// to the same position where possible.
func (s *SidebarController) Refresh(roster *chat.Roster) {
	rows := make([]sidebarRow, 0, len(roster.Friends())+len(roster.Groups())+len(roster.Requests()))
	for _, f := range roster.Friends() {
		rows = append(rows, sidebarRow{kind: rowFriend, friend: f})
	}
	for _, g := range roster.Groups() {
		rows = append(rows, sidebarRow{kind: rowGroup, group: g})
	}
	for _, r := range roster.Requests() {
		rows = append(rows, sidebarRow{kind: rowRequest, request: r})
	}
	s.rows = rows
	if s.selected >= len(rows) {
		s.selected = len(rows) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *SidebarController) Move(delta int) {
	if len(s.rows) == 0 {
		return
	}
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.rows) {
		s.selected = len(s.rows) - 1
	}
}

// Selected returns the row under the cursor, or nil when the roster is
// empty.
func (s *SidebarController) Selected() *sidebarRow {
	if s.selected < 0 || s.selected >= len(s.rows) {
		return nil
	}
	return &s.rows[s.selected]
}

func (s *SidebarController) View(height int, focused bool) string {
	var b strings.Builder
	line := func(text string, style lipgloss.Style) {
		b.WriteString(style.Render(runewidth.Truncate(text, s.width-2, "…")))
		b.WriteString("\n")
	}

	section := -1
	count := 0
	for i, row := range s.rows {
		if int(row.kind) != section {
			section = int(row.kind)
			switch row.kind {
			case rowFriend:
				line("FRIENDS", sidebarHeaderStyle)
			case rowGroup:
				line("GROUPS", sidebarHeaderStyle)
			case rowRequest:
				line("REQUESTS", sidebarHeaderStyle)
			}
			count++
		}
		var text string
		switch row.kind {
		case rowFriend:
			text = fmt.Sprintf("%s (%d)", row.friend.Username, row.friend.UserID)
		case rowGroup:
			text = fmt.Sprintf("%s · %d members", row.group.Name, row.group.MemberCount)
		case rowRequest:
			from := row.request.FromUsername
			if from == "" {
				from = fmt.Sprintf("user %d", row.request.FromUserID)
			}
			text = "from " + from
		}
		style := sidebarRowStyle
		if i == s.selected && focused {
			style = sidebarSelectedStyle
		}
		line(text, style)
		count++
		if count >= height {
			break
		}
	}
	if len(s.rows) == 0 {
		line("no friends yet", sidebarEmptyStyle)
		line("press a to add one", sidebarEmptyStyle)
	}
	return sidebarStyle.Width(s.width).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}
