package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"parley/internal/chat"
	"parley/internal/types"
)

// renderTranscript builds the viewport content for one conversation. Own
// messages are right-aligned; recalled messages render the placeholder in
// place, keeping position and reactions. selectedIdx marks the message the
// action menu targets (-1 for none).
func renderTranscript(store *chat.Store, roster *chat.Roster, key string, width, selectedIdx int) string {
	entries := store.Entries(key)
	if len(entries) == 0 {
		return hintStyle.Render("no messages yet")
	}
	bodyWidth := width * 3 / 4
	if bodyWidth < 20 {
		bodyWidth = width
	}
	blocks := make([]string, 0, len(entries))
	for i, entry := range entries {
		block := renderEntry(store, roster, key, entry, bodyWidth, i == selectedIdx)
		if entry.Own {
			block = lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(block)
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n")
}

func renderEntry(store *chat.Store, roster *chat.Roster, key string, entry chat.Entry, width int, selected bool) string {
	msg := entry.Msg
	nameStyle := senderStyle
	if entry.Own {
		nameStyle = ownSenderStyle
	}
	header := nameStyle.Render(senderName(roster, entry)) + " " + timeStyle.Render(msg.Time().Format("15:04"))
	if selected {
		header = selectedMsgStyle.Render("▸ ") + header
	}

	lines := []string{header}
	if msg.ReplyToID != nil {
		lines = append(lines, replyQuoteStyle.Render("↩ "+replySnippet(store, key, *msg.ReplyToID)))
	}
	if msg.Recalled() {
		lines = append(lines, recalledStyle.Render(types.RecalledPlaceholder))
	} else {
		lines = append(lines, renderMarkdown(msg.DisplayContent(), width))
	}
	if reactions := formatReactions(msg.ReactionsSummary); reactions != "" {
		lines = append(lines, reactionStyle.Render(reactions))
	}
	return strings.Join(lines, "\n")
}

func senderName(roster *chat.Roster, entry chat.Entry) string {
	if entry.Own {
		return "you"
	}
	if friend := roster.FriendByID(entry.Msg.FromUserID); friend != nil {
		return friend.Username
	}
	return fmt.Sprintf("user %d", entry.Msg.FromUserID)
}

// replySnippet quotes the referenced message when it is locally known. The
// reference is never validated; a missing target degrades to a stub.
func replySnippet(store *chat.Store, key string, replyToID int64) string {
	target := store.Get(key, replyToID)
	if target == nil {
		return fmt.Sprintf("message %d", replyToID)
	}
	snippet := target.DisplayContent()
	if len(snippet) > 48 {
		snippet = snippet[:48] + "…"
	}
	return snippet
}

// formatReactions renders "emoji count" pairs in stable order; zero counts
// never appear (the store drops them).
func formatReactions(summary map[string]int) string {
	if len(summary) == 0 {
		return ""
	}
	emojis := make([]string, 0, len(summary))
	for emoji := range summary {
		emojis = append(emojis, emoji)
	}
	sort.Strings(emojis)
	parts := make([]string, 0, len(emojis))
	for _, emoji := range emojis {
		parts = append(parts, fmt.Sprintf("%s %d", emoji, summary[emoji]))
	}
	return strings.Join(parts, "  ")
}
