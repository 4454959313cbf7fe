package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func typePrompt(t *testing.T, p *PromptController, text string) {
	t.Helper()
	for _, r := range text {
		if _, handled, _ := p.HandleKey(keyRunes(string(r))); !handled {
			t.Fatalf("expected open prompt to consume %q", r)
		}
	}
}

func TestPromptAddFriendParsesUserID(t *testing.T) {
	p := NewPromptController()
	p.Open(promptAddFriend)
	typePrompt(t, p, "42")

	result, handled, _ := p.HandleKey(enterKey())
	if !handled || result == nil {
		t.Fatal("expected submit to yield a result")
	}
	if result.kind != promptAddFriend || result.userID != 42 {
		t.Fatalf("unexpected result %+v", result)
	}
	if p.IsOpen() {
		t.Fatal("expected prompt closed after submit")
	}
}

func TestPromptAddFriendRejectsGarbage(t *testing.T) {
	p := NewPromptController()
	p.Open(promptAddFriend)
	typePrompt(t, p, "ana")

	result, handled, _ := p.HandleKey(enterKey())
	if !handled || result != nil {
		t.Fatal("expected invalid input to stay open without a result")
	}
	if !p.IsOpen() {
		t.Fatal("expected prompt to remain open")
	}
}

func TestPromptCreateGroupKeepsName(t *testing.T) {
	p := NewPromptController()
	p.Open(promptCreateGroup)
	typePrompt(t, p, "weekend plans")

	result, _, _ := p.HandleKey(enterKey())
	if result == nil || result.name != "weekend plans" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPromptAddMemberParsesBothIDs(t *testing.T) {
	p := NewPromptController()
	p.Open(promptAddMember)
	typePrompt(t, p, "3 7")

	result, _, _ := p.HandleKey(enterKey())
	if result == nil || result.groupID != 3 || result.userID != 7 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPromptEscCloses(t *testing.T) {
	p := NewPromptController()
	p.Open(promptAddFriend)
	if _, handled, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); !handled {
		t.Fatal("expected esc to be consumed")
	}
	if p.IsOpen() {
		t.Fatal("expected prompt closed")
	}
}
