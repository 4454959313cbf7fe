package app

import (
	"encoding/json"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/chat"
	"parley/internal/client"
	"parley/internal/config"
	"parley/internal/protocol"
	"parley/internal/types"
)

func testModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(config.Default(), client.New("http://127.0.0.1:0"), nil)
	m.resize(100, 30)
	return m
}

func signIn(t *testing.T, m *Model) {
	t.Helper()
	_, cmd := m.Update(loginResultMsg{user: &types.User{UserID: 1, Username: "me"}})
	if cmd == nil {
		t.Fatal("expected login to schedule roster load and polling")
	}
	if m.screen != screenMain {
		t.Fatal("expected main screen after login")
	}
}

func pollEvent(t *testing.T, kind, payload string) protocol.Event {
	t.Helper()
	var ev protocol.Event
	raw := fmt.Sprintf(`{"type":%q,"data":%s}`, kind, payload)
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("build event: %v", err)
	}
	return ev
}

func TestPollCycleMetersEvents(t *testing.T) {
	m := testModel(t)
	signIn(t, m)

	events := make([]protocol.Event, 0, 25)
	for i := 1; i <= 25; i++ {
		events = append(events, pollEvent(t, "FRIEND_REQUEST_INCOMING",
			fmt.Sprintf(`{"request_id":%d,"from_user_id":%d}`, i, 100+i)))
	}
	if _, cmd := m.Update(pollMsg{events: events}); cmd == nil {
		t.Fatal("expected next poll tick scheduled")
	}

	if got := len(m.roster.Requests()); got != 10 {
		t.Fatalf("expected one cycle's worth applied, got %d", got)
	}
	if got := m.scheduler.Pending(); got != 15 {
		t.Fatalf("expected 15 events queued, got %d", got)
	}

	// The next cycle drains another batch even if the poll itself fails.
	if _, cmd := m.Update(pollMsg{err: fmt.Errorf("connection refused")}); cmd == nil {
		t.Fatal("expected retry tick scheduled after poll failure")
	}
	if got := len(m.roster.Requests()); got != 20 {
		t.Fatalf("expected 20 applied after second cycle, got %d", got)
	}
}

func TestFocusChangesPollCadence(t *testing.T) {
	m := testModel(t)
	signIn(t, m)

	m.Update(tea.BlurMsg{})
	if m.scheduler.Visible() {
		t.Fatal("expected hidden cadence after blur")
	}
	if m.scheduler.Delay() != m.cfg.HiddenInterval() {
		t.Fatalf("expected hidden delay, got %v", m.scheduler.Delay())
	}
	m.Update(tea.FocusMsg{})
	if !m.scheduler.Visible() {
		t.Fatal("expected visible cadence after focus")
	}
}

func TestOpenConversationEvictionDropsLog(t *testing.T) {
	m := testModel(t)
	signIn(t, m)
	m.roster.SetFriends([]types.Friend{
		{UserID: 2, Username: "a"}, {UserID: 3, Username: "b"},
		{UserID: 4, Username: "c"}, {UserID: 5, Username: "d"},
		{UserID: 6, Username: "e"},
	})

	for _, id := range []int64{2, 3, 4, 5} {
		friend := *m.roster.FriendByID(id)
		if cmd := m.openFriend(friend); cmd == nil {
			t.Fatalf("expected history fetch for friend %d", id)
		}
	}
	if _, err := m.store.Append(chat.PeerKey(2), &types.Message{
		MessageID: 1, FromUserID: 2, Content: strPtr("old"), CreatedAt: 1,
	}, false); err != nil {
		t.Fatalf("append: %v", err)
	}

	m.openFriend(*m.roster.FriendByID(6))
	if m.tabs.Contains(chat.PeerKey(2)) {
		t.Fatal("expected oldest tab evicted")
	}
	if m.store.Len(chat.PeerKey(2)) != 0 {
		t.Fatal("expected evicted conversation's log dropped")
	}
	if m.tabs.Len() != chat.MaxTabs {
		t.Fatalf("expected %d tabs, got %d", chat.MaxTabs, m.tabs.Len())
	}
}

func TestCloseActiveTabRefetchesNeighbor(t *testing.T) {
	m := testModel(t)
	signIn(t, m)
	m.roster.SetFriends([]types.Friend{{UserID: 2, Username: "a"}, {UserID: 3, Username: "b"}})
	m.openFriend(*m.roster.FriendByID(2))
	m.openFriend(*m.roster.FriendByID(3))

	cmd := m.closeConversation(chat.PeerKey(3))
	if cmd == nil {
		t.Fatal("expected history refetch for the newly active tab")
	}
	if m.tabs.ActiveKey() != chat.PeerKey(2) {
		t.Fatalf("expected left neighbor active, got %s", m.tabs.ActiveKey())
	}
	if m.store.Len(chat.PeerKey(3)) != 0 {
		t.Fatal("expected closed conversation's log dropped")
	}
}

func TestCloseLastTabReturnsFocusToSidebar(t *testing.T) {
	m := testModel(t)
	signIn(t, m)
	m.roster.SetFriends([]types.Friend{{UserID: 2, Username: "a"}})
	m.openFriend(*m.roster.FriendByID(2))
	if m.focusSidebar {
		t.Fatal("expected chat focus after opening a conversation")
	}

	m.closeConversation(chat.PeerKey(2))
	if m.tabs.ActiveKey() != "" {
		t.Fatal("expected no active conversation")
	}
	if !m.focusSidebar {
		t.Fatal("expected sidebar focus after closing the last tab")
	}
}

func TestLogoutResetsState(t *testing.T) {
	m := testModel(t)
	signIn(t, m)
	m.roster.SetFriends([]types.Friend{{UserID: 2, Username: "a"}})
	m.openFriend(*m.roster.FriendByID(2))
	if _, err := m.store.Append(chat.PeerKey(2), &types.Message{
		MessageID: 1, FromUserID: 2, Content: strPtr("x"), CreatedAt: 1,
	}, false); err != nil {
		t.Fatalf("append: %v", err)
	}

	m.logout()
	if m.screen != screenLogin {
		t.Fatal("expected login screen")
	}
	if m.tabs.Len() != 0 || m.store.Len(chat.PeerKey(2)) != 0 {
		t.Fatal("expected tabs and logs cleared")
	}
	if m.roster.SelfID() != 0 {
		t.Fatal("expected roster cleared")
	}
}

func TestMenuTargetsSelectedMessage(t *testing.T) {
	m := testModel(t)
	signIn(t, m)
	m.roster.SetFriends([]types.Friend{{UserID: 2, Username: "a"}})
	m.openFriend(*m.roster.FriendByID(2))
	key := chat.PeerKey(2)
	for i := int64(1); i <= 3; i++ {
		if _, err := m.store.Append(key, &types.Message{
			MessageID: i, FromUserID: 2, Content: strPtr("x"), CreatedAt: float64(i),
		}, false); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	m.toggleMenu()
	if m.openMenuID == nil || *m.openMenuID != 3 {
		t.Fatalf("expected menu on latest message, got %v", m.openMenuID)
	}
	m.toggleMenu()
	if m.openMenuID != nil {
		t.Fatal("expected second toggle to close the menu")
	}

	m.moveSelection(-1)
	m.moveSelection(-1)
	m.toggleMenu()
	if m.openMenuID == nil || *m.openMenuID != 1 {
		t.Fatalf("expected menu on selected message, got %v", m.openMenuID)
	}
}
