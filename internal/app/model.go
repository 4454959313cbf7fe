package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/chat"
	"parley/internal/client"
	"parley/internal/config"
	"parley/internal/logging"
	"parley/internal/protocol"
	"parley/internal/types"
)

const (
	minSidebarWidth  = 24
	maxSidebarWidth  = 32
	minContentHeight = 6
)

var reactionEmojis = []string{"👍", "❤️", "😂"}

type screen int

const (
	screenLogin screen = iota
	screenMain
)

// Model is the root of the UI and the single owner of all mutable client
// state. Every mutation happens inside Update; the poll loop and user
// actions are scheduled turns, never concurrent.
type Model struct {
	cfg    config.Config
	log    logging.Logger
	client *client.Client

	store      *chat.Store
	roster     *chat.Roster
	reactions  *chat.Reconciler
	tabs       *chat.Tabs
	dispatcher *chat.Dispatcher
	scheduler  *chat.Scheduler

	screen    screen
	login     *LoginController
	sidebar   *SidebarController
	confirm   *ConfirmController
	prompt    *PromptController
	chatInput *ChatInput
	viewport  viewport.Model
	loader    spinner.Model

	width  int
	height int

	status       string
	focusSidebar bool
	loading      bool
	polling      bool
	quitting     bool

	// Explicit action-menu state: the id of the message whose menu is
	// open, or nil. Opened and closed by key intents only.
	openMenuID  *int64
	selectedIdx int
	replyTo     *types.Message

	pendingUnfriend *types.Friend
}

func NewModel(cfg config.Config, c *client.Client, log logging.Logger) *Model {
	if log == nil {
		log = logging.Nop()
	}
	store := chat.NewStore()
	roster := chat.NewRoster()
	reactions := chat.NewReconciler()
	tabs := chat.NewTabs()

	vp := viewport.New(40, minContentHeight)
	loader := spinner.New()
	loader.Spinner = spinner.Line

	m := &Model{
		cfg:         cfg,
		log:         log,
		client:      c,
		store:       store,
		roster:      roster,
		reactions:   reactions,
		tabs:        tabs,
		scheduler:   chat.NewScheduler(cfg.VisibleInterval(), cfg.HiddenInterval(), cfg.MaxEventsPerCycle()),
		screen:      screenLogin,
		login:       NewLoginController(),
		sidebar:     NewSidebarController(minSidebarWidth),
		confirm:     NewConfirmController(),
		prompt:      NewPromptController(),
		chatInput:   NewChatInput(40),
		viewport:    vp,
		loader:      loader,
		selectedIdx: -1,
	}
	m.dispatcher = chat.NewDispatcher(store, roster, reactions, tabs, m, log)
	return m
}

func Run(cfg config.Config, c *client.Client, log logging.Logger) error {
	model := NewModel(cfg, c, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Sink implementation: the dispatcher reports which state changed and the
// model refreshes the matching surface.

func (m *Model) RosterChanged() {
	m.sidebar.Refresh(m.roster)
	if active := m.tabs.Active(); active != nil {
		m.refreshTranscript()
	}
}

func (m *Model) RequestsChanged() {
	m.sidebar.Refresh(m.roster)
}

func (m *Model) ConversationChanged(key string) {
	if key != m.tabs.ActiveKey() {
		return
	}
	m.loading = false
	m.refreshTranscript()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.FocusMsg:
		m.scheduler.SetVisible(true)
		return m, nil
	case tea.BlurMsg:
		m.scheduler.SetVisible(false)
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(msg)
		return m, cmd

	case loginResultMsg:
		return m.handleLoginResult(msg)
	case registerResultMsg:
		m.login.SetBusy(false)
		if msg.err != nil {
			m.login.SetStatus("registration failed: "+msg.err.Error(), true)
		}
		return m, nil

	case pollMsg:
		return m.handlePoll(msg)
	case pollTickMsg:
		if m.screen != screenMain {
			m.polling = false
			return m, nil
		}
		return m, pollCmd(m.client)

	case actionResultMsg:
		if msg.err != nil {
			m.status = msg.label + " failed: " + commandErrorText(msg.err)
			return m, nil
		}
		if msg.refresh {
			return m, tea.Batch(
				sendCommandCmd(m.client, protocol.FriendList(), "refresh friends", false),
				sendCommandCmd(m.client, protocol.GroupList(), "refresh groups", false),
			)
		}
		return m, nil

	case friendAcceptedMsg:
		if msg.err != nil {
			m.status = "accept request failed: " + commandErrorText(msg.err)
			// Re-request the roster anyway so local state converges.
			return m, sendCommandCmd(m.client, protocol.FriendList(), "refresh friends", false)
		}
		m.roster.RemoveRequest(msg.requestID)
		m.sidebar.Refresh(m.roster)
		m.status = "friend request accepted"
		return m, sendCommandCmd(m.client, protocol.FriendList(), "refresh friends", false)

	case friendRemovedMsg:
		return m.handleFriendRemoved(msg)

	case clipboardResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = msg.success
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.SetBusy(false)
	if msg.err != nil {
		var cmdErr *protocol.CommandError
		if errors.As(msg.err, &cmdErr) && !msg.registered {
			m.login.SetStatus("sign in failed — press enter to create this account", true)
			m.login.OfferSignup()
		} else {
			m.login.SetStatus("sign in failed: "+msg.err.Error(), true)
		}
		return m, nil
	}
	m.roster.SetSelf(msg.user)
	m.screen = screenMain
	m.focusSidebar = true
	m.status = fmt.Sprintf("signed in as %s (%d)", msg.user.Username, msg.user.UserID)
	cmds := []tea.Cmd{
		sendCommandCmd(m.client, protocol.FriendList(), "load friends", false),
		sendCommandCmd(m.client, protocol.GroupList(), "load groups", false),
	}
	if !m.polling {
		m.polling = true
		cmds = append(cmds, pollCmd(m.client))
	}
	return m, tea.Batch(cmds...)
}

// handlePoll is one cycle of the self-perpetuating poll loop: enqueue the
// freshly polled batch, apply at most one cycle's worth of events, and
// schedule the next cycle. A transport failure is swallowed here — the
// server retains undelivered events for the next poll.
func (m *Model) handlePoll(msg pollMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenMain {
		m.polling = false
		return m, nil
	}
	if msg.err != nil {
		m.log.Debug("poll failed", logging.F("err", msg.err.Error()))
	} else {
		m.scheduler.Enqueue(msg.events)
	}
	m.dispatcher.ApplyBatch(m.scheduler.NextBatch())
	return m, pollTickCmd(m.scheduler.Delay())
}

func (m *Model) handleFriendRemoved(msg friendRemovedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "unfriend failed: " + commandErrorText(msg.err)
		return m, nil
	}
	m.status = "friend removed"
	key := chat.PeerKey(msg.userID)
	var cmds []tea.Cmd
	if m.tabs.Contains(key) {
		if cmd := m.closeConversation(key); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, sendCommandCmd(m.client, protocol.FriendList(), "refresh friends", false))
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == screenLogin {
		intent, cmd := m.login.HandleKey(msg)
		switch intent {
		case loginIntentQuit:
			m.quitting = true
			return m, tea.Quit
		case loginIntentSubmit:
			username, password := m.login.Credentials()
			m.login.SetBusy(true)
			m.login.SetStatus("", false)
			return m, loginCmd(m.client, username, password)
		case loginIntentRegister:
			username, password := m.login.Credentials()
			m.login.SetBusy(true)
			m.login.SetStatus("creating account...", false)
			return m, registerAndLoginCmd(m.client, username, password)
		}
		return m, cmd
	}

	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if !handled {
			return m, nil
		}
		switch choice {
		case confirmChoiceConfirm:
			m.confirm.Close()
			if m.pendingUnfriend != nil {
				target := m.pendingUnfriend
				m.pendingUnfriend = nil
				return m, removeFriendCmd(m.client, target.UserID)
			}
		case confirmChoiceCancel:
			m.confirm.Close()
			m.pendingUnfriend = nil
		}
		return m, nil
	}

	if m.prompt.IsOpen() {
		result, handled, cmd := m.prompt.HandleKey(msg)
		if !handled {
			return m, nil
		}
		if result != nil {
			return m, m.runPromptResult(result)
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+q":
		return m, m.logout()
	case "tab":
		m.setSidebarFocus(!m.focusSidebar)
		return m, nil
	case "ctrl+right":
		return m, m.cycleTab(1)
	case "ctrl+left":
		return m, m.cycleTab(-1)
	case "ctrl+w":
		if key := m.tabs.ActiveKey(); key != "" {
			return m, m.closeConversation(key)
		}
		return m, nil
	}

	if m.openMenuID != nil {
		return m, m.handleMenuKey(msg)
	}

	if m.focusSidebar {
		return m, m.handleSidebarKey(msg)
	}
	return m, m.handleChatKey(msg)
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.sidebar.Move(-1)
		return nil
	case "down", "j":
		m.sidebar.Move(1)
		return nil
	case "enter":
		row := m.sidebar.Selected()
		if row == nil {
			return nil
		}
		switch row.kind {
		case rowFriend:
			return m.openFriend(row.friend)
		case rowGroup:
			return m.openGroup(row.group)
		case rowRequest:
			return acceptFriendCmd(m.client, row.request.RequestID)
		}
		return nil
	case "a":
		m.prompt.Open(promptAddFriend)
		return nil
	case "g":
		m.prompt.Open(promptCreateGroup)
		return nil
	case "m":
		m.prompt.Open(promptAddMember)
		return nil
	case "x":
		row := m.sidebar.Selected()
		if row == nil || row.kind != rowFriend {
			return nil
		}
		friend := row.friend
		m.pendingUnfriend = &friend
		m.confirm.Open("Unfriend", fmt.Sprintf("Remove %s from your friends?", friend.Username), "Remove", "Cancel")
		return nil
	}
	return nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.replyTo != nil {
			m.replyTo = nil
			return nil
		}
		m.setSidebarFocus(true)
		return nil
	case "enter":
		return m.sendCurrentInput()
	case "ctrl+p":
		m.moveSelection(-1)
		return nil
	case "ctrl+n":
		m.moveSelection(1)
		return nil
	case "ctrl+o":
		m.toggleMenu()
		return nil
	case "pgup", "pgdown", "ctrl+u", "ctrl+d", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return m.chatInput.Update(msg)
}

// handleMenuKey runs the per-message action menu. The menu is explicit
// model state; every path out of here closes it deliberately.
func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	target := m.menuTarget()
	if target == nil {
		m.openMenuID = nil
		return nil
	}
	switch msg.String() {
	case "esc", "ctrl+o":
		m.openMenuID = nil
		return nil
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.openMenuID = nil
		return m.toggleReaction(target.Msg, reactionEmojis[idx])
	case "r":
		m.replyTo = target.Msg
		m.openMenuID = nil
		m.setSidebarFocus(false)
		return nil
	case "c":
		m.openMenuID = nil
		return copyToClipboardCmd(target.Msg.DisplayContent(), "message copied")
	case "d":
		m.openMenuID = nil
		if !target.Own {
			m.status = "only your own messages can be recalled"
			return nil
		}
		return sendCommandCmd(m.client, protocol.Recall(target.Msg.MessageID), "recall message", false)
	}
	return nil
}

func (m *Model) runPromptResult(result *promptResult) tea.Cmd {
	switch result.kind {
	case promptAddFriend:
		return sendCommandCmd(m.client, protocol.FriendRequest(result.userID), "send friend request", true)
	case promptCreateGroup:
		return sendCommandCmd(m.client, protocol.GroupCreate(result.name), "create group", true)
	case promptAddMember:
		return sendCommandCmd(m.client, protocol.GroupAdd(result.groupID, result.userID), "add group member", true)
	}
	return nil
}

func (m *Model) openFriend(friend types.Friend) tea.Cmd {
	if friend.UserID == m.roster.SelfID() {
		m.status = "cannot chat with yourself"
		return nil
	}
	return m.openConversation(chat.Tab{
		Key:    chat.PeerKey(friend.UserID),
		Title:  friend.Username,
		Kind:   chat.ConvPeer,
		PeerID: friend.UserID,
	})
}

func (m *Model) openGroup(group types.Group) tea.Cmd {
	return m.openConversation(chat.Tab{
		Key:     chat.GroupKey(group.GroupID),
		Title:   group.Name,
		Kind:    chat.ConvGroup,
		GroupID: group.GroupID,
	})
}

// openConversation tracks the tab (evicting the oldest beyond capacity),
// activates it, and requests a fresh history backfill. The evicted
// conversation's log is discarded; reopening it later comes back here.
func (m *Model) openConversation(tab chat.Tab) tea.Cmd {
	if evicted := m.tabs.Open(tab); evicted != nil {
		m.store.Drop(evicted.Key)
	}
	m.resetConversationView()
	m.setSidebarFocus(false)
	m.refreshTranscript()
	return tea.Batch(m.fetchHistory(tab), m.loader.Tick)
}

func (m *Model) fetchHistory(tab chat.Tab) tea.Cmd {
	m.loading = true
	var cmd protocol.Command
	if tab.Kind == chat.ConvPeer {
		cmd = protocol.MessageHistory(tab.PeerID, m.cfg.HistoryLimit())
	} else {
		cmd = protocol.GroupHistory(tab.GroupID, m.cfg.HistoryLimit())
	}
	return sendCommandCmd(m.client, cmd, "load history", false)
}

func (m *Model) closeConversation(key string) tea.Cmd {
	wasActive := m.tabs.ActiveKey() == key
	if !m.tabs.Close(key) {
		return nil
	}
	m.store.Drop(key)
	m.resetConversationView()
	if !wasActive {
		return nil
	}
	active := m.tabs.Active()
	if active == nil {
		m.refreshTranscript()
		m.setSidebarFocus(true)
		return nil
	}
	m.refreshTranscript()
	return tea.Batch(m.fetchHistory(*active), m.loader.Tick)
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	open := m.tabs.List()
	if len(open) < 2 {
		return nil
	}
	current := 0
	for i, tab := range open {
		if tab.Key == m.tabs.ActiveKey() {
			current = i
			break
		}
	}
	next := (current + delta + len(open)) % len(open)
	tab := open[next]
	m.tabs.Activate(tab.Key)
	m.resetConversationView()
	m.refreshTranscript()
	return tea.Batch(m.fetchHistory(tab), m.loader.Tick)
}

func (m *Model) sendCurrentInput() tea.Cmd {
	text := strings.TrimSpace(m.chatInput.Value())
	active := m.tabs.Active()
	if text == "" || active == nil {
		return nil
	}
	var replyID *int64
	if m.replyTo != nil {
		id := m.replyTo.MessageID
		replyID = &id
	}
	var cmd protocol.Command
	if active.Kind == chat.ConvPeer {
		cmd = protocol.SendMessage(active.PeerID, text, replyID)
	} else {
		cmd = protocol.SendGroupMessage(active.GroupID, text, replyID)
	}
	m.chatInput.Clear()
	m.replyTo = nil
	return sendCommandCmd(m.client, cmd, "send message", false)
}

// toggleReaction is the optimistic half of the reaction protocol: mutate the
// displayed summary and toggle set now, send the action, and let the
// authoritative update overwrite whatever we guessed.
func (m *Model) toggleReaction(target *types.Message, emoji string) tea.Cmd {
	m.reactions.Toggle(target, emoji)
	m.refreshTranscript()
	return sendCommandCmd(m.client, protocol.React(target.MessageID, emoji), "send reaction", false)
}

func (m *Model) moveSelection(delta int) {
	n := m.store.Len(m.tabs.ActiveKey())
	if n == 0 {
		return
	}
	idx := m.effectiveSelection()
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		// Moving past the tail returns to follow-latest mode.
		m.selectedIdx = -1
		m.refreshTranscript()
		return
	}
	m.selectedIdx = idx
	m.refreshTranscript()
}

func (m *Model) effectiveSelection() int {
	if m.selectedIdx >= 0 {
		return m.selectedIdx
	}
	return m.store.Len(m.tabs.ActiveKey()) - 1
}

func (m *Model) toggleMenu() {
	if m.openMenuID != nil {
		m.openMenuID = nil
		return
	}
	target := m.selectedEntry()
	if target == nil {
		return
	}
	id := target.Msg.MessageID
	m.openMenuID = &id
}

func (m *Model) selectedEntry() *chat.Entry {
	entries := m.store.Entries(m.tabs.ActiveKey())
	idx := m.effectiveSelection()
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return &entries[idx]
}

// menuTarget re-resolves the open menu's message; the menu closes if the
// message vanished (conversation replaced underneath it).
func (m *Model) menuTarget() *chat.Entry {
	if m.openMenuID == nil {
		return nil
	}
	entries := m.store.Entries(m.tabs.ActiveKey())
	for i := range entries {
		if entries[i].Msg.MessageID == *m.openMenuID {
			return &entries[i]
		}
	}
	return nil
}

func (m *Model) resetConversationView() {
	m.selectedIdx = -1
	m.openMenuID = nil
	m.replyTo = nil
}

func (m *Model) setSidebarFocus(sidebar bool) {
	m.focusSidebar = sidebar
	if sidebar {
		m.chatInput.Blur()
	} else {
		m.chatInput.Focus()
	}
}

func (m *Model) logout() tea.Cmd {
	m.store.Reset()
	m.roster.Reset()
	m.reactions.Reset()
	m.tabs.Reset()
	m.resetConversationView()
	m.chatInput.Clear()
	m.status = ""
	m.loading = false
	m.screen = screenLogin
	m.login = NewLoginController()
	return nil
}

func (m *Model) refreshTranscript() {
	key := m.tabs.ActiveKey()
	follow := m.selectedIdx == -1
	selected := -1
	if !follow {
		selected = m.selectedIdx
	}
	m.viewport.SetContent(renderTranscript(m.store, m.roster, key, m.viewport.Width, selected))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	sidebarWidth := m.sidebarWidth()
	contentWidth := width - sidebarWidth - 1
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := height - 6
	if contentHeight < minContentHeight {
		contentHeight = minContentHeight
	}
	m.sidebar.Resize(sidebarWidth)
	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight
	m.chatInput.Resize(contentWidth - 4)
	m.refreshTranscript()
}

func (m *Model) sidebarWidth() int {
	w := m.width / 4
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	if w > maxSidebarWidth {
		w = maxSidebarWidth
	}
	return w
}

func commandErrorText(err error) string {
	var cmdErr *protocol.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}
	if apiErr := client.AsAPIError(err); apiErr != nil {
		return apiErr.Message
	}
	return err.Error()
}

var _ chat.Sink = (*Model)(nil)
