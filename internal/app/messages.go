package app

import (
	"time"

	"parley/internal/protocol"
	"parley/internal/types"
)

type loginResultMsg struct {
	user       *types.User
	registered bool
	err        error
}

type registerResultMsg struct {
	username string
	password string
	err      error
}

type pollMsg struct {
	events []protocol.Event
	err    error
}

type pollTickMsg time.Time

// actionResultMsg is the shared completion message for fire-and-forget
// commands (send, react, recall, friend/group ops). label names the action
// for the failure notice.
type actionResultMsg struct {
	label   string
	refresh bool
	err     error
}

type friendAcceptedMsg struct {
	requestID int64
	err       error
}

type friendRemovedMsg struct {
	userID int64
	err    error
}

type clipboardResultMsg struct {
	success string
	err     error
}
