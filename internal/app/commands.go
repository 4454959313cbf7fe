package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/client"
	"parley/internal/protocol"
)

const commandTimeout = 10 * time.Second

func loginCmd(c *client.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		user, err := c.Login(ctx, username, password)
		return loginResultMsg{user: user, err: err}
	}
}

// registerAndLoginCmd covers the login-screen fallback: the account does not
// exist yet, so register it and log in with the same credentials.
func registerAndLoginCmd(c *client.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		if err := c.Register(ctx, username, password); err != nil {
			return registerResultMsg{username: username, password: password, err: err}
		}
		user, err := c.Login(ctx, username, password)
		return loginResultMsg{user: user, registered: true, err: err}
	}
}

func pollCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		events, err := c.Poll(ctx)
		return pollMsg{events: events, err: err}
	}
}

func pollTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// sendCommandCmd fires one protocol command and reports completion under
// label. Results that arrive via the poll stream (list/history payloads)
// are not waited for here.
func sendCommandCmd(c *client.Client, cmd protocol.Command, label string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		_, err := c.Send(ctx, cmd)
		return actionResultMsg{label: label, refresh: refresh, err: err}
	}
}

func acceptFriendCmd(c *client.Client, requestID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		_, err := c.Send(ctx, protocol.FriendAccept(requestID))
		return friendAcceptedMsg{requestID: requestID, err: err}
	}
}

func removeFriendCmd(c *client.Client, userID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		_, err := c.Send(ctx, protocol.FriendRemove(userID))
		return friendRemovedMsg{userID: userID, err: err}
	}
}

func copyToClipboardCmd(text, success string) tea.Cmd {
	return func() tea.Msg {
		_, err := copyTextToClipboard(text)
		return clipboardResultMsg{success: success, err: err}
	}
}
