// Package chat is the client-side synchronization core: per-conversation
// message logs with idempotent event application, optimistic reaction
// reconciliation, roster state, the poll cadence, and the bounded tab set.
// Everything here mutates on the UI goroutine only; no locking.
package chat

import (
	"fmt"
	"strconv"
	"strings"
)

// ConvKind discriminates the two conversation variants.
type ConvKind int

const (
	ConvPeer ConvKind = iota
	ConvGroup
)

// PeerKey is the identity of a direct conversation with one friend.
func PeerKey(userID int64) string {
	return "peer-" + strconv.FormatInt(userID, 10)
}

// GroupKey is the identity of a group conversation.
func GroupKey(groupID int64) string {
	return "group-" + strconv.FormatInt(groupID, 10)
}

// ParseKey splits a conversation key back into its kind and id.
func ParseKey(key string) (ConvKind, int64, error) {
	switch {
	case strings.HasPrefix(key, "peer-"):
		id, err := strconv.ParseInt(key[len("peer-"):], 10, 64)
		return ConvPeer, id, err
	case strings.HasPrefix(key, "group-"):
		id, err := strconv.ParseInt(key[len("group-"):], 10, 64)
		return ConvGroup, id, err
	}
	return ConvPeer, 0, fmt.Errorf("malformed conversation key %q", key)
}
