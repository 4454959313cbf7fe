package protocol

import (
	"encoding/json"

	"parley/internal/types"
)

// EventKind classifies a poll-delivered event. The set is closed: anything
// the decoder does not recognize becomes EventUnknown so the dispatcher can
// log it instead of silently falling through.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventFriendListResult
	EventGroupListResult
	EventFriendRequestIncoming
	EventMessageReceived
	EventGroupMessageReceived
	EventMessageHistoryResult
	EventGroupHistoryResult
	EventRecallUpdate
	EventReactUpdate
)

var eventKinds = map[string]EventKind{
	"FRIEND_LIST_RESULT":      EventFriendListResult,
	"GROUP_LIST_RESULT":       EventGroupListResult,
	"FRIEND_REQUEST_INCOMING": EventFriendRequestIncoming,
	"MSG_RECV":                EventMessageReceived,
	"GROUP_MSG_RECV":          EventGroupMessageReceived,
	"MSG_HISTORY_RESULT":      EventMessageHistoryResult,
	"GROUP_HISTORY_RESULT":    EventGroupHistoryResult,
	"MSG_RECALL_UPDATE":       EventRecallUpdate,
	"MSG_REACT_UPDATE":        EventReactUpdate,
}

func (k EventKind) String() string {
	for name, kind := range eventKinds {
		if kind == k {
			return name
		}
	}
	return "UNKNOWN"
}

// Event is one poll-delivered server event: a kind tag plus the raw payload,
// decoded on demand by the dispatcher.
type Event struct {
	Kind EventKind
	Type string
	Data json.RawMessage
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Type = wire.Type
	e.Kind = eventKinds[wire.Type]
	e.Data = wire.Data
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}{Type: e.Type, Data: e.Data})
}

// FriendListResult carries the authoritative friend roster plus the pending
// incoming requests.
type FriendListResult struct {
	Friends   []types.Friend        `json:"friends"`
	PendingIn []types.FriendRequest `json:"pending_in"`
}

type GroupListResult struct {
	Groups []types.Group `json:"groups"`
}

// HistoryResult is a full-replacement backfill for one conversation. PeerID
// or GroupID names the target; when both are zero the result applies to the
// conversation that requested it (the active one).
type HistoryResult struct {
	PeerID   int64            `json:"peer_id,omitempty"`
	GroupID  int64            `json:"group_id,omitempty"`
	Messages []*types.Message `json:"messages"`
}

type RecallUpdate struct {
	MessageID int64 `json:"message_id"`
}

// ReactUpdate is the authoritative per-action reaction state. Counts is
// always ground truth; Action and Reaction describe the triggering toggle
// and only matter when ByUserID is the current user.
type ReactUpdate struct {
	MessageID int64          `json:"message_id"`
	Counts    map[string]int `json:"counts"`
	ByUserID  int64          `json:"by_user_id"`
	Reaction  string         `json:"reaction"`
	Action    string         `json:"action"`
}

const (
	ReactActionAdd    = "add"
	ReactActionRemove = "remove"
)

func (e Event) FriendList() (FriendListResult, error) {
	var out FriendListResult
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

func (e Event) GroupList() (GroupListResult, error) {
	var out GroupListResult
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

func (e Event) FriendRequest() (types.FriendRequest, error) {
	var out types.FriendRequest
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

func (e Event) Message() (*types.Message, error) {
	var out types.Message
	if err := json.Unmarshal(e.Data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e Event) History() (HistoryResult, error) {
	var out HistoryResult
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

func (e Event) Recall() (RecallUpdate, error) {
	var out RecallUpdate
	err := json.Unmarshal(e.Data, &out)
	return out, err
}

func (e Event) React() (ReactUpdate, error) {
	var out ReactUpdate
	err := json.Unmarshal(e.Data, &out)
	return out, err
}
