package chat

import (
	"errors"

	"parley/internal/logging"
	"parley/internal/protocol"
	"parley/internal/types"
)

// Sink is the rendering surface. The dispatcher tells it which slice of
// state changed; it pulls fresh snapshots from the store/roster when asked
// to draw.
type Sink interface {
	RosterChanged()
	RequestsChanged()
	ConversationChanged(key string)
}

type nopSink struct{}

func (nopSink) RosterChanged()                 {}
func (nopSink) RequestsChanged()               {}
func (nopSink) ConversationChanged(key string) {}

// Dispatcher classifies each poll-delivered event and applies exactly one
// state mutation. Events for conversations that are not currently displayed
// are dropped; a reopened conversation resynchronizes via a history fetch
// instead of the client buffering everything forever. Every mutation is
// idempotent, so redelivered events are harmless.
type Dispatcher struct {
	store     *Store
	roster    *Roster
	reactions *Reconciler
	tabs      *Tabs
	sink      Sink
	log       logging.Logger
}

func NewDispatcher(store *Store, roster *Roster, reactions *Reconciler, tabs *Tabs, sink Sink, log logging.Logger) *Dispatcher {
	if sink == nil {
		sink = nopSink{}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{
		store:     store,
		roster:    roster,
		reactions: reactions,
		tabs:      tabs,
		sink:      sink,
		log:       log,
	}
}

// ApplyBatch applies events in batch order and returns how many were
// applied. Decode failures and protocol errors skip the event, never the
// batch.
func (d *Dispatcher) ApplyBatch(events []protocol.Event) int {
	for _, ev := range events {
		d.Apply(ev)
	}
	return len(events)
}

// Apply routes one event. The kind switch is exhaustive; unknown kinds are
// logged and dropped.
func (d *Dispatcher) Apply(ev protocol.Event) {
	switch ev.Kind {
	case protocol.EventFriendListResult:
		result, err := ev.FriendList()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		d.roster.SetFriends(result.Friends)
		d.roster.SetRequests(result.PendingIn)
		d.sink.RosterChanged()
		d.sink.RequestsChanged()

	case protocol.EventGroupListResult:
		result, err := ev.GroupList()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		d.roster.SetGroups(result.Groups)
		d.sink.RosterChanged()

	case protocol.EventFriendRequestIncoming:
		req, err := ev.FriendRequest()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		if d.roster.AddRequest(req) {
			d.sink.RequestsChanged()
		}

	case protocol.EventMessageReceived:
		msg, err := ev.Message()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		selfID := d.roster.SelfID()
		peerID := msg.FromUserID
		if peerID == selfID {
			peerID = msg.ToUserID
		}
		key := PeerKey(peerID)
		if d.tabs.ActiveKey() != key {
			return
		}
		d.appendDisplayed(key, msg, msg.FromUserID == selfID)

	case protocol.EventGroupMessageReceived:
		msg, err := ev.Message()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		key := GroupKey(msg.GroupID)
		if d.tabs.ActiveKey() != key {
			return
		}
		d.appendDisplayed(key, msg, msg.FromUserID == d.roster.SelfID())

	case protocol.EventMessageHistoryResult:
		result, err := ev.History()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		key := d.historyTarget(ConvPeer, result.PeerID)
		if key == "" {
			return
		}
		d.store.ReplaceAll(key, result.Messages, d.roster.SelfID())
		d.sink.ConversationChanged(key)

	case protocol.EventGroupHistoryResult:
		result, err := ev.History()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		key := d.historyTarget(ConvGroup, result.GroupID)
		if key == "" {
			return
		}
		d.store.ReplaceAll(key, result.Messages, d.roster.SelfID())
		d.sink.ConversationChanged(key)

	case protocol.EventRecallUpdate:
		upd, err := ev.Recall()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		key := d.tabs.ActiveKey()
		if key == "" {
			return
		}
		if d.store.Recall(key, upd.MessageID) {
			d.sink.ConversationChanged(key)
		}

	case protocol.EventReactUpdate:
		upd, err := ev.React()
		if err != nil {
			d.logDecodeError(ev, err)
			return
		}
		key := d.tabs.ActiveKey()
		if key == "" {
			return
		}
		if d.store.Get(key, upd.MessageID) == nil {
			return
		}
		d.reactions.Apply(d.store, key, upd, d.roster.SelfID())
		d.sink.ConversationChanged(key)

	case protocol.EventUnknown:
		d.log.Warn("dropping unknown event kind", logging.F("type", ev.Type))

	default:
		d.log.Warn("unhandled event kind", logging.F("kind", ev.Kind.String()))
	}
}

func (d *Dispatcher) appendDisplayed(key string, msg *types.Message, own bool) {
	applied, err := d.store.Append(key, msg, own)
	if err != nil {
		if errors.Is(err, ErrNoMessageID) {
			d.log.Warn("dropping message without server-assigned id", logging.F("conversation", key))
			return
		}
		d.log.Warn("append failed", logging.F("conversation", key), logging.F("err", err.Error()))
		return
	}
	if applied {
		d.sink.ConversationChanged(key)
	}
}

func (d *Dispatcher) logDecodeError(ev protocol.Event, err error) {
	d.log.Warn("dropping undecodable event", logging.F("type", ev.Type), logging.F("err", err.Error()))
}

// historyTarget resolves which conversation a history result replaces:
// the id carried in the payload when present, otherwise the active
// conversation when its kind matches the result.
func (d *Dispatcher) historyTarget(kind ConvKind, id int64) string {
	if id > 0 {
		if kind == ConvPeer {
			return PeerKey(id)
		}
		return GroupKey(id)
	}
	active := d.tabs.Active()
	if active == nil || active.Kind != kind {
		return ""
	}
	return active.Key
}
