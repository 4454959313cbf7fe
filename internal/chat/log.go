package chat

import (
	"errors"

	"parley/internal/types"
)

// ErrNoMessageID rejects a message that arrived without a server-assigned
// identity. The client refuses to synthesize one from the timestamp; the
// event is a protocol error and is dropped by the dispatcher.
var ErrNoMessageID = errors.New("message has no server-assigned id")

// Entry is one log position: the message plus whether the current user sent
// it (fixed at append time, used for rendering alignment).
type Entry struct {
	Msg *types.Message
	Own bool
}

// Store holds the ordered message log and dedup set for every conversation
// that is currently open. Logs exist only while their conversation is
// tracked; an evicted conversation is dropped wholesale and rebuilt from a
// history fetch on reopen.
type Store struct {
	logs map[string]*convLog
}

type convLog struct {
	entries []Entry
	index   map[int64]int
}

func NewStore() *Store {
	return &Store{logs: map[string]*convLog{}}
}

func (s *Store) log(key string) *convLog {
	l, ok := s.logs[key]
	if !ok {
		l = &convLog{index: map[int64]int{}}
		s.logs[key] = l
	}
	return l
}

// Append inserts msg at the tail of the conversation's log. The call is
// idempotent on message identity: a duplicate is a no-op returning false,
// regardless of whether the first copy arrived as a direct event or inside
// a history replace. Messages without a positive id are rejected.
func (s *Store) Append(key string, msg *types.Message, own bool) (bool, error) {
	if msg == nil || msg.MessageID <= 0 {
		return false, ErrNoMessageID
	}
	l := s.log(key)
	if _, seen := l.index[msg.MessageID]; seen {
		return false, nil
	}
	l.index[msg.MessageID] = len(l.entries)
	l.entries = append(l.entries, Entry{Msg: msg, Own: own})
	return true, nil
}

// ReplaceAll discards the conversation's log and dedup set, then applies the
// batch in order. In-batch duplicates and id-less messages are skipped; the
// transport may redeliver the same message twice in one backfill.
func (s *Store) ReplaceAll(key string, msgs []*types.Message, selfID int64) {
	delete(s.logs, key)
	l := s.log(key)
	for _, msg := range msgs {
		if msg == nil || msg.MessageID <= 0 {
			continue
		}
		if _, seen := l.index[msg.MessageID]; seen {
			continue
		}
		l.index[msg.MessageID] = len(l.entries)
		l.entries = append(l.entries, Entry{Msg: msg, Own: msg.FromUserID == selfID})
	}
}

// Recall tombstones the message's content in place. The entry keeps its
// position, reactions and reply references. Unknown ids are a no-op: the
// message belongs to a conversation that is not loaded.
func (s *Store) Recall(key string, messageID int64) bool {
	l, ok := s.logs[key]
	if !ok {
		return false
	}
	i, ok := l.index[messageID]
	if !ok {
		return false
	}
	l.entries[i].Msg.Content = nil
	return true
}

// UpdateReactions replaces the stored summary wholesale, dropping zero
// counts. Unknown ids are a no-op.
func (s *Store) UpdateReactions(key string, messageID int64, summary map[string]int) bool {
	l, ok := s.logs[key]
	if !ok {
		return false
	}
	i, ok := l.index[messageID]
	if !ok {
		return false
	}
	filtered := make(map[string]int, len(summary))
	for emoji, count := range summary {
		if count > 0 {
			filtered[emoji] = count
		}
	}
	l.entries[i].Msg.ReactionsSummary = filtered
	return true
}

// Get returns the message with the given identity, or nil.
func (s *Store) Get(key string, messageID int64) *types.Message {
	l, ok := s.logs[key]
	if !ok {
		return nil
	}
	i, ok := l.index[messageID]
	if !ok {
		return nil
	}
	return l.entries[i].Msg
}

// Entries returns the conversation's log in server order.
func (s *Store) Entries(key string) []Entry {
	l, ok := s.logs[key]
	if !ok {
		return nil
	}
	return l.entries
}

func (s *Store) Len(key string) int {
	l, ok := s.logs[key]
	if !ok {
		return 0
	}
	return len(l.entries)
}

// Drop discards a conversation's log. Called on tab close/eviction; the log
// is rebuilt from history when the conversation is reopened.
func (s *Store) Drop(key string) {
	delete(s.logs, key)
}

// Reset discards every log (logout).
func (s *Store) Reset() {
	s.logs = map[string]*convLog{}
}
