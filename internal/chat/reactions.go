package chat

import (
	"parley/internal/protocol"
	"parley/internal/types"
)

// Reconciler tracks which emojis the current user has toggled on per
// message. The toggle set is a UI-optimism cache only: displayed counts are
// mutated speculatively on toggle and overwritten wholesale by every
// authoritative update.
type Reconciler struct {
	mine map[int64]map[string]struct{}
}

func NewReconciler() *Reconciler {
	return &Reconciler{mine: map[int64]map[string]struct{}{}}
}

// Active reports whether the current user has emoji toggled on for the
// message, per local state.
func (r *Reconciler) Active(messageID int64, emoji string) bool {
	set, ok := r.mine[messageID]
	if !ok {
		return false
	}
	_, on := set[emoji]
	return on
}

// Toggle flips the local state for emoji on msg and speculatively mutates
// the displayed summary by one, clamped at zero. It returns the action the
// caller must send to the server. The speculative value holds only until
// the next authoritative update.
func (r *Reconciler) Toggle(msg *types.Message, emoji string) string {
	if msg == nil {
		return protocol.ReactActionAdd
	}
	if msg.ReactionsSummary == nil {
		msg.ReactionsSummary = map[string]int{}
	}
	set := r.mine[msg.MessageID]
	if set == nil {
		set = map[string]struct{}{}
	}

	if _, on := set[emoji]; on {
		delete(set, emoji)
		if count := msg.ReactionsSummary[emoji]; count > 1 {
			msg.ReactionsSummary[emoji] = count - 1
		} else {
			delete(msg.ReactionsSummary, emoji)
		}
		r.storeSet(msg.MessageID, set)
		return protocol.ReactActionRemove
	}

	set[emoji] = struct{}{}
	msg.ReactionsSummary[emoji]++
	r.storeSet(msg.MessageID, set)
	return protocol.ReactActionAdd
}

// Apply merges an authoritative update: counts always win over whatever was
// displayed, and the action tag maintains the toggle set when the update
// originated from the current user's own toggle. Ordering does not matter;
// if the authoritative update beats the optimistic render, it simply wins
// on overwrite.
func (r *Reconciler) Apply(store *Store, key string, upd protocol.ReactUpdate, selfID int64) {
	store.UpdateReactions(key, upd.MessageID, upd.Counts)
	if upd.ByUserID != selfID {
		return
	}
	set := r.mine[upd.MessageID]
	if set == nil {
		set = map[string]struct{}{}
	}
	switch upd.Action {
	case protocol.ReactActionAdd:
		set[upd.Reaction] = struct{}{}
	case protocol.ReactActionRemove:
		delete(set, upd.Reaction)
	}
	r.storeSet(upd.MessageID, set)
}

func (r *Reconciler) storeSet(messageID int64, set map[string]struct{}) {
	if len(set) == 0 {
		delete(r.mine, messageID)
		return
	}
	r.mine[messageID] = set
}

// Reset clears all local toggle state (logout).
func (r *Reconciler) Reset() {
	r.mine = map[int64]map[string]struct{}{}
}
