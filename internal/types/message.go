package types

import (
	"math"
	"time"
)

// RecalledPlaceholder is rendered in place of a recalled message body.
const RecalledPlaceholder = "[recalled]"

// Message is one entry in a conversation log. A nil Content marks a recalled
// message: the entry keeps its position and reactions but renders as the
// placeholder. CreatedAt is seconds since the epoch, fractional allowed.
//
// MessageID is the server-assigned identity. The server must always assign
// one; a message arriving without it is a protocol error and is rejected by
// the sync core rather than given a client-derived identity.
type Message struct {
	MessageID        int64          `json:"message_id"`
	FromUserID       int64          `json:"from_user_id"`
	ToUserID         int64          `json:"to_user_id,omitempty"`
	GroupID          int64          `json:"group_id,omitempty"`
	Content          *string        `json:"content"`
	CreatedAt        float64        `json:"created_at"`
	ReplyToID        *int64         `json:"reply_to_id,omitempty"`
	ReactionsSummary map[string]int `json:"reactions_summary,omitempty"`
}

func (m *Message) Recalled() bool {
	return m == nil || m.Content == nil
}

// DisplayContent returns the body to render, substituting the recall
// placeholder for tombstoned messages.
func (m *Message) DisplayContent() string {
	if m.Recalled() {
		return RecalledPlaceholder
	}
	return *m.Content
}

func (m *Message) Time() time.Time {
	if m == nil {
		return time.Time{}
	}
	sec, frac := math.Modf(m.CreatedAt)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
