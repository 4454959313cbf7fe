package types

type Friend struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// FriendRequest is a pending incoming request. Requests are created by a
// FRIEND_REQUEST_INCOMING event or a full roster refresh and removed locally
// once accepted.
type FriendRequest struct {
	RequestID    int64  `json:"request_id"`
	FromUserID   int64  `json:"from_user_id"`
	FromUsername string `json:"from_username,omitempty"`
}
