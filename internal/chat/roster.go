package chat

import "parley/internal/types"

// Roster is the friend/group/pending-request state for the logged-in user.
// List results replace the arrays wholesale, so applying the same result
// twice is safe.
type Roster struct {
	self     *types.User
	friends  []types.Friend
	groups   []types.Group
	requests []types.FriendRequest
}

func NewRoster() *Roster {
	return &Roster{}
}

func (r *Roster) SetSelf(user *types.User) {
	r.self = user
}

func (r *Roster) Self() *types.User {
	return r.self
}

func (r *Roster) SelfID() int64 {
	if r.self == nil {
		return 0
	}
	return r.self.UserID
}

// SetFriends replaces the friend list, filtering out the current user and
// duplicate ids (the server has been seen to return both).
func (r *Roster) SetFriends(friends []types.Friend) {
	seen := map[int64]struct{}{}
	out := make([]types.Friend, 0, len(friends))
	for _, f := range friends {
		if f.UserID <= 0 || f.UserID == r.SelfID() {
			continue
		}
		if _, dup := seen[f.UserID]; dup {
			continue
		}
		seen[f.UserID] = struct{}{}
		out = append(out, f)
	}
	r.friends = out
}

func (r *Roster) Friends() []types.Friend {
	return r.friends
}

func (r *Roster) FriendByID(userID int64) *types.Friend {
	for i := range r.friends {
		if r.friends[i].UserID == userID {
			return &r.friends[i]
		}
	}
	return nil
}

func (r *Roster) SetGroups(groups []types.Group) {
	r.groups = groups
}

func (r *Roster) Groups() []types.Group {
	return r.groups
}

func (r *Roster) GroupByID(groupID int64) *types.Group {
	for i := range r.groups {
		if r.groups[i].GroupID == groupID {
			return &r.groups[i]
		}
	}
	return nil
}

// SetRequests replaces the pending incoming requests (roster refresh path).
func (r *Roster) SetRequests(requests []types.FriendRequest) {
	r.requests = requests
}

// AddRequest appends a pending request if its id is not already present and
// reports whether anything changed.
func (r *Roster) AddRequest(req types.FriendRequest) bool {
	for _, existing := range r.requests {
		if existing.RequestID == req.RequestID {
			return false
		}
	}
	r.requests = append(r.requests, req)
	return true
}

// RemoveRequest drops a pending request locally (after accept).
func (r *Roster) RemoveRequest(requestID int64) {
	out := r.requests[:0]
	for _, req := range r.requests {
		if req.RequestID != requestID {
			out = append(out, req)
		}
	}
	r.requests = out
}

func (r *Roster) Requests() []types.FriendRequest {
	return r.requests
}

// Reset clears everything (logout).
func (r *Roster) Reset() {
	r.self = nil
	r.friends = nil
	r.groups = nil
	r.requests = nil
}
