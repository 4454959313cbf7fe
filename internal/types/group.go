package types

type Group struct {
	GroupID     int64  `json:"group_id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count,omitempty"`
}
