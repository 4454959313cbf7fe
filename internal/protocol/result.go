package protocol

import (
	"encoding/json"
	"fmt"

	"parley/internal/types"
)

const (
	ResultAuthOK         = "AUTH_OK"
	ResultAuthFail       = "AUTH_FAIL"
	ResultError          = "ERROR"
	ResultFriendReqSent  = "FRIEND_REQUEST_SENT"
	ResultFriendAccepted = "FRIEND_ACCEPTED"
	ResultFriendRemoved  = "FRIEND_REMOVED"
	ResultGroupCreated   = "GROUP_CREATED"
	ResultGroupMemberAdd = "GROUP_MEMBER_ADDED"
	ResultOK             = "OK"
)

// Result is the correlated response to one Command.
type Result struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// CommandError is an application-level rejection carried in an ERROR result.
// It is always surfaced to the user with its code and never retried.
type CommandError struct {
	Code string
}

func (e *CommandError) Error() string {
	if e == nil || e.Code == "" {
		return "server rejected command"
	}
	return "server rejected command: " + e.Code
}

// Err converts an ERROR or AUTH_FAIL result into a CommandError, and returns
// nil for every other result type.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	switch r.Type {
	case ResultError:
		var payload struct {
			Code string `json:"code"`
		}
		_ = json.Unmarshal(r.Data, &payload)
		if payload.Code == "" {
			payload.Code = "UNKNOWN"
		}
		return &CommandError{Code: payload.Code}
	case ResultAuthFail:
		var payload struct {
			Reason string `json:"reason"`
		}
		_ = json.Unmarshal(r.Data, &payload)
		if payload.Reason == "" {
			payload.Reason = "AUTH_FAIL"
		}
		return &CommandError{Code: payload.Reason}
	}
	return nil
}

// User decodes an AUTH_OK payload.
func (r *Result) User() (*types.User, error) {
	if r == nil || r.Type != ResultAuthOK {
		return nil, fmt.Errorf("result is not %s", ResultAuthOK)
	}
	var user types.User
	if err := json.Unmarshal(r.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
