package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"parley/internal/protocol"
)

func TestSendCarriesSessionID(t *testing.T) {
	var gotSID string
	var gotCmd protocol.Command
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/send" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotSID = r.URL.Query().Get("sid")
		if err := json.NewDecoder(r.Body).Decode(&gotCmd); err != nil {
			t.Fatalf("decode command: %v", err)
		}
		json.NewEncoder(w).Encode(protocol.Result{Type: protocol.ResultOK})
	}))
	defer server.Close()

	c := New(server.URL)
	result, err := c.Send(context.Background(), protocol.FriendList())
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if result.Type != protocol.ResultOK {
		t.Fatalf("expected OK result, got %s", result.Type)
	}
	if gotSID != c.SessionID() {
		t.Fatalf("expected sid %q on the wire, got %q", c.SessionID(), gotSID)
	}
	if gotCmd.Type != protocol.CmdFriendList {
		t.Fatalf("expected FRIEND_LIST command, got %s", gotCmd.Type)
	}
}

func TestSessionIDIsPerProcess(t *testing.T) {
	a := New("")
	b := New("")
	if a.SessionID() == "" {
		t.Fatal("expected a non-empty session id")
	}
	if a.SessionID() == b.SessionID() {
		t.Fatal("expected distinct session ids per channel")
	}
}

func TestSendSurfacesCommandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"type": protocol.ResultError,
			"data": map[string]string{"code": "NOT_FRIENDS"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Send(context.Background(), protocol.SendMessage(2, "hi", nil))
	var cmdErr *protocol.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Code != "NOT_FRIENDS" {
		t.Fatalf("expected code NOT_FRIENDS, got %q", cmdErr.Code)
	}
}

func TestSendSurfacesGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "upstream down"})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Send(context.Background(), protocol.FriendList())
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "upstream down" {
		t.Fatalf("expected error body surfaced, got %q", apiErr.Message)
	}
}

func TestLoginDecodesUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"type": protocol.ResultAuthOK,
			"data": map[string]any{"user_id": 42, "username": "ana"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Login(context.Background(), "ana", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.UserID != 42 || user.Username != "ana" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestLoginFailureIsCommandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"type": protocol.ResultAuthFail,
			"data": map[string]string{"reason": "BAD_CREDENTIALS"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Login(context.Background(), "ana", "nope")
	var cmdErr *protocol.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %v", err)
	}
	if cmdErr.Code != "BAD_CREDENTIALS" {
		t.Fatalf("expected reason surfaced as code, got %q", cmdErr.Code)
	}
}

func TestPollDecodesEventBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/poll" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"messages":[
			{"type":"MSG_RECV","data":{"message_id":1,"from_user_id":2,"to_user_id":1,"content":"hi","created_at":1700000000}},
			{"type":"FUTURE_EVENT","data":{}}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	events, err := c.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != protocol.EventMessageReceived {
		t.Fatalf("expected MSG_RECV kind, got %v", events[0].Kind)
	}
	if events[1].Kind != protocol.EventUnknown {
		t.Fatalf("expected unknown kind, got %v", events[1].Kind)
	}
}

func TestPollEmptyBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messages":[]}`))
	}))
	defer server.Close()

	c := New(server.URL)
	events, err := c.Poll(context.Background())
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty batch, got %d", len(events))
	}
}
