package protocol

import (
	"encoding/json"
	"testing"
)

func TestEventUnmarshalClassifiesKind(t *testing.T) {
	cases := []struct {
		wire string
		want EventKind
	}{
		{"FRIEND_LIST_RESULT", EventFriendListResult},
		{"GROUP_LIST_RESULT", EventGroupListResult},
		{"FRIEND_REQUEST_INCOMING", EventFriendRequestIncoming},
		{"MSG_RECV", EventMessageReceived},
		{"GROUP_MSG_RECV", EventGroupMessageReceived},
		{"MSG_HISTORY_RESULT", EventMessageHistoryResult},
		{"GROUP_HISTORY_RESULT", EventGroupHistoryResult},
		{"MSG_RECALL_UPDATE", EventRecallUpdate},
		{"MSG_REACT_UPDATE", EventReactUpdate},
		{"SOME_FUTURE_EVENT", EventUnknown},
	}
	for _, tc := range cases {
		var ev Event
		if err := json.Unmarshal([]byte(`{"type":"`+tc.wire+`","data":{}}`), &ev); err != nil {
			t.Fatalf("%s: %v", tc.wire, err)
		}
		if ev.Kind != tc.want {
			t.Fatalf("%s: expected kind %v, got %v", tc.wire, tc.want, ev.Kind)
		}
		if ev.Type != tc.wire {
			t.Fatalf("%s: expected raw type preserved, got %q", tc.wire, ev.Type)
		}
	}
}

func TestEventMessageDecode(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"MSG_RECV","data":{
		"message_id":7,"from_user_id":2,"to_user_id":1,
		"content":"hello","created_at":1700000000.25,"reply_to_id":3
	}}`), &ev)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	msg, err := ev.Message()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.MessageID != 7 || msg.FromUserID != 2 {
		t.Fatalf("unexpected message %+v", msg)
	}
	if msg.ReplyToID == nil || *msg.ReplyToID != 3 {
		t.Fatal("expected reply reference decoded")
	}
	if msg.Recalled() {
		t.Fatal("expected content present")
	}
}

func TestEventMessageNullContentIsRecalled(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"MSG_RECV","data":{
		"message_id":7,"from_user_id":2,"content":null,"created_at":1700000000
	}}`), &ev)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	msg, err := ev.Message()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !msg.Recalled() {
		t.Fatal("expected null content to read as recalled")
	}
}

func TestEventReactDecode(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"MSG_REACT_UPDATE","data":{
		"message_id":7,"counts":{"👍":2},"by_user_id":9,"reaction":"👍","action":"remove"
	}}`), &ev)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	upd, err := ev.React()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if upd.MessageID != 7 || upd.Counts["👍"] != 2 {
		t.Fatalf("unexpected update %+v", upd)
	}
	if upd.Action != ReactActionRemove {
		t.Fatalf("expected remove action, got %q", upd.Action)
	}
}

func TestEventHistoryDecode(t *testing.T) {
	var ev Event
	err := json.Unmarshal([]byte(`{"type":"MSG_HISTORY_RESULT","data":{
		"peer_id":2,
		"messages":[
			{"message_id":1,"from_user_id":2,"content":"a","created_at":1},
			{"message_id":2,"from_user_id":1,"content":"b","created_at":2}
		]
	}}`), &ev)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	result, err := ev.History()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.PeerID != 2 || len(result.Messages) != 2 {
		t.Fatalf("unexpected history %+v", result)
	}
}

func TestResultErr(t *testing.T) {
	ok := &Result{Type: ResultOK}
	if err := ok.Err(); err != nil {
		t.Fatalf("expected nil for OK result, got %v", err)
	}

	raw := json.RawMessage(`{"code":"GROUP_NOT_FOUND"}`)
	rejected := &Result{Type: ResultError, Data: raw}
	err := rejected.Err()
	if err == nil {
		t.Fatal("expected error for ERROR result")
	}
	cmdErr, isCmd := err.(*CommandError)
	if !isCmd || cmdErr.Code != "GROUP_NOT_FOUND" {
		t.Fatalf("expected CommandError with code, got %v", err)
	}

	empty := &Result{Type: ResultError}
	if cmdErr := empty.Err().(*CommandError); cmdErr.Code != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN fallback code, got %q", cmdErr.Code)
	}
}
