package protocol

// CommandType is the protocol-level name of a client request.
type CommandType string

const (
	CmdAuthLogin    CommandType = "AUTH_LOGIN"
	CmdAuthRegister CommandType = "AUTH_REGISTER"
	CmdFriendList   CommandType = "FRIEND_LIST"
	CmdFriendReq    CommandType = "FRIEND_REQUEST"
	CmdFriendAccept CommandType = "FRIEND_ACCEPT"
	CmdFriendRemove CommandType = "FRIEND_REMOVE"
	CmdGroupList    CommandType = "GROUP_LIST"
	CmdGroupCreate  CommandType = "GROUP_CREATE"
	CmdGroupAdd     CommandType = "GROUP_ADD"
	CmdMsgSend      CommandType = "MSG_SEND"
	CmdGroupMsgSend CommandType = "GROUP_MSG_SEND"
	CmdMsgHistory   CommandType = "MSG_HISTORY"
	CmdGroupHistory CommandType = "GROUP_HISTORY"
	CmdMsgReact     CommandType = "MSG_REACT"
	CmdMsgRecall    CommandType = "MSG_RECALL"
)

// Command is one request to the gateway. Data is the command-specific
// payload and marshals as the "data" object on the wire.
type Command struct {
	Type CommandType `json:"type"`
	Data any         `json:"data"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(username, password string) Command {
	return Command{Type: CmdAuthLogin, Data: credentials{Username: username, Password: password}}
}

func Register(username, password string) Command {
	return Command{Type: CmdAuthRegister, Data: credentials{Username: username, Password: password}}
}

func FriendList() Command {
	return Command{Type: CmdFriendList, Data: struct{}{}}
}

func FriendRequest(toUserID int64) Command {
	return Command{Type: CmdFriendReq, Data: struct {
		ToUserID int64 `json:"to_user_id"`
	}{toUserID}}
}

func FriendAccept(requestID int64) Command {
	return Command{Type: CmdFriendAccept, Data: struct {
		RequestID int64 `json:"request_id"`
	}{requestID}}
}

func FriendRemove(userID int64) Command {
	return Command{Type: CmdFriendRemove, Data: struct {
		UserID int64 `json:"user_id"`
	}{userID}}
}

func GroupList() Command {
	return Command{Type: CmdGroupList, Data: struct{}{}}
}

func GroupCreate(name string) Command {
	return Command{Type: CmdGroupCreate, Data: struct {
		Name string `json:"name"`
	}{name}}
}

func GroupAdd(groupID, userID int64) Command {
	return Command{Type: CmdGroupAdd, Data: struct {
		GroupID int64 `json:"group_id"`
		UserID  int64 `json:"user_id"`
	}{groupID, userID}}
}

type directMessage struct {
	ToUserID  int64  `json:"to_user_id"`
	Content   string `json:"content"`
	ReplyToID *int64 `json:"reply_to_id,omitempty"`
}

func SendMessage(toUserID int64, content string, replyToID *int64) Command {
	return Command{Type: CmdMsgSend, Data: directMessage{ToUserID: toUserID, Content: content, ReplyToID: replyToID}}
}

type groupMessage struct {
	GroupID   int64  `json:"group_id"`
	Content   string `json:"content"`
	ReplyToID *int64 `json:"reply_to_id,omitempty"`
}

func SendGroupMessage(groupID int64, content string, replyToID *int64) Command {
	return Command{Type: CmdGroupMsgSend, Data: groupMessage{GroupID: groupID, Content: content, ReplyToID: replyToID}}
}

func MessageHistory(peerID int64, limit int) Command {
	return Command{Type: CmdMsgHistory, Data: struct {
		PeerID int64 `json:"peer_id"`
		Limit  int   `json:"limit"`
	}{peerID, limit}}
}

func GroupHistory(groupID int64, limit int) Command {
	return Command{Type: CmdGroupHistory, Data: struct {
		GroupID int64 `json:"group_id"`
		Limit   int   `json:"limit"`
	}{groupID, limit}}
}

func React(messageID int64, reaction string) Command {
	return Command{Type: CmdMsgReact, Data: struct {
		MessageID int64  `json:"message_id"`
		Reaction  string `json:"reaction"`
	}{messageID, reaction}}
}

func Recall(messageID int64) Command {
	return Command{Type: CmdMsgRecall, Data: struct {
		MessageID int64 `json:"message_id"`
	}{messageID}}
}
