package domain

import "context"

// Push channel message types. This union is the whole wire contract:
// the server sends connected/new_post/new_notification/pong, the client
// sends ping. Nothing else is defined.
const (
	MessageConnected       = "connected"
	MessageNewPost         = "new_post"
	MessageNewNotification = "new_notification"
	MessagePing            = "ping"
	MessagePong            = "pong"
)

// Message is the envelope pushed over a live connection.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ConnectedPayload confirms the authenticated user after upgrade.
type ConnectedPayload struct {
	UserID int64 `json:"userId"`
}

// NewPostPayload announces a freshly created post.
type NewPostPayload struct {
	PostID   int64 `json:"postId"`
	AuthorID int64 `json:"authorId"`
}

// NewNotificationPayload announces a freshly created notification.
type NewNotificationPayload struct {
	NotificationID int64 `json:"notificationId"`
}

// Connection is one live client socket. Send must never block: a slow or
// dead connection is the connection's problem, not the broadcaster's.
type Connection interface {
	Send(data []byte)
}

// ConnectionRegistry maps a user to the set of their live connections
// (multiple tabs/devices). State is process-local and lost on restart;
// clients reconnect and resynchronize via the paginated REST endpoints.
type ConnectionRegistry interface {
	Register(userID int64, c Connection)
	Unregister(userID int64, c Connection)
	IsConnected(userID int64) bool
	ConnectedUserIDs() []int64
	SendToUser(userID int64, msg Message)
	SendToUsers(userIDs []int64, msg Message)
}

// Broadcaster fans events out to eligible connected users. Delivery is
// best-effort and at-most-once per connected client; a disconnected client
// misses pushes and reconciles on reconnect.
type Broadcaster interface {
	Start(ctx context.Context)

	// NewPost pushes to every connected user not in a block relationship
	// with the author (and not the author). Never blocks the caller.
	NewPost(authorID, postID int64)

	// NewNotification pushes to the recipient when connected. No block
	// filtering: the notification could only exist if no live block edge
	// prevented its creation upstream.
	NewNotification(recipientID, notificationID int64)
}
