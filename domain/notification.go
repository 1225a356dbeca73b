package domain

import (
	"context"
	"time"
)

// NotificationType enumerates the social actions that notify.
type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationCommentLike   NotificationType = "comment_like"
	NotificationFollowRequest NotificationType = "follow_request"
	NotificationFollowAccept  NotificationType = "follow_accept"
	NotificationShare         NotificationType = "share"
)

// NotificationRef points the notification at its target entity.
// A zero field means "not set"; at most one live notification exists per
// (sender, recipient, type, ref) tuple at a time.
type NotificationRef struct {
	PostID          int64
	CommentID       int64
	FollowRequestID int64
}

// Notification is a persisted, soft-deletable inbox entry. Removal is by
// predicate rather than by id so that create and remove for the same tuple
// commute under races.
type Notification struct {
	ID          int64            `json:"id"`
	SenderID    int64            `json:"sender_id"`
	RecipientID int64            `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	PostID      int64            `json:"post_id,omitempty"`
	CommentID   int64            `json:"comment_id,omitempty"`
	FollowReqID int64            `json:"follow_request_id,omitempty"`
	IsRead      bool             `json:"is_read"`
	CreatedAt   time.Time        `json:"created_at"`

	Sender *Profile `json:"sender,omitempty"`
}

// NotificationRepository defines the contract for notification bookkeeping.
type NotificationRepository interface {
	// Create inserts a new live notification. The action layer gates the
	// call on its join-row mutation, which keeps the 1:1 edge-to-
	// notification cardinality.
	Create(ctx context.Context, n *Notification) error

	// Remove soft-deletes the live notification matching the tuple.
	// Silent no-op when nothing matches.
	Remove(ctx context.Context, senderID, recipientID int64, t NotificationType, ref NotificationRef) error

	// Fetch lists the recipient's live notifications, newest first.
	Fetch(ctx context.Context, recipientID, cursor, limit int64) (Page[Notification], error)

	// MarkRead flags one live notification of the recipient as read.
	// Returns ErrNotFound when it doesn't exist or belongs to someone else.
	MarkRead(ctx context.Context, recipientID, id int64) error

	// MarkAllRead flags every live unread notification of the recipient.
	MarkAllRead(ctx context.Context, recipientID int64) error

	// CountUnread counts live unread notifications of the recipient.
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
}

// NotificationUsecase is the business logic contract behind the
// notification endpoints.
type NotificationUsecase interface {
	Fetch(ctx context.Context, recipientID int64, cursor string, limit int64) (Page[Notification], error)
	MarkRead(ctx context.Context, recipientID, id int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	UnreadCount(ctx context.Context, recipientID int64) (int64, error)
}
