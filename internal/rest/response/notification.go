package response

import "github.com/pulseapp/pulse/domain"

type Notification struct {
	ID          int64  `json:"id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Type        string `json:"type"`
	PostID      int64  `json:"post_id,omitempty"`
	CommentID   int64  `json:"comment_id,omitempty"`
	FollowReqID int64  `json:"follow_request_id,omitempty"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`

	Sender *Profile `json:"sender,omitempty"`
}

// NewNotificationFromDomain: Domain -> Response
func NewNotificationFromDomain(n *domain.Notification) Notification {
	return Notification{
		ID:          n.ID,
		SenderID:    n.SenderID,
		RecipientID: n.RecipientID,
		Type:        string(n.Type),
		PostID:      n.PostID,
		CommentID:   n.CommentID,
		FollowReqID: n.FollowReqID,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt.Format(DateTimeFormat),
		Sender:      NewProfileFromDomain(n.Sender),
	}
}

func NewNotificationsFromDomain(list []domain.Notification) []Notification {
	out := make([]Notification, len(list))
	for i := range list {
		out[i] = NewNotificationFromDomain(&list[i])
	}
	return out
}
