package response

import "github.com/pulseapp/pulse/domain"

type FollowRequest struct {
	ID          int64  `json:"id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// NewFollowRequestFromDomain: Domain -> Response
func NewFollowRequestFromDomain(r *domain.FollowRequest) FollowRequest {
	return FollowRequest{
		ID:          r.ID,
		SenderID:    r.SenderID,
		RecipientID: r.RecipientID,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(DateTimeFormat),
	}
}

func NewFollowRequestsFromDomain(list []domain.FollowRequest) []FollowRequest {
	out := make([]FollowRequest, len(list))
	for i := range list {
		out[i] = NewFollowRequestFromDomain(&list[i])
	}
	return out
}
