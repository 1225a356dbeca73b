package request

import "github.com/pulseapp/pulse/domain"

type Comment struct {
	PostID   int64  `json:"-"`
	AuthorID int64  `json:"-"`
	Content  string `json:"content" binding:"required,max=1000"` // for CREATE
	ParentID int64  `json:"parent_id"`                           // for CREATE, zero for root comments
}

// ToDomain: Request -> Domain
func (r *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		PostID:   r.PostID,
		AuthorID: r.AuthorID,
		Content:  r.Content,
		ParentID: r.ParentID,
	}
}
