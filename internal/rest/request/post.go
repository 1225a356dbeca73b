package request

import "github.com/pulseapp/pulse/domain"

type Post struct {
	AuthorID int64  `json:"-"`
	Content  string `json:"content" binding:"required"` // length limit enforced against system settings
	ImageURL string `json:"image_url" binding:"omitempty,url"`
}

// ToDomain: Request -> Domain
func (r *Post) ToDomain() domain.Post {
	return domain.Post{
		AuthorID: r.AuthorID,
		Content:  r.Content,
		ImageURL: r.ImageURL,
	}
}
