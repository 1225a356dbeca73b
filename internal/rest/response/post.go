package response

import "github.com/pulseapp/pulse/domain"

type Post struct {
	ID            int64  `json:"id"`
	AuthorID      int64  `json:"author_id"`
	Content       string `json:"content"`
	ImageURL      string `json:"image_url,omitempty"`
	LikesCount    int64  `json:"likes_count"`
	CommentsCount int64  `json:"comments_count"`
	SharesCount   int64  `json:"shares_count"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`

	Author *Profile `json:"author,omitempty"`
}

// NewPostFromDomain: Domain -> Response
func NewPostFromDomain(p *domain.Post) Post {
	return Post{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		ImageURL:      p.ImageURL,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		SharesCount:   p.SharesCount,
		CreatedAt:     p.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:     p.UpdatedAt.Format(DateTimeFormat),
		Author:        NewProfileFromDomain(p.Author),
	}
}

func NewPostsFromDomain(list []domain.Post) []Post {
	out := make([]Post, len(list))
	for i := range list {
		out[i] = NewPostFromDomain(&list[i])
	}
	return out
}
