package response

import "github.com/pulseapp/pulse/domain"

type Comment struct {
	ID           int64  `json:"id"`
	PostID       int64  `json:"post_id"`
	AuthorID     int64  `json:"author_id"`
	Content      string `json:"content"`
	ParentID     int64  `json:"parent_id"`
	RootID       int64  `json:"root_id"`
	LikesCount   int64  `json:"likes_count"`
	RepliesCount int64  `json:"replies_count"`
	CreatedAt    string `json:"created_at"`

	// Author 评论作者信息
	Author *Profile `json:"author,omitempty"`
	// Replies 子评论列表
	Replies []*Comment `json:"replies,omitempty"`
}

func NewSingleCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:           c.ID,
		PostID:       c.PostID,
		AuthorID:     c.AuthorID,
		Content:      c.Content,
		ParentID:     c.ParentID,
		RootID:       c.RootID,
		LikesCount:   c.LikesCount,
		RepliesCount: c.RepliesCount,
		CreatedAt:    c.CreatedAt.Format(DateTimeFormat),
		Author:       NewProfileFromDomain(c.Author),
		Replies:      nil,
	}
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) *Comment {
	if c == nil {
		return nil
	}
	root := NewSingleCommentFromDomain(c)
	if len(c.Replies) > 0 {
		replies := make([]*Comment, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, NewSingleCommentFromDomain(r))
		}
		root.Replies = replies
	}
	return root
}

func NewCommentsFromDomain(list []*domain.Comment) []*Comment {
	out := make([]*Comment, len(list))
	for i := range list {
		out[i] = NewCommentFromDomain(list[i])
	}
	return out
}
