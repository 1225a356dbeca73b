package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

type postRepository struct {
	DB *gorm.DB
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository 创建帖子数据库操作层
func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db}
}

func (m *postRepository) Store(ctx context.Context, p *domain.Post) error {
	postModel := model.NewPostFromDomain(p)
	if err := m.DB.WithContext(ctx).Create(postModel).Error; err != nil {
		return err
	}
	p.CreatedAt = postModel.CreatedAt
	p.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (m *postRepository) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	var post model.Post
	err := m.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Post{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	return post.ToDomain(), nil
}

func (m *postRepository) SoftDelete(ctx context.Context, id int64) error {
	result := m.DB.WithContext(ctx).Delete(&model.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (m *postRepository) FetchFeed(ctx context.Context, cursor, limit int64, excluded []int64) (domain.Page[domain.Post], error) {
	var posts []model.Post
	err := m.DB.WithContext(ctx).
		Scopes(scopeExclude("author_id", excluded), scopeKeyset(cursor, limit)).
		Find(&posts).Error
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	return buildPostPage(posts, limit), nil
}

func (m *postRepository) FetchByAuthors(ctx context.Context, authorIDs []int64, cursor, limit int64, excluded []int64) (domain.Page[domain.Post], error) {
	if len(authorIDs) == 0 {
		return domain.Page[domain.Post]{Items: []domain.Post{}}, nil
	}
	var posts []model.Post
	err := m.DB.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Scopes(scopeExclude("author_id", excluded), scopeKeyset(cursor, limit)).
		Find(&posts).Error
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	return buildPostPage(posts, limit), nil
}

// AddLike inserts the like edge and bumps the denormalized counter as one
// unit. The edge insert gates the counter mutation, so a duplicate like
// never double-counts.
func (m *postRepository) AddLike(ctx context.Context, like *domain.PostLike) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(model.NewPostLikeFromDomain(like))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrConflict
		}

		inc := tx.Model(&model.Post{}).
			Where("id = ?", like.PostID).
			Update("likes_count", gorm.Expr("likes_count + ?", 1))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			// post gone, roll the edge back with the transaction
			return domain.ErrNotFound
		}
		return nil
	})
}

func (m *postRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&model.PostLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		// floor guard: an already-zero counter is clamped, not driven negative
		dec := tx.Model(&model.Post{}).
			Where("id = ? AND likes_count > 0", postID).
			Update("likes_count", gorm.Expr("likes_count - ?", 1))
		return dec.Error
	})
}

func (m *postRepository) FetchLikes(ctx context.Context, postID, cursor, limit int64, excluded []int64) (domain.Page[domain.PostLike], error) {
	var likes []model.PostLike
	err := m.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Scopes(scopeExclude("user_id", excluded), scopeKeyset(cursor, limit)).
		Find(&likes).Error
	if err != nil {
		return domain.Page[domain.PostLike]{}, err
	}
	rows := make([]domain.PostLike, len(likes))
	for i := range likes {
		rows[i] = likes[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(l domain.PostLike) int64 { return l.ID }), nil
}

func (m *postRepository) AddBookmark(ctx context.Context, b *domain.Bookmark) error {
	result := m.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model.NewBookmarkFromDomain(b))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (m *postRepository) RemoveBookmark(ctx context.Context, postID, userID int64) error {
	result := m.DB.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FetchBookmarked pages by bookmark id, the row the viewer's cursor points
// at, while returning the joined live posts.
func (m *postRepository) FetchBookmarked(ctx context.Context, userID, cursor, limit int64, excluded []int64) (domain.Page[domain.Post], error) {
	type row struct {
		model.Post
		BookmarkID int64
	}

	q := m.DB.WithContext(ctx).
		Table("bookmarks").
		Select("posts.*, bookmarks.id AS bookmark_id").
		Joins("JOIN posts ON posts.id = bookmarks.post_id AND posts.deleted_at IS NULL").
		Where("bookmarks.user_id = ?", userID)
	if cursor > 0 {
		q = q.Where("bookmarks.id < ?", cursor)
	}
	if len(excluded) > 0 {
		q = q.Where("posts.author_id NOT IN ?", excluded)
	}

	var rows []row
	err := q.Order("bookmarks.id DESC").Limit(int(limit + 1)).Scan(&rows).Error
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}

	page := domain.Page[domain.Post]{}
	if int64(len(rows)) > limit {
		rows = rows[:limit]
		page.Pagination.HasMore = true
		page.Pagination.NextCursor = repository.EncodeCursor(rows[len(rows)-1].BookmarkID)
	}
	page.Items = make([]domain.Post, len(rows))
	for i := range rows {
		page.Items[i] = rows[i].Post.ToDomain()
	}
	return page, nil
}

func (m *postRepository) AddShare(ctx context.Context, s *domain.Share) error {
	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(model.NewShareFromDomain(s))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrConflict
		}

		inc := tx.Model(&model.Post{}).
			Where("id = ?", s.PostID).
			Update("shares_count", gorm.Expr("shares_count + ?", 1))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func buildPostPage(posts []model.Post, limit int64) domain.Page[domain.Post] {
	rows := make([]domain.Post, len(posts))
	for i := range posts {
		rows[i] = posts[i].ToDomain()
	}
	return domain.BuildPage(rows, limit, func(p domain.Post) int64 { return p.ID })
}
