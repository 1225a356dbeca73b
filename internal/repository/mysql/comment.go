package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

// Store creates the comment and bumps the counter it belongs to: a root
// comment counts against the post, a reply against its parent comment.
func (c *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.NewCommentFromDomain(comment)).Error; err != nil {
			return err
		}

		if comment.ParentID == 0 {
			inc := tx.Model(&model.Post{}).
				Where("id = ?", comment.PostID).
				Update("comments_count", gorm.Expr("comments_count + ?", 1))
			if inc.Error != nil {
				return inc.Error
			}
			if inc.RowsAffected == 0 {
				return domain.ErrNotFound
			}
			return nil
		}

		inc := tx.Model(&model.Comment{}).
			Where("id = ?", comment.ParentID).
			Update("replies_count", gorm.Expr("replies_count + ?", 1))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (c *commentRepository) SoftDelete(ctx context.Context, id int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, "id = ?", id).Error; err != nil {
			return domain.ErrNotFound
		}

		result := tx.Delete(&model.Comment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if comment.ParentID == 0 {
			dec := tx.Model(&model.Post{}).
				Where("id = ? AND comments_count > 0", comment.PostID).
				Update("comments_count", gorm.Expr("comments_count - ?", 1))
			return dec.Error
		}
		dec := tx.Model(&model.Comment{}).
			Where("id = ? AND replies_count > 0", comment.ParentID).
			Update("replies_count", gorm.Expr("replies_count - ?", 1))
		return dec.Error
	})
}

func (c *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment model.Comment
	err := c.DB.WithContext(ctx).First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	domainComment := comment.ToDomain()
	return &domainComment, nil
}

func (c *commentRepository) FetchRoots(ctx context.Context, postID, cursor, limit int64, excluded []int64) (domain.Page[*domain.Comment], error) {
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("post_id = ? AND parent_id = 0", postID).
		Scopes(scopeExclude("author_id", excluded), scopeKeyset(cursor, limit)).
		Find(&comments).Error
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}

	rows := make([]*domain.Comment, len(comments))
	for i := range comments {
		domainComment := comments[i].ToDomain()
		rows[i] = &domainComment
	}
	return domain.BuildPage(rows, limit, func(cm *domain.Comment) int64 { return cm.ID }), nil
}

func (c *commentRepository) FetchReplies(ctx context.Context, rootIDs []int64, excluded []int64) ([]*domain.Comment, error) {
	if len(rootIDs) == 0 {
		return nil, nil
	}
	var comments []model.Comment
	err := c.DB.WithContext(ctx).
		Where("root_id IN ?", rootIDs).
		Scopes(scopeExclude("author_id", excluded)).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	var res []*domain.Comment
	for i := range comments {
		domainComment := comments[i].ToDomain()
		res = append(res, &domainComment)
	}
	return res, nil
}

func (c *commentRepository) AddLike(ctx context.Context, like *domain.CommentLike) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(model.NewCommentLikeFromDomain(like))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrConflict
		}

		inc := tx.Model(&model.Comment{}).
			Where("id = ?", like.CommentID).
			Update("likes_count", gorm.Expr("likes_count + ?", 1))
		if inc.Error != nil {
			return inc.Error
		}
		if inc.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (c *commentRepository) RemoveLike(ctx context.Context, commentID, userID int64) error {
	return c.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&model.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		dec := tx.Model(&model.Comment{}).
			Where("id = ? AND likes_count > 0", commentID).
			Update("likes_count", gorm.Expr("likes_count - ?", 1))
		return dec.Error
	})
}
