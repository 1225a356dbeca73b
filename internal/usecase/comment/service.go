package comment

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
	"github.com/pulseapp/pulse/internal/repository"
)

type Service struct {
	commentRepo domain.CommentRepository
	postRepo    domain.PostRepository
	notifRepo   domain.NotificationRepository
	blocks      domain.BlockGraph
	profiles    domain.ProfileProvider
	broadcaster domain.Broadcaster
	ids         *idgen.Generator
}

var _ domain.CommentUsecase = (*Service)(nil)

// NewService will create a new comment service object
func NewService(
	commentRepo domain.CommentRepository,
	postRepo domain.PostRepository,
	notifRepo domain.NotificationRepository,
	blocks domain.BlockGraph,
	profiles domain.ProfileProvider,
	broadcaster domain.Broadcaster,
	ids *idgen.Generator,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		notifRepo:   notifRepo,
		blocks:      blocks,
		profiles:    profiles,
		broadcaster: broadcaster,
		ids:         ids,
	}
}

func (s *Service) Create(ctx context.Context, c *domain.Comment) error {
	if c.Content == "" {
		return domain.ErrBadParamInput
	}

	post, err := s.postRepo.GetByID(ctx, c.PostID)
	if err != nil {
		return err
	}
	if err := s.mustNotBeBlocked(ctx, c.AuthorID, post.AuthorID); err != nil {
		return err
	}

	// 回复评论时校验父评论，并定位所在楼的根评论
	recipientID := post.AuthorID
	if c.ParentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, c.ParentID)
		if err != nil {
			return err
		}
		if parent.PostID != c.PostID {
			return domain.ErrBadParamInput
		}
		c.RootID = parent.RootID
		if c.RootID == 0 {
			c.RootID = parent.ID
		}
		recipientID = parent.AuthorID
	}

	c.ID = s.ids.Next()
	if err := s.commentRepo.Store(ctx, c); err != nil {
		return err
	}

	return s.notify(ctx, domain.Notification{
		SenderID:    c.AuthorID,
		RecipientID: recipientID,
		Type:        domain.NotificationComment,
		PostID:      c.PostID,
		CommentID:   c.ID,
	})
}

func (s *Service) Delete(ctx context.Context, userID, commentID int64) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != userID {
		// the post owner may moderate comments under their own post
		post, err := s.postRepo.GetByID(ctx, c.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return domain.ErrForbidden
		}
	}
	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return err
	}
	return s.retireCreateNotification(ctx, c)
}

// retireCreateNotification undoes the notification Create wrote, resolving
// the recipient the same way Create picked it. A recipient that is itself
// gone (deleted parent or post) leaves nothing addressable to retire.
func (s *Service) retireCreateNotification(ctx context.Context, c *domain.Comment) error {
	var recipientID int64
	if c.ParentID != 0 {
		parent, err := s.commentRepo.GetByID(ctx, c.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		recipientID = parent.AuthorID
	} else {
		post, err := s.postRepo.GetByID(ctx, c.PostID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		recipientID = post.AuthorID
	}
	if recipientID == c.AuthorID {
		return nil
	}
	return s.notifRepo.Remove(ctx, c.AuthorID, recipientID, domain.NotificationComment,
		domain.NotificationRef{PostID: c.PostID, CommentID: c.ID})
}

func (s *Service) FetchByPost(ctx context.Context, viewerID, postID int64, cursor string, limit int64) (domain.Page[*domain.Comment], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	limit = domain.ClampLimit(limit)

	excluded, err := s.blocks.ExcludedAuthors(ctx, viewerID)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}

	page, err := s.commentRepo.FetchRoots(ctx, postID, boundary, limit, excluded)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	if len(page.Items) == 0 {
		return page, nil
	}

	rootIDs := make([]int64, len(page.Items))
	byRoot := make(map[int64]*domain.Comment, len(page.Items))
	for i, root := range page.Items {
		rootIDs[i] = root.ID
		byRoot[root.ID] = root
	}

	replies, err := s.commentRepo.FetchReplies(ctx, rootIDs, excluded)
	if err != nil {
		return domain.Page[*domain.Comment]{}, err
	}
	for _, reply := range replies {
		if root, ok := byRoot[reply.RootID]; ok {
			root.Replies = append(root.Replies, reply)
		}
	}

	s.fillAuthors(ctx, page.Items, replies)
	return page, nil
}

func (s *Service) Like(ctx context.Context, userID, commentID int64) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.mustNotBeBlocked(ctx, userID, c.AuthorID); err != nil {
		return err
	}

	like := &domain.CommentLike{ID: s.ids.Next(), CommentID: commentID, UserID: userID}
	if err := s.commentRepo.AddLike(ctx, like); err != nil {
		return err
	}

	return s.notify(ctx, domain.Notification{
		SenderID:    userID,
		RecipientID: c.AuthorID,
		Type:        domain.NotificationCommentLike,
		PostID:      c.PostID,
		CommentID:   commentID,
	})
}

func (s *Service) Unlike(ctx context.Context, userID, commentID int64) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.commentRepo.RemoveLike(ctx, commentID, userID); err != nil {
		return err
	}
	return s.notifRepo.Remove(ctx, userID, c.AuthorID, domain.NotificationCommentLike,
		domain.NotificationRef{PostID: c.PostID, CommentID: commentID})
}

func (s *Service) mustNotBeBlocked(ctx context.Context, userID, authorID int64) error {
	excluded, err := s.blocks.ExcludedAuthors(ctx, userID)
	if err != nil {
		return err
	}
	for _, id := range excluded {
		if id == authorID {
			return domain.ErrForbidden
		}
	}
	return nil
}

func (s *Service) notify(ctx context.Context, n domain.Notification) error {
	if n.SenderID == n.RecipientID {
		return nil
	}
	n.ID = s.ids.Next()
	if err := s.notifRepo.Create(ctx, &n); err != nil {
		return err
	}
	s.broadcaster.NewNotification(n.RecipientID, n.ID)
	return nil
}

// fillAuthors 批量填充评论作者信息
func (s *Service) fillAuthors(ctx context.Context, roots []*domain.Comment, replies []*domain.Comment) {
	ids := make([]int64, 0, len(roots)+len(replies))
	for _, c := range roots {
		ids = append(ids, c.AuthorID)
	}
	for _, c := range replies {
		ids = append(ids, c.AuthorID)
	}

	profiles, err := s.profiles.GetProfiles(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to fill comment author profiles: %v", err)
		return
	}

	fill := func(c *domain.Comment) {
		if p, ok := profiles[c.AuthorID]; ok {
			profile := p
			c.Author = &profile
		}
	}
	for _, c := range roots {
		fill(c)
	}
	for _, c := range replies {
		fill(c)
	}
}
