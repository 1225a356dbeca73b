package post

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
	"github.com/pulseapp/pulse/internal/repository"
)

type Service struct {
	postRepo    domain.PostRepository
	followRepo  domain.FollowRepository
	notifRepo   domain.NotificationRepository
	blocks      domain.BlockGraph
	profiles    domain.ProfileProvider
	settings    domain.SettingsProvider
	broadcaster domain.Broadcaster
	ids         *idgen.Generator
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object
func NewService(
	postRepo domain.PostRepository,
	followRepo domain.FollowRepository,
	notifRepo domain.NotificationRepository,
	blocks domain.BlockGraph,
	profiles domain.ProfileProvider,
	settings domain.SettingsProvider,
	broadcaster domain.Broadcaster,
	ids *idgen.Generator,
) *Service {
	return &Service{
		postRepo:    postRepo,
		followRepo:  followRepo,
		notifRepo:   notifRepo,
		blocks:      blocks,
		profiles:    profiles,
		settings:    settings,
		broadcaster: broadcaster,
		ids:         ids,
	}
}

func (s *Service) Create(ctx context.Context, p *domain.Post) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if p.Content == "" || int64(len(p.Content)) > settings.MaxPostLength {
		return domain.ErrBadParamInput
	}

	p.ID = s.ids.Next()
	if err := s.postRepo.Store(ctx, p); err != nil {
		return err
	}

	s.broadcaster.NewPost(p.AuthorID, p.ID)
	return nil
}

func (s *Service) Delete(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return domain.ErrForbidden
	}
	return s.postRepo.SoftDelete(ctx, postID)
}

func (s *Service) GetByID(ctx context.Context, viewerID, postID int64) (domain.Post, error) {
	excluded, err := s.blocks.ExcludedAuthors(ctx, viewerID)
	if err != nil {
		return domain.Post{}, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	// a blocked relationship hides the post entirely
	for _, id := range excluded {
		if id == post.AuthorID {
			return domain.Post{}, domain.ErrNotFound
		}
	}

	s.fillAuthors(ctx, []*domain.Post{&post})
	return post, nil
}

func (s *Service) Feed(ctx context.Context, viewerID int64, cursor string, limit int64) (domain.Page[domain.Post], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	limit = domain.ClampLimit(limit)

	excluded, err := s.blocks.ExcludedAuthors(ctx, viewerID)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}

	page, err := s.postRepo.FetchFeed(ctx, boundary, limit, excluded)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	s.fillPage(ctx, &page)
	return page, nil
}

func (s *Service) FollowingFeed(ctx context.Context, viewerID int64, cursor string, limit int64) (domain.Page[domain.Post], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	limit = domain.ClampLimit(limit)

	followees, err := s.followRepo.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	excluded, err := s.blocks.ExcludedAuthors(ctx, viewerID)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}

	page, err := s.postRepo.FetchByAuthors(ctx, followees, boundary, limit, excluded)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	s.fillPage(ctx, &page)
	return page, nil
}

func (s *Service) Like(ctx context.Context, userID, postID int64) error {
	post, err := s.mustBeVisible(ctx, userID, postID)
	if err != nil {
		return err
	}

	like := &domain.PostLike{ID: s.ids.Next(), PostID: postID, UserID: userID}
	if err := s.postRepo.AddLike(ctx, like); err != nil {
		return err
	}

	// one live notification per like edge; self-likes stay silent
	return s.notify(ctx, domain.Notification{
		SenderID:    userID,
		RecipientID: post.AuthorID,
		Type:        domain.NotificationLike,
		PostID:      postID,
	})
}

func (s *Service) Unlike(ctx context.Context, userID, postID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		return err
	}
	return s.notifRepo.Remove(ctx, userID, post.AuthorID, domain.NotificationLike,
		domain.NotificationRef{PostID: postID})
}

func (s *Service) Likers(ctx context.Context, viewerID, postID int64, cursor string, limit int64) (domain.Page[domain.Profile], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}
	limit = domain.ClampLimit(limit)

	excluded, err := s.blocks.ExcludedAuthors(ctx, viewerID)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	likes, err := s.postRepo.FetchLikes(ctx, postID, boundary, limit, excluded)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	userIDs := make([]int64, len(likes.Items))
	for i := range likes.Items {
		userIDs[i] = likes.Items[i].UserID
	}
	profiles, err := s.profiles.GetProfiles(ctx, userIDs)
	if err != nil {
		return domain.Page[domain.Profile]{}, err
	}

	page := domain.Page[domain.Profile]{Pagination: likes.Pagination}
	page.Items = make([]domain.Profile, 0, len(likes.Items))
	for i := range likes.Items {
		if p, ok := profiles[likes.Items[i].UserID]; ok {
			page.Items = append(page.Items, p)
		}
	}
	return page, nil
}

func (s *Service) AddBookmark(ctx context.Context, userID, postID int64) error {
	if _, err := s.mustBeVisible(ctx, userID, postID); err != nil {
		return err
	}
	b := &domain.Bookmark{ID: s.ids.Next(), PostID: postID, UserID: userID}
	return s.postRepo.AddBookmark(ctx, b)
}

func (s *Service) RemoveBookmark(ctx context.Context, userID, postID int64) error {
	return s.postRepo.RemoveBookmark(ctx, postID, userID)
}

func (s *Service) Bookmarks(ctx context.Context, userID int64, cursor string, limit int64) (domain.Page[domain.Post], error) {
	boundary, err := repository.DecodeCursor(cursor)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	limit = domain.ClampLimit(limit)

	excluded, err := s.blocks.ExcludedAuthors(ctx, userID)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}

	page, err := s.postRepo.FetchBookmarked(ctx, userID, boundary, limit, excluded)
	if err != nil {
		return domain.Page[domain.Post]{}, err
	}
	s.fillPage(ctx, &page)
	return page, nil
}

func (s *Service) Share(ctx context.Context, userID, postID int64) error {
	post, err := s.mustBeVisible(ctx, userID, postID)
	if err != nil {
		return err
	}

	share := &domain.Share{ID: s.ids.Next(), PostID: postID, UserID: userID}
	if err := s.postRepo.AddShare(ctx, share); err != nil {
		return err
	}

	return s.notify(ctx, domain.Notification{
		SenderID:    userID,
		RecipientID: post.AuthorID,
		Type:        domain.NotificationShare,
		PostID:      postID,
	})
}

// mustBeVisible loads the post and rejects the action when a block edge in
// either direction separates the user from the author.
func (s *Service) mustBeVisible(ctx context.Context, userID, postID int64) (domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}
	excluded, err := s.blocks.ExcludedAuthors(ctx, userID)
	if err != nil {
		return domain.Post{}, err
	}
	for _, id := range excluded {
		if id == post.AuthorID {
			return domain.Post{}, domain.ErrForbidden
		}
	}
	return post, nil
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

func (s *Service) fillPage(ctx context.Context, page *domain.Page[domain.Post]) {
	refs := make([]*domain.Post, len(page.Items))
	for i := range page.Items {
		refs[i] = &page.Items[i]
	}
	s.fillAuthors(ctx, refs)
}

// fillAuthors enriches posts with their author profiles. Enrichment is
// best-effort: a profile lookup failure leaves Author nil rather than
// failing the listing.
func (s *Service) fillAuthors(ctx context.Context, posts []*domain.Post) {
	if len(posts) == 0 {
		return
	}
	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].AuthorID
	}
	profiles, err := s.profiles.GetProfiles(ctx, ids)
	if err != nil {
		logrus.Warnf("failed to fill author profiles: %v", err)
		return
	}
	for i := range posts {
		if p, ok := profiles[posts[i].AuthorID]; ok {
			profile := p
			posts[i].Author = &profile
		}
	}
}
