package domain

import (
	"context"
	"time"
)

// Post is representing the Post data struct. Counters are denormalized and
// mutated in the same transaction as their join rows, never recomputed on
// read. Soft-deleted posts stay in the table as foreign-key targets.
type Post struct {
	ID            int64     // Sortable unique identifier, doubles as cursor
	AuthorID      int64     // Owning user
	Content       string    // Post body
	ImageURL      string    // Opaque URL from the media service, may be empty
	LikesCount    int64     // Number of existing like edges
	CommentsCount int64     // Number of live comments
	SharesCount   int64     // Number of share rows
	CreatedAt     time.Time // Creation timestamp
	UpdatedAt     time.Time // Last update timestamp

	// Author carries the enriched profile on read paths, nil otherwise.
	Author *Profile `json:"author,omitempty"`
}

// PostLike is a like edge, unique per (user, post). Its existence is the
// sole source of truth for "liked by user".
type PostLike struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// Bookmark is a private save edge, unique per (user, post).
type Bookmark struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// Share is a reshare edge, unique per (user, post).
type Share struct {
	ID        int64
	PostID    int64
	UserID    int64
	CreatedAt time.Time
}

// PostRepository defines the contract for post persistence. Every Fetch*
// method applies the live filter, drops rows authored by anyone in
// excluded, fetches limit+1 rows below the cursor ordered by id descending
// and returns the trimmed page.
type PostRepository interface {
	// Store creates a new post. The caller assigns the sortable ID.
	Store(ctx context.Context, p *Post) error

	// GetByID retrieves a single live post.
	// Returns ErrNotFound if missing or soft-deleted.
	GetByID(ctx context.Context, id int64) (Post, error)

	// SoftDelete marks the post deleted. Returns ErrNotFound when the post
	// is missing or already deleted.
	SoftDelete(ctx context.Context, id int64) error

	// FetchFeed lists all live posts.
	FetchFeed(ctx context.Context, cursor, limit int64, excluded []int64) (Page[Post], error)

	// FetchByAuthors lists live posts authored by any of authorIDs.
	FetchByAuthors(ctx context.Context, authorIDs []int64, cursor, limit int64, excluded []int64) (Page[Post], error)

	// AddLike inserts the like edge and increments likes_count atomically.
	// Returns ErrConflict when the edge already exists (no counter bump).
	AddLike(ctx context.Context, like *PostLike) error

	// RemoveLike deletes the like edge and decrements likes_count atomically,
	// clamped at zero. Returns ErrNotFound when no edge exists.
	RemoveLike(ctx context.Context, postID, userID int64) error

	// FetchLikes lists like edges of a post, newest first.
	FetchLikes(ctx context.Context, postID, cursor, limit int64, excluded []int64) (Page[PostLike], error)

	// AddBookmark inserts a bookmark. Returns ErrConflict when present.
	AddBookmark(ctx context.Context, b *Bookmark) error

	// RemoveBookmark deletes a bookmark. Returns ErrNotFound when absent.
	RemoveBookmark(ctx context.Context, postID, userID int64) error

	// FetchBookmarked lists the user's bookmarked live posts.
	FetchBookmarked(ctx context.Context, userID, cursor, limit int64, excluded []int64) (Page[Post], error)

	// AddShare inserts the share edge and increments shares_count atomically.
	// Returns ErrConflict when the user already shared the post.
	AddShare(ctx context.Context, s *Share) error
}

// PostUsecase is the business logic contract behind the post endpoints.
type PostUsecase interface {
	Create(ctx context.Context, p *Post) error
	Delete(ctx context.Context, userID, postID int64) error
	GetByID(ctx context.Context, viewerID, postID int64) (Post, error)
	Feed(ctx context.Context, viewerID int64, cursor string, limit int64) (Page[Post], error)
	FollowingFeed(ctx context.Context, viewerID int64, cursor string, limit int64) (Page[Post], error)
	Like(ctx context.Context, userID, postID int64) error
	Unlike(ctx context.Context, userID, postID int64) error
	Likers(ctx context.Context, viewerID, postID int64, cursor string, limit int64) (Page[Profile], error)
	AddBookmark(ctx context.Context, userID, postID int64) error
	RemoveBookmark(ctx context.Context, userID, postID int64) error
	Bookmarks(ctx context.Context, userID int64, cursor string, limit int64) (Page[Post], error)
	Share(ctx context.Context, userID, postID int64) error
}
