package domain

import (
	"context"
	"time"
)

// User represents a user entity in the system.
// Follower and following counts are denormalized and maintained by the
// follow repository inside the same transaction as the edge mutation.
type User struct {
	ID             int64     // Unique identifier
	Name           string    // Display name
	Username       string    // Login username (unique)
	Password       string    // Bcrypt hashed password
	Bio            string    // Short self description
	AvatarURL      string    // Served by the media service, consumed opaquely
	FollowersCount int64     // Number of accepted followers
	FollowingCount int64     // Number of users this user follows
	IsBanned       bool      // Banned users cannot authenticate
	CreatedAt      time.Time // Account creation timestamp
	UpdatedAt      time.Time // Last profile update timestamp
}

// Profile is the cacheable subset of user fields that listings and
// enrichment need. It never carries credentials.
type Profile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	IsBanned       bool   `json:"is_banned"`
}

// ToProfile projects the cacheable profile subset out of a full user row.
func (u User) ToProfile() Profile {
	return Profile{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
		IsBanned:       u.IsBanned,
	}
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByIDs retrieves users for the given IDs. Missing IDs are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)

	// GetByUsername retrieves a user by their username.
	// Used during login to verify credentials.
	GetByUsername(ctx context.Context, username string) (User, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's profile fields.
	Update(ctx context.Context, u *User) error
}

// ProfileCache is the cache store for base profile fields and the system
// settings singleton. Get returns ErrCacheMiss when the key is absent.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID int64) (Profile, error)
	SetProfile(ctx context.Context, p Profile) error
	DeleteProfile(ctx context.Context, userID int64) error

	GetSettings(ctx context.Context) (Settings, error)
	SetSettings(ctx context.Context, s Settings) error
	DeleteSettings(ctx context.Context) error
}

// ProfileProvider is the cache-aside read side consumed by every component
// that enriches rows with author info. Invalidate must be called after the
// underlying write commits, never before.
type ProfileProvider interface {
	GetProfile(ctx context.Context, userID int64) (Profile, error)
	GetProfiles(ctx context.Context, userIDs []int64) (map[int64]Profile, error)
	Invalidate(ctx context.Context, userID int64)
}

// UserUsecase defines the business logic contract for user operations.
type UserUsecase interface {
	// Register creates a new user account.
	// Returns ErrConflict if the username already exists.
	Register(ctx context.Context, name, username, password string) error

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, username, password string) (string, error)

	// GetProfile returns the base profile of a user, served cache-aside.
	GetProfile(ctx context.Context, userID int64) (Profile, error)

	// UpdateProfile edits name/bio/avatar and invalidates the cached profile.
	UpdateProfile(ctx context.Context, u *User) error
}
