package user

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
)

type stubUserRepo struct {
	users map[int64]domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[int64]domain.User{}}
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByIDs(_ context.Context, ids []int64) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	s.users[u.ID] = *u
	return nil
}

func (s *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	s.users[u.ID] = *u
	return nil
}

type stubProfiles struct {
	repo        *stubUserRepo
	invalidated []int64
}

func (s *stubProfiles) GetProfile(ctx context.Context, userID int64) (domain.Profile, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return u.ToProfile(), nil
}

func (s *stubProfiles) GetProfiles(ctx context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	out := make(map[int64]domain.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, err := s.GetProfile(ctx, id); err == nil {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubProfiles) Invalidate(_ context.Context, userID int64) {
	s.invalidated = append(s.invalidated, userID)
}

type stubSettings struct {
	settings domain.Settings
}

func (s *stubSettings) Get(context.Context) (domain.Settings, error) { return s.settings, nil }
func (s *stubSettings) Update(_ context.Context, settings domain.Settings) error {
	s.settings = settings
	return nil
}

func newTestService(t *testing.T) (*Service, *stubUserRepo, *stubProfiles, *stubSettings) {
	t.Helper()
	ids, err := idgen.New(1)
	require.NoError(t, err)

	repo := newStubUserRepo()
	profiles := &stubProfiles{repo: repo}
	settings := &stubSettings{settings: domain.Settings{RegistrationOpen: true, MaxPostLength: 2000}}
	svc := NewService(repo, profiles, settings, ids, []byte("test-secret"), time.Hour)
	return svc, repo, profiles, settings
}

func TestService_RegisterHashesPassword(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice", "s3cret-pass"))

	u, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))
	assert.NotZero(t, u.ID)
}

func TestService_RegisterClosedRegistration(t *testing.T) {
	svc, _, _, settings := newTestService(t)
	settings.settings.RegistrationOpen = false

	err := svc.Register(context.Background(), "Alice", "alice", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_RegisterDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice", "s3cret-pass"))
	err := svc.Register(ctx, "Impostor", "alice", "other-pass")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_LoginReturnsValidToken(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice", "s3cret-pass"))
	u, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	tokenString, err := svc.Login(ctx, "alice", "s3cret-pass")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(u.ID), claims["user_id"])
}

func TestService_LoginFailures(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice", "s3cret-pass"))

	_, err := svc.Login(ctx, "alice", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	_, err = svc.Login(ctx, "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	u, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	u.IsBanned = true
	require.NoError(t, repo.Update(ctx, &u))

	_, err = svc.Login(ctx, "alice", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_UpdateProfileInvalidatesCache(t *testing.T) {
	svc, repo, profiles, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice", "alice", "s3cret-pass"))
	existing, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)

	u := domain.User{ID: existing.ID, Bio: "new bio"}
	require.NoError(t, svc.UpdateProfile(ctx, &u))

	// untouched fields survive a partial update
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "new bio", u.Bio)
	assert.Equal(t, []int64{existing.ID}, profiles.invalidated)
}

func TestService_UpdateProfileMissingUser(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	err := svc.UpdateProfile(context.Background(), &domain.User{ID: 42, Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
