package follow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/idgen"
)

type stubFollowRepo struct {
	requests map[int64]domain.FollowRequest
	edges    map[[2]int64]bool
}

func newStubFollowRepo() *stubFollowRepo {
	return &stubFollowRepo{requests: map[int64]domain.FollowRequest{}, edges: map[[2]int64]bool{}}
}

func (s *stubFollowRepo) CreateRequest(_ context.Context, req *domain.FollowRequest) error {
	for _, r := range s.requests {
		if r.SenderID == req.SenderID && r.RecipientID == req.RecipientID && r.Status == domain.FollowRequestPending {
			return domain.ErrConflict
		}
	}
	if s.edges[[2]int64{req.SenderID, req.RecipientID}] {
		return domain.ErrConflict
	}
	s.requests[req.ID] = *req
	return nil
}

func (s *stubFollowRepo) GetRequest(_ context.Context, id int64) (domain.FollowRequest, error) {
	r, ok := s.requests[id]
	if !ok {
		return domain.FollowRequest{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *stubFollowRepo) decide(id int64, to domain.FollowRequestStatus) error {
	r, ok := s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.Status != domain.FollowRequestPending {
		return domain.ErrConflict
	}
	r.Status = to
	s.requests[id] = r
	return nil
}

func (s *stubFollowRepo) Accept(_ context.Context, requestID, _ int64) error {
	if err := s.decide(requestID, domain.FollowRequestAccepted); err != nil {
		return err
	}
	r := s.requests[requestID]
	s.edges[[2]int64{r.SenderID, r.RecipientID}] = true
	return nil
}

func (s *stubFollowRepo) Reject(_ context.Context, requestID int64) error {
	return s.decide(requestID, domain.FollowRequestRejected)
}

func (s *stubFollowRepo) Cancel(_ context.Context, requestID int64) error {
	return s.decide(requestID, domain.FollowRequestCancelled)
}

func (s *stubFollowRepo) Unfollow(_ context.Context, followerID, followeeID int64) error {
	key := [2]int64{followerID, followeeID}
	if !s.edges[key] {
		return domain.ErrNotFound
	}
	delete(s.edges, key)
	return nil
}

func (s *stubFollowRepo) FolloweeIDs(context.Context, int64) ([]int64, error) { return nil, nil }

func (s *stubFollowRepo) FetchFollowers(_ context.Context, _, _, _ int64) (domain.Page[domain.Follow], error) {
	return domain.Page[domain.Follow]{}, nil
}

func (s *stubFollowRepo) FetchFollowing(_ context.Context, _, _, _ int64) (domain.Page[domain.Follow], error) {
	return domain.Page[domain.Follow]{}, nil
}

func (s *stubFollowRepo) FetchPendingRequests(_ context.Context, _, _, _ int64) (domain.Page[domain.FollowRequest], error) {
	return domain.Page[domain.FollowRequest]{}, nil
}

type removedTuple struct {
	senderID    int64
	recipientID int64
	typ         domain.NotificationType
	ref         domain.NotificationRef
}

type stubNotifRepo struct {
	domain.NotificationRepository
	created []domain.Notification
	removed []removedTuple
}

func (s *stubNotifRepo) Create(_ context.Context, n *domain.Notification) error {
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotifRepo) Remove(_ context.Context, senderID, recipientID int64, typ domain.NotificationType, ref domain.NotificationRef) error {
	s.removed = append(s.removed, removedTuple{senderID, recipientID, typ, ref})
	return nil
}

type stubBlocks struct {
	excluded map[int64][]int64
}

func (s *stubBlocks) Block(context.Context, int64, int64) error   { return nil }
func (s *stubBlocks) Unblock(context.Context, int64, int64) error { return nil }
func (s *stubBlocks) ExcludedAuthors(_ context.Context, userID int64) ([]int64, error) {
	return s.excluded[userID], nil
}

type stubProfiles struct {
	invalidated []int64
}

func (s *stubProfiles) GetProfile(context.Context, int64) (domain.Profile, error) {
	return domain.Profile{}, domain.ErrNotFound
}

func (s *stubProfiles) GetProfiles(context.Context, []int64) (map[int64]domain.Profile, error) {
	return map[int64]domain.Profile{}, nil
}

func (s *stubProfiles) Invalidate(_ context.Context, userID int64) {
	s.invalidated = append(s.invalidated, userID)
}

type stubBroadcaster struct {
	notifs [][2]int64
}

func (s *stubBroadcaster) Start(context.Context) {}
func (s *stubBroadcaster) NewPost(_, _ int64) {}
func (s *stubBroadcaster) NewNotification(recipientID, notificationID int64) {
	s.notifs = append(s.notifs, [2]int64{recipientID, notificationID})
}

type fixture struct {
	svc         *Service
	followRepo  *stubFollowRepo
	notifRepo   *stubNotifRepo
	blocks      *stubBlocks
	profiles    *stubProfiles
	broadcaster *stubBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ids, err := idgen.New(1)
	require.NoError(t, err)

	f := &fixture{
		followRepo:  newStubFollowRepo(),
		notifRepo:   &stubNotifRepo{},
		blocks:      &stubBlocks{excluded: map[int64][]int64{}},
		profiles:    &stubProfiles{},
		broadcaster: &stubBroadcaster{},
	}
	f.svc = NewService(f.followRepo, f.notifRepo, f.blocks, f.profiles, f.broadcaster, ids)
	return f
}

func TestService_RequestNotifiesRecipient(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, domain.FollowRequestPending, req.Status)

	require.Len(t, f.notifRepo.created, 1)
	n := f.notifRepo.created[0]
	assert.Equal(t, domain.NotificationFollowRequest, n.Type)
	assert.Equal(t, int64(2), n.RecipientID)
	assert.Equal(t, req.ID, n.FollowReqID)
	assert.Len(t, f.broadcaster.notifs, 1)
}

func TestService_RequestSelfRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Request(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestService_RequestBlockedPairForbidden(t *testing.T) {
	f := newFixture(t)
	f.blocks.excluded[1] = []int64{2}

	_, err := f.svc.Request(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.notifRepo.created)
}

func TestService_AcceptFlow(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	require.NoError(t, f.svc.Accept(context.Background(), 2, req.ID))

	assert.True(t, f.followRepo.edges[[2]int64{1, 2}])
	// counters moved on both profiles
	assert.ElementsMatch(t, []int64{1, 2}, f.profiles.invalidated)
	// the pending entry is retired, the sender hears back
	require.Len(t, f.notifRepo.removed, 1)
	assert.Equal(t, domain.NotificationFollowRequest, f.notifRepo.removed[0].typ)
	assert.Equal(t, domain.NotificationRef{FollowRequestID: req.ID}, f.notifRepo.removed[0].ref)
	require.Len(t, f.notifRepo.created, 2)
	assert.Equal(t, domain.NotificationFollowAccept, f.notifRepo.created[1].Type)
	assert.Equal(t, int64(1), f.notifRepo.created[1].RecipientID)
}

func TestService_AcceptOnlyByRecipient(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	err = f.svc.Accept(context.Background(), 3, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	err = f.svc.Accept(context.Background(), 1, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestService_RejectOnlyByRecipient(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	err = f.svc.Reject(context.Background(), 1, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.svc.Reject(context.Background(), 2, req.ID))
	require.Len(t, f.notifRepo.removed, 1)
}

func TestService_CancelOnlyBySender(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)

	err = f.svc.Cancel(context.Background(), 2, req.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, f.svc.Cancel(context.Background(), 1, req.ID))
}

func TestService_DecidedRequestConflicts(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NoError(t, f.svc.Accept(context.Background(), 2, req.ID))

	err = f.svc.Accept(context.Background(), 2, req.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = f.svc.Reject(context.Background(), 2, req.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestService_UnfollowInvalidatesBothProfiles(t *testing.T) {
	f := newFixture(t)
	f.followRepo.edges[[2]int64{1, 2}] = true

	require.NoError(t, f.svc.Unfollow(context.Background(), 1, 2))
	assert.ElementsMatch(t, []int64{1, 2}, f.profiles.invalidated)

	err := f.svc.Unfollow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_UnfollowRetiresAcceptNotification(t *testing.T) {
	f := newFixture(t)

	req, err := f.svc.Request(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NoError(t, f.svc.Accept(context.Background(), 2, req.ID))

	require.NoError(t, f.svc.Unfollow(context.Background(), 1, 2))

	// removed[0] is the pending-request entry Accept retired
	require.Len(t, f.notifRepo.removed, 2)
	got := f.notifRepo.removed[1]
	assert.Equal(t, int64(2), got.senderID)
	assert.Equal(t, int64(1), got.recipientID)
	assert.Equal(t, domain.NotificationFollowAccept, got.typ)
	assert.Equal(t, domain.NotificationRef{}, got.ref)
}
