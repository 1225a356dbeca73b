package block

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

type stubBlockGraph struct {
	edges map[[2]int64]bool
}

func (s *stubBlockGraph) Block(_ context.Context, blockerID, blockedID int64) error {
	s.edges[[2]int64{blockerID, blockedID}] = true
	return nil
}

func (s *stubBlockGraph) Unblock(_ context.Context, blockerID, blockedID int64) error {
	key := [2]int64{blockerID, blockedID}
	if !s.edges[key] {
		return domain.ErrNotFound
	}
	delete(s.edges, key)
	return nil
}

func (s *stubBlockGraph) ExcludedAuthors(context.Context, int64) ([]int64, error) {
	return nil, nil
}

type stubBlockRepo struct {
	domain.BlockRepository
	blocked domain.Page[domain.BlockEdge]
}

func (s *stubBlockRepo) FetchBlocked(_ context.Context, _, _, _ int64) (domain.Page[domain.BlockEdge], error) {
	return s.blocked, nil
}

type stubFollowRepo struct {
	domain.FollowRepository
	edges map[[2]int64]bool
}

func (s *stubFollowRepo) Unfollow(_ context.Context, followerID, followeeID int64) error {
	key := [2]int64{followerID, followeeID}
	if !s.edges[key] {
		return domain.ErrNotFound
	}
	delete(s.edges, key)
	return nil
}

type stubProfiles struct {
	profiles    map[int64]domain.Profile
	invalidated []int64
}

func (s *stubProfiles) GetProfile(_ context.Context, userID int64) (domain.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return domain.Profile{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *stubProfiles) GetProfiles(_ context.Context, userIDs []int64) (map[int64]domain.Profile, error) {
	out := map[int64]domain.Profile{}
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubProfiles) Invalidate(_ context.Context, userID int64) {
	s.invalidated = append(s.invalidated, userID)
}

type fixture struct {
	svc        *Service
	graph      *stubBlockGraph
	followRepo *stubFollowRepo
	profiles   *stubProfiles
}

func newFixture(edges map[[2]int64]bool) *fixture {
	if edges == nil {
		edges = map[[2]int64]bool{}
	}
	f := &fixture{
		graph:      &stubBlockGraph{edges: map[[2]int64]bool{}},
		followRepo: &stubFollowRepo{edges: edges},
		profiles:   &stubProfiles{profiles: map[int64]domain.Profile{}},
	}
	f.svc = NewService(f.graph, &stubBlockRepo{}, f.followRepo, f.profiles)
	return f
}

func TestService_BlockSeversMutualFollows(t *testing.T) {
	f := newFixture(map[[2]int64]bool{
		{1, 2}: true,
		{2, 1}: true,
		{1, 3}: true,
	})

	require.NoError(t, f.svc.Block(context.Background(), 1, 2))

	assert.True(t, f.graph.edges[[2]int64{1, 2}])
	assert.False(t, f.followRepo.edges[[2]int64{1, 2}])
	assert.False(t, f.followRepo.edges[[2]int64{2, 1}])
	// unrelated follow edges stay put
	assert.True(t, f.followRepo.edges[[2]int64{1, 3}])
	assert.ElementsMatch(t, []int64{1, 2}, f.profiles.invalidated)
}

func TestService_BlockWithoutFollowEdges(t *testing.T) {
	f := newFixture(nil)

	require.NoError(t, f.svc.Block(context.Background(), 1, 2))
	assert.True(t, f.graph.edges[[2]int64{1, 2}])
	// no counters moved, so no invalidation was needed
	assert.Empty(t, f.profiles.invalidated)
}

func TestService_BlockSelfRejected(t *testing.T) {
	f := newFixture(nil)

	err := f.svc.Block(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestService_UnblockMissingEdge(t *testing.T) {
	f := newFixture(nil)

	err := f.svc.Unblock(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.svc.Block(context.Background(), 1, 2))
	require.NoError(t, f.svc.Unblock(context.Background(), 1, 2))
}

func TestService_FetchBlockedMapsProfiles(t *testing.T) {
	f := newFixture(nil)
	f.profiles.profiles[2] = domain.Profile{ID: 2, Username: "bob"}
	f.profiles.profiles[3] = domain.Profile{ID: 3, Username: "carol"}

	repo := &stubBlockRepo{blocked: domain.Page[domain.BlockEdge]{
		Items: []domain.BlockEdge{
			{ID: 101, BlockerID: 1, BlockedID: 3},
			{ID: 100, BlockerID: 1, BlockedID: 2},
		},
		Pagination: domain.Pagination{HasMore: true, NextCursor: "100"},
	}}
	f.svc = NewService(f.graph, repo, f.followRepo, f.profiles)

	page, err := f.svc.FetchBlocked(context.Background(), 1, "initial", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "carol", page.Items[0].Username)
	assert.Equal(t, "bob", page.Items[1].Username)
	assert.True(t, page.Pagination.HasMore)
	assert.Equal(t, "100", page.Pagination.NextCursor)
}
