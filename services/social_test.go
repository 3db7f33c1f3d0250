package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
)

type edge struct {
	follower uuid.UUID
	followee uuid.UUID
}

// fakeFollowStore keeps edges in insertion order, like the real table.
type fakeFollowStore struct {
	edges []edge
	users map[uuid.UUID]*models.User
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{users: map[uuid.UUID]*models.User{}}
}

func (s *fakeFollowStore) addUser(username string) uuid.UUID {
	id := uuid.New()
	s.users[id] = &models.User{ID: id, Username: username, FullName: username}
	return id
}

func (s *fakeFollowStore) EdgeExists(followerID, followeeID uuid.UUID) (bool, error) {
	for _, e := range s.edges {
		if e.follower == followerID && e.followee == followeeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeFollowStore) AddEdge(followerID, followeeID uuid.UUID) error {
	s.edges = append(s.edges, edge{followerID, followeeID})
	return nil
}

func (s *fakeFollowStore) RemoveEdge(followerID, followeeID uuid.UUID) error {
	for i, e := range s.edges {
		if e.follower == followerID && e.followee == followeeID {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeFollowStore) CountFollowers(userID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range s.edges {
		if e.followee == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeFollowStore) CountFollowing(userID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range s.edges {
		if e.follower == userID {
			n++
		}
	}
	return n, nil
}

func (s *fakeFollowStore) ListFollowers(userID uuid.UUID, page, limit int) ([]*models.User, error) {
	var out []*models.User
	for _, e := range s.edges {
		if e.followee == userID {
			out = append(out, s.users[e.follower])
		}
	}
	return paginate(out, page, limit), nil
}

func (s *fakeFollowStore) ListFollowing(userID uuid.UUID, page, limit int) ([]*models.User, error) {
	var out []*models.User
	for _, e := range s.edges {
		if e.follower == userID {
			out = append(out, s.users[e.followee])
		}
	}
	return paginate(out, page, limit), nil
}

func paginate(users []*models.User, page, limit int) []*models.User {
	start := (page - 1) * limit
	if start >= len(users) {
		return nil
	}
	end := start + limit
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}

func TestFollowCreatesSymmetricEdge(t *testing.T) {
	store := newFakeFollowStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	graph := NewSocialGraph(store)

	require.NoError(t, graph.Follow(alice, bob))

	following, err := graph.IsFollowing(alice, bob)
	require.NoError(t, err)
	assert.True(t, following)

	// The same edge drives both counts; they can never drift apart.
	bobFollowers, _, err := graph.Counts(bob)
	require.NoError(t, err)
	_, aliceFollowing, err := graph.Counts(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobFollowers)
	assert.Equal(t, int64(1), aliceFollowing)
}

func TestFollowSelfRejected(t *testing.T) {
	store := newFakeFollowStore()
	alice := store.addUser("alice")
	graph := NewSocialGraph(store)

	err := graph.Follow(alice, alice)
	require.Error(t, err)
	assert.True(t, errs.IsSelfFollow(err))
	assert.Empty(t, store.edges)
}

func TestFollowDuplicateLeavesGraphUnchanged(t *testing.T) {
	store := newFakeFollowStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	graph := NewSocialGraph(store)

	require.NoError(t, graph.Follow(alice, bob))

	err := graph.Follow(alice, bob)
	require.Error(t, err)
	assert.True(t, errs.IsAlreadyFollowing(err))
	assert.Len(t, store.edges, 1)
}

func TestUnfollowRestoresCounts(t *testing.T) {
	store := newFakeFollowStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	graph := NewSocialGraph(store)

	require.NoError(t, graph.Follow(alice, bob))
	require.NoError(t, graph.Unfollow(alice, bob))

	following, err := graph.IsFollowing(alice, bob)
	require.NoError(t, err)
	assert.False(t, following)

	followers, followingCount, err := graph.Counts(bob)
	require.NoError(t, err)
	assert.Zero(t, followers)
	assert.Zero(t, followingCount)
}

func TestUnfollowWithoutEdge(t *testing.T) {
	store := newFakeFollowStore()
	alice := store.addUser("alice")
	bob := store.addUser("bob")
	graph := NewSocialGraph(store)

	err := graph.Unfollow(alice, bob)
	require.Error(t, err)
	assert.True(t, errs.IsNotFollowing(err))
}

func TestFollowerListingsArePaginatedSummaries(t *testing.T) {
	store := newFakeFollowStore()
	target := store.addUser("target")
	graph := NewSocialGraph(store)

	for _, name := range []string{"a", "b", "c"} {
		follower := store.addUser(name)
		require.NoError(t, graph.Follow(follower, target))
	}

	firstPage, err := graph.Followers(target, 1, 2)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "a", firstPage[0].Username)
	assert.Equal(t, "b", firstPage[1].Username)

	secondPage, err := graph.Followers(target, 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, "c", secondPage[0].Username)

	following, err := graph.Following(target, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, following)
}
