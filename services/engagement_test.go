package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngagementStore keeps membership edges in maps keyed by (user, target).
type fakeEngagementStore struct {
	blogLikes    map[[2]uuid.UUID]bool
	blogSaves    map[[2]uuid.UUID]bool
	commentLikes map[[2]uuid.UUID]bool
}

func newFakeEngagementStore() *fakeEngagementStore {
	return &fakeEngagementStore{
		blogLikes:    map[[2]uuid.UUID]bool{},
		blogSaves:    map[[2]uuid.UUID]bool{},
		commentLikes: map[[2]uuid.UUID]bool{},
	}
}

func has(m map[[2]uuid.UUID]bool, a, b uuid.UUID) (bool, error) { return m[[2]uuid.UUID{a, b}], nil }
func count(m map[[2]uuid.UUID]bool, target uuid.UUID) (int64, error) {
	var n int64
	for k, v := range m {
		if v && k[1] == target {
			n++
		}
	}
	return n, nil
}

func (s *fakeEngagementStore) HasBlogLike(u, b uuid.UUID) (bool, error) { return has(s.blogLikes, u, b) }
func (s *fakeEngagementStore) AddBlogLike(u, b uuid.UUID) error {
	s.blogLikes[[2]uuid.UUID{u, b}] = true
	return nil
}
func (s *fakeEngagementStore) RemoveBlogLike(u, b uuid.UUID) error {
	delete(s.blogLikes, [2]uuid.UUID{u, b})
	return nil
}
func (s *fakeEngagementStore) CountBlogLikes(b uuid.UUID) (int64, error) {
	return count(s.blogLikes, b)
}

func (s *fakeEngagementStore) HasBlogSave(u, b uuid.UUID) (bool, error) { return has(s.blogSaves, u, b) }
func (s *fakeEngagementStore) AddBlogSave(u, b uuid.UUID) error {
	s.blogSaves[[2]uuid.UUID{u, b}] = true
	return nil
}
func (s *fakeEngagementStore) RemoveBlogSave(u, b uuid.UUID) error {
	delete(s.blogSaves, [2]uuid.UUID{u, b})
	return nil
}
func (s *fakeEngagementStore) CountBlogSaves(b uuid.UUID) (int64, error) {
	return count(s.blogSaves, b)
}

func (s *fakeEngagementStore) HasCommentLike(u, c uuid.UUID) (bool, error) {
	return has(s.commentLikes, u, c)
}
func (s *fakeEngagementStore) AddCommentLike(u, c uuid.UUID) error {
	s.commentLikes[[2]uuid.UUID{u, c}] = true
	return nil
}
func (s *fakeEngagementStore) RemoveCommentLike(u, c uuid.UUID) error {
	delete(s.commentLikes, [2]uuid.UUID{u, c})
	return nil
}
func (s *fakeEngagementStore) CountCommentLikes(c uuid.UUID) (int64, error) {
	return count(s.commentLikes, c)
}

func TestToggleBlogLikeRoundTrip(t *testing.T) {
	store := newFakeEngagementStore()
	engagement := NewEngagement(store)
	user := uuid.New()
	blog := uuid.New()

	result, err := engagement.ToggleBlogLike(user, blog)
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, int64(1), result.Count)

	result, err = engagement.ToggleBlogLike(user, blog)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Zero(t, result.Count)
}

func TestToggleBlogLikeCountsDistinctUsers(t *testing.T) {
	store := newFakeEngagementStore()
	engagement := NewEngagement(store)
	blog := uuid.New()

	for i := 0; i < 3; i++ {
		result, err := engagement.ToggleBlogLike(uuid.New(), blog)
		require.NoError(t, err)
		assert.True(t, result.Active)
		assert.Equal(t, int64(i+1), result.Count)
	}
}

func TestToggleBlogSaveIndependentOfLike(t *testing.T) {
	store := newFakeEngagementStore()
	engagement := NewEngagement(store)
	user := uuid.New()
	blog := uuid.New()

	_, err := engagement.ToggleBlogLike(user, blog)
	require.NoError(t, err)

	result, err := engagement.ToggleBlogSave(user, blog)
	require.NoError(t, err)
	assert.True(t, result.Active)

	liked, saved, likes, saves, err := engagement.BlogState(user, blog)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, saved)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(1), saves)

	// Removing the save leaves the like untouched.
	_, err = engagement.ToggleBlogSave(user, blog)
	require.NoError(t, err)
	liked, saved, likes, saves, err = engagement.BlogState(user, blog)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.False(t, saved)
	assert.Equal(t, int64(1), likes)
	assert.Zero(t, saves)
}

func TestBlogStateAnonymousCaller(t *testing.T) {
	store := newFakeEngagementStore()
	engagement := NewEngagement(store)
	blog := uuid.New()

	_, err := engagement.ToggleBlogLike(uuid.New(), blog)
	require.NoError(t, err)

	liked, saved, likes, saves, err := engagement.BlogState(uuid.Nil, blog)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, saved)
	assert.Equal(t, int64(1), likes)
	assert.Zero(t, saves)
}

func TestToggleCommentLike(t *testing.T) {
	store := newFakeEngagementStore()
	engagement := NewEngagement(store)
	user := uuid.New()
	comment := uuid.New()

	result, err := engagement.ToggleCommentLike(user, comment)
	require.NoError(t, err)
	assert.True(t, result.Active)

	total, err := engagement.CommentLikeCount(comment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	result, err = engagement.ToggleCommentLike(user, comment)
	require.NoError(t, err)
	assert.False(t, result.Active)
	assert.Zero(t, result.Count)
}
