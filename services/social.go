package services

import (
	"github.com/google/uuid"

	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
)

// FollowStore is the persistence surface the social graph needs. The
// database package's FollowRepo satisfies it.
type FollowStore interface {
	EdgeExists(followerID, followeeID uuid.UUID) (bool, error)
	AddEdge(followerID, followeeID uuid.UUID) error
	RemoveEdge(followerID, followeeID uuid.UUID) error
	CountFollowers(userID uuid.UUID) (int64, error)
	CountFollowing(userID uuid.UUID) (int64, error)
	ListFollowers(userID uuid.UUID, page, limit int) ([]*models.User, error)
	ListFollowing(userID uuid.UUID, page, limit int) ([]*models.User, error)
}

// SocialGraph enforces the follow rules over a FollowStore: no self-follows,
// no duplicate edges, and unfollow only where an edge exists.
type SocialGraph struct {
	store FollowStore
}

func NewSocialGraph(store FollowStore) *SocialGraph {
	return &SocialGraph{store: store}
}

// Follow adds a follow edge from follower to followee.
func (g *SocialGraph) Follow(followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return errs.NewSelfFollowError()
	}
	exists, err := g.store.EdgeExists(followerID, followeeID)
	if err != nil {
		return errs.NewDatabaseError("query", "follow", err)
	}
	if exists {
		return errs.NewAlreadyFollowingError()
	}
	if err := g.store.AddEdge(followerID, followeeID); err != nil {
		return errs.NewDatabaseError("create", "follow", err)
	}
	return nil
}

// Unfollow removes the follow edge from follower to followee.
func (g *SocialGraph) Unfollow(followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return errs.NewSelfFollowError()
	}
	exists, err := g.store.EdgeExists(followerID, followeeID)
	if err != nil {
		return errs.NewDatabaseError("query", "follow", err)
	}
	if !exists {
		return errs.NewNotFollowingError()
	}
	if err := g.store.RemoveEdge(followerID, followeeID); err != nil {
		return errs.NewDatabaseError("delete", "follow", err)
	}
	return nil
}

// IsFollowing reports whether follower currently follows followee.
func (g *SocialGraph) IsFollowing(followerID, followeeID uuid.UUID) (bool, error) {
	exists, err := g.store.EdgeExists(followerID, followeeID)
	if err != nil {
		return false, errs.NewDatabaseError("query", "follow", err)
	}
	return exists, nil
}

// Counts returns the derived follower and following totals for a user.
func (g *SocialGraph) Counts(userID uuid.UUID) (followers, following int64, err error) {
	followers, err = g.store.CountFollowers(userID)
	if err != nil {
		return 0, 0, errs.NewDatabaseError("query", "follow", err)
	}
	following, err = g.store.CountFollowing(userID)
	if err != nil {
		return 0, 0, errs.NewDatabaseError("query", "follow", err)
	}
	return followers, following, nil
}

// Followers lists the users following userID as public summaries.
func (g *SocialGraph) Followers(userID uuid.UUID, page, limit int) ([]models.UserSummary, error) {
	users, err := g.store.ListFollowers(userID, page, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("query", "follow", err)
	}
	return summarize(users), nil
}

// Following lists the users userID follows as public summaries.
func (g *SocialGraph) Following(userID uuid.UUID, page, limit int) ([]models.UserSummary, error) {
	users, err := g.store.ListFollowing(userID, page, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("query", "follow", err)
	}
	return summarize(users), nil
}

func summarize(users []*models.User) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries
}
