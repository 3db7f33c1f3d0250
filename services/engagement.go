package services

import (
	"github.com/google/uuid"

	"github.com/inkwell-app/backend/errs"
)

// EngagementStore is the persistence surface for like and save edges. The
// database package's EngagementRepo satisfies it.
type EngagementStore interface {
	HasBlogLike(userID, blogID uuid.UUID) (bool, error)
	AddBlogLike(userID, blogID uuid.UUID) error
	RemoveBlogLike(userID, blogID uuid.UUID) error
	CountBlogLikes(blogID uuid.UUID) (int64, error)

	HasBlogSave(userID, blogID uuid.UUID) (bool, error)
	AddBlogSave(userID, blogID uuid.UUID) error
	RemoveBlogSave(userID, blogID uuid.UUID) error
	CountBlogSaves(blogID uuid.UUID) (int64, error)

	HasCommentLike(userID, commentID uuid.UUID) (bool, error)
	AddCommentLike(userID, commentID uuid.UUID) error
	RemoveCommentLike(userID, commentID uuid.UUID) error
	CountCommentLikes(commentID uuid.UUID) (int64, error)
}

// ToggleResult reports the state after a toggle: whether the edge now exists
// and the derived total.
type ToggleResult struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// Engagement toggles like and save edges. A toggle flips membership: present
// rows are removed, absent rows are added, and the returned count is always
// recomputed from the edge table.
type Engagement struct {
	store EngagementStore
}

func NewEngagement(store EngagementStore) *Engagement {
	return &Engagement{store: store}
}

func (e *Engagement) ToggleBlogLike(userID, blogID uuid.UUID) (ToggleResult, error) {
	return e.toggle(
		userID, blogID, "blog like",
		e.store.HasBlogLike, e.store.AddBlogLike, e.store.RemoveBlogLike, e.store.CountBlogLikes,
	)
}

func (e *Engagement) ToggleBlogSave(userID, blogID uuid.UUID) (ToggleResult, error) {
	return e.toggle(
		userID, blogID, "blog save",
		e.store.HasBlogSave, e.store.AddBlogSave, e.store.RemoveBlogSave, e.store.CountBlogSaves,
	)
}

func (e *Engagement) ToggleCommentLike(userID, commentID uuid.UUID) (ToggleResult, error) {
	return e.toggle(
		userID, commentID, "comment like",
		e.store.HasCommentLike, e.store.AddCommentLike, e.store.RemoveCommentLike, e.store.CountCommentLikes,
	)
}

// CommentLikeCount returns the derived like total for a comment.
func (e *Engagement) CommentLikeCount(commentID uuid.UUID) (int64, error) {
	count, err := e.store.CountCommentLikes(commentID)
	if err != nil {
		return 0, errs.NewDatabaseError("query", "comment like", err)
	}
	return count, nil
}

// BlogState reports a caller's current like/save membership plus totals,
// used when rendering a single blog.
func (e *Engagement) BlogState(userID, blogID uuid.UUID) (liked, saved bool, likes, saves int64, err error) {
	if userID != uuid.Nil {
		liked, err = e.store.HasBlogLike(userID, blogID)
		if err != nil {
			return false, false, 0, 0, errs.NewDatabaseError("query", "blog like", err)
		}
		saved, err = e.store.HasBlogSave(userID, blogID)
		if err != nil {
			return false, false, 0, 0, errs.NewDatabaseError("query", "blog save", err)
		}
	}
	likes, err = e.store.CountBlogLikes(blogID)
	if err != nil {
		return false, false, 0, 0, errs.NewDatabaseError("query", "blog like", err)
	}
	saves, err = e.store.CountBlogSaves(blogID)
	if err != nil {
		return false, false, 0, 0, errs.NewDatabaseError("query", "blog save", err)
	}
	return liked, saved, likes, saves, nil
}

func (e *Engagement) toggle(
	userID, targetID uuid.UUID,
	entity string,
	has func(uuid.UUID, uuid.UUID) (bool, error),
	add func(uuid.UUID, uuid.UUID) error,
	remove func(uuid.UUID, uuid.UUID) error,
	count func(uuid.UUID) (int64, error),
) (ToggleResult, error) {
	exists, err := has(userID, targetID)
	if err != nil {
		return ToggleResult{}, errs.NewDatabaseError("query", entity, err)
	}
	if exists {
		if err := remove(userID, targetID); err != nil {
			return ToggleResult{}, errs.NewDatabaseError("delete", entity, err)
		}
	} else {
		if err := add(userID, targetID); err != nil {
			return ToggleResult{}, errs.NewDatabaseError("create", entity, err)
		}
	}
	total, err := count(targetID)
	if err != nil {
		return ToggleResult{}, errs.NewDatabaseError("query", entity, err)
	}
	return ToggleResult{Active: !exists, Count: total}, nil
}
