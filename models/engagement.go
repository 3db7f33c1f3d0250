package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: follower follows followee. The row is the single
// source of truth for both sides of the relationship; follower/following
// counts are COUNT queries over this table, so the two sides can never drift.
type Follow struct {
	FollowerID uuid.UUID `json:"followerId" db:"follower_id" gorm:"type:uuid;primaryKey"`
	FolloweeID uuid.UUID `json:"followeeId" db:"followee_id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogLike records membership of a user in a blog's likes set.
type BlogLike struct {
	BlogID    uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogSave records a user saving a blog. One row serves both the user's
// savedBlogs projection and the blog's savedBy projection.
type BlogSave struct {
	BlogID    uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// CommentLike records membership of a user in a comment's likes set.
type CommentLike struct {
	CommentID uuid.UUID `json:"commentId" db:"comment_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
