package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

// EngagementRepo stores like and save edges for blogs and comments. Like
// the follow edges, these rows are the single source of truth and counts
// are derived with COUNT queries.
type EngagementRepo struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) *EngagementRepo {
	return &EngagementRepo{db}
}

func (r *EngagementRepo) HasBlogLike(userID, blogID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogLike{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepo) AddBlogLike(userID, blogID uuid.UUID) error {
	return r.db.Create(&models.BlogLike{UserID: userID, BlogID: blogID}).Error
}

func (r *EngagementRepo) RemoveBlogLike(userID, blogID uuid.UUID) error {
	return r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.BlogLike{}).Error
}

func (r *EngagementRepo) CountBlogLikes(blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogLike{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

func (r *EngagementRepo) HasBlogSave(userID, blogID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlogSave{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepo) AddBlogSave(userID, blogID uuid.UUID) error {
	return r.db.Create(&models.BlogSave{UserID: userID, BlogID: blogID}).Error
}

func (r *EngagementRepo) RemoveBlogSave(userID, blogID uuid.UUID) error {
	return r.db.Where("user_id = ? AND blog_id = ?", userID, blogID).
		Delete(&models.BlogSave{}).Error
}

func (r *EngagementRepo) CountBlogSaves(blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogSave{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

func (r *EngagementRepo) HasCommentLike(userID, commentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count > 0, err
}

func (r *EngagementRepo) AddCommentLike(userID, commentID uuid.UUID) error {
	return r.db.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error
}

func (r *EngagementRepo) RemoveCommentLike(userID, commentID uuid.UUID) error {
	return r.db.Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
}

func (r *EngagementRepo) CountCommentLikes(commentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}
