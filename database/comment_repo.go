package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID returns a comment by id, or nil if absent.
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ForBlog returns a blog's top-level comments, newest first, with the total
// top-level count for pagination.
func (r *CommentRepo) ForBlog(blogID uuid.UUID, page, limit int) ([]*models.Comment, int64, error) {
	q := r.db.Model(&models.Comment{}).
		Where("blog_id = ? AND parent_comment_id IS NULL", blogID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := q.Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	return comments, total, err
}

// Replies returns a comment's direct replies, oldest first.
func (r *CommentRepo) Replies(parentID uuid.UUID) ([]*models.Comment, error) {
	var replies []*models.Comment
	err := r.db.Preload("Author").
		Where("parent_comment_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// CountForBlog returns the number of comments on a blog, replies included.
func (r *CommentRepo) CountForBlog(blogID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

// UpdateContent replaces a comment's text and marks it edited.
func (r *CommentRepo) UpdateContent(id uuid.UUID, content string) error {
	return r.db.Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "is_edited": true}).Error
}

// Delete removes a comment, its direct replies and all their like edges.
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? OR comment_id IN (SELECT id FROM comments WHERE parent_comment_id = ?)", id, id).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_comment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, "id = ?", id).Error
	})
}
