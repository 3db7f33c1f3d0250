package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

// FollowRepo stores follow edges. The edge rows are the only record of the
// follow relation; follower and following counts are always derived from
// them, never stored on the user row.
type FollowRepo struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) *FollowRepo {
	return &FollowRepo{db}
}

func (r *FollowRepo) EdgeExists(followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepo) AddEdge(followerID, followeeID uuid.UUID) error {
	return r.db.Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID}).Error
}

func (r *FollowRepo) RemoveEdge(followerID, followeeID uuid.UUID) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

func (r *FollowRepo) CountFollowers(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followee_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepo) CountFollowing(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// ListFollowers returns the users following userID, most recent first.
func (r *FollowRepo) ListFollowers(userID uuid.UUID, page, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id AND follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListFollowing returns the users userID follows, most recent first.
func (r *FollowRepo) ListFollowing(userID uuid.UUID, page, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.
		Joins("JOIN follows ON follows.followee_id = users.id AND follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, err
}
