package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// Add inserts a new user. Username and email are case-folded before storage.
func (r *UserRepo) Add(user *models.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

// FindByID returns a user by id, or nil if absent.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns a user by case-folded username, or nil if absent.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", strings.ToLower(username)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin looks a user up by username or email, both case-folded.
func (r *UserRepo) FindByLogin(login string) (*models.User, error) {
	folded := strings.ToLower(strings.TrimSpace(login))
	var user models.User
	err := r.db.First(&user, "username = ? OR email = ?", folded, folded).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail reports whether any user already holds the given
// username or email.
func (r *UserRepo) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", strings.ToLower(username), strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// Update updates an existing user in the database
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// FindAll returns all users, admin listing.
func (r *UserRepo) FindAll() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// Search matches username or full name case-insensitively, ordered by
// follower count so popular accounts surface first.
func (r *UserRepo) Search(query string, page, limit int) ([]*models.User, error) {
	var users []*models.User
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	err := r.db.
		Where("LOWER(username) LIKE ? OR LOWER(full_name) LIKE ?", pattern, pattern).
		Select("users.*, (SELECT COUNT(*) FROM follows WHERE followee_id = users.id) AS follower_count").
		Order("follower_count DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, err
}

// Suggestions returns users the given user does not yet follow, ordered by
// follower count.
func (r *UserRepo) Suggestions(userID uuid.UUID, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.
		Where("users.id <> ?", userID).
		Where("users.id NOT IN (SELECT followee_id FROM follows WHERE follower_id = ?)", userID).
		Select("users.*, (SELECT COUNT(*) FROM follows WHERE followee_id = users.id) AS follower_count").
		Order("follower_count DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// Delete removes a user and everything they own: blogs (with tags, media
// rows, likes, saves and comments), their comments elsewhere, and all edges
// that reference them. Applied in one transaction so a partial cascade cannot
// be observed.
func (r *UserRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var blogIDs []uuid.UUID
		if err := tx.Model(&models.Blog{}).Where("author_id = ?", id).Pluck("id", &blogIDs).Error; err != nil {
			return err
		}

		if len(blogIDs) > 0 {
			// Likes on comments under these blogs go first; the comments they
			// point at are about to disappear.
			if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE blog_id IN ?)", blogIDs).
				Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.BlogTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.MediaFile{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.BlogLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("blog_id IN ?", blogIDs).Delete(&models.BlogSave{}).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", id).Delete(&models.Blog{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE author_id = ?)", id).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.BlogSave{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
