package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// BlogFilter narrows FindAll listings. Zero values mean "no constraint".
type BlogFilter struct {
	Search   string
	Category string
	Tag      string
	AuthorID uuid.UUID
	Status   string
}

// Add inserts a blog with its tags and media rows in one transaction.
func (r *BlogRepo) Add(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// FindByID returns a blog by id with tags, media and author, or nil if absent.
func (r *BlogRepo) FindByID(id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("Tags").Preload("Media").Preload("Author").First(&blog, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindBySlug returns a blog by slug, or nil if absent.
func (r *BlogRepo) FindBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.Preload("Tags").Preload("Media").Preload("Author").First(&blog, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// IncrementViews bumps the view counter by one. Every fetch by slug counts,
// including repeat fetches by the same caller.
func (r *BlogRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Blog{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// FindAll returns published blogs matching the filter, newest first, along
// with the total match count for pagination metadata.
func (r *BlogRepo) FindAll(filter BlogFilter, page, limit int) ([]*models.Blog, int64, error) {
	q := r.db.Model(&models.Blog{})

	status := filter.Status
	if status == "" {
		status = models.StatusPublished
	}
	q = q.Where("status = ?", status)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR id IN (SELECT blog_id FROM blog_tags WHERE LOWER(value) LIKE ?)",
			pattern, pattern, pattern,
		)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		q = q.Where("id IN (SELECT blog_id FROM blog_tags WHERE value = ?)", strings.ToLower(filter.Tag))
	}
	if filter.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", filter.AuthorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []*models.Blog
	err := q.Preload("Tags").Preload("Media").Preload("Author").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	return blogs, total, err
}

// Trending returns the most viewed published blogs, most recent breaking ties.
func (r *BlogRepo) Trending(limit int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Preload("Tags").Preload("Media").Preload("Author").
		Where("status = ?", models.StatusPublished).
		Order("views DESC, created_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// RecentByAuthor returns the author's latest published blogs, used by the
// full-profile projection.
func (r *BlogRepo) RecentByAuthor(authorID uuid.UUID, limit int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Preload("Tags").Preload("Media").Preload("Author").
		Where("author_id = ? AND status = ?", authorID, models.StatusPublished).
		Order("created_at DESC").
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// ByAuthor returns every blog owned by a user regardless of status, with
// media preloaded. Used when an account is removed and its objects reclaimed.
func (r *BlogRepo) ByAuthor(authorID uuid.UUID) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Preload("Media").Where("author_id = ?", authorID).Find(&blogs).Error
	return blogs, err
}

// SavedByUser returns the blogs a user has saved, most recently saved first.
func (r *BlogRepo) SavedByUser(userID uuid.UUID, page, limit int) ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Preload("Tags").Preload("Media").Preload("Author").
		Joins("JOIN blog_saves ON blog_saves.blog_id = blogs.id AND blog_saves.user_id = ?", userID).
		Order("blog_saves.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error
	return blogs, err
}

// FindAllAdmin returns every blog regardless of status, admin listing.
func (r *BlogRepo) FindAllAdmin() ([]*models.Blog, error) {
	var blogs []*models.Blog
	err := r.db.Preload("Tags").Preload("Author").Order("created_at DESC").Find(&blogs).Error
	return blogs, err
}

// Update persists blog field changes. Tags are replaced wholesale when
// provided, since the incoming set is authoritative.
func (r *BlogRepo) Update(blog *models.Blog, replaceTags []models.BlogTag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Media", "Author").Save(blog).Error; err != nil {
			return err
		}
		if replaceTags != nil {
			if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.BlogTag{}).Error; err != nil {
				return err
			}
			for i := range replaceTags {
				replaceTags[i].BlogID = blog.ID
			}
			if len(replaceTags) > 0 {
				if err := tx.Create(&replaceTags).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// AddMedia appends media rows to an existing blog.
func (r *BlogRepo) AddMedia(blogID uuid.UUID, files []models.MediaFile) error {
	if len(files) == 0 {
		return nil
	}
	for i := range files {
		files[i].BlogID = blogID
	}
	return r.db.Create(&files).Error
}

// DeleteMedia removes the media rows for a blog, returning the removed rows
// so the caller can reclaim the remote objects.
func (r *BlogRepo) DeleteMedia(blogID uuid.UUID) ([]models.MediaFile, error) {
	var files []models.MediaFile
	if err := r.db.Where("blog_id = ?", blogID).Find(&files).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("blog_id = ?", blogID).Delete(&models.MediaFile{}).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes a blog and its comments, tags, media rows and engagement
// edges in one transaction.
func (r *BlogRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id IN (SELECT id FROM comments WHERE blog_id = ?)", id).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.MediaFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogSave{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, "id = ?", id).Error
	})
}
