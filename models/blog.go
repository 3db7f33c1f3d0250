package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Blog lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Blog categories. Unknown values fall back to CategoryOther.
var Categories = []string{
	"technology", "lifestyle", "travel", "food",
	"fashion", "health", "business", "other",
}

const CategoryOther = "other"

// Blog represents a post. Likes and saves live in the BlogLike/BlogSave edge
// tables; like/save counts are derived from those, never stored here. Views is
// the only stored counter and is incremented unconditionally on fetch by slug.
type Blog struct {
	ID               uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title            string      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug             string      `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	Content          string      `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt          string      `json:"excerpt" db:"excerpt" gorm:"type:text;not null;default:''"`
	AuthorID         uuid.UUID   `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_blogs_author"`
	Author           *User       `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	FeaturedImageURL string      `json:"featuredImage" db:"featured_image_url" gorm:"type:text;not null;default:''"`
	FeaturedImageKey string      `json:"-" db:"featured_image_key" gorm:"type:text;not null;default:''"`
	Category         string      `json:"category" db:"category" gorm:"type:text;not null;default:'other'"`
	Status           string      `json:"status" db:"status" gorm:"type:text;not null;default:'published';index:idx_blogs_status"`
	Views            int64       `json:"views" db:"views" gorm:"type:bigint;not null;default:0"`
	ReadTime         int         `json:"readTime" db:"read_time" gorm:"type:integer;not null;default:1"`
	Tags             []BlogTag   `json:"tags,omitempty" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
	Media            []MediaFile `json:"mediaFiles,omitempty" gorm:"foreignKey:BlogID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;index:idx_blogs_created"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// BlogTag associates a lowercased tag value with a blog post.
type BlogTag struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogID uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;index:idx_blog_tags_blog;uniqueIndex:idx_blog_tags_unique"`
	Value  string    `json:"value" db:"value" gorm:"type:text;not null;uniqueIndex:idx_blog_tags_unique"`
}

// SlugFromTitle derives a URL-safe slug from a title plus a creation-time
// disambiguator, so duplicate titles still produce unique slugs. The slug is
// recomputed only when the title changes.
func SlugFromTitle(title string, at time.Time) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	base := strings.TrimSuffix(b.String(), "-")
	if base == "" {
		base = "post"
	}
	return fmt.Sprintf("%s-%d", base, at.UnixMilli())
}

// ReadTimeFor estimates reading time in minutes assuming 200 words per minute.
func ReadTimeFor(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}
