package models

import (
	"time"

	"github.com/google/uuid"
)

// Media kinds accepted by the pipeline.
const (
	MediaKindImage  = "image"
	MediaKindVideo  = "video"
	MediaKindAvatar = "avatar"
)

// MediaRef is a stable pointer to a binary asset on the remote object host:
// the public URL plus the object key needed to delete it later.
type MediaRef struct {
	URL       string `json:"url"`
	Key       string `json:"public_id"`
	Alt       string `json:"alt,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// MediaFile is a MediaRef owned by a blog post. Rows are removed with their
// post; the remote object is reclaimed best-effort by the media service.
type MediaFile struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogID    uuid.UUID `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;index:idx_media_files_blog"`
	URL       string    `json:"url" db:"url" gorm:"type:text;not null"`
	Key       string    `json:"public_id" db:"key" gorm:"type:text;not null"`
	Kind      string    `json:"kind" db:"kind" gorm:"type:text;not null;default:'image'"`
	Alt       string    `json:"alt,omitempty" db:"alt" gorm:"type:text;not null;default:''"`
	Thumbnail string    `json:"thumbnail,omitempty" db:"thumbnail" gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (m MediaFile) Ref() MediaRef {
	return MediaRef{URL: m.URL, Key: m.Key, Alt: m.Alt, Thumbnail: m.Thumbnail}
}
