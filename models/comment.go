package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a blog post and optionally replies to another comment.
// Comment likes live in the CommentLike edge table.
type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	BlogID          uuid.UUID  `json:"blogId" db:"blog_id" gorm:"type:uuid;not null;index:idx_comments_blog"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index:idx_comments_author"`
	Author          *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	ParentCommentID *uuid.UUID `json:"parentComment,omitempty" db:"parent_comment_id" gorm:"type:uuid;index:idx_comments_parent"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	IsEdited        bool       `json:"isEdited" db:"is_edited" gorm:"type:boolean;not null;default:false"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
