package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Follower/following relationships and
// saved blogs live in their own edge tables (see Follow and BlogSave); the
// counts exposed to clients are always derived from those tables.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string     `json:"username" db:"username" gorm:"type:text;not null;unique"`
	Email        string     `json:"email" db:"email" gorm:"type:text;not null;unique"`
	PasswordHash string     `json:"-" db:"password_hash" gorm:"type:text;not null"`
	FullName     string     `json:"fullName" db:"full_name" gorm:"type:text;not null"`
	Bio          string     `json:"bio" db:"bio" gorm:"type:text;not null;default:''"`
	AvatarURL    string     `json:"avatar" db:"avatar_url" gorm:"type:text;not null;default:''"`
	AvatarKey    string     `json:"-" db:"avatar_key" gorm:"type:text;not null;default:''"`
	Role         string     `json:"role" db:"role" gorm:"type:text;not null;default:'user'"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login" gorm:"type:timestamp"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicProfile is the minimal projection returned to callers who are neither
// the profile owner nor one of the owner's followers.
type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"fullName"`
	AvatarURL      string    `json:"avatar"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
}

// UserSummary is the projection embedded in blog/comment/follower listings.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
}

func (u *User) Public(followerCount, followingCount int64) PublicProfile {
	return PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		AvatarURL:      u.AvatarURL,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
	}
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}
