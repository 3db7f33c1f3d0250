package database

import (
	"gorm.io/gorm"

	"github.com/inkwell-app/backend/models"
)

type Database struct {
	userRepo       *UserRepo
	blogRepo       *BlogRepo
	commentRepo    *CommentRepo
	followRepo     *FollowRepo
	engagementRepo *EngagementRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:       NewUserRepo(db),
		blogRepo:       NewBlogRepo(db),
		commentRepo:    NewCommentRepo(db),
		followRepo:     NewFollowRepo(db),
		engagementRepo: NewEngagementRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

func (d Database) FollowRepo() *FollowRepo {
	return d.followRepo
}

func (d Database) EngagementRepo() *EngagementRepo {
	return d.engagementRepo
}

// Migrate creates or updates the schema for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.BlogTag{},
		&models.MediaFile{},
		&models.Comment{},
		&models.Follow{},
		&models.BlogLike{},
		&models.BlogSave{},
		&models.CommentLike{},
	)
}
