package api

import (
	"net/http"
	"strconv"

	"github.com/inkwell-app/backend/auth"
	"github.com/inkwell-app/backend/database"
	"github.com/inkwell-app/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(
	db database.Database,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	media *services.Media,
) *routeHandlers {
	social := services.NewSocialGraph(db.FollowRepo())
	engagement := services.NewEngagement(db.EngagementRepo())

	return &routeHandlers{
		authHandler:    newAuthHandler(db.UserRepo(), db.BlogRepo(), social, tokens, passwords, media),
		blogHandler:    newBlogHandler(db.BlogRepo(), db.CommentRepo(), engagement, media),
		commentHandler: newCommentHandler(db.CommentRepo(), db.BlogRepo(), engagement),
		userHandler:    newUserHandler(db.UserRepo(), db.BlogRepo(), social),
		adminHandler:   newAdminHandler(db.UserRepo(), db.BlogRepo(), media),
	}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pagination reads page/limit query parameters with defaults and a cap.
func pagination(r *http.Request) (page, limit int) {
	page = 1
	limit = defaultPageLimit

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	return page, limit
}
