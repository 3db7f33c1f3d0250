package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/backend/database"
	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
	"github.com/inkwell-app/backend/services"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	blogRepo  *database.BlogRepo
	media     *services.Media
}

func newAdminHandler(
	userRepo *database.UserRepo,
	blogRepo *database.BlogRepo,
	media *services.Media,
) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		blogRepo:  blogRepo,
		media:     media,
	}
}

// getAllUsers lists every account
// @Summary List all users
// @Tags Admin
// @Router /admin/users [get]
func (h adminHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "users", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"users": users,
			"total": len(users),
		})
	}
}

// deleteUser removes an account and everything it owns. Admins cannot remove
// themselves through this endpoint; they use account deletion like everyone
// else.
// @Summary Delete a user
// @Tags Admin
// @Router /admin/user/{userID}/delete [delete]
func (h adminHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}
		if userID == caller.ID {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot delete own account through admin endpoint"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		keys := []string{}
		if user.AvatarKey != "" {
			keys = append(keys, user.AvatarKey)
		}
		blogs, err := h.blogRepo.ByAuthor(user.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}
		for _, blog := range blogs {
			if blog.FeaturedImageKey != "" {
				keys = append(keys, blog.FeaturedImageKey)
			}
			for _, m := range blog.Media {
				keys = append(keys, m.Key)
			}
		}

		if err := h.userRepo.Delete(user.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "user", err))
			return
		}

		h.media.DeleteAll(r.Context(), keys)

		h.logger.Info().
			Str("deletedUser", user.Username).
			Str("by", caller.Username).
			Msg("user removed by admin")

		h.responder.WriteSuccess(w, Envelope{
			"message": "user deleted",
		})
	}
}

// getAllBlogs lists every post regardless of status
// @Summary List all blog posts
// @Tags Admin
// @Router /admin/blogs [get]
func (h adminHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogs, err := h.blogRepo.FindAllAdmin()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"blogs": blogs,
			"total": len(blogs),
		})
	}
}

// deleteBlog removes any post and reclaims its media
// @Summary Delete any blog post
// @Tags Admin
// @Router /admin/blog/{blogID}/delete [delete]
func (h adminHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid blogID"))
			return
		}

		blog, err := h.blogRepo.FindByID(blogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog"))
			return
		}

		keys := []string{}
		if blog.FeaturedImageKey != "" {
			keys = append(keys, blog.FeaturedImageKey)
		}
		for _, m := range blog.Media {
			keys = append(keys, m.Key)
		}

		if err := h.blogRepo.Delete(blog.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}

		h.media.DeleteAll(r.Context(), keys)

		h.responder.WriteSuccess(w, Envelope{
			"message": "blog deleted",
		})
	}
}

// toggleRole flips an account between user and admin
// @Summary Toggle user role
// @Tags Admin
// @Router /admin/user/{userID}/toggle-role [patch]
func (h adminHandler) toggleRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}
		if userID == caller.ID {
			h.responder.WriteError(w, errs.NewBadRequestError("cannot change own role"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		if user.Role == models.RoleAdmin {
			user.Role = models.RoleUser
		} else {
			user.Role = models.RoleAdmin
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"user": user,
			"role": user.Role,
		})
	}
}
