package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/backend/database"
	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
	"github.com/inkwell-app/backend/services"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	blogRepo  *database.BlogRepo
	social    *services.SocialGraph
}

func newUserHandler(
	userRepo *database.UserRepo,
	blogRepo *database.BlogRepo,
	social *services.SocialGraph,
) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		blogRepo:  blogRepo,
		social:    social,
	}
}

const profileBlogLimit = 10

// getProfile returns a user's profile. The owner, the owner's followers and
// admins see the full profile with recent published posts; everyone else gets
// the minimal projection. Enforced here, never left to the client.
// @Summary Get user profile
// @Tags Users
// @Router /users/profile/{username} [get]
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing username"))
			return
		}

		user, err := h.userRepo.FindByUsername(username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFound("user"))
			return
		}

		followers, following, err := h.social.Counts(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		caller := ctxGetUser(r.Context())
		isFollowing := false
		fullView := false
		if caller != nil {
			if caller.ID == user.ID || caller.IsAdmin() {
				fullView = true
			} else {
				isFollowing, err = h.social.IsFollowing(caller.ID, user.ID)
				if err != nil {
					h.responder.WriteError(w, err)
					return
				}
				fullView = isFollowing
			}
		}

		if !fullView {
			h.responder.WriteSuccess(w, Envelope{
				"profile":     user.Public(followers, following),
				"isFollowing": isFollowing,
			})
			return
		}

		blogs, err := h.blogRepo.RecentByAuthor(user.ID, profileBlogLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"profile": Envelope{
				"id":             user.ID,
				"username":       user.Username,
				"fullName":       user.FullName,
				"bio":            user.Bio,
				"avatar":         user.AvatarURL,
				"followerCount":  followers,
				"followingCount": following,
				"createdAt":      user.CreatedAt,
			},
			"blogs":       blogs,
			"isFollowing": isFollowing,
		})
	}
}

// follow adds a follow edge to the target user
// @Summary Follow a user
// @Tags Users
// @Router /users/follow/{userID} [post]
func (h userHandler) follow() http.HandlerFunc {
	return h.followEdge(h.social.Follow, "followed")
}

// unfollow removes the follow edge to the target user
// @Summary Unfollow a user
// @Tags Users
// @Router /users/unfollow/{userID} [post]
func (h userHandler) unfollow() http.HandlerFunc {
	return h.followEdge(h.social.Unfollow, "unfollowed")
}

func (h userHandler) followEdge(mutate func(followerID, followeeID uuid.UUID) error, verb string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())

		target, apiErr := h.loadTarget(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := mutate(caller.ID, target.ID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		followers, _, err := h.social.Counts(target.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"message":       verb + " " + target.Username,
			"followerCount": followers,
		})
	}
}

// getFollowers lists a user's followers
// @Summary List followers
// @Tags Users
// @Router /users/{userID}/followers [get]
func (h userHandler) getFollowers() http.HandlerFunc {
	return h.followList(h.social.Followers, "followers")
}

// getFollowing lists who a user follows
// @Summary List following
// @Tags Users
// @Router /users/{userID}/following [get]
func (h userHandler) getFollowing() http.HandlerFunc {
	return h.followList(h.social.Following, "following")
}

func (h userHandler) followList(
	list func(userID uuid.UUID, page, limit int) ([]models.UserSummary, error),
	key string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target, apiErr := h.loadTarget(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		page, limit := pagination(r)
		users, err := list(target.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			key:     users,
			"page":  page,
			"limit": limit,
		})
	}
}

// search finds users by username or full name, most followed first
// @Summary Search users
// @Tags Users
// @Router /users/search [get]
func (h userHandler) search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			h.responder.WriteError(w, errs.NewValidationError("q", "search query is required"))
			return
		}

		page, limit := pagination(r)
		users, err := h.userRepo.Search(query, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "users", err))
			return
		}

		summaries := make([]models.UserSummary, 0, len(users))
		for _, u := range users {
			summaries = append(summaries, u.Summary())
		}

		h.responder.WriteSuccess(w, Envelope{
			"users": summaries,
			"page":  page,
			"limit": limit,
		})
	}
}

// getSuggestions recommends accounts the caller does not follow yet
// @Summary Suggested users
// @Tags Users
// @Router /users/suggestions [get]
func (h userHandler) getSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ctxGetUser(r.Context())
		_, limit := pagination(r)

		users, err := h.userRepo.Suggestions(caller.ID, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "users", err))
			return
		}

		summaries := make([]models.UserSummary, 0, len(users))
		for _, u := range users {
			summaries = append(summaries, u.Summary())
		}

		h.responder.WriteSuccess(w, Envelope{"users": summaries})
	}
}

func (h userHandler) loadTarget(r *http.Request) (*models.User, error) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		return nil, errs.NewBadRequestError("invalid userID")
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDatabaseError("query", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFound("user")
	}
	return user, nil
}
