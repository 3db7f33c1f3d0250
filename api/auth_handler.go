package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/backend/auth"
	"github.com/inkwell-app/backend/database"
	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
	"github.com/inkwell-app/backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	blogRepo  *database.BlogRepo
	social    *services.SocialGraph
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	media     *services.Media
}

func newAuthHandler(
	userRepo *database.UserRepo,
	blogRepo *database.BlogRepo,
	social *services.SocialGraph,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	media *services.Media,
) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		blogRepo:  blogRepo,
		social:    social,
		tokens:    tokens,
		passwords: passwords,
		media:     media,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// register creates a new account and returns a token for it
// @Summary Register a new user
// @Tags Auth
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		req.FullName = strings.TrimSpace(req.FullName)

		if err := validateRegistration(req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		exists, err := h.userRepo.ExistsByUsernameOrEmail(req.Username, req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "user", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewConflictError("username or email already in use"))
			return
		}

		hash, err := h.passwords.Hash(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		now := time.Now()
		user := &models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			FullName:     req.FullName,
			Role:         models.RoleUser,
			LastLogin:    &now,
		}
		if err := h.userRepo.Add(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccessStatus(w, http.StatusCreated, Envelope{
			"token": token,
			"user":  user,
		})
	}
}

// login authenticates by username or email
// @Summary Log in
// @Tags Auth
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}

		login := strings.TrimSpace(req.Login)
		if login == "" {
			login = strings.TrimSpace(req.Username)
		}
		if login == "" {
			login = strings.TrimSpace(req.Email)
		}
		if login == "" || req.Password == "" {
			h.responder.WriteError(w, errs.NewValidationError("login", "login and password are required"))
			return
		}

		user, err := h.userRepo.FindByLogin(login)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		matches, err := h.passwords.Matches(user.PasswordHash, req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !matches {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		now := time.Now()
		user.LastLogin = &now
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		token, err := h.tokens.Issue(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"token": token,
			"user":  user,
		})
	}
}

// logout acknowledges a logout. Tokens are stateless, so the client discards
// the credential; there is no server-side session to tear down.
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteSuccess(w, Envelope{
			"message": "logged out",
		})
	}
}

// getProfile returns the caller's account with derived follow counts
// @Summary Get own profile
// @Tags Auth
// @Router /auth/profile [get]
func (h authHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		followers, following, err := h.social.Counts(user.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"user":           user,
			"followerCount":  followers,
			"followingCount": following,
		})
	}
}

// updateProfile edits fullName/bio and optionally replaces the avatar. With a
// multipart body the avatar file is uploaded before the old object is
// reclaimed, so a failed upload leaves the current avatar in place.
// @Summary Update own profile
// @Tags Auth
// @Router /auth/profile [put]
func (h authHandler) updateProfile() http.HandlerFunc {
	const maxAvatarSize = 5 << 20

	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid multipart body"))
				return
			}

			if v := r.FormValue("fullName"); v != "" {
				user.FullName = strings.TrimSpace(v)
			}
			if _, ok := r.MultipartForm.Value["bio"]; ok {
				user.Bio = strings.TrimSpace(r.FormValue("bio"))
			}

			file, header, err := r.FormFile("avatar")
			if err == nil {
				defer file.Close()
				ref, err := h.media.Replace(
					r.Context(), models.MediaKindAvatar,
					header.Filename, header.Header.Get("Content-Type"),
					file, user.AvatarKey,
				)
				if err != nil {
					h.responder.WriteError(w, err)
					return
				}
				user.AvatarURL = ref.URL
				user.AvatarKey = ref.Key
			}
		} else {
			var req struct {
				FullName *string `json:"fullName"`
				Bio      *string `json:"bio"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
				return
			}
			if req.FullName != nil {
				user.FullName = strings.TrimSpace(*req.FullName)
			}
			if req.Bio != nil {
				user.Bio = strings.TrimSpace(*req.Bio)
			}
		}

		if user.FullName == "" {
			h.responder.WriteError(w, errs.NewValidationError("fullName", "full name cannot be empty"))
			return
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{"user": user})
	}
}

// changePassword verifies the current password before setting a new one
// @Summary Change password
// @Tags Auth
// @Router /auth/change-password [put]
func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if len(req.NewPassword) < 6 {
			h.responder.WriteError(w, errs.NewValidationError("newPassword", "password must be at least 6 characters"))
			return
		}

		matches, err := h.passwords.Matches(user.PasswordHash, req.CurrentPassword)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !matches {
			h.responder.WriteError(w, errs.NewUnauthorizedError("current password is incorrect"))
			return
		}

		hash, err := h.passwords.Hash(req.NewPassword)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user.PasswordHash = hash
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"message": "password updated",
		})
	}
}

// deleteAccount removes the account, its blogs, comments and edges, then
// reclaims the remote media objects best-effort.
// @Summary Delete own account
// @Tags Auth
// @Router /auth/delete-account [delete]
func (h authHandler) deleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		// Collect object keys before the rows disappear.
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

		h.responder.WriteSuccess(w, Envelope{
			"message": "account deleted",
		})
	}
}

func validateRegistration(req registerRequest) error {
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return errs.NewValidationError("username", "username must be 3-30 characters")
	}
	for _, r := range req.Username {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_') {
			return errs.NewValidationError("username", "username may only contain letters, digits and underscores")
		}
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return errs.NewValidationError("email", "a valid email is required")
	}
	if len(req.Password) < 6 {
		return errs.NewValidationError("password", "password must be at least 6 characters")
	}
	if req.FullName == "" {
		return errs.NewValidationError("fullName", "full name is required")
	}
	return nil
}
