package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-app/backend/access"
	"github.com/inkwell-app/backend/database"
	"github.com/inkwell-app/backend/errs"
	"github.com/inkwell-app/backend/models"
	"github.com/inkwell-app/backend/services"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	blogRepo    *database.BlogRepo
	engagement  *services.Engagement
}

func newCommentHandler(
	commentRepo *database.CommentRepo,
	blogRepo *database.BlogRepo,
	engagement *services.Engagement,
) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		blogRepo:    blogRepo,
		engagement:  engagement,
	}
}

// commentWithLikes pairs a comment with its derived like count.
type commentWithLikes struct {
	*models.Comment
	LikeCount int64 `json:"likeCount"`
}

// createComment adds a comment or reply. The blog is checked first, then the
// parent comment, which must belong to the same blog.
// @Summary Create a comment
// @Tags Comments
// @Router /comments [post]
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		var req struct {
			BlogID        uuid.UUID  `json:"blogId"`
			Content       string     `json:"content"`
			ParentComment *uuid.UUID `json:"parentComment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}

		blog, err := h.blogRepo.FindByID(req.BlogID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog"))
			return
		}

		if req.ParentComment != nil {
			parent, err := h.commentRepo.FindByID(*req.ParentComment)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("query", "comment", err))
				return
			}
			if parent == nil {
				h.responder.WriteError(w, errs.NewNotFound("comment"))
				return
			}
			if parent.BlogID != blog.ID {
				h.responder.WriteError(w, errs.NewValidationError("parentComment", "parent comment belongs to a different blog"))
				return
			}
		}

		comment := &models.Comment{
			BlogID:          blog.ID,
			AuthorID:        user.ID,
			ParentCommentID: req.ParentComment,
			Content:         strings.TrimSpace(req.Content),
		}
		if err := h.commentRepo.Add(comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}
		comment.Author = user

		h.responder.WriteSuccessStatus(w, http.StatusCreated, Envelope{"comment": comment})
	}
}

// getForBlog lists a blog's top-level comments, newest first
// @Summary List comments for a blog
// @Tags Comments
// @Router /comments/blog/{blogID} [get]
func (h commentHandler) getForBlog() http.HandlerFunc {
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

		page, limit := pagination(r)
		comments, total, err := h.commentRepo.ForBlog(blog.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "comments", err))
			return
		}

		withLikes, err := h.attachLikeCounts(comments)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"comments": withLikes,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

// getReplies lists a comment's direct replies, oldest first
// @Summary List replies
// @Tags Comments
// @Router /comments/{commentID}/replies [get]
func (h commentHandler) getReplies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.loadComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		replies, err := h.commentRepo.Replies(comment.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "comments", err))
			return
		}

		withLikes, err := h.attachLikeCounts(replies)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{"replies": withLikes})
	}
}

// updateComment edits the text and marks the comment edited. Author only.
// @Summary Edit a comment
// @Tags Comments
// @Router /comments/{commentID} [put]
func (h commentHandler) updateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.loadComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		caller := ctxGetUser(r.Context())
		if decision := access.Owner(caller, comment.AuthorID); !decision.Allowed {
			h.responder.WriteError(w, errs.NewForbiddenError(decision.Reason))
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		req.Content = strings.TrimSpace(req.Content)
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}

		if err := h.commentRepo.UpdateContent(comment.ID, req.Content); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "comment", err))
			return
		}
		comment.Content = req.Content
		comment.IsEdited = true

		h.responder.WriteSuccess(w, Envelope{"comment": comment})
	}
}

// deleteComment removes a comment and its replies. Author or admin.
// @Summary Delete a comment
// @Tags Comments
// @Router /comments/{commentID} [delete]
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.loadComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		caller := ctxGetUser(r.Context())
		if decision := access.OwnerOrAdmin(caller, comment.AuthorID); !decision.Allowed {
			h.responder.WriteError(w, errs.NewForbiddenError(decision.Reason))
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"message": "comment deleted",
		})
	}
}

// toggleLike flips the caller's like on a comment
// @Summary Toggle comment like
// @Tags Comments
// @Router /comments/{commentID}/like [post]
func (h commentHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comment, apiErr := h.loadComment(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		user := ctxGetUser(r.Context())
		result, err := h.engagement.ToggleCommentLike(user.ID, comment.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"liked": result.Active,
			"count": result.Count,
		})
	}
}

func (h commentHandler) loadComment(r *http.Request) (*models.Comment, error) {
	commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
	if err != nil {
		return nil, errs.NewBadRequestError("invalid commentID")
	}

	comment, err := h.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, wrapDatabaseError("query", "comment", err)
	}
	if comment == nil {
		return nil, errs.NewNotFound("comment")
	}
	return comment, nil
}

func (h commentHandler) attachLikeCounts(comments []*models.Comment) ([]commentWithLikes, error) {
	out := make([]commentWithLikes, 0, len(comments))
	for _, c := range comments {
		count, err := h.engagement.CommentLikeCount(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, commentWithLikes{Comment: c, LikeCount: count})
	}
	return out, nil
}
