package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

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

const maxBlogUploadSize = 32 << 20

type blogHandler struct {
	responder   Responder
	logger      zerolog.Logger
	blogRepo    *database.BlogRepo
	commentRepo *database.CommentRepo
	engagement  *services.Engagement
	media       *services.Media
}

func newBlogHandler(
	blogRepo *database.BlogRepo,
	commentRepo *database.CommentRepo,
	engagement *services.Engagement,
	media *services.Media,
) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		blogRepo:    blogRepo,
		commentRepo: commentRepo,
		engagement:  engagement,
		media:       media,
	}
}

type blogInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Status   string   `json:"status"`
	Tags     []string `json:"tags"`
}

// createBlog creates a post from a multipart (fields plus media files) or
// JSON body
// @Summary Create a blog post
// @Tags Blogs
// @Router /blogs [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

		input, featured, mediaFiles, err := h.parseBlogBody(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if strings.TrimSpace(input.Title) == "" {
			h.responder.WriteError(w, errs.NewValidationError("title", "title is required"))
			return
		}
		if strings.TrimSpace(input.Content) == "" {
			h.responder.WriteError(w, errs.NewValidationError("content", "content is required"))
			return
		}
		if input.Category == "" || !models.ValidCategory(input.Category) {
			input.Category = models.CategoryOther
		}
		if input.Status == "" {
			input.Status = models.StatusPublished
		}
		if !models.ValidStatus(input.Status) {
			h.responder.WriteError(w, errs.NewValidationError("status", "unknown status"))
			return
		}

		now := time.Now()
		blog := &models.Blog{
			Title:    strings.TrimSpace(input.Title),
			Slug:     models.SlugFromTitle(input.Title, now),
			Content:  input.Content,
			Excerpt:  strings.TrimSpace(input.Excerpt),
			AuthorID: user.ID,
			Category: input.Category,
			Status:   input.Status,
			ReadTime: models.ReadTimeFor(input.Content),
			Tags:     tagsFor(input.Tags),
		}

		// Upload featured image and media before the row exists; on a later
		// insert failure the objects are reclaimed below.
		uploaded := []string{}
		if featured != nil {
			ref, err := h.uploadFile(r, models.MediaKindImage, featured)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			blog.FeaturedImageURL = ref.URL
			blog.FeaturedImageKey = ref.Key
			uploaded = append(uploaded, ref.Key)
		}
		files, err := h.uploadMediaParts(r, mediaFiles)
		if err != nil {
			h.media.DeleteAll(r.Context(), uploaded)
			h.responder.WriteError(w, err)
			return
		}
		blog.Media = files
		uploaded = append(uploaded, mediaKeys(files)...)

		if err := h.blogRepo.Add(blog); err != nil {
			h.media.DeleteAll(r.Context(), uploaded)
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}

		h.responder.WriteSuccessStatus(w, http.StatusCreated, Envelope{"blog": blog})
	}
}

// getAllBlogs lists published posts with search/category/tag/author filters
// @Summary List blog posts
// @Tags Blogs
// @Router /blogs [get]
func (h blogHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pagination(r)

		filter := database.BlogFilter{
			Search:   strings.TrimSpace(r.URL.Query().Get("search")),
			Category: strings.ToLower(r.URL.Query().Get("category")),
			Tag:      strings.TrimSpace(r.URL.Query().Get("tag")),
		}
		if author := r.URL.Query().Get("author"); author != "" {
			authorID, err := uuid.Parse(author)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("author", "author must be a user id"))
				return
			}
			filter.AuthorID = authorID
		}

		blogs, total, err := h.blogRepo.FindAll(filter, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"blogs": blogs,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}

// getTrending lists the most viewed published posts
// @Summary Trending blog posts
// @Tags Blogs
// @Router /blogs/trending [get]
func (h blogHandler) getTrending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, limit := pagination(r)

		blogs, err := h.blogRepo.Trending(limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{"blogs": blogs})
	}
}

// getSaved lists the caller's saved posts
// @Summary Saved blog posts
// @Tags Blogs
// @Router /blogs/saved/me [get]
func (h blogHandler) getSaved() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		page, limit := pagination(r)

		blogs, err := h.blogRepo.SavedByUser(user.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blogs", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"blogs": blogs,
			"page":  page,
			"limit": limit,
		})
	}
}

// getBlogBySlug fetches one post. Every fetch increments the view counter,
// repeat visits included.
// @Summary Get blog post by slug
// @Tags Blogs
// @Router /blogs/{slug} [get]
func (h blogHandler) getBlogBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		blog, err := h.blogRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "blog", err))
			return
		}
		if blog == nil {
			h.responder.WriteError(w, errs.NewNotFound("blog"))
			return
		}

		caller := ctxGetUser(r.Context())

		// Drafts and archived posts are visible to the owner and admins only.
		if blog.Status != models.StatusPublished {
			if decision := access.OwnerOrAdmin(caller, blog.AuthorID); !decision.Allowed {
				h.responder.WriteError(w, errs.NewNotFound("blog"))
				return
			}
		}

		if err := h.blogRepo.IncrementViews(blog.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}
		blog.Views++

		callerID := uuid.Nil
		if caller != nil {
			callerID = caller.ID
		}
		liked, saved, likes, saves, err := h.engagement.BlogState(callerID, blog.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		commentCount, err := h.commentRepo.CountForBlog(blog.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("query", "comments", err))
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			"blog":         blog,
			"likeCount":    likes,
			"saveCount":    saves,
			"liked":        liked,
			"saved":        saved,
			"commentCount": commentCount,
		})
	}
}

// updateBlog edits a post. Owner or admin only; existence is checked before
// authorization. The slug is recomputed only when the title changes.
// @Summary Update a blog post
// @Tags Blogs
// @Router /blogs/update/{blogID} [put]
func (h blogHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, apiErr := h.loadOwnedBlog(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		input, featured, mediaParts, err := h.parseBlogBody(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// New media parts replace the post's media set wholesale: the new
		// objects go up first, the rows are swapped, and only then are the
		// old objects reclaimed, so a failed upload leaves the post intact.
		var newMedia []models.MediaFile
		if len(mediaParts) > 0 {
			newMedia, err = h.uploadMediaParts(r, mediaParts)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		var replaceTags []models.BlogTag
		if input.Tags != nil {
			replaceTags = tagsFor(input.Tags)
		}

		if title := strings.TrimSpace(input.Title); title != "" && title != blog.Title {
			blog.Title = title
			blog.Slug = models.SlugFromTitle(title, time.Now())
		}
		if input.Content != "" && input.Content != blog.Content {
			blog.Content = input.Content
			blog.ReadTime = models.ReadTimeFor(input.Content)
		}
		if input.Excerpt != "" {
			blog.Excerpt = strings.TrimSpace(input.Excerpt)
		}
		if input.Category != "" {
			if !models.ValidCategory(input.Category) {
				h.responder.WriteError(w, errs.NewValidationError("category", "unknown category"))
				return
			}
			blog.Category = input.Category
		}
		if input.Status != "" {
			if !models.ValidStatus(input.Status) {
				h.responder.WriteError(w, errs.NewValidationError("status", "unknown status"))
				return
			}
			blog.Status = input.Status
		}

		if featured != nil {
			oldKey := blog.FeaturedImageKey
			file, err := featured.Open()
			if err != nil {
				h.responder.WriteError(w, errs.NewUploadError(featured.Filename, err))
				return
			}
			defer file.Close()
			ref, err := h.media.Replace(
				r.Context(), models.MediaKindImage,
				featured.Filename, featured.Header.Get("Content-Type"),
				file, oldKey,
			)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			blog.FeaturedImageURL = ref.URL
			blog.FeaturedImageKey = ref.Key
		}

		if err := h.blogRepo.Update(blog, replaceTags); err != nil {
			h.media.DeleteAll(r.Context(), mediaKeys(newMedia))
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}

		if len(newMedia) > 0 {
			oldFiles, err := h.blogRepo.DeleteMedia(blog.ID)
			if err != nil {
				h.media.DeleteAll(r.Context(), mediaKeys(newMedia))
				h.responder.WriteError(w, wrapDatabaseError("update", "blog media", err))
				return
			}
			if err := h.blogRepo.AddMedia(blog.ID, newMedia); err != nil {
				h.media.DeleteAll(r.Context(), mediaKeys(newMedia))
				h.responder.WriteError(w, wrapDatabaseError("update", "blog media", err))
				return
			}
			h.media.DeleteAll(r.Context(), mediaKeys(oldFiles))
			blog.Media = newMedia
		}

		h.responder.WriteSuccess(w, Envelope{"blog": blog})
	}
}

// deleteBlog removes a post and reclaims its media objects best-effort
// @Summary Delete a blog post
// @Tags Blogs
// @Router /blogs/delete/{blogID} [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blog, apiErr := h.loadOwnedBlog(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
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

// toggleLike flips the caller's like on a post
// @Summary Toggle like
// @Tags Blogs
// @Router /blogs/{blogID}/like [post]
func (h blogHandler) toggleLike() http.HandlerFunc {
	return h.toggleEdge(func(userID, blogID uuid.UUID) (services.ToggleResult, error) {
		return h.engagement.ToggleBlogLike(userID, blogID)
	}, "liked")
}

// toggleSave flips the caller's save on a post
// @Summary Toggle save
// @Tags Blogs
// @Router /blogs/{blogID}/save [post]
func (h blogHandler) toggleSave() http.HandlerFunc {
	return h.toggleEdge(func(userID, blogID uuid.UUID) (services.ToggleResult, error) {
		return h.engagement.ToggleBlogSave(userID, blogID)
	}, "saved")
}

func (h blogHandler) toggleEdge(
	toggle func(userID, blogID uuid.UUID) (services.ToggleResult, error),
	stateKey string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())

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

		result, err := toggle(user.ID, blog.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteSuccess(w, Envelope{
			stateKey: result.Active,
			"count":  result.Count,
		})
	}
}

// loadOwnedBlog fetches the blog from the URL and applies the existence-first
// ownership check: missing posts 404 before any 403 can leak.
func (h blogHandler) loadOwnedBlog(r *http.Request) (*models.Blog, error) {
	blogID, err := uuid.Parse(chi.URLParam(r, "blogID"))
	if err != nil {
		return nil, errs.NewBadRequestError("invalid blogID")
	}

	blog, err := h.blogRepo.FindByID(blogID)
	if err != nil {
		return nil, wrapDatabaseError("query", "blog", err)
	}
	if blog == nil {
		return nil, errs.NewNotFound("blog")
	}

	caller := ctxGetUser(r.Context())
	if decision := access.OwnerOrAdmin(caller, blog.AuthorID); !decision.Allowed {
		return nil, errs.NewForbiddenError(decision.Reason)
	}
	return blog, nil
}

// parseBlogBody accepts either a multipart form with file parts or a plain
// JSON document. The update path ignores extra media parts.
func (h blogHandler) parseBlogBody(r *http.Request) (blogInput, *multipart.FileHeader, []*multipart.FileHeader, error) {
	var input blogInput

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBlogUploadSize); err != nil {
			return input, nil, nil, errs.NewBadRequestError("invalid multipart body")
		}

		input.Title = r.FormValue("title")
		input.Content = r.FormValue("content")
		input.Excerpt = r.FormValue("excerpt")
		input.Category = strings.ToLower(r.FormValue("category"))
		input.Status = strings.ToLower(r.FormValue("status"))
		if values, ok := r.MultipartForm.Value["tags"]; ok {
			input.Tags = []string{}
			for _, v := range values {
				for _, tag := range strings.Split(v, ",") {
					if tag = strings.TrimSpace(tag); tag != "" {
						input.Tags = append(input.Tags, tag)
					}
				}
			}
		}

		var featured *multipart.FileHeader
		if fhs := r.MultipartForm.File["featuredImage"]; len(fhs) > 0 {
			featured = fhs[0]
		}
		return input, featured, r.MultipartForm.File["media"], nil
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, nil, nil, errs.NewBadRequestError("invalid request body")
	}
	input.Category = strings.ToLower(input.Category)
	input.Status = strings.ToLower(input.Status)
	return input, nil, nil, nil
}

// uploadMediaParts stores every media part and returns the rows to attach.
// Partial failures are reclaimed inside UploadAll; nothing leaks.
func (h blogHandler) uploadMediaParts(r *http.Request, parts []*multipart.FileHeader) ([]models.MediaFile, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	specs := make([]services.UploadSpec, 0, len(parts))
	for _, fh := range parts {
		file, err := fh.Open()
		if err != nil {
			return nil, errs.NewUploadError(fh.Filename, err)
		}
		defer file.Close()

		kind := models.MediaKindImage
		if strings.HasPrefix(fh.Header.Get("Content-Type"), "video/") {
			kind = models.MediaKindVideo
		}
		specs = append(specs, services.UploadSpec{
			Kind:        kind,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	refs, err := h.media.UploadAll(r.Context(), specs)
	if err != nil {
		return nil, err
	}

	files := make([]models.MediaFile, 0, len(refs))
	for i, ref := range refs {
		files = append(files, models.MediaFile{
			URL:  ref.URL,
			Key:  ref.Key,
			Kind: specs[i].Kind,
		})
	}
	return files, nil
}

func mediaKeys(files []models.MediaFile) []string {
	keys := make([]string, 0, len(files))
	for _, f := range files {
		keys = append(keys, f.Key)
	}
	return keys
}

func (h blogHandler) uploadFile(r *http.Request, kind string, fh *multipart.FileHeader) (models.MediaRef, error) {
	file, err := fh.Open()
	if err != nil {
		return models.MediaRef{}, errs.NewUploadError(fh.Filename, err)
	}
	defer file.Close()
	return h.media.Upload(r.Context(), kind, fh.Filename, fh.Header.Get("Content-Type"), file)
}

func tagsFor(values []string) []models.BlogTag {
	seen := map[string]bool{}
	tags := []models.BlogTag{}
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		tags = append(tags, models.BlogTag{Value: v})
	}
	return tags
}
