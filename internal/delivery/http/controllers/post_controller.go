package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"clubevents/internal/delivery/http/helpers"
	"clubevents/internal/domain"
)

// CreatePostRequest is the request body for POST /api/posts. Slug defaults to one derived from the title.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// Validate implements Validator.
func (c CreatePostRequest) Validate() []string {
	var errs []string
	title := strings.TrimSpace(c.Title)
	if title == "" {
		errs = append(errs, "title is required")
	}
	errs = checkLen(errs, "title", &title, maxTitleLen)
	if strings.TrimSpace(c.Content) == "" {
		errs = append(errs, "content is required")
	}
	errs = checkLen(errs, "excerpt", &c.Excerpt, maxTextLen)
	errs = checkLen(errs, "author", &c.Author, maxNameLen)
	return errs
}

// UpdatePostRequest is the request body for PATCH /api/posts/{postID}. Omitted fields are unchanged.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty"`
	Slug      *string `json:"slug,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty"`
	Content   *string `json:"content,omitempty"`
	Author    *string `json:"author,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// Validate implements Validator.
func (u UpdatePostRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	errs = checkLen(errs, "title", u.Title, maxTitleLen)
	errs = checkLen(errs, "excerpt", u.Excerpt, maxTextLen)
	if u.Title == nil && u.Slug == nil && u.Excerpt == nil && u.Content == nil && u.Author == nil && u.Published == nil {
		errs = append(errs, "at least one field must be provided")
	}
	return errs
}

// PostSuccessResponse is the success response envelope for single-post endpoints.
type PostSuccessResponse struct {
	Data  *domain.Post      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListPostsSuccessResponse is the success response envelope for GET /api/posts (200).
type ListPostsSuccessResponse struct {
	Data  helpers.Page[*domain.Post] `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

type PostController struct {
	Logger  *slog.Logger
	Service domain.PostService
}

func NewPostController(logger *slog.Logger, svc domain.PostService) *PostController {
	return &PostController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPosts godoc
// @Summary List published posts
// @Description Published posts, newest first.
// @Tags posts
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListPostsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts [get]
func (c *PostController) ListPosts(w http.ResponseWriter, r *http.Request) {
	c.listPosts(w, r, true)
}

// ListAllPosts godoc
// @Summary List all posts
// @Description Published posts and drafts, for the admin dashboard.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListPostsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/posts [get]
func (c *PostController) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	c.listPosts(w, r, false)
}

func (c *PostController) listPosts(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	params := helpers.ParsePagination(r)
	posts, total, err := c.Service.ListPosts(r.Context(), publishedOnly, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPage(posts, params, total))
}

// GetPost godoc
// @Summary Get a published post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} controllers.PostSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{slug} [get]
func (c *PostController) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := c.Service.GetPublishedBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePostRequest true "Post data"
// @Success 201 {object} controllers.PostSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts [post]
func (c *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post := &domain.Post{
		Title:     req.Title,
		Slug:      strings.TrimSpace(req.Slug),
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Content:   req.Content,
		Author:    strings.TrimSpace(req.Author),
		Published: req.Published,
	}
	if err := c.Service.CreatePost(r.Context(), post); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary Update a post
// @Description Applies the provided fields. Publishing a draft stamps publishedAt.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Param body body UpdatePostRequest true "Fields to update"
// @Success 200 {object} controllers.PostSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID} [patch]
func (c *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}
	var req UpdatePostRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	post, err := c.Service.UpdatePost(r.Context(), postID, domain.PostUpdate{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Author:    req.Author,
		Published: req.Published,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, post)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /posts/{postID} [delete]
func (c *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postID")
	if !ok {
		return
	}
	if err := c.Service.DeletePost(r.Context(), postID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
