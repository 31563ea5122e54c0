package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/repository"
	"modernblog/internal/service"
)

const defaultPageSize = 10

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest represents a post create/update payload.
type PostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage *string  `json:"featuredImage"`
	Status        string   `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Featured      bool     `json:"featured"`
	CategoryIDs   []string `json:"categoryIds" validate:"omitempty,dive,uuid"`
}

// AuthorResponse is the author projection embedded in post responses.
type AuthorResponse struct {
	Username *string `json:"username"`
	Email    string  `json:"email"`
}

// CategoryRef is the category projection embedded in post responses.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Slug          string          `json:"slug"`
	Content       string          `json:"content"`
	Excerpt       *string         `json:"excerpt,omitempty"`
	FeaturedImage *string         `json:"featuredImage,omitempty"`
	Status        string          `json:"status"`
	Featured      bool            `json:"featured"`
	AuthorID      string          `json:"authorId"`
	Author        *AuthorResponse `json:"author,omitempty"`
	Categories    []CategoryRef   `json:"categories"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// PostsEnvelope wraps a post listing with its total.
type PostsEnvelope struct {
	Posts []PostResponse `json:"posts"`
	Total int64          `json:"total"`
}

func newPostResponse(p *model.Post) PostResponse {
	resp := PostResponse{
		ID:            p.ID.String(),
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Status:        string(p.Status),
		Featured:      p.Featured,
		AuthorID:      p.AuthorID.String(),
		Categories:    make([]CategoryRef, 0, len(p.Categories)),
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
	if p.Author.ID != uuid.Nil {
		resp.Author = &AuthorResponse{Username: p.Author.Username, Email: p.Author.Email}
	}
	for _, cat := range p.Categories {
		resp.Categories = append(resp.Categories, CategoryRef{Name: cat.Name, Slug: cat.Slug})
	}
	return resp
}

func newPostResponses(posts []model.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResponse(&posts[i]))
	}
	return out
}

func (r *PostRequest) toInput() (service.PostInput, error) {
	categoryIDs := make([]uuid.UUID, 0, len(r.CategoryIDs))
	for _, raw := range r.CategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return service.PostInput{}, err
		}
		categoryIDs = append(categoryIDs, id)
	}
	return service.PostInput{
		Title:         r.Title,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		FeaturedImage: r.FeaturedImage,
		Status:        model.PostStatus(r.Status),
		Featured:      r.Featured,
		CategoryIDs:   categoryIDs,
	}, nil
}

// List godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param skip query int false "Offset"
// @Param take query int false "Page size"
// @Param status query string false "Status filter"
// @Param categoryId query string false "Category ID filter"
// @Param featured query bool false "Featured only"
// @Success 200 {object} PostsEnvelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	filter := repository.PostFilter{
		Status:   model.PostStatus(c.QueryParam("status")),
		Featured: c.QueryParam("featured") == "true",
		Skip:     intQuery(c, "skip", 0),
		Take:     intQuery(c, "take", defaultPageSize),
	}
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error: "invalid categoryId",
				Code:  "INVALID_UUID",
			})
		}
		filter.CategoryID = id
	}

	posts, total, err := h.postService.List(c.Request().Context(), filter)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, PostsEnvelope{Posts: newPostResponses(posts), Total: total})
}

// Get godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid post ID",
			Code:  "INVALID_UUID",
		})
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": newPostResponse(post)})
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post data"
// @Success 201 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	post, err := h.postService.Create(c.Request().Context(), externalID(c), input)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": newPostResponse(post)})
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Param request body PostRequest true "Post data"
// @Success 200 {object} PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid post ID",
			Code:  "INVALID_UUID",
		})
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	post, err := h.postService.Update(c.Request().Context(), externalID(c), id, input)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"post": newPostResponse(post)})
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Security BearerAuth
// @Param postId path string true "Post ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{postId} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid post ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.postService.Delete(c.Request().Context(), externalID(c), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
