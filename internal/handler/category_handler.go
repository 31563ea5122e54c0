package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/repository"
	"modernblog/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents a category create payload.
type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

// CategoryUpdateRequest represents a category rename payload.
type CategoryUpdateRequest struct {
	Name string `json:"name" validate:"required"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int64  `json:"postCount"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newCategoryResponse(row *repository.CategoryWithPostCount) CategoryResponse {
	return CategoryResponse{
		ID:        row.ID.String(),
		Name:      row.Name,
		Slug:      row.Slug,
		PostCount: row.PostCount,
		CreatedAt: formatTime(row.CreatedAt),
		UpdatedAt: formatTime(row.UpdatedAt),
	}
}

// List godoc
// @Summary List categories with post counts
// @Tags categories
// @Produce json
// @Success 200 {object} map[string][]CategoryResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	rows, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	categories := make([]CategoryResponse, 0, len(rows))
	for i := range rows {
		categories = append(categories, newCategoryResponse(&rows[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}

// Get godoc
// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param categoryId path string true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{categoryId} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	row, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"category": newCategoryResponse(row)})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Category data"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return httpError(c, apperrors.ErrMissingFields)
	}

	category, err := h.categoryService.Create(c.Request().Context(), externalID(c), req.Name, req.Slug)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"category": CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: formatTime(category.CreatedAt),
		UpdatedAt: formatTime(category.UpdatedAt),
	}})
}

// Update godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Param request body CategoryUpdateRequest true "Category data"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{categoryId} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	var req CategoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return httpError(c, apperrors.ErrMissingFields)
	}

	category, err := h.categoryService.Update(c.Request().Context(), externalID(c), id, req.Name)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"category": CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: formatTime(category.CreatedAt),
		UpdatedAt: formatTime(category.UpdatedAt),
	}})
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Security BearerAuth
// @Param categoryId path string true "Category ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{categoryId} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.categoryService.Delete(c.Request().Context(), externalID(c), id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
