package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"modernblog/internal/service"
)

// SearchHandler handles the free-text post search endpoint.
type SearchHandler struct {
	postService service.PostService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(postService service.PostService) *SearchHandler {
	return &SearchHandler{postService: postService}
}

// Search godoc
// @Summary Search published posts
// @Tags search
// @Produce json
// @Param q query string true "Free-text query over title, content and excerpt"
// @Param category query string false "Category slug filter"
// @Success 200 {object} map[string][]PostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	posts, err := h.postService.Search(c.Request().Context(), c.QueryParam("q"), c.QueryParam("category"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"posts": newPostResponses(posts)})
}
