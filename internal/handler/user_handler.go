package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/service"
)

// UserHandler handles user listing, sync and profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID         string  `json:"id"`
	ExternalID string  `json:"externalId"`
	Email      string  `json:"email"`
	Username   *string `json:"username"`
	Role       string  `json:"role"`
	PostCount  int64   `json:"postCount"`
	CreatedAt  string  `json:"createdAt"`
}

// ProfileResponse represents the caller's own record. Bio and avatar
// default to empty strings rather than null.
type ProfileResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  *string `json:"username"`
	Bio       string  `json:"bio"`
	AvatarURL string  `json:"avatarUrl"`
	Role      string  `json:"role"`
	PostCount int64   `json:"postCount"`
	CreatedAt string  `json:"createdAt"`
}

// ProfileUpdateRequest carries the editable profile fields.
type ProfileUpdateRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

func newProfileResponse(user *model.User, postCount int64) ProfileResponse {
	resp := ProfileResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		Role:      string(user.Role),
		PostCount: postCount,
		CreatedAt: formatTime(user.CreatedAt),
	}
	if user.Bio != nil {
		resp.Bio = *user.Bio
	}
	if user.AvatarURL != nil {
		resp.AvatarURL = *user.AvatarURL
	}
	return resp
}

// List godoc
// @Summary List users with post counts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	rows, err := h.userService.List(c.Request().Context(), externalID(c))
	if err != nil {
		return httpError(c, err)
	}

	users := make([]UserResponse, 0, len(rows))
	for _, row := range rows {
		users = append(users, UserResponse{
			ID:         row.ID.String(),
			ExternalID: row.ExternalID,
			Email:      row.Email,
			Username:   row.Username,
			Role:       string(row.Role),
			PostCount:  row.PostCount,
			CreatedAt:  formatTime(row.CreatedAt),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Sync godoc
// @Summary Sync users from the identity provider
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/sync [post]
func (h *UserHandler) Sync(c echo.Context) error {
	count, err := h.userService.SyncAs(c.Request().Context(), externalID(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"synced": count})
}

// Profile godoc
// @Summary Get own profile with posts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.userService.Profile(c.Request().Context(), externalID(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"profile": newProfileResponse(&profile.User, profile.PostCount),
		"posts":   newPostResponses(profile.Posts),
	})
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} map[string]ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	profile, err := h.userService.UpdateProfile(c.Request().Context(), externalID(c), req.Username, req.Bio)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": newProfileResponse(&profile.User, profile.PostCount)})
}
