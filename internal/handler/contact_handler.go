package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/model"
	"modernblog/internal/service"
)

// ContactHandler handles contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact form submission.
type ContactRequest struct {
	Type     string  `json:"type" validate:"required,oneof=individual company"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Message  string  `json:"message" validate:"required"`
}

// ContactResponse represents a persisted submission.
type ContactResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Position  *string `json:"position,omitempty"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
}

// fieldErrors flattens validator errors into per-field details keyed
// by the JSON field name.
func fieldErrors(err error) []apperrors.FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make([]apperrors.FieldError, 0, len(ves))
	for _, ve := range ves {
		field := strings.ToLower(ve.Field())
		out = append(out, apperrors.FieldError{Field: field, Message: fieldMessage(field, ve.Tag())})
	}
	return out
}

func fieldMessage(field, tag string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email format"
	default:
		return "Invalid " + field
	}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Submission"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ValidationResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ValidationResponse{
			Error:  "validation failed",
			Code:   "VALIDATION_ERROR",
			Fields: fieldErrors(err),
		})
	}

	contact, err := h.contactService.Submit(c.Request().Context(), service.ContactInput{
		Type:     model.ContactType(req.Type),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Position: req.Position,
		Message:  req.Message,
	})
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Contact form submitted successfully",
		"id":      contact.ID.String(),
	})
}

// List godoc
// @Summary List contact submissions
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]ContactResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	rows, err := h.contactService.List(c.Request().Context(), externalID(c))
	if err != nil {
		return httpError(c, err)
	}

	contacts := make([]ContactResponse, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, ContactResponse{
			ID:        row.ID.String(),
			Type:      string(row.Type),
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Company:   row.Company,
			Position:  row.Position,
			Message:   row.Message,
			CreatedAt: formatTime(row.CreatedAt),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"contacts": contacts})
}
