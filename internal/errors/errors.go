package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no verified identity accompanies a request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the actor lacks the role or ownership required.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when no local user record exists for an identity.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists is returned when a category with the same name or slug exists.
	ErrCategoryExists = errors.New("category with this name or slug already exists")
	// ErrMissingFields is returned when required fields are absent.
	ErrMissingFields = errors.New("missing required fields")
	// ErrQueryRequired is returned when a search request has no query.
	ErrQueryRequired = errors.New("search query is required")
	// ErrNoFile is returned when an upload request carries no file.
	ErrNoFile = errors.New("no file provided")
	// ErrFileTooLarge is returned when an uploaded file exceeds the size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	// ErrUnsupportedFormat is returned when an uploaded file is not an allowed image format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResponse is an error response carrying per-field detail.
type ValidationResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors
// collapse to a generic 500 so internal details never reach clients.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POST_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrCategoryExists):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_EXISTS")
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrQueryRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "QUERY_REQUIRED")
	case errors.Is(err, ErrNoFile):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FILE")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FILE_TOO_LARGE")
	case errors.Is(err, ErrUnsupportedFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FORMAT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
