package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "modernblog/internal/errors"
	"modernblog/internal/identity"
)

// externalID extracts the verified external user identifier from the
// request token, or "" when the request carries no identity. The jwt
// middleware stores the claims returned by identity.TokenVerifier
// under the "user" context key.
func externalID(c echo.Context) string {
	claims, ok := c.Get("user").(*identity.Claims)
	if !ok {
		return ""
	}
	return claims.Subject
}

// intQuery parses a non-negative integer query parameter, falling back
// to def on absence or garbage.
func intQuery(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// formatTime serializes timestamps in the one format clients consume.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// httpError maps a domain error to the error envelope, logging the
// underlying cause when it collapses to a 500.
func httpError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
