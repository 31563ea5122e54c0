package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"modernblog/internal/config"
	"modernblog/internal/handler"
	"modernblog/internal/identity"
	"modernblog/internal/repository"
	"modernblog/internal/service"
)

// stubUserService records the identity the sync endpoint resolves.
// Only SyncAs is reachable in these tests.
type stubUserService struct {
	syncedAs string
}

func (s *stubUserService) List(ctx context.Context, externalID string) ([]repository.UserWithPostCount, error) {
	return nil, nil
}

func (s *stubUserService) Profile(ctx context.Context, externalID string) (*service.Profile, error) {
	return nil, nil
}

func (s *stubUserService) UpdateProfile(ctx context.Context, externalID string, username, bio *string) (*service.Profile, error) {
	return nil, nil
}

func (s *stubUserService) SyncFromProvider(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *stubUserService) SyncAs(ctx context.Context, externalID string) (int, error) {
	s.syncedAs = externalID
	return 2, nil
}

func newTestServer(users service.UserService) *echo.Echo {
	e := echo.New()
	cfg := &config.Config{AuthJWTSecret: "test-secret"}
	Register(e, cfg,
		handler.NewPostHandler(nil),
		handler.NewCategoryHandler(nil),
		handler.NewUserHandler(users),
		handler.NewContactHandler(nil),
		handler.NewUploadHandler(nil),
		handler.NewSearchHandler(nil),
	)
	return e
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &identity.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestSecuredRoutes_TokenVerification(t *testing.T) {
	t.Run("missing token is rejected", func(t *testing.T) {
		e := newTestServer(&stubUserService{})
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		e := newTestServer(&stubUserService{})
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, "other-secret", "ext_admin"))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without subject is rejected", func(t *testing.T) {
		e := newTestServer(&stubUserService{})
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, "test-secret", ""))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler with its subject", func(t *testing.T) {
		users := &stubUserService{}
		e := newTestServer(users)
		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, "test-secret", "ext_admin"))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"synced":2`)
		assert.Equal(t, "ext_admin", users.syncedAs)
	})
}
