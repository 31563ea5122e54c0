package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"modernblog/internal/config"
	apperrors "modernblog/internal/errors"
	"modernblog/internal/handler"
	"modernblog/internal/identity"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	postHandler *handler.PostHandler,
	categoryHandler *handler.CategoryHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	uploadHandler *handler.UploadHandler,
	searchHandler *handler.SearchHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: reads on posts and categories, search, contact form
	api.GET("/posts", postHandler.List)
	api.GET("/posts/:postId", postHandler.Get)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:categoryId", categoryHandler.Get)
	api.GET("/search", searchHandler.Search)
	api.POST("/contact", contactHandler.Submit)

	// Secured routes (require an identity provider bearer token)
	verifier := identity.NewTokenVerifier(cfg.AuthJWTSecret)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return verifier.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "unauthenticated",
				Code:  "UNAUTHENTICATED",
			})
		},
	}))

	// Post mutations
	secured.POST("/posts", postHandler.Create)
	secured.PATCH("/posts/:postId", postHandler.Update)
	secured.DELETE("/posts/:postId", postHandler.Delete)

	// Category mutations (admin checked downstream)
	secured.POST("/categories", categoryHandler.Create)
	secured.PATCH("/categories/:categoryId", categoryHandler.Update)
	secured.DELETE("/categories/:categoryId", categoryHandler.Delete)

	// User routes
	secured.GET("/users", userHandler.List)
	secured.POST("/users/sync", userHandler.Sync)
	secured.GET("/user/profile", userHandler.Profile)
	secured.PATCH("/user/profile", userHandler.UpdateProfile)

	// Contact submissions (admin checked downstream)
	secured.GET("/contacts", contactHandler.List)

	// Media upload
	secured.POST("/upload", uploadHandler.Upload)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
