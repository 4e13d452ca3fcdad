package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/librarium/library-api/internal/api/handler"
	"github.com/librarium/library-api/internal/api/middleware"
	"github.com/librarium/library-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log         zerolog.Logger
	Tokens      ports.TokenVerifier
	Auth        ports.AuthService
	Users       ports.UserService
	Books       ports.BookService
	Authors     ports.AuthorService
	Borrowers   ports.BorrowerService
	Idempotency ports.IdempotencyStore
	// Readiness lists the dependencies checked by GET /health/ready.
	Readiness map[string]handler.Pinger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "library",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.Readiness)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")
	requireAuth := middleware.Auth(d.Tokens)
	owner := middleware.RequireOwner("id")

	users := handler.NewUserHandler(d.Auth, d.Users)
	v1.POST("/users/register", users.Register)
	v1.POST("/users/login", users.Login)
	v1.GET("/users", users.List, requireAuth)
	v1.GET("/users/:id", users.Get, requireAuth)
	v1.PUT("/users/:id", users.Update, requireAuth, owner)
	v1.DELETE("/users/:id", users.Delete, requireAuth, owner)

	books := handler.NewBookHandler(d.Books, d.Idempotency, d.Log)
	bg := v1.Group("/books", requireAuth)
	bg.GET("", books.List)
	bg.POST("", books.Create)
	bg.GET("/:id", books.Get)
	bg.PUT("/:id", books.Update)
	bg.DELETE("/:id", books.Delete)

	authors := handler.NewAuthorHandler(d.Authors, d.Idempotency, d.Log)
	ag := v1.Group("/authors", requireAuth)
	ag.GET("", authors.List)
	ag.POST("", authors.Create)
	ag.GET("/:id", authors.Get)
	ag.PUT("/:id", authors.Update)
	ag.DELETE("/:id", authors.Delete)

	borrowers := handler.NewBorrowerHandler(d.Borrowers, d.Idempotency, d.Log)
	brg := v1.Group("/borrowers", requireAuth)
	brg.GET("", borrowers.List)
	brg.POST("", borrowers.Create)
	brg.GET("/:id", borrowers.Get)
	brg.DELETE("/:id", borrowers.Delete)

	return e
}
