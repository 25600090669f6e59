package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/storefront/shop-api/docs"
	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/api/middleware"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const categoryListMaxAge = 30 * time.Second

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Logger     zerolog.Logger
	Codec      ports.TokenCodec
	Auth       ports.AuthService
	Users      ports.UserService
	Categories ports.CategoryService
	Products   ports.ProductService
	Audit      ports.AuditService
	Health     *handler.HealthDependenciesHandler

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	v, err := handler.NewValidator()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "shop",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Authenticate(d.Codec))

	open := middleware.Require(domain.Open())
	employee := middleware.Require(domain.RequireRole(domain.RoleEmployee))
	manager := middleware.Require(domain.RequireRole(domain.RoleManager))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	categoryHandler := handler.NewCategoryHandler(d.Categories)
	productHandler := handler.NewProductHandler(d.Products)
	auditHandler := handler.NewAuditHandler(d.Audit)

	v1 := e.Group("/v1/api")

	// --- Category routes ---
	categories := v1.Group("/category")
	categories.GET("", categoryHandler.List, open, middleware.CacheHint(categoryListMaxAge, "User-Agent"))
	categories.GET("/:id", categoryHandler.Get, open)
	categories.POST("", categoryHandler.Create, employee)
	categories.PUT("/:id", categoryHandler.Update, employee)
	categories.DELETE("/:id", categoryHandler.Delete, employee)

	// --- Product routes ---
	products := v1.Group("/product")
	products.GET("", productHandler.List, open)
	products.GET("/:id", productHandler.Get, open)
	products.GET("/categories/:id", productHandler.ListByCategory, open)
	products.POST("", productHandler.Create, employee)
	products.PUT("/:id", productHandler.Update, employee)
	products.DELETE("/:id", productHandler.Delete, employee)

	// --- User routes ---
	users := v1.Group("/user")
	users.GET("", userHandler.List, manager)
	users.POST("", userHandler.Register, open)
	users.PUT("/:id", userHandler.Update, manager)
	users.POST("/login", authHandler.Login, open)

	// --- Audit trail ---
	v1.GET("/audit", auditHandler.Recent, manager)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	if d.Health != nil {
		e.GET("/health/ready", d.Health.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
