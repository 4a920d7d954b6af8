package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/recrm/crm-api/docs"
	"github.com/recrm/crm-api/internal/api/handler"
	"github.com/recrm/crm-api/internal/api/middleware"
	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Tokens      handler.CredentialIssuer
	Identities  ports.IdentityParser
	Revocations ports.TokenRevocationStore
	Auth        ports.AuthService
	Leads       ports.LeadService
	Properties  ports.PropertyService
	Visits      ports.VisitService
	Commissions ports.CommissionService
	Activities  ports.ActivityService
	Analytics   ports.AnalyticsService
}

// Options tune the router. A nil Registry means the default Prometheus registry.
type Options struct {
	Logger   zerolog.Logger
	Cookie   handler.CookieSettings
	Health   map[string]handler.Pinger
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	authn := middleware.NewAuthenticator(svc.Identities, svc.Revocations, opts.Cookie.Name)
	paths, err := middleware.NewPathPolicy(authn, middleware.DefaultPathRules())
	if err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "crm",
		Subsystem:                 "http",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
		StatusCodeResolver:        statusCode,
	}))
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(paths.Middleware())

	// --- Ops endpoints (no auth required) ---
	health := handler.NewHealthHandler(opts.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := authn.Auth()
	api := e.Group("/api")

	// --- Auth ---
	authHandler := handler.NewAuthHandler(svc.Auth, opts.Cookie)
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, authn.Resolve())
	authGroup.GET("/me", authHandler.Me, auth)
	handler.RegisterBackdoor(authGroup, svc.Tokens, opts.Cookie)

	// --- Leads ---
	leads := handler.NewLeadHandler(svc.Leads, svc.Activities)
	leadGroup := api.Group("/leads", auth)
	leadGroup.GET("", leads.List)
	leadGroup.POST("", leads.Create)
	leadGroup.GET("/:id", leads.Get)
	leadGroup.PUT("/:id", leads.Update)
	leadGroup.DELETE("/:id", leads.Delete)
	leadGroup.GET("/:id/activities", leads.Activities)
	leadGroup.POST("/:id/activities", leads.AddActivity)

	// --- Properties ---
	properties := handler.NewPropertyHandler(svc.Properties)
	propertyGroup := api.Group("/properties", auth)
	propertyGroup.GET("", properties.List)
	propertyGroup.POST("", properties.Create)
	propertyGroup.GET("/:id", properties.Get)
	propertyGroup.PUT("/:id", properties.Update)
	propertyGroup.DELETE("/:id", properties.Delete)

	// --- Visits ---
	visits := handler.NewVisitHandler(svc.Visits)
	visitGroup := api.Group("/visits", auth)
	visitGroup.GET("", visits.List)
	visitGroup.POST("", visits.Create)
	visitGroup.GET("/:id", visits.Get)
	visitGroup.PUT("/:id/status", visits.UpdateStatus)
	visitGroup.DELETE("/:id", visits.Delete)

	// --- Commissions ---
	commissions := handler.NewCommissionHandler(svc.Commissions)
	commissionGroup := api.Group("/commissions", auth)
	commissionGroup.GET("", commissions.List)
	commissionGroup.POST("", commissions.Create)
	commissionGroup.PUT("/:id/status", commissions.UpdateStatus)

	// --- Analytics (also covered by the /api/analytics/* path rule) ---
	analytics := handler.NewAnalyticsHandler(svc.Analytics)
	api.GET("/analytics/dashboard", analytics.Dashboard, auth, middleware.RBAC(domain.RoleAdmin))

	return e, nil
}
