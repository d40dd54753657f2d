package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/pos-dashboard-api/internal/application/auth"
	"github.com/jhoicas/pos-dashboard-api/internal/application/dto"
	"github.com/jhoicas/pos-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/pos-dashboard-api/internal/infrastructure/observability"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	AuthUC       *auth.AuthUseCase
	DashboardUC  DashboardService
	Metrics      *observability.Metrics // nil: sin /metrics ni middleware de métricas
	JWTSecret    string
	RateLimitMax int // peticiones por minuto e IP en /api/dashboard; 0 lo desactiva
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Dashboard (protegido). El rol decide el periodo; el PDF es solo para admin.
	dashboard := api.Group("/dashboard", AuthMiddleware(deps.JWTSecret))
	if deps.RateLimitMax > 0 {
		dashboard.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimitMax,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return GetCompanyID(c) + "|" + c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "RATE_LIMITED", Message: "demasiadas consultas al dashboard, intenta en un minuto",
				})
			},
		}))
	}
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/metrics", dashboardHandler.GetMetrics)
	dashboard.Get("/report.pdf", RequireRole(entity.RoleAdmin), dashboardHandler.GetReport)
}
