package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/config"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/wizard"
	"github.com/BruksfildServices01/bank-booking-portal/internal/handlers"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/session"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

// Deps are the singletons the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *zap.Logger
	Sessions     *session.Manager
	Wizards      *wizard.Registry
	Engine       *ucAppointment.Engine
	Customers    domain.CustomerRepository
	Audit        *audit.Dispatcher
	AuditLogs    handlers.AuditLogReader
	LoginLimiter middleware.Limiter
	Clock        timezone.Clock
	Slots        []domain.Slot
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Sessions, d.Wizards, d.Engine, d.Audit, d.Config.JWTSecret)
	meHandler := handlers.NewMeHandler(d.Engine)
	catalogHandler := handlers.NewCatalogHandler(d.Slots, d.Clock)
	wizardHandler := handlers.NewWizardHandler(d.Wizards, d.Engine, d.Clock)
	appointmentHandler := handlers.NewAppointmentHandler(d.Engine)
	customerHandler := handlers.NewCustomerHandler(d.Customers)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// CATALOG
		// ------------------------------
		catalog := api.Group("/catalog")
		{
			catalog.GET("/services", catalogHandler.Services)
			catalog.GET("/branches", catalogHandler.Branches)
			catalog.GET("/slots", catalogHandler.Slots)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login",
			middleware.RateLimit("login", d.LoginLimiter, d.Logger),
			authHandler.Login,
		)

		// ------------------------------
		// SIGNED-IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret, d.Sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/appointments", meHandler.ListAppointments)
			secured.PATCH("/me/appointments/:id", meHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/cancel", meHandler.Cancel)
			secured.DELETE("/me/appointments/:id", meHandler.Delete)

			// ------------------------------
			// BOOKING WIZARD
			// ------------------------------
			wz := secured.Group("/booking/wizard")
			{
				wz.POST("", wizardHandler.Start)
				wz.GET("", wizardHandler.Get)
				wz.PUT("/service", wizardHandler.SelectService)
				wz.PUT("/branch", wizardHandler.SelectBranch)
				wz.PUT("/date", wizardHandler.SelectDate)
				wz.PUT("/time", wizardHandler.SelectTime)
				wz.PUT("/contact", wizardHandler.SetContact)
				wz.POST("/next", wizardHandler.Next)
				wz.POST("/back", wizardHandler.Back)
				wz.POST("/confirm", wizardHandler.Confirm)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/appointments", appointmentHandler.List)
				admin.GET("/stats", appointmentHandler.Stats)
				admin.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
				admin.POST("/appointments/refresh", appointmentHandler.Refresh)

				admin.GET("/customers", customerHandler.List)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
