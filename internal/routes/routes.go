package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mechapp/internal/audit"
	"github.com/BruksfildServices01/mechapp/internal/auth"
	"github.com/BruksfildServices01/mechapp/internal/config"
	"github.com/BruksfildServices01/mechapp/internal/handlers"
	infraRepo "github.com/BruksfildServices01/mechapp/internal/infra/repository"
	"github.com/BruksfildServices01/mechapp/internal/infra/session"
	"github.com/BruksfildServices01/mechapp/internal/infra/storage"
	"github.com/BruksfildServices01/mechapp/internal/metrics"
	"github.com/BruksfildServices01/mechapp/internal/middleware"
	"github.com/BruksfildServices01/mechapp/internal/models"
	"github.com/BruksfildServices01/mechapp/internal/payments"
	ucAccount "github.com/BruksfildServices01/mechapp/internal/usecase/account"
	ucAdmin "github.com/BruksfildServices01/mechapp/internal/usecase/admin"
	ucAppointment "github.com/BruksfildServices01/mechapp/internal/usecase/appointment"
	ucCommission "github.com/BruksfildServices01/mechapp/internal/usecase/commission"
	ucWorkshop "github.com/BruksfildServices01/mechapp/internal/usecase/workshop"
	"github.com/BruksfildServices01/mechapp/internal/validators"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Storage  *storage.S3Store
	Payments payments.Provider
	Audit    *audit.Dispatcher
	Registry *prometheus.Registry
	Metrics  *metrics.Collector
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.Recovery(d.Log),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(),
		middleware.MetricsMiddleware(d.Metrics),
	)

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	accountRepo := infraRepo.NewAccountGormRepository(d.DB)
	workshopRepo := infraRepo.NewWorkshopGormRepository(d.DB)
	commissionRepo := infraRepo.NewCommissionGormRepository(d.DB)
	adminRepo := infraRepo.NewAdminGormRepository(d.DB)
	adminReports := infraRepo.NewAdminReports(d.Pool)

	sessions := session.NewRedisStore(d.Redis, cfg.SessionTTL)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, d.Log)

	checkDomain := validators.AcceptAnyDomain
	if cfg.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	registerUC := ucAccount.NewRegister(accountRepo, d.Storage, d.Audit, d.Log, checkDomain)
	loginUC := ucAccount.NewLogin(accountRepo, sessions, d.Audit)
	recoverUC := ucAccount.NewRecover(accountRepo, sessions, d.Audit, d.Log)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	unavailableDaysUC := ucAppointment.NewGetUnavailableDays(appointmentRepo)
	unavailableSlotsUC := ucAppointment.NewGetUnavailableSlots(appointmentRepo)

	workshopSvc := ucWorkshop.NewService(workshopRepo, d.Audit)
	adminSvc := ucAdmin.NewService(adminReports, adminRepo, d.Storage, sessions, d.Audit)
	commissionSvc := ucCommission.NewService(
		commissionRepo,
		d.Payments,
		d.Audit,
		d.Log,
		cfg.CommissionPerAppointment,
		cfg.CommissionCurrency,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, recoverUC, tokens, cfg.IsProduction(), d.Log)
	profileHandler := handlers.NewProfileHandler(workshopSvc, d.Log)
	publicHandler := handlers.NewPublicHandler(workshopSvc, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
		unavailableDaysUC,
		unavailableSlotsUC,
		d.Metrics,
		d.Log,
	)

	adminHandler := handlers.NewAdminHandler(adminSvc, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(adminSvc, d.Log)
	paymentHandler := handlers.NewPaymentHandler(commissionSvc, d.Metrics, d.Log)

	healthHandler := handlers.NewHealthHandler(map[string]handlers.Check{
		"database": func(ctx context.Context) error { return d.Pool.Ping(ctx) },
		"redis":    sessions.Ping,
	}, d.Log)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		limited := api.Group("/", limiter.Middleware())
		{
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)
			limited.POST("/recovery", authHandler.Recovery)
		}
		api.POST("/logout", authHandler.Logout)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/workshops", publicHandler.ListWorkshops)
		api.GET("/workshops/:id", publicHandler.GetWorkshop)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens, sessions, d.Log))
		{
			secured.GET("/profile", profileHandler.Get)
			secured.PUT("/profile/workshop",
				middleware.RequireRole(models.RoleMechanic),
				profileHandler.UpdateWorkshop,
			)

			secured.GET("/mechanics", publicHandler.ListMechanics)
			secured.POST("/workshops/:id/reviews",
				middleware.RequireRole(models.RoleClient),
				publicHandler.CreateReview,
			)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments/unavailable-days", appointmentHandler.UnavailableDays)
			secured.GET("/appointments/unavailable-slots", appointmentHandler.UnavailableSlots)
			secured.POST("/appointments",
				middleware.RequireRole(models.RoleClient),
				appointmentHandler.Create,
			)
			secured.GET("/appointments", appointmentHandler.List)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete",
				middleware.RequireRole(models.RoleMechanic),
				appointmentHandler.Complete,
			)

			// ------------------------------
			// COMMISSIONS
			// ------------------------------
			pay := secured.Group("/payments/commissions", middleware.RequireRole(models.RoleMechanic))
			{
				pay.GET("", paymentHandler.Summary)
				pay.POST("/orders", paymentHandler.CreateOrder)
				pay.POST("/orders/:orderId/capture", paymentHandler.Capture)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			adm := secured.Group("/admin", middleware.RequireRole(models.RoleAdmin))
			{
				adm.GET("/stats", adminHandler.Stats)
				adm.GET("/users", adminHandler.ListUsers)
				adm.PATCH("/users/:id/active", adminHandler.SetUserActive)
				adm.GET("/certificates", adminHandler.ListCertificates)
				adm.PATCH("/certificates/:id", adminHandler.ReviewCertificate)
				adm.GET("/certificates/:id/url", adminHandler.CertificateURL)
				adm.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
