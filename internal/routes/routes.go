package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/harmoniahq/practice-api/internal/config"
	"github.com/harmoniahq/practice-api/internal/handlers"
	"github.com/harmoniahq/practice-api/internal/middleware"
	"github.com/harmoniahq/practice-api/internal/services"
)

// Register wires every handler under /api/v1. Everything except
// registration, login and the probes sits behind the auth middleware.
func Register(r *gin.Engine, cfg *config.Config, db *gorm.DB) {
	authSvc := services.NewAuthService(db)
	tenantSvc := services.NewTenantService(db)
	userSvc := services.NewUserService(db)
	practitionerSvc := services.NewPractitionerService(db)
	clientSvc := services.NewClientService(db)
	consentSvc := services.NewClientConsentService(db)
	appointmentSvc := services.NewAppointmentService(db)
	sessionSvc := services.NewSessionService(db)
	noteSvc := services.NewSessionNoteService(db)
	aiJobSvc := services.NewAIJobService(db)
	aiSummarySvc := services.NewAISummaryService(db)
	reportSvc := services.NewReportService(db)
	planSvc := services.NewSubscriptionPlanService(db)
	subscriptionSvc := services.NewSubscriptionService(db)
	auditSvc := services.NewAuditLogService(db)

	authH := handlers.NewAuthHandler(cfg, authSvc)
	tenantH := handlers.NewTenantHandler(tenantSvc)
	userH := handlers.NewUserHandler(userSvc)
	practitionerH := handlers.NewPractitionerHandler(practitionerSvc)
	clientH := handlers.NewClientHandler(clientSvc)
	consentH := handlers.NewClientConsentHandler(consentSvc)
	appointmentH := handlers.NewAppointmentHandler(appointmentSvc)
	sessionH := handlers.NewSessionHandler(sessionSvc)
	noteH := handlers.NewSessionNoteHandler(noteSvc)
	aiJobH := handlers.NewAIJobHandler(aiJobSvc)
	aiSummaryH := handlers.NewAISummaryHandler(aiSummarySvc)
	reportH := handlers.NewReportHandler(reportSvc)
	planH := handlers.NewSubscriptionPlanHandler(planSvc)
	subscriptionH := handlers.NewSubscriptionHandler(subscriptionSvc)
	auditH := handlers.NewAuditLogHandler(auditSvc)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "practice-api", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", authH.Register)
	v1.POST("/auth/login", authH.Login)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg, db))

	protected.GET("/auth/me", authH.Me)

	tenants := protected.Group("/tenants")
	{
		tenants.POST("", tenantH.Create)
		tenants.GET("", tenantH.List)
		tenants.GET("/me", tenantH.Mine)
		tenants.GET("/:id", tenantH.Get)
		tenants.PUT("/:id", tenantH.Update)
		tenants.PATCH("/:id", tenantH.Patch)
		tenants.DELETE("/:id", tenantH.Delete)
	}

	users := protected.Group("/users")
	{
		users.POST("", userH.Create)
		users.GET("", userH.List)
		users.GET("/:id", userH.Get)
		users.PUT("/:id", userH.Update)
		users.PATCH("/:id", userH.Patch)
		users.DELETE("/:id", userH.Delete)
	}

	practitioners := protected.Group("/practitioners")
	{
		practitioners.POST("", practitionerH.Create)
		practitioners.GET("", practitionerH.List)
		practitioners.GET("/:id", practitionerH.Get)
		practitioners.PUT("/:id", practitionerH.Update)
		practitioners.PATCH("/:id", practitionerH.Patch)
		practitioners.DELETE("/:id", practitionerH.Delete)
	}

	clients := protected.Group("/clients")
	{
		clients.POST("", clientH.Create)
		clients.GET("", clientH.List)
		clients.GET("/:id", clientH.Get)
		clients.PUT("/:id", clientH.Update)
		clients.PATCH("/:id", clientH.Patch)
		clients.DELETE("/:id", clientH.Delete)
	}

	consents := protected.Group("/client-consents")
	{
		consents.POST("", consentH.Create)
		consents.GET("", consentH.List)
		consents.GET("/:id", consentH.Get)
		consents.PUT("/:id", consentH.Update)
		consents.PATCH("/:id", consentH.Patch)
		consents.DELETE("/:id", consentH.Delete)
	}

	appointments := protected.Group("/appointments")
	{
		appointments.POST("", appointmentH.Create)
		appointments.GET("", appointmentH.List)
		appointments.GET("/:id", appointmentH.Get)
		appointments.PUT("/:id", appointmentH.Update)
		appointments.PATCH("/:id", appointmentH.Patch)
		appointments.PATCH("/:id/status", appointmentH.ChangeStatus)
		appointments.DELETE("/:id", appointmentH.Delete)
	}

	sessions := protected.Group("/sessions")
	{
		sessions.POST("", sessionH.Create)
		sessions.GET("", sessionH.List)
		sessions.GET("/:id", sessionH.Get)
		sessions.PUT("/:id", sessionH.Update)
		sessions.PATCH("/:id", sessionH.Patch)
		sessions.DELETE("/:id", sessionH.Delete)
	}

	notes := protected.Group("/session-notes")
	{
		notes.POST("", noteH.Create)
		notes.GET("", noteH.List)
		notes.GET("/:id", noteH.Get)
		notes.PUT("/:id", noteH.Update)
		notes.PATCH("/:id", noteH.Patch)
		notes.DELETE("/:id", noteH.Delete)
	}

	aiJobs := protected.Group("/ai/jobs")
	{
		aiJobs.POST("", aiJobH.Create)
		aiJobs.GET("", aiJobH.List)
		aiJobs.GET("/:id", aiJobH.Get)
		aiJobs.PUT("/:id", aiJobH.Update)
		aiJobs.PATCH("/:id", aiJobH.Patch)
		aiJobs.DELETE("/:id", aiJobH.Delete)
	}

	aiSummaries := protected.Group("/ai/summaries")
	{
		aiSummaries.POST("", aiSummaryH.Create)
		aiSummaries.GET("", aiSummaryH.List)
		aiSummaries.GET("/:id", aiSummaryH.Get)
		aiSummaries.PUT("/:id", aiSummaryH.Update)
		aiSummaries.PATCH("/:id", aiSummaryH.Patch)
		aiSummaries.DELETE("/:id", aiSummaryH.Delete)
	}

	reports := protected.Group("/reports")
	{
		reports.POST("", reportH.Create)
		reports.GET("", reportH.List)
		reports.GET("/:id", reportH.Get)
		reports.PUT("/:id", reportH.Update)
		reports.PATCH("/:id", reportH.Patch)
		reports.DELETE("/:id", reportH.Delete)
	}

	plans := protected.Group("/subscription-plans")
	{
		plans.POST("", planH.Create)
		plans.GET("", planH.List)
		plans.GET("/:id", planH.Get)
		plans.PUT("/:id", planH.Update)
		plans.PATCH("/:id", planH.Patch)
		plans.DELETE("/:id", planH.Delete)
	}

	subscriptions := protected.Group("/subscriptions")
	{
		subscriptions.POST("", subscriptionH.Create)
		subscriptions.GET("", subscriptionH.List)
		subscriptions.GET("/:id", subscriptionH.Get)
		subscriptions.PUT("/:id", subscriptionH.Update)
		subscriptions.PATCH("/:id", subscriptionH.Patch)
		subscriptions.POST("/:id/cancel", subscriptionH.Cancel)
		subscriptions.DELETE("/:id", subscriptionH.Delete)
	}

	auditLogs := protected.Group("/audit-logs")
	{
		auditLogs.GET("", auditH.List)
		auditLogs.GET("/:id", auditH.Get)
	}
}
