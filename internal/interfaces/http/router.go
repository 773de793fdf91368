package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trygghms/hms-api/internal/application/auth"
	"github.com/trygghms/hms-api/internal/application/sds"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/domain/entity"
)

// RouterDeps carries the wired use cases for route registration.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	TenantUC       *usecase.TenantUseCase
	ChemicalUC     *usecase.ChemicalUseCase
	IncidentUC     *usecase.IncidentUseCase
	RiskUC         *usecase.RiskUseCase
	TrainingUC     *usecase.TrainingUseCase
	AuditUC        *usecase.AuditUseCase
	DocumentUC     *usecase.DocumentUseCase
	NotificationUC *usecase.NotificationUseCase
	SDSService     *sds.Service
	JWTSecret      string
}

// Router registers all API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Public: login, registration and tenant signup.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	tenantHandler := NewTenantHandler(deps.TenantUC)
	api.Post("/tenants", tenantHandler.Create)

	// Everything else requires a tenant-scoped Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Put("/auth/profile", authHandler.UpdateProfile)

	tenants := protected.Group("/tenants")
	tenants.Get("/current", tenantHandler.GetCurrent)
	tenants.Get("/members", tenantHandler.ListMembers)
	tenants.Post("/suspend", RequireRole(entity.RoleAdmin), tenantHandler.Suspend)

	chemicals := protected.Group("/chemicals")
	chemicalHandler := NewChemicalHandler(deps.ChemicalUC, deps.SDSService)
	chemicals.Post("/", chemicalHandler.Create)
	chemicals.Get("/", chemicalHandler.List)
	chemicals.Get("/:id", chemicalHandler.GetByID)
	chemicals.Put("/:id", chemicalHandler.Update)
	chemicals.Post("/:id/check-sds", chemicalHandler.CheckSDS)
	chemicals.Post("/:id/verify", RequireRole(entity.RoleAdmin, entity.RoleHMS), chemicalHandler.Verify)
	chemicals.Post("/:id/archive", RequireRole(entity.RoleAdmin, entity.RoleHMS), chemicalHandler.Archive)
	chemicals.Post("/:id/phase-out", RequireRole(entity.RoleAdmin, entity.RoleHMS), chemicalHandler.PhaseOut)

	incidents := protected.Group("/incidents")
	incidentHandler := NewIncidentHandler(deps.IncidentUC)
	incidents.Post("/", incidentHandler.Report)
	incidents.Get("/", incidentHandler.List)
	incidents.Get("/:id", incidentHandler.GetByID)
	incidents.Put("/:id", incidentHandler.Update)
	incidents.Post("/:id/measures", incidentHandler.AddMeasure)
	incidents.Get("/:id/measures", incidentHandler.ListMeasures)
	protected.Put("/measures/:id", incidentHandler.UpdateMeasure)

	risks := protected.Group("/risks")
	riskHandler := NewRiskHandler(deps.RiskUC)
	risks.Post("/", riskHandler.Create)
	risks.Get("/", riskHandler.List)
	risks.Get("/:id", riskHandler.GetByID)
	risks.Put("/:id", riskHandler.Update)

	training := protected.Group("/training")
	trainingHandler := NewTrainingHandler(deps.TrainingUC)
	training.Post("/", trainingHandler.Create)
	training.Get("/", trainingHandler.List)
	training.Get("/mine", trainingHandler.ListMine)
	training.Get("/:id", trainingHandler.GetByID)

	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", RequireRole(entity.RoleAdmin, entity.RoleHMS), auditHandler.CreateAudit)
	audits.Get("/", auditHandler.ListAudits)
	audits.Get("/:id", auditHandler.GetAudit)
	audits.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleHMS), auditHandler.UpdateAudit)

	meetings := protected.Group("/meetings")
	meetings.Post("/", auditHandler.CreateMeeting)
	meetings.Get("/", auditHandler.ListMeetings)
	meetings.Put("/:id", auditHandler.UpdateMeeting)

	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	documents.Post("/", RequireRole(entity.RoleAdmin, entity.RoleHMS), documentHandler.Create)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleHMS), documentHandler.Update)

	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
}
