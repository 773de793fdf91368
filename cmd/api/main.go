package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trygghms/hms-api/internal/application/auth"
	"github.com/trygghms/hms-api/internal/application/sds"
	"github.com/trygghms/hms-api/internal/application/usecase"
	"github.com/trygghms/hms-api/internal/infrastructure/echa"
	"github.com/trygghms/hms-api/internal/infrastructure/postgres"
	"github.com/trygghms/hms-api/internal/infrastructure/sdsparse"
	"github.com/trygghms/hms-api/internal/infrastructure/storage"
	"github.com/trygghms/hms-api/internal/infrastructure/supplier"
	httpRouter "github.com/trygghms/hms-api/internal/interfaces/http"
	"github.com/trygghms/hms-api/pkg/config"
	"github.com/trygghms/hms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting API")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	chemicalRepo := postgres.NewChemicalRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	measureRepo := postgres.NewMeasureRepository(pool)
	riskRepo := postgres.NewRiskRepository(pool)
	trainingRepo := postgres.NewTrainingRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	chemicalUC := usecase.NewChemicalUseCase(chemicalRepo)
	incidentUC := usecase.NewIncidentUseCase(incidentRepo, measureRepo, tenantRepo, txRunner)
	riskUC := usecase.NewRiskUseCase(riskRepo)
	trainingUC := usecase.NewTrainingUseCase(trainingRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo, meetingRepo)
	documentUC := usecase.NewDocumentUseCase(documentRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)

	sdsService := sds.NewService(
		chemicalRepo, tenantRepo, notificationRepo,
		supplier.NewClient(cfg.SDS),
		echa.NewClient(cfg.SDS),
		storage.NewClient(cfg.Storage),
		sdsparse.NewClient(cfg.SDS),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trygg HMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		TenantUC:       tenantUC,
		ChemicalUC:     chemicalUC,
		IncidentUC:     incidentUC,
		RiskUC:         riskUC,
		TrainingUC:     trainingUC,
		AuditUC:        auditUC,
		DocumentUC:     documentUC,
		NotificationUC: notificationUC,
		SDSService:     sdsService,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
