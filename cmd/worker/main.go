package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trygghms/hms-api/internal/application/digest"
	"github.com/trygghms/hms-api/internal/application/sds"
	"github.com/trygghms/hms-api/internal/infrastructure/echa"
	"github.com/trygghms/hms-api/internal/infrastructure/mail"
	"github.com/trygghms/hms-api/internal/infrastructure/postgres"
	"github.com/trygghms/hms-api/internal/infrastructure/sdsparse"
	"github.com/trygghms/hms-api/internal/infrastructure/storage"
	"github.com/trygghms/hms-api/internal/infrastructure/supplier"
	"github.com/trygghms/hms-api/pkg/config"
	"github.com/trygghms/hms-api/pkg/logger"
)

// deps is everything the batch jobs need, built once per invocation.
type deps struct {
	cfg  *config.Config
	log  *logger.Logger
	pool interface{ Close() }

	sweeper *sds.Sweeper
	digests *digest.Service
}

func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	chemicalRepo := postgres.NewChemicalRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	digestRepo := postgres.NewDigestRepository(pool)

	svc := sds.NewService(
		chemicalRepo, tenantRepo, notificationRepo,
		supplier.NewClient(cfg.SDS),
		echa.NewClient(cfg.SDS),
		storage.NewClient(cfg.Storage),
		sdsparse.NewClient(cfg.SDS),
		log,
	)

	return &deps{
		cfg:     cfg,
		log:     log,
		pool:    pool,
		sweeper: sds.NewSweeper(tenantRepo, chemicalRepo, notificationRepo, svc, cfg.SDS.SweepRPS, log),
		digests: digest.NewService(tenantRepo, userRepo, digestRepo, mail.NewSendGridMailer(cfg.Mail), log),
	}, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so a sweep can
// stop between chemicals instead of being killed mid-update.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sds-sweep",
		Short: "Check every active chemical for a newer safety data sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.pool.Close()

			report, err := d.sweeper.SweepAll(ctx)
			if err != nil {
				return err
			}
			d.log.Info().
				Int("tenants", len(report.Tenants)).
				Int("checked", report.TotalChecked).
				Int("updated", report.TotalUpdated).
				Int("failed", report.TotalFailed).
				Msg("sweep finished")
			return nil
		},
	}
}

func newDigestCmd() *cobra.Command {
	var frequency string
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Send summary emails to users opted into the given frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			d, err := buildDeps(ctx)
			if err != nil {
				return err
			}
			defer d.pool.Close()

			report, err := d.digests.Run(ctx, frequency)
			if err != nil {
				return err
			}
			d.log.Info().
				Str("frequency", frequency).
				Int("sent", report.Sent).
				Int("skipped", report.Skipped).
				Int("failed", report.Failed).
				Msg("digest run finished")
			return nil
		},
	}
	cmd.Flags().StringVar(&frequency, "frequency", "DAILY", "DAILY or WEEKLY")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:           "hms-worker",
		Short:         "Scheduled jobs for the HMS platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSweepCmd(), newDigestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
