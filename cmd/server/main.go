package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/ai"
	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/application/service"
	"github.com/calebryder/ai-governance/internal/config"
	"github.com/calebryder/ai-governance/internal/infrastructure/persistence/repository"
	"github.com/calebryder/ai-governance/internal/infrastructure/persistence/sqlite"
	httpadapter "github.com/calebryder/ai-governance/internal/interfaces/http"
	"github.com/calebryder/ai-governance/internal/rates"
	"github.com/calebryder/ai-governance/internal/report"
	"github.com/calebryder/ai-governance/internal/tier"
	"github.com/calebryder/ai-governance/pkg/database"
	"github.com/calebryder/ai-governance/pkg/utils"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting AI Governance Portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	tierCfg, err := tier.LoadConfig(cfg.Governance.TierConfigPath)
	if err != nil {
		logger.Fatal("Failed to load tier configuration", zap.Error(err))
	}

	// Repositories
	txManager := sqlite.NewDB(db.DB, logger)
	proposalRepo := repository.NewProposalRepository(db.DB, logger)
	ruleRepo := repository.NewRuleRepository(db.DB, logger)
	rateRepo := repository.NewRateRepository(db.DB, logger)
	auditRepo := repository.NewAuditRepository(db.DB, logger)

	resolver := rates.NewResolver(rateRepo, cfg.Governance.RateCacheTTL, logger)

	var digestWriter port.DigestWriter
	if cfg.OpenAI.APIKey != "" {
		digestWriter = ai.NewDigestWriter(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Temperature, logger)
	} else {
		logger.Info("No OpenAI key configured, decision digests disabled")
	}

	// Services
	serviceLogger := utils.NewSugarAdapter(logger)
	proposalService := service.NewProposalService(
		proposalRepo,
		ruleRepo,
		auditRepo,
		txManager,
		resolver,
		tierCfg,
		digestWriter,
		serviceLogger,
	)
	auditService := service.NewAuditService(auditRepo, serviceLogger)
	exporter := report.NewExporter(proposalRepo, logger)

	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		proposalService,
		auditService,
		exporter,
		serviceLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited")
}
