package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/database/postgres"
	"github.com/thiberio-patricio/Controle-Vendas/infrastructure/repository"
	"github.com/thiberio-patricio/Controle-Vendas/internal/api"
	"github.com/thiberio-patricio/Controle-Vendas/internal/api/handler"
	"github.com/thiberio-patricio/Controle-Vendas/internal/config"
	"github.com/thiberio-patricio/Controle-Vendas/internal/scheduler"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/auditing"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/authenticating"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/branching"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/performance"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/selling"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/staffing"
	"github.com/thiberio-patricio/Controle-Vendas/internal/usecases/targeting"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/log"
	"github.com/thiberio-patricio/Controle-Vendas/pkg/validation"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	branchRepo := repository.NewBranchRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	targetRepo := repository.NewTargetRepository(pgConn)
	auditLogRepo := repository.NewAuditLogRepository(pgConn)

	validator := validation.New()

	auditor := auditing.NewService(auditLogRepo)

	authenticator := authenticating.NewService(userRepo, validator, cfg)
	sellingService := selling.NewService(saleRepo, targetRepo, userRepo, cfg.App.Location, selling.LogListener{}, auditor)
	targetingService := targeting.NewService(targetRepo, userRepo, validator, auditor)
	performanceService := performance.NewService(saleRepo, targetRepo, userRepo, branchRepo)
	staffingService := staffing.NewService(userRepo, branchRepo, validator)
	branchingService := branching.NewService(branchRepo, validator)

	auditRetentionService := scheduler.NewAuditRetentionService(auditor, cfg)
	if err := auditRetentionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de auditoria")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Seller:        sellingService,
		Targeter:      targetingService,
		Performer:     performanceService,
		Staffer:       staffingService,
		Brancher:      branchingService,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeAuditRetention: auditRetentionService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger usa texto no desenvolvimento e JSON nos demais ambientes
func configureLogger() {
	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
