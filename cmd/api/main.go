package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-insights-api/infrastructure/database/clickhouse"
	"github.com/vfg2006/campaign-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/campaign-insights-api/infrastructure/migration"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/api"
	"github.com/vfg2006/campaign-insights-api/internal/api/handler"
	"github.com/vfg2006/campaign-insights-api/internal/config"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/internal/scheduler"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/reporting"
	"github.com/vfg2006/campaign-insights-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define formato e nível de log com base na configuração
	log.Setup(cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.MigrationsEnabled {
		if err := migration.Up(ctx, pgConn.DB); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	healthDependencies := map[string]handler.Pinger{
		config.RecordSourcePostgres: pgConn,
	}

	recordRepo := repository.NewPerformanceRecordRepository(pgConn)
	if cfg.Reporting.RecordSource == config.RecordSourceClickHouse {
		chConn, err := clickhouse.NewConnection(ctx, cfg.ClickHouse)
		if err != nil {
			logrus.WithError(err).Fatal("Erro ao conectar ao ClickHouse")
		}
		defer chConn.Close()

		if err := clickhouse.EnsureSchema(ctx, chConn); err != nil {
			logrus.WithError(err).Fatal("Erro ao criar tabelas no ClickHouse")
		}

		recordRepo = repository.NewClickHousePerformanceRecordRepository(chConn)
		healthDependencies[config.RecordSourceClickHouse] = chConn
	}

	logrus.WithField("record_source", cfg.Reporting.RecordSource).Info("Fonte de registros de performance configurada")

	accountRepo := repository.NewAccountRepository(pgConn)
	scoreRankingRepo := repository.NewScoreRankingRepository(pgConn)

	engine := analytics.NewEngine(analytics.Options{
		Benchmarks:         cfg.Benchmarks,
		Workers:            cfg.Reporting.Workers,
		TopLimit:           cfg.Reporting.TopLimit,
		Locale:             cfg.Reporting.CollationLocale,
		MinVolumeThreshold: cfg.Reporting.MinRecipients,
		DefaultFormula:     domain.FormulaID(cfg.Reporting.DefaultFormula),
	})

	reporter := reporting.NewService(engine, recordRepo, accountRepo, cfg.Reporting.QueryTimeout())
	rankingService := ranking.NewScoreRankingService(scoreRankingRepo, domain.FormulaID(cfg.ScoreRanking.Formula))

	scoreRankingSyncService := scheduler.NewScoreRankingService(
		accountRepo,
		recordRepo,
		scoreRankingRepo,
		engine,
		cfg,
	)

	// Inicia o agendador em background
	if err := scoreRankingSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ranking de pontuação")
	} else {
		logrus.Info("Agendador do ranking de pontuação iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Reporter:           reporter,
		RankingService:     rankingService,
		ScoreRankingSync:   scoreRankingSyncService,
		HealthDependencies: healthDependencies,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
