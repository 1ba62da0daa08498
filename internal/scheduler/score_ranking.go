// Package scheduler contém os serviços agendados da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-insights-api/infrastructure/repository"
	"github.com/vfg2006/campaign-insights-api/internal/analytics"
	"github.com/vfg2006/campaign-insights-api/internal/config"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/metrics"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

const (
	ScoreRankingJob = "score-ranking"

	runIDLength     = 12
	runIDCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	lookupWorkers   = 8
)

type ScoreRankingConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Formula      domain.FormulaID
}

// ScoreRankingService grava diariamente o ranking de contas do mês corrente pela
// pontuação de performance
type ScoreRankingService struct {
	scheduler           *gocron.Scheduler
	accountRepo         repository.AccountRepository
	recordRepo          repository.PerformanceRecordRepository
	rankingRepo         repository.ScoreRankingRepository
	engine              analytics.Engine
	config              ScoreRankingConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastRunID           string
	lastSyncError       string
}

func NewScoreRankingService(
	accountRepo repository.AccountRepository,
	recordRepo repository.PerformanceRecordRepository,
	rankingRepo repository.ScoreRankingRepository,
	engine analytics.Engine,
	cfg *config.Config,
) *ScoreRankingService {
	rankingConfig := ScoreRankingConfig{
		CronSchedule: cfg.ScoreRanking.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.ScoreRanking.SyncEnabled,  // Default: desabilitado
		Formula:      domain.FormulaID(cfg.ScoreRanking.Formula),
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": rankingConfig.CronSchedule,
		"formula":       rankingConfig.Formula,
	}).Info("Configuração do agendador do ranking de pontuação carregada")

	return &ScoreRankingService{
		scheduler:   gocron.NewScheduler(time.Local),
		accountRepo: accountRepo,
		recordRepo:  recordRepo,
		rankingRepo: rankingRepo,
		engine:      engine,
		config:      rankingConfig,
	}
}

func (s *ScoreRankingService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron do ranking de pontuação desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do ranking de pontuação")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateScoreRanking(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do ranking de pontuação")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ranking de pontuação: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do ranking de pontuação")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateScoreRanking calcula e grava o ranking do mês até ontem. Execuções concorrentes
// são ignoradas.
func (s *ScoreRankingService) UpdateScoreRanking(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do ranking de pontuação já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	runID, err := gonanoid.Generate(runIDCharacters, runIDLength)
	if err == nil {
		_, err = s.processScoreRankingWithDate(ctx, runID, time.Now())
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastRunID = runID
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.CronRuns.WithLabelValues(ScoreRankingJob, result).Inc()

	return err
}

// processScoreRankingWithDate calcula o ranking do mês de ontem relativo a processingDate
func (s *ScoreRankingService) processScoreRankingWithDate(ctx context.Context, runID string, processingDate time.Time) ([]*domain.ScoreRankingItem, error) {
	yesterday := processingDate.AddDate(0, 0, -1)
	firstDayOfMonth := utils.FirstDayOfMonth(yesterday)
	month := yesterday.Format("01-2006")

	logger := logrus.WithFields(logrus.Fields{
		"run_id":  runID,
		"month":   month,
		"formula": s.config.Formula,
	})
	logger.Info("Iniciando atualização do ranking de pontuação")

	accounts, err := s.accountRepo.ListAccounts(ctx, []domain.AccountStatus{domain.AccountStatusActive})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar contas ativas: %w", err)
	}
	if len(accounts) == 0 {
		logger.Info("Nenhuma conta ativa para o ranking de pontuação")
		return []*domain.ScoreRankingItem{}, nil
	}

	labels := make(map[string]string, len(accounts))
	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		labels[account.ID] = account.Label()
		accountIDs = append(accountIDs, account.ID)
	}

	raw, err := s.recordRepo.ListByPeriod(ctx, firstDayOfMonth, utils.EndOfDay(yesterday), accountIDs)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar registros de performance: %w", err)
	}

	report, err := s.engine.Compare(raw, labels, domain.AggregationRequest{
		DateRange:       domain.DateRange{Start: firstDayOfMonth, End: yesterday},
		AccountIDs:      accountIDs,
		SelectedFormula: s.config.Formula,
		Location:        processingDate.Location(),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao pontuar contas: %w", err)
	}

	rankingsBeforeUpdate := s.previousRankings(ctx, report.Formula, month, report.Accounts)

	updatedRankings := make([]*domain.ScoreRankingItem, 0, len(report.Accounts))
	for _, account := range report.Accounts {
		updatedRankings = append(updatedRankings, &domain.ScoreRankingItem{
			RunID:       runID,
			AccountID:   account.AccountID,
			Month:       month,
			Formula:     report.Formula,
			AccountName: account.AccountName,
			Score:       account.PerformanceScore,
			Revenue:     utils.RoundWithTwoDecimalPlace(account.Revenue),
			Recipients:  account.Recipients,
			Campaigns:   account.Campaigns,
		})
	}

	s.updatePositions(updatedRankings, rankingsBeforeUpdate)

	if err := s.rankingRepo.SaveOrUpdateScoreRanking(ctx, updatedRankings); err != nil {
		return updatedRankings, fmt.Errorf("erro ao salvar ranking de pontuação: %w", err)
	}

	logger.WithField("accounts", len(updatedRankings)).Info("Ranking de pontuação atualizado")

	return updatedRankings, nil
}

// previousRankings busca em paralelo a posição gravada de cada conta no mês.
// Falhas de leitura só fazem a conta perder o histórico de posição.
func (s *ScoreRankingService) previousRankings(
	ctx context.Context,
	formula domain.FormulaID,
	month string,
	accounts []domain.ScoredAccount,
) map[string]*domain.ScoreRankingItem {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, lookupWorkers)
	results := make(chan *domain.ScoreRankingItem, len(accounts))

	for _, account := range accounts {
		wg.Add(1)
		go func(accountID string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			item, err := s.rankingRepo.GetByAccountID(ctx, accountID, month, formula)
			if err != nil {
				logrus.WithField("account_id", accountID).WithError(err).Error("ScoreRankingService: erro ao buscar ranking anterior")
				return
			}
			if item != nil {
				results <- item
			}
		}(account.AccountID)
	}

	wg.Wait()
	close(results)

	rankingsBeforeUpdate := make(map[string]*domain.ScoreRankingItem, len(accounts))
	for item := range results {
		rankingsBeforeUpdate[item.AccountID] = item
	}

	return rankingsBeforeUpdate
}

// updatePositions ordena por pontuação e, no empate, pela receita
func (*ScoreRankingService) updatePositions(
	updatedRankings []*domain.ScoreRankingItem,
	rankingsBeforeUpdate map[string]*domain.ScoreRankingItem,
) {
	sort.SliceStable(updatedRankings, func(i, j int) bool {
		if updatedRankings[i].Score != updatedRankings[j].Score {
			return updatedRankings[i].Score > updatedRankings[j].Score
		}
		return updatedRankings[i].Revenue > updatedRankings[j].Revenue
	})

	for i, ranking := range updatedRankings {
		ranking.Position = i + 1

		if rankingBefore, exists := rankingsBeforeUpdate[ranking.AccountID]; exists {
			ranking.PositionChange = rankingBefore.Position - ranking.Position
			ranking.PreviousPosition = rankingBefore.Position
		}
	}
}

// TriggerManualSync inicia manualmente uma atualização do ranking
func (s *ScoreRankingService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ranking de pontuação já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do ranking de pontuação")
	go func() {
		if err := s.UpdateScoreRanking(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do ranking de pontuação")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *ScoreRankingService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"formula":                s.config.Formula,
		"last_run_id":            s.lastRunID,
		"last_sync_error":        s.lastSyncError,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
