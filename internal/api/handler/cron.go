package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/campaign-insights-api/internal/scheduler"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-insights-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeScoreRanking = scheduler.ScoreRankingJob
)

// CronJob é o contrato mínimo de um job que pode ser disparado pela API
type CronJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ScoreRankingService CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeScoreRanking:
		return s.ScoreRankingService, s.ScoreRankingService != nil
	default:
		return nil, false
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeScoreRanking, nil)
			return
		}

		// O job continua mesmo depois que a resposta é enviada
		if !job.TriggerManualSync(context.WithoutCancel(r.Context())) {
			logger.WithField("type", cronType).Warn("cron: job already running")
			apiErrors.WriteError(w, apiErrors.ErrSchedulerBusy, "Cron job já está em execução", nil)
			return
		}

		logger.WithField("type", cronType).Info("cron: job started manually")

		writeJSON(w, logger, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ScoreRankingService != nil {
			status[CronJobTypeScoreRanking] = services.ScoreRankingService.GetStatus()
		}

		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, status)
	}
}
