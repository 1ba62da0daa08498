package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vfg2006/campaign-insights-api/internal/analytics/scoring"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/internal/usecases/ranking"
	"github.com/vfg2006/campaign-insights-api/pkg/apiErrors"
	"github.com/vfg2006/campaign-insights-api/pkg/log"
)

// GetScoreRanking retorna o último ranking de contas por score gravado pelo job diário
func GetScoreRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		month := r.URL.Query().Get("month")
		formula := domain.FormulaID(strings.ToLower(r.URL.Query().Get("formula")))

		result, err := service.GetScoreRanking(r.Context(), month, formula)
		if err != nil {
			if errors.Is(err, ranking.ErrInvalidMonth) || errors.Is(err, scoring.ErrUnknownFormula) {
				logger.WithError(err).Warn("ranking: invalid parameters")
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}

			logger.WithError(err).Error("Erro ao buscar ranking de contas por score")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking de contas", nil)
			return
		}

		if result == nil || len(result.Ranking) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhum ranking encontrado", nil)
			return
		}

		writeJSON(w, logger, http.StatusOK, result)
	}
}
