package ranking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/vfg2006/campaign-insights-api/infrastructure/repository"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/scoring"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

var monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-\d{4}$`)

// ErrInvalidMonth indica um mês fora do formato mm-yyyy
var ErrInvalidMonth = errors.New("mês inválido, use o formato mm-yyyy")

type RankingService interface {
	GetScoreRanking(ctx context.Context, month string, formula domain.FormulaID) (*domain.ScoreRankingResponse, error)
}

type ScoreRankingService struct {
	ScoreRankingRepository repository.ScoreRankingRepository
	DefaultFormula         domain.FormulaID
	now                    func() time.Time
}

func NewScoreRankingService(scoreRankingRepository repository.ScoreRankingRepository, defaultFormula domain.FormulaID) RankingService {
	return &ScoreRankingService{
		ScoreRankingRepository: scoreRankingRepository,
		DefaultFormula:         defaultFormula,
		now:                    time.Now,
	}
}

// GetScoreRanking devolve o último ranking gravado. Sem mês, usa o mês de ontem,
// que é o mês do último snapshot diário.
func (s *ScoreRankingService) GetScoreRanking(ctx context.Context, month string, formula domain.FormulaID) (*domain.ScoreRankingResponse, error) {
	if month == "" {
		month = s.now().AddDate(0, 0, -1).Format("01-2006")
	}
	if !monthPattern.MatchString(month) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	if formula == "" {
		formula = s.DefaultFormula
	}
	formula, err := scoring.ResolveFormula(formula)
	if err != nil {
		return nil, err
	}

	ranking, err := s.ScoreRankingRepository.GetScoreRanking(ctx, month, formula)
	if err != nil {
		return nil, err
	}
	return ranking, nil
}
