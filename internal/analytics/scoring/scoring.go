// Package scoring calcula as pontuações de 0 a 100 das contas a partir de uma tabela
// declarativa de fórmulas
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/vfg2006/campaign-insights-api/internal/domain"
	"github.com/vfg2006/campaign-insights-api/pkg/utils"
)

var ErrUnknownFormula = errors.New("unknown formula")

const (
	minScore = 0
	maxScore = 100

	// DefaultWorkers é usado quando o chamador não informa o tamanho do pool
	DefaultWorkers = 4
)

// Term é uma parcela da fórmula. Com Benchmark preenchido, a referência é a média
// entre contas; senão Target é uma meta absoluta. Penalty subtrai
// Weight·min(métrica, Cap) sem dividir pela referência.
type Term struct {
	Metric    Metric
	Benchmark domain.BenchmarkKey
	Target    float64
	Weight    float64
	Cap       float64
	Penalty   bool
}

type Formula struct {
	ID    domain.FormulaID
	Base  float64
	Terms []Term
}

// Value avalia a parcela para a conta. Referência não positiva vale 0.
func (t Term) Value(rollup domain.AccountRollup, benchmarks domain.BenchmarkSet) float64 {
	value := t.Metric.Of(rollup)

	if t.Penalty {
		return -t.Weight * math.Min(value, t.Cap)
	}

	reference := t.Target
	if t.Benchmark != "" {
		reference = benchmarks.Get(t.Benchmark)
	}

	if reference <= 0 {
		return 0
	}

	return t.Weight * math.Min(utils.SafeDivide(value, reference), t.Cap)
}

// Evaluate soma a base e as parcelas, limita a [0,100] e arredonda
func (f Formula) Evaluate(rollup domain.AccountRollup, benchmarks domain.BenchmarkSet) int {
	total := f.Base
	for _, term := range f.Terms {
		total += term.Value(rollup, benchmarks)
	}

	return int(math.Round(utils.Clamp(total, minScore, maxScore)))
}

// Lookup devolve a fórmula pelo id
func Lookup(id domain.FormulaID) (Formula, error) {
	formula, ok := formulas[id]
	if !ok {
		return Formula{}, fmt.Errorf("%w: %q", ErrUnknownFormula, id)
	}
	return formula, nil
}

// ResolveFormula aplica a fórmula padrão quando id está vazio e valida o resultado
func ResolveFormula(id domain.FormulaID) (domain.FormulaID, error) {
	if id == "" {
		return domain.DefaultFormula, nil
	}

	if _, err := Lookup(id); err != nil {
		return "", err
	}

	return id, nil
}

// Scores calcula as dez pontuações da conta
func Scores(rollup domain.AccountRollup, benchmarks domain.BenchmarkSet) map[domain.FormulaID]int {
	scores := make(map[domain.FormulaID]int, len(formulaOrder))
	for _, id := range formulaOrder {
		scores[id] = formulas[id].Evaluate(rollup, benchmarks)
	}
	return scores
}

// ScoreAccount pontua a conta em todas as fórmulas e destaca a selecionada
func ScoreAccount(rollup domain.AccountRollup, benchmarks domain.BenchmarkSet, selected domain.FormulaID) (domain.ScoredAccount, error) {
	selected, err := ResolveFormula(selected)
	if err != nil {
		return domain.ScoredAccount{}, err
	}

	return scoreAccount(rollup, benchmarks, selected), nil
}

func scoreAccount(rollup domain.AccountRollup, benchmarks domain.BenchmarkSet, selected domain.FormulaID) domain.ScoredAccount {
	scores := Scores(rollup, benchmarks)

	return domain.ScoredAccount{
		AccountRollup:     rollup,
		PerformanceScores: scores,
		PerformanceScore:  scores[selected],
	}
}

// ScoreAll pontua as contas em paralelo. O único dado compartilhado é o
// BenchmarkSet, que é somente leitura. A ordem de entrada é preservada.
func ScoreAll(rollups []domain.AccountRollup, benchmarks domain.BenchmarkSet, selected domain.FormulaID, workers int) ([]domain.ScoredAccount, error) {
	selected, err := ResolveFormula(selected)
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredAccount, len(rollups))
	if len(rollups) == 0 {
		return scored, nil
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i := range rollups {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			scored[i] = scoreAccount(rollups[i], benchmarks, selected)
		}(i)
	}

	wg.Wait()

	return scored, nil
}
