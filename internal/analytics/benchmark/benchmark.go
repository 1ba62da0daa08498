// Package benchmark calcula as médias entre contas usadas como referência na pontuação
package benchmark

import (
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-insights-api/internal/domain"
)

// Defaults são os valores usados quando nenhuma conta tem valor positivo para a métrica
type Defaults struct {
	AOV                 float64 `mapstructure:"benchmark_default_aov"`
	RevenuePerRecipient float64 `mapstructure:"benchmark_default_revenue_per_recipient"`
	RevenuePerClick     float64 `mapstructure:"benchmark_default_revenue_per_click"`
	RevenuePerOpen      float64 `mapstructure:"benchmark_default_revenue_per_open"`
	RevenuePerCampaign  float64 `mapstructure:"benchmark_default_revenue_per_campaign"`
	OpenRate            float64 `mapstructure:"benchmark_default_open_rate"`
	ClickRate           float64 `mapstructure:"benchmark_default_click_rate"`
	ConversionRate      float64 `mapstructure:"benchmark_default_conversion_rate"`
	CTOR                float64 `mapstructure:"benchmark_default_ctor"`
	ClickToConversion   float64 `mapstructure:"benchmark_default_click_to_conversion"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		AOV:                 300,
		RevenuePerRecipient: 10,
		RevenuePerClick:     100,
		RevenuePerOpen:      30,
		RevenuePerCampaign:  10000,
		OpenRate:            25,
		ClickRate:           3,
		ConversionRate:      2,
		CTOR:                20,
		ClickToConversion:   10,
	}
}

// Values devolve os defaults indexados pela chave do benchmark.
// Campos não positivos voltam ao valor padrão documentado.
func (d Defaults) Values() map[domain.BenchmarkKey]float64 {
	fallback := DefaultDefaults()

	pick := func(value, def float64) float64 {
		if value > 0 {
			return value
		}
		return def
	}

	return map[domain.BenchmarkKey]float64{
		domain.BenchmarkAOV:                 pick(d.AOV, fallback.AOV),
		domain.BenchmarkRevenuePerRecipient: pick(d.RevenuePerRecipient, fallback.RevenuePerRecipient),
		domain.BenchmarkRevenuePerClick:     pick(d.RevenuePerClick, fallback.RevenuePerClick),
		domain.BenchmarkRevenuePerOpen:      pick(d.RevenuePerOpen, fallback.RevenuePerOpen),
		domain.BenchmarkRevenuePerCampaign:  pick(d.RevenuePerCampaign, fallback.RevenuePerCampaign),
		domain.BenchmarkOpenRate:            pick(d.OpenRate, fallback.OpenRate),
		domain.BenchmarkClickRate:           pick(d.ClickRate, fallback.ClickRate),
		domain.BenchmarkConversionRate:      pick(d.ConversionRate, fallback.ConversionRate),
		domain.BenchmarkCTOR:                pick(d.CTOR, fallback.CTOR),
		domain.BenchmarkClickToConversion:   pick(d.ClickToConversion, fallback.ClickToConversion),
	}
}

// MetricOf devolve o valor da conta correspondente a cada benchmark
func MetricOf(rollup domain.AccountRollup, key domain.BenchmarkKey) float64 {
	switch key {
	case domain.BenchmarkAOV:
		return rollup.AverageOrderValue
	case domain.BenchmarkRevenuePerRecipient:
		return rollup.RevenuePerRecipient
	case domain.BenchmarkRevenuePerClick:
		return rollup.RevenuePerClick
	case domain.BenchmarkRevenuePerOpen:
		return rollup.RevenuePerOpen
	case domain.BenchmarkRevenuePerCampaign:
		return rollup.RevenuePerCampaign
	case domain.BenchmarkOpenRate:
		return rollup.OpenRate
	case domain.BenchmarkClickRate:
		return rollup.ClickRate
	case domain.BenchmarkConversionRate:
		return rollup.ConversionRate
	case domain.BenchmarkCTOR:
		return rollup.ClickToOpenRate
	case domain.BenchmarkClickToConversion:
		return rollup.ClickToConversionRate
	default:
		return 0
	}
}

// Compute calcula a média de cada métrica considerando apenas as contas com valor
// maior que zero. Sem nenhuma conta positiva, usa o default configurado.
func Compute(rollups []domain.AccountRollup, defaults Defaults) domain.BenchmarkSet {
	fallbackValues := defaults.Values()

	set := domain.BenchmarkSet{
		Values:    make(map[domain.BenchmarkKey]float64, len(domain.BenchmarkKeys)),
		Fallbacks: make([]domain.BenchmarkKey, 0),
	}

	for _, key := range domain.BenchmarkKeys {
		sum := 0.0
		count := 0
		for _, rollup := range rollups {
			if value := MetricOf(rollup, key); value > 0 {
				sum += value
				count++
			}
		}

		if count == 0 {
			set.Values[key] = fallbackValues[key]
			set.Fallbacks = append(set.Fallbacks, key)
			continue
		}

		set.Values[key] = sum / float64(count)
	}

	if len(set.Fallbacks) > 0 {
		logrus.WithFields(logrus.Fields{
			"accounts":  len(rollups),
			"fallbacks": set.Fallbacks,
		}).Info("Benchmarks sem contas com valor positivo, usando valores padrão")
	}

	return set
}
