package domain

type BenchmarkKey string

const (
	BenchmarkAOV                 BenchmarkKey = "avgAOV"
	BenchmarkRevenuePerRecipient BenchmarkKey = "avgRevenuePerRecipient"
	BenchmarkRevenuePerClick     BenchmarkKey = "avgRevenuePerClick"
	BenchmarkRevenuePerOpen      BenchmarkKey = "avgRevenuePerOpen"
	BenchmarkRevenuePerCampaign  BenchmarkKey = "avgRevenuePerCampaign"
	BenchmarkOpenRate            BenchmarkKey = "avgOpenRate"
	BenchmarkClickRate           BenchmarkKey = "avgClickRate"
	BenchmarkConversionRate      BenchmarkKey = "avgConversionRate"
	BenchmarkCTOR                BenchmarkKey = "avgCTOR"
	BenchmarkClickToConversion   BenchmarkKey = "avgClickToConversion"
)

// BenchmarkKeys lista as chaves na ordem em que são calculadas e exibidas
var BenchmarkKeys = []BenchmarkKey{
	BenchmarkAOV,
	BenchmarkRevenuePerRecipient,
	BenchmarkRevenuePerClick,
	BenchmarkRevenuePerOpen,
	BenchmarkRevenuePerCampaign,
	BenchmarkOpenRate,
	BenchmarkClickRate,
	BenchmarkConversionRate,
	BenchmarkCTOR,
	BenchmarkClickToConversion,
}

// BenchmarkSet é imutável durante uma rodada de pontuação
type BenchmarkSet struct {
	Values    map[BenchmarkKey]float64 `json:"values"`
	Fallbacks []BenchmarkKey           `json:"fallbacks"`
}

func (b BenchmarkSet) Get(key BenchmarkKey) float64 {
	return b.Values[key]
}

// UsedFallback indica se a chave foi resolvida pelo valor padrão
func (b BenchmarkSet) UsedFallback(key BenchmarkKey) bool {
	for _, k := range b.Fallbacks {
		if k == key {
			return true
		}
	}
	return false
}
