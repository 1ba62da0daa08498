package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/campaign-insights-api/internal/analytics/benchmark"
)

// Fontes de registros de performance suportadas
const (
	RecordSourcePostgres   = "postgres"
	RecordSourceClickHouse = "clickhouse"
)

type Config struct {
	App          App                `mapstructure:",squash"`
	Server       Server             `mapstructure:",squash"`
	Database     Database           `mapstructure:",squash"`
	ClickHouse   ClickHouse         `mapstructure:",squash"`
	Reporting    Reporting          `mapstructure:",squash"`
	Benchmarks   benchmark.Defaults `mapstructure:",squash"`
	ScoreRanking ScoreRanking       `mapstructure:",squash"`
	CORS         CORS               `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN               string `mapstructure:"-"`
	Driver            string `mapstructure:"database_driver"`
	Password          string `mapstructure:"database_password"`
	URL               string `mapstructure:"database_url"`
	User              string `mapstructure:"database_user"`
	MigrationsEnabled bool   `mapstructure:"migrations_enabled"`
}

type ClickHouse struct {
	Addr           []string `mapstructure:"clickhouse_addr"`
	Database       string   `mapstructure:"clickhouse_database"`
	Username       string   `mapstructure:"clickhouse_username"`
	Password       string   `mapstructure:"clickhouse_password"`
	TimeoutSeconds int      `mapstructure:"clickhouse_timeout_seconds"`
}

func (c ClickHouse) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Reporting struct {
	RecordSource        string `mapstructure:"record_source"`
	MinRecipients       int64  `mapstructure:"reporting_min_recipients"`
	DefaultFormula      string `mapstructure:"reporting_default_formula"`
	Workers             int    `mapstructure:"reporting_workers"`
	TopLimit            int    `mapstructure:"reporting_top_limit"`
	CollationLocale     string `mapstructure:"reporting_collation_locale"`
	QueryTimeoutSeconds int    `mapstructure:"reporting_query_timeout_seconds"`
}

type ScoreRanking struct {
	CronSchedule string `mapstructure:"score_ranking_cron"`
	SyncEnabled  bool   `mapstructure:"score_ranking_sync_enabled"`
	Formula      string `mapstructure:"score_ranking_formula"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/insights?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("MIGRATIONS_ENABLED", true)

	viper.SetDefault("RECORD_SOURCE", RecordSourcePostgres)
	viper.SetDefault("CLICKHOUSE_ADDR", "localhost:9000")
	viper.SetDefault("CLICKHOUSE_DATABASE", "default")
	viper.SetDefault("CLICKHOUSE_USERNAME", "default")
	viper.SetDefault("CLICKHOUSE_PASSWORD", "")
	viper.SetDefault("CLICKHOUSE_TIMEOUT_SECONDS", 10)

	// Defaults do pipeline de relatórios
	viper.SetDefault("REPORTING_MIN_RECIPIENTS", 10000)               // Volume mínimo para o top N
	viper.SetDefault("REPORTING_DEFAULT_FORMULA", "engagement-score") // Fórmula usada quando a requisição não informa
	viper.SetDefault("REPORTING_WORKERS", 4)                          // Workers para rollup e pontuação
	viper.SetDefault("REPORTING_TOP_LIMIT", 5)                        // Tamanho do carrossel
	viper.SetDefault("REPORTING_COLLATION_LOCALE", "en")              // Locale da ordenação por nome
	viper.SetDefault("REPORTING_QUERY_TIMEOUT_SECONDS", 30)           // Timeout da busca de registros

	// Benchmarks usados quando nenhuma conta tem valor positivo
	defaults := benchmark.DefaultDefaults()
	viper.SetDefault("BENCHMARK_DEFAULT_AOV", defaults.AOV)
	viper.SetDefault("BENCHMARK_DEFAULT_REVENUE_PER_RECIPIENT", defaults.RevenuePerRecipient)
	viper.SetDefault("BENCHMARK_DEFAULT_REVENUE_PER_CLICK", defaults.RevenuePerClick)
	viper.SetDefault("BENCHMARK_DEFAULT_REVENUE_PER_OPEN", defaults.RevenuePerOpen)
	viper.SetDefault("BENCHMARK_DEFAULT_REVENUE_PER_CAMPAIGN", defaults.RevenuePerCampaign)
	viper.SetDefault("BENCHMARK_DEFAULT_OPEN_RATE", defaults.OpenRate)
	viper.SetDefault("BENCHMARK_DEFAULT_CLICK_RATE", defaults.ClickRate)
	viper.SetDefault("BENCHMARK_DEFAULT_CONVERSION_RATE", defaults.ConversionRate)
	viper.SetDefault("BENCHMARK_DEFAULT_CTOR", defaults.CTOR)
	viper.SetDefault("BENCHMARK_DEFAULT_CLICK_TO_CONVERSION", defaults.ClickToConversion)

	viper.SetDefault("SCORE_RANKING_CRON", "0 6 * * *")           // Todos os dias às 6h da manhã
	viper.SetDefault("SCORE_RANKING_SYNC_ENABLED", false)         // Habilitar snapshot diário do ranking
	viper.SetDefault("SCORE_RANKING_FORMULA", "engagement-score") // Fórmula usada no ranking

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Reporting.RecordSource = strings.ToLower(strings.TrimSpace(config.Reporting.RecordSource))
	switch config.Reporting.RecordSource {
	case RecordSourcePostgres, RecordSourceClickHouse:
	default:
		return nil, fmt.Errorf("RECORD_SOURCE inválido: %q", config.Reporting.RecordSource)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// QueryTimeout é o tempo máximo de uma busca de registros
func (r Reporting) QueryTimeout() time.Duration {
	if r.QueryTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.QueryTimeoutSeconds) * time.Second
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
