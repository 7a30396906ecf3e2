// Package config loads the signal engine's runtime configuration from the
// environment (and an optional .env file via godotenv), the way the
// teacher's bot config loader does.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bvantuan/dca-signal-engine/internal/simulator"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string

	DataSource struct {
		BybitAPIKey    string
		BybitSecret    string
		BybitBaseURL   string
		CacheDir       string
		Symbols        []string
		Days           int
	}

	Simulator struct {
		InitialCapital            float64
		InitialInvestmentFraction float64
		DCABuyThreshold           float64
		DCABuyFraction            float64
		ProfitSellThreshold       float64
		ProfitSellFraction        float64
		GenericFee                float64
	}

	Sentiment struct {
		RapidAPIKey string
	}

	Monitoring struct {
		PrometheusPort int
		HealthPort     int
	}

	Notifications struct {
		TelegramToken  string
		TelegramChatID string
	}

	SignalStorePath string
	ReportOutputDir string
}

// Load reads configuration from the process environment, first merging in
// a .env file if one is present in the working directory. Missing
// .env is not an error — operators may set real environment variables
// directly instead.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DataSource: struct {
			BybitAPIKey  string
			BybitSecret  string
			BybitBaseURL string
			CacheDir     string
			Symbols      []string
			Days         int
		}{
			BybitAPIKey:  getEnv("BYBIT_API_KEY", ""),
			BybitSecret:  getEnv("BYBIT_API_SECRET", ""),
			BybitBaseURL: getEnv("BYBIT_BASE_URL", "https://api.bybit.com"),
			CacheDir:     getEnv("CACHE_DIR", ".cache"),
			Symbols:      getEnvList("CRYPTO_SYMBOLS", []string{"BTCUSDT"}),
			Days:         getEnvInt("FETCH_DAYS", 365),
		},

		Simulator: struct {
			InitialCapital            float64
			InitialInvestmentFraction float64
			DCABuyThreshold           float64
			DCABuyFraction            float64
			ProfitSellThreshold       float64
			ProfitSellFraction        float64
			GenericFee                float64
		}{
			InitialCapital:            getEnvFloat("SIM_INITIAL_CAPITAL", 10000),
			InitialInvestmentFraction: getEnvFloat("SIM_INITIAL_INVESTMENT_FRACTION", 0.35),
			DCABuyThreshold:           getEnvFloat("SIM_DCA_BUY_THRESHOLD", 0.10),
			DCABuyFraction:            getEnvFloat("SIM_DCA_BUY_FRACTION", 0.75),
			ProfitSellThreshold:       getEnvFloat("SIM_PROFIT_SELL_THRESHOLD", 0.20),
			ProfitSellFraction:        getEnvFloat("SIM_PROFIT_SELL_FRACTION", 0.40),
			GenericFee:                getEnvFloat("SIM_GENERIC_FEE", 0.005),
		},

		Sentiment: struct {
			RapidAPIKey string
		}{
			RapidAPIKey: getEnv("RAPIDAPI_KEY", ""),
		},

		Monitoring: struct {
			PrometheusPort int
			HealthPort     int
		}{
			PrometheusPort: getEnvInt("PROMETHEUS_PORT", 8080),
			HealthPort:     getEnvInt("HEALTH_PORT", 8081),
		},

		Notifications: struct {
			TelegramToken  string
			TelegramChatID string
		}{
			TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
			TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),
		},

		SignalStorePath: getEnv("SIGNAL_STORE_PATH", "signal_store.json"),
		ReportOutputDir: getEnv("REPORT_OUTPUT_DIR", "reports"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}

// SimulatorParams maps the loaded Simulator config section onto the
// simulator package's Params, starting from DefaultParams so any field
// not present in the environment keeps its spec default.
func (c *Config) SimulatorParams() simulator.Params {
	p := simulator.DefaultParams()
	p.InitialCapital = c.Simulator.InitialCapital
	p.InitialInvestmentFraction = c.Simulator.InitialInvestmentFraction
	p.DCABuyThreshold = c.Simulator.DCABuyThreshold
	p.DCABuyFraction = c.Simulator.DCABuyFraction
	p.ProfitSellThreshold = c.Simulator.ProfitSellThreshold
	p.ProfitSellFraction = c.Simulator.ProfitSellFraction
	p.GenericFee = c.Simulator.GenericFee
	return p
}
