package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DiscordToken   string
	GoogleSheetsID string
	GoogleAPIKey   string
	CacheDuration  time.Duration
	CommandPrefix  string
	LogLevel       string

	LeagueFile      string
	PlayersFile     string // local CSV used instead of the sheet when set
	HistoryDir      string
	DatabaseURL     string // PostgreSQL history when set, CSV otherwise
	FantraxLeagueID string
	MetricsAddr     string

	Season                  int // overrides the league file's season when non-zero
	RandomSeed              uint64
	MaxNegotiationRounds    int
	PointRate               float64
	SalaryDumpTradesEnabled bool
	TradeRequestsEnabled    bool
	TradesChannel           string
	HistoryPollInterval     time.Duration
}

func Load() (*Config, error) {
	cacheDuration := 5 * time.Minute
	if d := os.Getenv("CACHE_DURATION_MINUTES"); d != "" {
		if minutes, err := strconv.Atoi(d); err == nil {
			cacheDuration = time.Duration(minutes) * time.Minute
		}
	}

	season, err := getEnvInt("SEASON", 0)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvUint("RANDOM_SEED", uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, err
	}
	rounds, err := getEnvInt("MAX_NEGOTIATION_ROUNDS", 4)
	if err != nil {
		return nil, err
	}
	pointRate, err := getEnvFloat("POINT_RATE", 25000)
	if err != nil {
		return nil, err
	}
	salaryDumps, err := getEnvBool("SALARY_DUMP_TRADES_ENABLED", true)
	if err != nil {
		return nil, err
	}
	tradeRequests, err := getEnvBool("TRADE_REQUESTS_ENABLED", true)
	if err != nil {
		return nil, err
	}
	pollMinutes, err := getEnvInt("HISTORY_POLL_MINUTES", 5)
	if err != nil {
		return nil, err
	}

	return &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		GoogleSheetsID: os.Getenv("GOOGLE_SHEETS_ID"),
		GoogleAPIKey:   os.Getenv("GOOGLE_API_KEY"),
		CacheDuration:  cacheDuration,
		CommandPrefix:  getEnvOrDefault("COMMAND_PREFIX", "!"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),

		LeagueFile:      getEnvOrDefault("LEAGUE_FILE", "league.yaml"),
		PlayersFile:     os.Getenv("PLAYERS_FILE"),
		HistoryDir:      getEnvOrDefault("HISTORY_DIR", "./data"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		FantraxLeagueID: os.Getenv("FANTRAX_LEAGUE_ID"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),

		Season:                  season,
		RandomSeed:              seed,
		MaxNegotiationRounds:    rounds,
		PointRate:               pointRate,
		SalaryDumpTradesEnabled: salaryDumps,
		TradeRequestsEnabled:    tradeRequests,
		TradesChannel:           getEnvOrDefault("TRADES_CHANNEL", "trades"),
		HistoryPollInterval:     time.Duration(pollMinutes) * time.Minute,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
