package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	Env     string
	Server  ServerConfig
	Storage StorageConfig
	Planner PlannerConfig
	API     APIConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	Driver   string
	FilePath string
	Slot     string
	Database DatabaseConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// PlannerConfig задает параметры движка производных метрик. Перечисления
// категорий — конфигурация, а не контракт кода: список можно заменить,
// не трогая логику группировки.
type PlannerConfig struct {
	WithdrawalRate     float64
	HorizonMonths      int
	HistoryLimit       int
	SnapshotCron       string
	SpendingCategories []string
	GoalCategories     []string
	AssetTypes         []string
}

type APIConfig struct {
	RateLimitPerMinute int
	RateLimitBurst     int
}

var defaultSpendingCategories = []string{
	"Housing",
	"Car/Transportation",
	"Food & Drink",
	"Utilities",
	"Insurance",
	"Health & Fitness",
	"Personal Care",
	"Entertainment",
	"Household",
	"Clothing",
	"Subscriptions",
	"Travel & Vacation",
	"Education",
	"Donations",
	"Debt payments",
	"Fees",
	"Pet",
	"Gifts",
	"Taxes",
	"Other",
}

var defaultGoalCategories = []string{
	"Emergency",
	"Vacation",
	"Occasion",
	"Home down payment",
	"Car down payment",
	"Education",
	"Other",
}

var defaultAssetTypes = []string{
	"Investment",
	"Real Estate",
	"Cash",
	"Vehicle",
	"Other",
}

// Load загружает конфигурацию приложения из окружения и .env.
func Load() (Config, error) {
	cfg := Config{}

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	cfg.Env = getEnv("APP_ENV", "local")

	serverPort, err := parseIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return cfg, err
	}

	readTimeout, err := parseDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return cfg, err
	}

	writeTimeout, err := parseDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, err
	}

	idleTimeout, err := parseDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return cfg, err
	}

	cfg.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		Port:         serverPort,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	dbPort, err := parseIntEnv("DB_PORT", 5432)
	if err != nil {
		return cfg, err
	}

	maxOpenConns, err := parseIntEnv("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return cfg, err
	}

	maxIdleConns, err := parseIntEnv("DB_MAX_IDLE_CONNS", 5)
	if err != nil {
		return cfg, err
	}

	connMaxIdleTime, err := parseDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute)
	if err != nil {
		return cfg, err
	}

	connMaxLifetime, err := parseDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return cfg, err
	}

	cfg.Storage = StorageConfig{
		Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverFile)),
		FilePath: getEnv("STORAGE_FILE_PATH", "planner-state.json"),
		Slot:     getEnv("STORAGE_SLOT", "default"),
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            dbPort,
			User:            getEnv("DB_USER", "planner"),
			Password:        getEnv("DB_PASSWORD", "planner"),
			Name:            getEnv("DB_NAME", "finance_planner"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxIdleTime: connMaxIdleTime,
			ConnMaxLifetime: connMaxLifetime,
		},
	}

	withdrawalRate, err := parseFloatEnv("PLANNER_WITHDRAWAL_RATE", 0.04)
	if err != nil {
		return cfg, err
	}

	horizonMonths, err := parseIntEnv("PLANNER_HORIZON_MONTHS", 12)
	if err != nil {
		return cfg, err
	}

	historyLimit, err := parseIntEnv("PLANNER_HISTORY_LIMIT", 24)
	if err != nil {
		return cfg, err
	}

	cfg.Planner = PlannerConfig{
		WithdrawalRate:     withdrawalRate,
		HorizonMonths:      horizonMonths,
		HistoryLimit:       historyLimit,
		SnapshotCron:       getEnv("PLANNER_SNAPSHOT_CRON", "@daily"),
		SpendingCategories: parseCSVEnv("PLANNER_SPENDING_CATEGORIES", defaultSpendingCategories),
		GoalCategories:     parseCSVEnv("PLANNER_GOAL_CATEGORIES", defaultGoalCategories),
		AssetTypes:         parseCSVEnv("PLANNER_ASSET_TYPES", defaultAssetTypes),
	}

	rateLimitPerMinute, err := parseIntEnv("API_RATE_LIMIT_PER_MINUTE", 600)
	if err != nil {
		return cfg, err
	}

	rateLimitBurst, err := parseIntEnv("API_RATE_LIMIT_BURST", 50)
	if err != nil {
		return cfg, err
	}

	cfg.API = APIConfig{
		RateLimitPerMinute: rateLimitPerMinute,
		RateLimitBurst:     rateLimitBurst,
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// DSN возвращает строку подключения к базе данных.
func (c DatabaseConfig) DSN() string {
	user := url.UserPassword(c.User, c.Password)
	dsn := url.URL{
		Scheme: "postgres",
		User:   user,
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}

	query := url.Values{}
	query.Set("sslmode", c.SSLMode)
	return dsn.String() + "?" + query.Encode()
}

func (c Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be greater than 0")
	}

	switch c.Storage.Driver {
	case StorageDriverFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("STORAGE_FILE_PATH is required")
		}
	case StorageDriverPostgres:
		if c.Storage.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Storage.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.Storage.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Storage.Database.MaxIdleConns > c.Storage.Database.MaxOpenConns {
			return fmt.Errorf("DB_MAX_IDLE_CONNS cannot exceed DB_MAX_OPEN_CONNS")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be file or postgres")
	}

	if c.Storage.Slot == "" {
		return fmt.Errorf("STORAGE_SLOT is required")
	}

	if c.Planner.WithdrawalRate <= 0 || c.Planner.WithdrawalRate > 1 {
		return fmt.Errorf("PLANNER_WITHDRAWAL_RATE must be in (0, 1]")
	}

	if c.Planner.HorizonMonths <= 0 {
		return fmt.Errorf("PLANNER_HORIZON_MONTHS must be greater than 0")
	}

	if c.Planner.HistoryLimit <= 0 {
		return fmt.Errorf("PLANNER_HISTORY_LIMIT must be greater than 0")
	}

	if len(c.Planner.SpendingCategories) == 0 {
		return fmt.Errorf("PLANNER_SPENDING_CATEGORIES must not be empty")
	}

	if c.API.RateLimitPerMinute <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}

	if c.API.RateLimitBurst <= 0 {
		return fmt.Errorf("API_RATE_LIMIT_BURST must be greater than 0")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

// parseCSVEnv разбирает список значений через запятую, сохраняя регистр:
// категории — отображаемые метки, а не идентификаторы.
func parseCSVEnv(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return fallback
	}

	return out
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
