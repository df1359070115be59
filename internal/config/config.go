package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

const DefaultSymbols = " XO"

type Config struct {
	BoardWidth  int
	BoardHeight int
	Symbols     [3]string // blank, player one, player two
	RandomSeed  int64

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	HistoryRetentionDays int

	RedisURL      string
	RedisPassword string

	WatchPort      string
	AllowedOrigins []string
	JWTSecret      string
	WatchTokenTTL  time.Duration
}

func LoadConfig() *Config {
	width := GetEnvAsInt("BOARD_WIDTH", domain.Columns)
	height := GetEnvAsInt("BOARD_HEIGHT", domain.Rows)
	if width < domain.MinDimension || height < domain.MinDimension {
		log.Printf("Board %dx%d is too small, using %dx%d", width, height, domain.Columns, domain.Rows)
		width, height = domain.Columns, domain.Rows
	}

	var allowedOrigins []string
	if origins := GetEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	return &Config{
		BoardWidth:  width,
		BoardHeight: height,
		Symbols:     ParseSymbols(GetEnv("BOARD_SYMBOLS", DefaultSymbols)),
		RandomSeed:  int64(GetEnvAsInt("RANDOM_SEED", 0)),

		DatabaseURL:          GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", "")),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 5),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		HistoryRetentionDays: GetEnvAsInt("HISTORY_RETENTION_DAYS", 30),

		RedisURL:      GetEnv("REDIS_URL", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),

		WatchPort:      GetEnv("WATCH_PORT", ""),
		AllowedOrigins: allowedOrigins,
		JWTSecret:      GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		WatchTokenTTL:  GetEnvAsDuration("WATCH_TOKEN_TTL_MINUTES", 2*time.Hour, time.Minute),
	}
}

// ParseSymbols turns a three-character string into the board symbols.
// Anything else falls back to the defaults.
func ParseSymbols(s string) [3]string {
	runes := []rune(s)
	if len(runes) != 3 {
		log.Printf("BOARD_SYMBOLS must have exactly 3 characters, got %q, using default", s)
		runes = []rune(DefaultSymbols)
	}
	return [3]string{string(runes[0]), string(runes[1]), string(runes[2])}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads a duration such as "90m". A bare number is taken
// in units of unit.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if n, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(n) * unit
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
