package config

import (
	"fmt"
	"strings"
	"time"

	"hospital_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// DayBoundary selects how an open clock session is matched to "today".
type DayBoundary string

const (
	// DayBoundaryUTC only matches open sessions whose clock-in falls on the current UTC date.
	DayBoundaryUTC DayBoundary = "utc_day"
	// DayBoundaryOpenSession matches any open session regardless of its date.
	DayBoundaryOpenSession DayBoundary = "open_session"
)

// ParseDayBoundary falls back to DayBoundaryUTC for unknown values.
func ParseDayBoundary(s string) DayBoundary {
	switch DayBoundary(strings.ToLower(strings.TrimSpace(s))) {
	case DayBoundaryOpenSession:
		return DayBoundaryOpenSession
	default:
		return DayBoundaryUTC
	}
}

type Config struct {
	Port string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBApplySchema bool

	JWTSecret      string
	AccessTokenTTL time.Duration

	UniversalPassword string
	PasswordTTL       time.Duration

	DayBoundary              DayBoundary
	StrictPaymentTransitions bool
	PharmacyLowStockLimit    int

	RedisAddr     string
	RedisPassword string
	ClockLockTTL  time.Duration

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string

	SeedAdminEmail string
	SeedAdminName  string

	// EnvFileErr is the reason no .env file was read, nil when one was.
	EnvFileErr error
}

// Load reads an optional .env file and then the process environment. It does not log; the
// caller reports EnvFileErr once the logger is configured.
func Load() Config {
	envErr := godotenv.Load()

	return Config{
		EnvFileErr: envErr,

		Port: utils.Getenv("PORT", "8080"),

		DBHost:        utils.Getenv("DB_HOST", "localhost"),
		DBPort:        utils.Getenv("DB_PORT", "5432"),
		DBUser:        utils.Getenv("DB_USER", "hospital_user"),
		DBPassword:    utils.Getenv("DB_PASSWORD", "hospital_password"),
		DBName:        utils.Getenv("DB_NAME", "hospital_db"),
		DBSSLMode:     utils.Getenv("DB_SSLMODE", "disable"),
		DBApplySchema: utils.GetenvBool("DB_APPLY_SCHEMA", true),

		JWTSecret:      utils.Getenv("JWT_SECRET", "change-me-hospital-jwt-secret"),
		AccessTokenTTL: utils.GetenvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),

		UniversalPassword: utils.Getenv("UNIVERSAL_PASSWORD", "Pass@123"),
		PasswordTTL:       utils.GetenvDuration("PASSWORD_TTL", 30*24*time.Hour),

		DayBoundary:              ParseDayBoundary(utils.Getenv("DAY_BOUNDARY", string(DayBoundaryUTC))),
		StrictPaymentTransitions: utils.GetenvBool("PAYMENT_STRICT_TRANSITIONS", false),
		PharmacyLowStockLimit:    utils.GetenvInt("PHARMACY_LOW_STOCK_THRESHOLD", 10),

		RedisAddr:     utils.Getenv("REDIS_ADDR", ""),
		RedisPassword: utils.Getenv("REDIS_PASSWORD", ""),
		ClockLockTTL:  utils.GetenvDuration("CLOCK_LOCK_TTL", 10*time.Second),

		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),

		LogLevel:  utils.Getenv("LOG_LEVEL", "info"),
		LogFormat: utils.Getenv("LOG_FORMAT", "console"),

		SeedAdminEmail: utils.Getenv("SEED_ADMIN_EMAIL", ""),
		SeedAdminName:  utils.Getenv("SEED_ADMIN_NAME", "Administrator"),
	}
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
