package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/worktrack/worktrack-backend-go/internal/domain/payroll"
	"github.com/worktrack/worktrack-backend-go/internal/pkg/worktime"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	Database   DatabaseConfig
	Store      StoreConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver     string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

type AttendanceConfig struct {
	DefaultShiftStart   string
	DefaultGraceMinutes int
	BreakMinutes        int
	DailyThresholdHours decimal.Decimal
	// AutoMarkAbsent runs the nightly mark-absent job inside the API process.
	AutoMarkAbsent      bool
}

type PayrollConfig struct {
	TaxRate            decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "worktrack"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.Store = StoreConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		SQLitePath: getEnv("SQLITE_PATH", "worktrack.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Attendance policy
	grace, err := strconv.Atoi(getEnv("DEFAULT_GRACE_MINUTES", strconv.Itoa(worktime.DefaultGraceMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_GRACE_MINUTES: %w", err)
	}
	breakMinutes, err := strconv.Atoi(getEnv("BREAK_MINUTES", strconv.Itoa(worktime.DefaultBreakMinutes)))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_MINUTES: %w", err)
	}
	threshold, err := decimal.NewFromString(getEnv("DAILY_THRESHOLD_HOURS", strconv.Itoa(worktime.DefaultDailyThresholdHours)))
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_THRESHOLD_HOURS: %w", err)
	}

	autoMarkAbsent, err := strconv.ParseBool(getEnv("ATTENDANCE_AUTO_MARK_ABSENT", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_AUTO_MARK_ABSENT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DefaultShiftStart:   getEnv("DEFAULT_SHIFT_START", worktime.DefaultShiftStart),
		DefaultGraceMinutes: grace,
		BreakMinutes:        breakMinutes,
		DailyThresholdHours: threshold,
		AutoMarkAbsent:      autoMarkAbsent,
	}

	// Payroll settings
	taxRate, err := decimal.NewFromString(getEnv("PAYROLL_TAX_RATE", "0.20"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_TAX_RATE: %w", err)
	}
	multiplier, err := decimal.NewFromString(getEnv("PAYROLL_OVERTIME_MULTIPLIER", "1.5"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OVERTIME_MULTIPLIER: %w", err)
	}

	config.Payroll = PayrollConfig{
		TaxRate:            taxRate,
		OvertimeMultiplier: multiplier,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if err := c.Schedule().Validate(); err != nil {
		return fmt.Errorf("invalid default shift: %w", err)
	}
	if err := c.Hours().Validate(); err != nil {
		return err
	}
	if err := c.PayrollSettings().Validate(); err != nil {
		return err
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the time zone work dates are evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) Schedule() worktime.Schedule {
	return worktime.Schedule{
		Start:        c.Attendance.DefaultShiftStart,
		GraceMinutes: c.Attendance.DefaultGraceMinutes,
	}
}

func (c *Config) Hours() worktime.HoursPolicy {
	return worktime.HoursPolicy{
		BreakMinutes:        c.Attendance.BreakMinutes,
		DailyThresholdHours: c.Attendance.DailyThresholdHours,
	}
}

func (c *Config) PayrollSettings() payroll.Settings {
	return payroll.Settings{
		TaxRate:            c.Payroll.TaxRate,
		OvertimeMultiplier: c.Payroll.OvertimeMultiplier,
	}
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
