package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database       DatabaseConfig
	JWT            JWTConfig
	App            AppConfig
	Reconciliation ReconciliationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ReconciliationConfig holds the tunable thresholds for mismatch detection,
// deadlines and timesheet computation. It is injected into the services that
// need it so tests can override individual thresholds.
type ReconciliationConfig struct {
	MinOfficeHours     float64
	MinHalfOfficeHours float64
	MinHalfLeaveHours  float64
	MinFullLeaveHours  float64
	WFHWorkdayRate     float64

	// Daily window leave spans are clipped to when computing
	// leave-hours-in-window, as "HH:MM" clock times.
	LeaveWindowStart string
	LeaveWindowEnd   string

	ResolutionDeadlineDays      int
	ManagerApprovalDeadlineDays int
	DefaultExpiredStatus        string
	AutoApproveExpired          bool
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "vams"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	recon, err := loadReconciliation()
	if err != nil {
		return nil, err
	}
	config.Reconciliation = recon

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadReconciliation() (ReconciliationConfig, error) {
	recon := DefaultReconciliation()

	floats := []struct {
		key  string
		dest *float64
	}{
		{"MIN_OFFICE_HOURS", &recon.MinOfficeHours},
		{"MIN_HALF_OFFICE_HOURS", &recon.MinHalfOfficeHours},
		{"MIN_HALF_LEAVE_HOURS", &recon.MinHalfLeaveHours},
		{"MIN_FULL_LEAVE_HOURS", &recon.MinFullLeaveHours},
		{"WFH_WORKDAY_RATE", &recon.WFHWorkdayRate},
	}
	for _, f := range floats {
		raw := os.Getenv(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return recon, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dest = v
	}

	ints := []struct {
		key  string
		dest *int
	}{
		{"MISMATCH_RESOLUTION_DEADLINE_DAYS", &recon.ResolutionDeadlineDays},
		{"MANAGER_APPROVAL_DEADLINE_DAYS", &recon.ManagerApprovalDeadlineDays},
	}
	for _, f := range ints {
		raw := os.Getenv(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return recon, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dest = v
	}

	recon.LeaveWindowStart = getEnv("LEAVE_WINDOW_START", recon.LeaveWindowStart)
	recon.LeaveWindowEnd = getEnv("LEAVE_WINDOW_END", recon.LeaveWindowEnd)
	recon.DefaultExpiredStatus = getEnv("DEFAULT_EXPIRED_MISMATCH_STATUS", recon.DefaultExpiredStatus)
	if raw := os.Getenv("AUTO_APPROVE_EXPIRED_MANAGER_APPROVALS"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return recon, fmt.Errorf("invalid AUTO_APPROVE_EXPIRED_MANAGER_APPROVALS: %w", err)
		}
		recon.AutoApproveExpired = v
	}

	return recon, nil
}

// DefaultReconciliation returns the built-in reconciliation thresholds.
// Tests start from these and override individual fields.
func DefaultReconciliation() ReconciliationConfig {
	return ReconciliationConfig{
		MinOfficeHours:              4.0,
		MinHalfOfficeHours:          2.0,
		MinHalfLeaveHours:           3.0,
		MinFullLeaveHours:           6.0,
		WFHWorkdayRate:              0.8,
		LeaveWindowStart:            "06:00",
		LeaveWindowEnd:              "19:00",
		ResolutionDeadlineDays:      7,
		ManagerApprovalDeadlineDays: 3,
		DefaultExpiredStatus:        "Leave",
		AutoApproveExpired:          true,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	r := c.Reconciliation
	if r.MinHalfOfficeHours > r.MinOfficeHours {
		return fmt.Errorf("MIN_HALF_OFFICE_HOURS must not exceed MIN_OFFICE_HOURS")
	}
	if r.MinHalfLeaveHours > r.MinFullLeaveHours {
		return fmt.Errorf("MIN_HALF_LEAVE_HOURS must not exceed MIN_FULL_LEAVE_HOURS")
	}
	if r.WFHWorkdayRate <= 0 || r.WFHWorkdayRate > 1 {
		return fmt.Errorf("WFH_WORKDAY_RATE must be in (0, 1]")
	}
	if r.ResolutionDeadlineDays <= 0 {
		return fmt.Errorf("MISMATCH_RESOLUTION_DEADLINE_DAYS must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
