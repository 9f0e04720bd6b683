// Package config loads simulation and server settings from the environment
// and validates them eagerly, before a run starts.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all settings for the simulator and the HTTP service
type Config struct {
	// Server
	Port           string
	AllowedOrigins []string
	LogLevel       string
	RateLimitRPS   float64
	RateLimitBurst int

	// Arrival process
	ContactsPerHour float64

	// Service time distributions (seconds)
	AvgHandleTime   float64
	HandleStdDev    float64
	HoldProbability float64
	AvgHoldTime     float64
	AvgAbandonTime  float64
	AvgWrapupTime   float64

	// Agent pool
	AgentCount    int
	Proficiencies []float64 // per-agent multipliers; missing entries default to 1.0

	// Contact routing tags
	Skills []string

	// Run bounds
	SimTime     float64 // simulated seconds; 0 = no time horizon
	MaxContacts int     // 0 = unlimited
	Seed        int64   // 0 = derive from wall clock

	// Service level
	SLTarget  int
	SLSeconds int
}

// Load loads configuration from environment variables, falling back to the
// defaults of the original simulator.
func Load() (*Config, error) {
	// Load .env if present; absence is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	cfg.AllowedOrigins = splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173"))
	cfg.Skills = splitList(getEnv("SKILLS", "sales"))

	var err error
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.ContactsPerHour, err = getEnvFloat("CONTACTS_PER_HOUR", 100); err != nil {
		return nil, err
	}
	if cfg.AvgHandleTime, err = getEnvFloat("HANDLE_TIME", 300); err != nil {
		return nil, err
	}
	if cfg.HandleStdDev, err = getEnvFloat("HANDLE_TIME_STDDEV", 90); err != nil {
		return nil, err
	}
	if cfg.HoldProbability, err = getEnvFloat("HOLD_PROBABILITY", 0.15); err != nil {
		return nil, err
	}
	if cfg.AvgHoldTime, err = getEnvFloat("HOLD_TIME", 30); err != nil {
		return nil, err
	}
	if cfg.AvgAbandonTime, err = getEnvFloat("ABANDON_TIME", 120); err != nil {
		return nil, err
	}
	if cfg.AvgWrapupTime, err = getEnvFloat("WRAPUP_TIME", 60); err != nil {
		return nil, err
	}
	if cfg.AgentCount, err = getEnvInt("AGENT_COUNT", 10); err != nil {
		return nil, err
	}
	if cfg.SimTime, err = getEnvFloat("SIM_TIME", 10000); err != nil {
		return nil, err
	}
	if cfg.MaxContacts, err = getEnvInt("MAX_CONTACTS", 0); err != nil {
		return nil, err
	}
	if cfg.SLTarget, err = getEnvInt("SL_TARGET", 80); err != nil {
		return nil, err
	}
	if cfg.SLSeconds, err = getEnvInt("SL_SECONDS", 20); err != nil {
		return nil, err
	}

	seed, err := getEnvInt("SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)

	if raw := os.Getenv("AGENT_PROFICIENCIES"); raw != "" {
		for _, part := range splitList(raw) {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid AGENT_PROFICIENCIES entry %q: %w", part, err)
			}
			cfg.Proficiencies = append(cfg.Proficiencies, v)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects impossible settings before a run starts. Validation
// failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.AgentCount <= 0 {
		return fmt.Errorf("%w: agent count must be positive, got %d", ErrInvalidConfig, c.AgentCount)
	}
	if c.ContactsPerHour <= 0 {
		return fmt.Errorf("%w: contacts per hour must be positive, got %g", ErrInvalidConfig, c.ContactsPerHour)
	}
	if c.AvgHandleTime <= 0 {
		return fmt.Errorf("%w: handle time must be positive, got %g", ErrInvalidConfig, c.AvgHandleTime)
	}
	if c.HandleStdDev < 0 {
		return fmt.Errorf("%w: handle time stddev must be non-negative, got %g", ErrInvalidConfig, c.HandleStdDev)
	}
	if c.HoldProbability < 0 || c.HoldProbability > 1 {
		return fmt.Errorf("%w: hold probability must be in [0, 1], got %g", ErrInvalidConfig, c.HoldProbability)
	}
	if c.AvgHoldTime <= 0 {
		return fmt.Errorf("%w: hold time must be positive, got %g", ErrInvalidConfig, c.AvgHoldTime)
	}
	if c.AvgAbandonTime <= 0 {
		return fmt.Errorf("%w: abandon time must be positive, got %g", ErrInvalidConfig, c.AvgAbandonTime)
	}
	if c.AvgWrapupTime < 0 {
		return fmt.Errorf("%w: wrap-up time must be non-negative, got %g", ErrInvalidConfig, c.AvgWrapupTime)
	}
	if c.SimTime < 0 {
		return fmt.Errorf("%w: sim time must be non-negative, got %g", ErrInvalidConfig, c.SimTime)
	}
	if c.SimTime == 0 && c.MaxContacts == 0 {
		return fmt.Errorf("%w: either a sim time or a max contact count is required", ErrInvalidConfig)
	}
	if c.MaxContacts < 0 {
		return fmt.Errorf("%w: max contacts must be non-negative, got %d", ErrInvalidConfig, c.MaxContacts)
	}
	if len(c.Proficiencies) > c.AgentCount {
		return fmt.Errorf("%w: %d proficiencies for %d agents", ErrInvalidConfig, len(c.Proficiencies), c.AgentCount)
	}
	for _, p := range c.Proficiencies {
		if p <= 0 {
			return fmt.Errorf("%w: proficiency must be positive, got %g", ErrInvalidConfig, p)
		}
	}
	if c.SLTarget <= 0 || c.SLTarget > 100 {
		return fmt.Errorf("%w: service level target must be in (0, 100], got %d", ErrInvalidConfig, c.SLTarget)
	}
	if c.SLSeconds <= 0 {
		return fmt.Errorf("%w: service level threshold must be positive, got %d", ErrInvalidConfig, c.SLSeconds)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
