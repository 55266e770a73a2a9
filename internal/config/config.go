package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port              string
	AllowedOrigins    []string
	LogLevel          string
	DatabaseURL       string
	DatabaseReadURL   string // Read replica URL for SELECT queries
	RedisURL          string
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	AdminEmails       []string
	EmailFunction     string
	EmailEnabled      bool
	Environment       string
	Scoring           ScoringConfig
}

// ScoringConfig carries the normalizing constants and weights of the team
// compatibility score. Defaults match the values the dashboard has always used.
type ScoringConfig struct {
	SkillsPerMember     float64
	SharedSkillsCeiling float64
	ExperienceLevels    float64
	StudyYears          float64
	DiversityWeight     float64
	ExperienceWeight    float64
	YearWeight          float64
	ComplementWeight    float64
	MaxTeamSize         int
}

// DefaultScoringConfig returns the stock scoring constants
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SkillsPerMember:     5,
		SharedSkillsCeiling: 5,
		ExperienceLevels:    3,
		StudyYears:          3,
		DiversityWeight:     0.30,
		ExperienceWeight:    0.25,
		YearWeight:          0.20,
		ComplementWeight:    0.25,
		MaxTeamSize:         3,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	defaults := DefaultScoringConfig()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DatabaseReadURL:   getEnv("DATABASE_READ_URL", getEnv("DATABASE_URL", "")), // Falls back to write DB if not set
		RedisURL:          getEnv("REDIS_URL", ""),
		SupabaseURL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		AdminEmails:       parseList(strings.ToLower(getEnv("ADMIN_EMAILS", ""))),
		EmailFunction:     getEnv("EMAIL_FUNCTION", "send-email"),
		EmailEnabled:      getBoolEnv("EMAIL_ENABLED", true),
		Environment:       getEnv("ENVIRONMENT", "production"),
		Scoring: ScoringConfig{
			SkillsPerMember:     getFloatEnv("SCORING_SKILLS_PER_MEMBER", defaults.SkillsPerMember),
			SharedSkillsCeiling: getFloatEnv("SCORING_SHARED_SKILLS_CEILING", defaults.SharedSkillsCeiling),
			ExperienceLevels:    getFloatEnv("SCORING_EXPERIENCE_LEVELS", defaults.ExperienceLevels),
			StudyYears:          getFloatEnv("SCORING_STUDY_YEARS", defaults.StudyYears),
			DiversityWeight:     getFloatEnv("SCORING_WEIGHT_DIVERSITY", defaults.DiversityWeight),
			ExperienceWeight:    getFloatEnv("SCORING_WEIGHT_EXPERIENCE", defaults.ExperienceWeight),
			YearWeight:          getFloatEnv("SCORING_WEIGHT_YEAR", defaults.YearWeight),
			ComplementWeight:    getFloatEnv("SCORING_WEIGHT_COMPLEMENTARITY", defaults.ComplementWeight),
			MaxTeamSize:         getIntEnv("TEAM_MAX_SIZE", defaults.MaxTeamSize),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at request time
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	s := c.Scoring
	if s.SkillsPerMember <= 0 || s.SharedSkillsCeiling <= 0 || s.ExperienceLevels <= 0 || s.StudyYears <= 0 {
		return fmt.Errorf("scoring normalizers must be positive")
	}
	if s.DiversityWeight < 0 || s.ExperienceWeight < 0 || s.YearWeight < 0 || s.ComplementWeight < 0 {
		return fmt.Errorf("scoring weights must not be negative")
	}
	if s.MaxTeamSize < 1 {
		return fmt.Errorf("TEAM_MAX_SIZE must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether the service runs in a local/dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "local"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseList parses a comma-separated list into a slice
func parseList(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
