package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	CORS       CORSConfig
	Log        LogConfig
	Calendar   CalendarConfig
	OpenAgenda OpenAgendaConfig
	Reminders  RemindersConfig
	Feeds      FeedsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig describes how Supabase access tokens are verified.
type JWTConfig struct {
	Secret   string
	Audience string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig tunes the event aggregation endpoints.
type CalendarConfig struct {
	Timezone       string
	DaysAhead      int
	DashboardLimit int
	HiddenCacheTTL time.Duration
}

// Location resolves the configured timezone, falling back to UTC.
func (c CalendarConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OpenAgendaConfig configures the local events source.
type OpenAgendaConfig struct {
	Enabled bool
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Limit   int
}

// RemindersConfig governs the daily upcoming-event reminder job.
type RemindersConfig struct {
	Enabled  bool
	Schedule string
	LeadDays int
	Workers  int
}

// FeedsConfig controls signed iCalendar subscription URLs.
type FeedsConfig struct {
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  v.GetBool("REDIS_ENABLED"),
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:   v.GetString("JWT_SECRET"),
		Audience: v.GetString("JWT_AUDIENCE"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Calendar = CalendarConfig{
		Timezone:       v.GetString("CALENDAR_TIMEZONE"),
		DaysAhead:      positiveInt(v.GetInt("CALENDAR_DAYS_AHEAD"), 30),
		DashboardLimit: positiveInt(v.GetInt("CALENDAR_DASHBOARD_LIMIT"), 8),
		HiddenCacheTTL: parseDuration(v.GetString("CALENDAR_HIDDEN_CACHE_TTL"), 10*time.Minute),
	}

	cfg.OpenAgenda = OpenAgendaConfig{
		Enabled: v.GetBool("OPENAGENDA_ENABLED"),
		BaseURL: strings.TrimRight(v.GetString("OPENAGENDA_BASE_URL"), "/"),
		APIKey:  v.GetString("OPENAGENDA_API_KEY"),
		Timeout: parseDuration(v.GetString("OPENAGENDA_TIMEOUT"), 10*time.Second),
		Limit:   positiveInt(v.GetInt("OPENAGENDA_LIMIT"), 20),
	}

	cfg.Reminders = RemindersConfig{
		Enabled:  v.GetBool("ENABLE_REMINDERS"),
		Schedule: v.GetString("REMINDERS_SCHEDULE"),
		LeadDays: positiveInt(v.GetInt("REMINDERS_LEAD_DAYS"), 7),
		Workers:  positiveInt(v.GetInt("REMINDERS_WORKERS"), 2),
	}

	cfg.Feeds = FeedsConfig{
		SignedURLSecret: v.GetString("FEEDS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("FEEDS_SIGNED_URL_TTL"), 365*24*time.Hour),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "aina")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ENABLED", true)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_AUDIENCE", "authenticated")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_TIMEZONE", "Europe/Paris")
	v.SetDefault("CALENDAR_DAYS_AHEAD", 30)
	v.SetDefault("CALENDAR_DASHBOARD_LIMIT", 8)
	v.SetDefault("CALENDAR_HIDDEN_CACHE_TTL", "10m")

	v.SetDefault("OPENAGENDA_ENABLED", true)
	v.SetDefault("OPENAGENDA_BASE_URL", "https://api.openagenda.com/v2")
	v.SetDefault("OPENAGENDA_API_KEY", "")
	v.SetDefault("OPENAGENDA_TIMEOUT", "10s")
	v.SetDefault("OPENAGENDA_LIMIT", 20)

	v.SetDefault("ENABLE_REMINDERS", false)
	v.SetDefault("REMINDERS_SCHEDULE", "0 8 * * *")
	v.SetDefault("REMINDERS_LEAD_DAYS", 7)
	v.SetDefault("REMINDERS_WORKERS", 2)

	v.SetDefault("FEEDS_SIGNED_URL_SECRET", "dev_feeds_secret")
	v.SetDefault("FEEDS_SIGNED_URL_TTL", "8760h")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func positiveInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
