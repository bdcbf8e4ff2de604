package config

import (
	"errors"
	"strings"
	"time"

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

	LivingApps LivingAppsConfig
	Redis      RedisConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Log        LogConfig
	Overview   OverviewConfig
	Exports    ExportsConfig
}

// LivingAppsConfig locates the remote record service and the five
// per-entity collection ids.
type LivingAppsConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Apps    AppIDs
}

// AppIDs holds the fixed collection identifier per entity kind.
type AppIDs struct {
	Instructors   string
	Rooms         string
	Participants  string
	Courses       string
	Registrations string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig configures the single-admin login and token issuance.
type AuthConfig struct {
	Enabled           bool
	JWTSecret         string
	JWTExpiration     time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// OverviewConfig tunes the overview aggregation endpoint.
type OverviewConfig struct {
	CacheEnabled  bool
	CacheTTL      time.Duration
	UpcomingLimit int
	RecentLimit   int
}

// ExportsConfig gates the CSV/PDF export endpoints.
type ExportsConfig struct {
	Enabled bool
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.LivingApps = LivingAppsConfig{
		BaseURL: strings.TrimRight(v.GetString("LIVINGAPPS_BASE_URL"), "/"),
		Token:   v.GetString("LIVINGAPPS_TOKEN"),
		Timeout: parseDuration(v.GetString("LIVINGAPPS_TIMEOUT"), 15*time.Second),
		Apps: AppIDs{
			Instructors:   v.GetString("LIVINGAPPS_APP_INSTRUCTORS"),
			Rooms:         v.GetString("LIVINGAPPS_APP_ROOMS"),
			Participants:  v.GetString("LIVINGAPPS_APP_PARTICIPANTS"),
			Courses:       v.GetString("LIVINGAPPS_APP_COURSES"),
			Registrations: v.GetString("LIVINGAPPS_APP_REGISTRATIONS"),
		},
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{
		Enabled:           v.GetBool("ENABLE_AUTH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTExpiration:     parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Overview = OverviewConfig{
		CacheEnabled:  v.GetBool("OVERVIEW_CACHE_ENABLED"),
		CacheTTL:      parseDuration(v.GetString("OVERVIEW_CACHE_TTL"), time.Minute),
		UpcomingLimit: v.GetInt("OVERVIEW_UPCOMING_LIMIT"),
		RecentLimit:   v.GetInt("OVERVIEW_RECENT_LIMIT"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("LIVINGAPPS_BASE_URL", "https://my.living-apps.de/gateway/apps")
	v.SetDefault("LIVINGAPPS_TOKEN", "")
	v.SetDefault("LIVINGAPPS_TIMEOUT", "15s")
	v.SetDefault("LIVINGAPPS_APP_INSTRUCTORS", "6995a47c8a6c453cf08ae791")
	v.SetDefault("LIVINGAPPS_APP_ROOMS", "6995a47cdbeb74bee076e9d7")
	v.SetDefault("LIVINGAPPS_APP_PARTICIPANTS", "6995a47d3349845122ecfd83")
	v.SetDefault("LIVINGAPPS_APP_COURSES", "6995a47d82b14bea6d97e0b0")
	v.SetDefault("LIVINGAPPS_APP_REGISTRATIONS", "6995a47df16f955568694396")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ENABLE_AUTH", false)
	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("ADMIN_EMAIL", "admin@localhost")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("OVERVIEW_CACHE_ENABLED", false)
	v.SetDefault("OVERVIEW_CACHE_TTL", "1m")
	v.SetDefault("OVERVIEW_UPCOMING_LIMIT", 5)
	v.SetDefault("OVERVIEW_RECENT_LIMIT", 5)

	v.SetDefault("ENABLE_EXPORTS", true)
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
