// Package config loads application configuration from config files,
// env files and environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem used for config and env file access. Tests
// swap it for an in-memory filesystem.
var AppFs = afero.NewOsFs()

// Backend selects which store implementation serves queries.
const (
	// BackendPostgrest talks to a PostgREST endpoint over HTTP.
	BackendPostgrest = "postgrest"

	// BackendPostgres talks to Postgres directly over a pgx pool.
	BackendPostgres = "postgres"
)

// Config holds the application configuration.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `validate:"required"`

	// Backend selects the store implementation.
	Backend string `validate:"required,oneof=postgrest postgres"`

	// SupabaseURL is the PostgREST base URL. Required for the
	// postgrest backend.
	SupabaseURL string `validate:"omitempty,url"`

	// SupabaseServiceKey authenticates PostgREST requests.
	SupabaseServiceKey string

	// DatabaseURL is the Postgres connection string. Required for the
	// postgres backend.
	DatabaseURL string

	// AdminKey authorizes content-editor endpoints.
	AdminKey string

	// LogLevel is one of trace, debug, info, warn, error, fatal.
	LogLevel string

	// LogPretty switches log output to colorized console lines.
	LogPretty bool

	// CacheEnabled toggles the in-process response cache.
	CacheEnabled bool

	// RedisURL enables the shared cache tier when set.
	RedisURL string
}

// Load reads configuration from config files, .env files and KGAY_*
// environment variables, in increasing priority.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".kgayguides")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "kgayguides"))

	viper.SetEnvPrefix("KGAY")
	viper.AutomaticEnv()

	viper.SetDefault("listen_addr", ":3001")
	viper.SetDefault("backend", BackendPostgrest)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_pretty", false)
	viper.SetDefault("cache_enabled", true)

	// Config file is optional.
	_ = viper.ReadInConfig()

	// Load .env if it exists.
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// .env.local overrides .env.
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		ListenAddr:         viper.GetString("listen_addr"),
		Backend:            viper.GetString("backend"),
		SupabaseURL:        firstNonEmpty(os.Getenv("SUPABASE_URL"), viper.GetString("supabase_url")),
		SupabaseServiceKey: firstNonEmpty(os.Getenv("SUPABASE_SERVICE_ROLE_KEY"), viper.GetString("supabase_service_key")),
		DatabaseURL:        firstNonEmpty(os.Getenv("DATABASE_URL"), viper.GetString("database_url")),
		AdminKey:           firstNonEmpty(os.Getenv("KGAY_ADMIN_KEY"), viper.GetString("admin_key")),
		LogLevel:           viper.GetString("log_level"),
		LogPretty:          viper.GetBool("log_pretty"),
		CacheEnabled:       viper.GetBool("cache_enabled"),
		RedisURL:           firstNonEmpty(os.Getenv("REDIS_URL"), viper.GetString("redis_url")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags plus backend-specific requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	switch c.Backend {
	case BackendPostgrest:
		if c.SupabaseURL == "" {
			return errors.New("SUPABASE_URL is required for the postgrest backend")
		}
		if c.SupabaseServiceKey == "" {
			return errors.New("SUPABASE_SERVICE_ROLE_KEY is required for the postgrest backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	}
	return nil
}

// WriteEnvFile persists backend credentials to an env file.
func WriteEnvFile(path string, values map[string]string) error {
	var body string
	for _, key := range []string{"SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "DATABASE_URL", "KGAY_ADMIN_KEY"} {
		if v, ok := values[key]; ok && v != "" {
			body += key + "=" + v + "\n"
		}
	}
	return afero.WriteFile(AppFs, path, []byte(body), 0600)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
