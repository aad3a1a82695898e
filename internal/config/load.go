package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable read by Load.
const EnvPrefix = "TASKAPI"

// keys lists every configuration key so that viper.AutomaticEnv can resolve
// them during Unmarshal. Each entry is paired with its default value; nil
// means the key has no default and must be supplied.
var keys = []struct {
	name string
	def  any
}{
	{"server.port", 8080},
	{"server.log_level", "info"},
	{"server.read_timeout_seconds", 15},
	{"server.write_timeout_seconds", 15},
	{"server.idle_timeout_seconds", 60},
	{"server.shutdown_timeout_seconds", 10},
	{"server.cors_allowed_origins", "*"},
	{"database.url", nil},
	{"database.max_open_conns", 25},
	{"database.max_idle_conns", 25},
	{"database.conn_max_lifetime_minutes", 5},
	{"auth.jwt_secret", nil},
	{"auth.token_lifetime_minutes", 60 * 24},
	{"auth.bcrypt_cost", 10},
	{"ratelimit.enabled", true},
	{"ratelimit.redis_addr", "localhost:6379"},
	{"ratelimit.redis_password", ""},
	{"ratelimit.redis_db", 0},
	{"ratelimit.register_limit", 10},
	{"ratelimit.register_window_seconds", 60},
	{"ratelimit.key_prefix", "taskapi:ratelimit"},
}

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first if present; variables
// already set in the process environment are never overwritten by it.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, k := range keys {
		if k.def != nil {
			v.SetDefault(k.name, k.def)
		} else {
			// BindEnv registers the key so Unmarshal sees it without a default.
			if err := v.BindEnv(k.name); err != nil {
				return nil, fmt.Errorf("failed to bind %s: %w", k.name, err)
			}
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
