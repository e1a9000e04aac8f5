package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type Config struct {
	LogLevel   string           `mapstructure:"log_level"`
	Server     ServerConfig     `mapstructure:"server"`
	Storefront StorefrontConfig `mapstructure:"storefront"`
	OTLP       OTLPConfig       `mapstructure:"otlp"`
	Cart       CartConfig       `mapstructure:"cart"`
	Redis      RedisConfig      `mapstructure:"redis"`
}

// Level parses LogLevel, falling back to Info
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorefrontConfig holds the upstream commerce API settings
type StorefrontConfig struct {
	StoreDomain       string        `mapstructure:"store_domain"`
	AccessToken       string        `mapstructure:"access_token"`
	APIVersion        string        `mapstructure:"api_version"`
	PublicStoreURL    string        `mapstructure:"public_store_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	PageSize          int           `mapstructure:"page_size"`
}

// Configured reports whether both credentials are present
func (c StorefrontConfig) Configured() bool {
	return c.StoreDomain != "" && c.AccessToken != ""
}

type OTLPConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
	// Enabled turns export on; without it providers run in no-op mode
	Enabled bool `mapstructure:"enabled"`
}

// CartConfig selects the cart store: "memory" or "redis"
type CartConfig struct {
	Store string        `mapstructure:"store"`
	TTL   time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

var envBindings = map[string]string{
	"log_level":                      "LOG_LEVEL",
	"server.host":                    "SERVER_HOST",
	"server.port":                    "SERVER_PORT",
	"server.shutdown_timeout":        "SERVER_SHUTDOWN_TIMEOUT",
	"storefront.store_domain":        "SHOPIFY_STORE_DOMAIN",
	"storefront.access_token":        "SHOPIFY_STOREFRONT_API_TOKEN",
	"storefront.api_version":         "SHOPIFY_API_VERSION",
	"storefront.public_store_url":    "PUBLIC_STORE_URL",
	"storefront.timeout":             "SHOPIFY_TIMEOUT",
	"storefront.requests_per_second": "SHOPIFY_REQUESTS_PER_SECOND",
	"storefront.page_size":           "STOREFRONT_PAGE_SIZE",
	"otlp.endpoint":                  "OTEL_EXPORTER_OTLP_ENDPOINT",
	"otlp.service_name":              "OTEL_SERVICE_NAME",
	"otlp.environment":               "OTEL_ENVIRONMENT",
	"otlp.enabled":                   "OTEL_ENABLED",
	"cart.store":                     "CART_STORE",
	"cart.ttl":                       "CART_TTL",
	"redis.addr":                     "REDIS_ADDR",
	"redis.password":                 "REDIS_PASSWORD",
	"redis.db":                       "REDIS_DB",
}

// LoadConfig reads defaults, an optional YAML file and environment overrides.
// The file comes from STOREFRONT_CONFIG_FILE or the --config flag in args.
func LoadConfig(args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	path, err := configFilePath(args)
	if err != nil {
		return nil, err
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// LoadDotEnv loads a .env file into the environment outside production.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if os.Getenv("OTEL_ENVIRONMENT") == "production" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func configFilePath(args []string) (string, error) {
	flags := pflag.NewFlagSet("storefront-api", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	file := flags.String("config", "", "path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return "", fmt.Errorf("failed to parse flags: %w", err)
	}
	if env, ok := os.LookupEnv(configFileEnvName); ok && env != "" {
		return env, nil
	}
	return *file, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "INFO")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storefront.store_domain", "")
	v.SetDefault("storefront.access_token", "")
	v.SetDefault("storefront.api_version", "2024-10")
	v.SetDefault("storefront.public_store_url", "")
	v.SetDefault("storefront.timeout", 10*time.Second)
	v.SetDefault("storefront.requests_per_second", 10)
	v.SetDefault("storefront.page_size", 24)

	v.SetDefault("otlp.endpoint", "localhost:4317")
	v.SetDefault("otlp.service_name", "storefront-api")
	v.SetDefault("otlp.environment", "development")
	v.SetDefault("otlp.enabled", false)

	v.SetDefault("cart.store", "memory")
	v.SetDefault("cart.ttl", 30*24*time.Hour)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}
