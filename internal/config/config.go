package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultRunAddress          = "localhost:8080"
	defaultMigrationsDir       = "internal/db/migrations"
	defaultSessionCacheTTL     = 5 * time.Second
	defaultSessionGrace        = 30 * time.Second
	defaultSessionRegistrySize = 1024
	defaultSessionRegistryTTL  = 15 * time.Minute
	defaultLogLevel            = "info"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
	LogLevel      string `env:"LOG_LEVEL"`

	// AuthURL базовый адрес провайдера аутентификации, например https://<project>.supabase.co.
	AuthURL    string `env:"AUTH_URL"`
	AuthAPIKey string `env:"AUTH_API_KEY"`
	// AuthJWTSecret если задан, токены проверяются локально до запроса к провайдеру.
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	// RedisAddress если пуст, блокировки продаж действуют только внутри одного процесса.
	RedisAddress  string `env:"REDIS_ADDRESS"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionCacheTTL     time.Duration `env:"SESSION_CACHE_TTL"`
	SessionGrace        time.Duration `env:"SESSION_GRACE"`
	SessionRegistrySize int           `env:"SESSION_REGISTRY_SIZE"`
	SessionRegistryTTL  time.Duration `env:"SESSION_REGISTRY_TTL"`
}

// String скрывает секреты, чтобы конфиг можно было писать в лог.
func (c Config) String() string {
	return fmt.Sprintf(
		"{RunAddress:%s MigrationsDir:%s LogLevel:%s AuthURL:%s RedisAddress:%s SessionCacheTTL:%s "+
			"SessionGrace:%s SessionRegistrySize:%d SessionRegistryTTL:%s DatabaseDSN:%s AuthAPIKey:%s "+
			"AuthJWTSecret:%s RedisPassword:%s}",
		c.RunAddress, c.MigrationsDir, c.LogLevel, c.AuthURL, c.RedisAddress, c.SessionCacheTTL,
		c.SessionGrace, c.SessionRegistrySize, c.SessionRegistryTTL, redact(c.DatabaseDSN), redact(c.AuthAPIKey),
		redact(c.AuthJWTSecret), redact(c.RedisPassword),
	)
}

// LoadConfig собирает конфиг из .env (если файл есть), переменных окружения и флагов args.
// Переменные окружения имеют приоритет над флагами.
func LoadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %s", err.Error())
	}

	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	if flagsErr := loadFlags(&flagsConfig, args); flagsErr != nil {
		return nil, fmt.Errorf("parse flags: %s", flagsErr.Error())
	}

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.AuthURL == "" {
		return nil, errors.New("auth provider URL is not set")
	}
	return conf, nil
}

func MustLoadConfig(args []string) *Config {
	config, err := LoadConfig(args)
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config, args []string) error {
	flags := flag.NewFlagSet("lynx", flag.ContinueOnError)
	flags.StringVar(&flagConfig.RunAddress, "a", defaultRunAddress, "Run address in format host:port")
	flags.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flags.StringVar(&flagConfig.MigrationsDir, "m", defaultMigrationsDir, "Database migrations directory, empty to skip")
	flags.StringVar(&flagConfig.LogLevel, "log-level", defaultLogLevel, "Log level")
	flags.StringVar(&flagConfig.AuthURL, "auth-url", "", "Auth provider base URL")
	flags.StringVar(&flagConfig.RedisAddress, "r", "", "Redis address for sale locks")
	flags.DurationVar(&flagConfig.SessionCacheTTL, "session-cache-ttl", defaultSessionCacheTTL, "Session check cache TTL")
	flags.DurationVar(&flagConfig.SessionGrace, "session-grace", defaultSessionGrace, "Session grace window")
	flags.IntVar(&flagConfig.SessionRegistrySize, "session-registry-size", defaultSessionRegistrySize,
		"Max number of tracked access tokens")
	flags.DurationVar(&flagConfig.SessionRegistryTTL, "session-registry-ttl", defaultSessionRegistryTTL,
		"How long a tracked access token is kept")

	return flags.Parse(args) //nolint:wrapcheck
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	return &Config{
		RunAddress:    defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress),
		DatabaseDSN:   defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN),
		MigrationsDir: defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir),
		LogLevel:      defaultIfBlank(envConfig.LogLevel, flagsConfig.LogLevel),
		AuthURL:       defaultIfBlank(envConfig.AuthURL, flagsConfig.AuthURL),
		AuthAPIKey:    envConfig.AuthAPIKey,
		AuthJWTSecret: envConfig.AuthJWTSecret,
		RedisAddress:  defaultIfBlank(envConfig.RedisAddress, flagsConfig.RedisAddress),
		RedisPassword: envConfig.RedisPassword,

		SessionCacheTTL:     defaultIfZero(envConfig.SessionCacheTTL, flagsConfig.SessionCacheTTL),
		SessionGrace:        defaultIfZero(envConfig.SessionGrace, flagsConfig.SessionGrace),
		SessionRegistrySize: defaultIfZero(envConfig.SessionRegistrySize, flagsConfig.SessionRegistrySize),
		SessionRegistryTTL:  defaultIfZero(envConfig.SessionRegistryTTL, flagsConfig.SessionRegistryTTL),
	}
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func defaultIfZero[T time.Duration | int](value, defaultValue T) T {
	if value == 0 {
		return defaultValue
	}
	return value
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
