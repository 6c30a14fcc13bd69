package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name     string
		Env      string
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`

	HTTP struct {
		Port    string
		Timeout time.Duration
	} `mapstructure:"http"`

	Database struct {
		Driver          string
		Host            string
		Port            string
		User            string
		Password        string
		Name            string
		SSLMode         string        `mapstructure:"sslmode"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
		Migrate         bool
	} `mapstructure:"database"`

	Kafka struct {
		Enabled bool
		Brokers []string
		GroupID string `mapstructure:"group_id"`
	} `mapstructure:"kafka"`

	Redis struct {
		Enabled    bool
		Addr       string
		Password   string
		DB         int
		PricingTTL time.Duration `mapstructure:"pricing_ttl"`
	} `mapstructure:"redis"`

	Tracing struct {
		Enabled        bool
		JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	} `mapstructure:"tracing"`

	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`
}

// IsDevelopment reports whether logs should be human readable.
func (c Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

var defaults = map[string]interface{}{
	"app.name":                   "costing-service",
	"app.env":                    "development",
	"app.log_level":              "info",
	"http.port":                  "8085",
	"http.timeout":               "30s",
	"database.driver":            "postgres",
	"database.host":              "localhost",
	"database.port":              "5432",
	"database.user":              "postgres",
	"database.password":          "postgres",
	"database.name":              "costingdb",
	"database.sslmode":           "disable",
	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",
	"database.migrate":           true,
	"kafka.enabled":              false,
	"kafka.brokers":              []string{"localhost:9092"},
	"kafka.group_id":             "costing-service",
	"redis.enabled":              false,
	"redis.addr":                 "localhost:6379",
	"redis.password":             "",
	"redis.db":                   0,
	"redis.pricing_ttl":          "1m",
	"tracing.enabled":            false,
	"tracing.jaeger_endpoint":    "http://localhost:14268/api/traces",
	"auth.jwt_secret":            "",
}

// Plain variable names shared with the rest of the deployment stack.
var legacyEnv = map[string]string{
	"app.name":                "OTEL_SERVICE_NAME",
	"app.env":                 "ENVIRONMENT",
	"app.log_level":           "LOG_LEVEL",
	"http.port":               "HTTP_PORT",
	"database.driver":         "DB_DRIVER",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.sslmode":        "DB_SSLMODE",
	"kafka.brokers":           "KAFKA_BROKERS",
	"redis.addr":              "REDIS_ADDR",
	"tracing.jaeger_endpoint": "JAEGER_ENDPOINT",
	"auth.jwt_secret":         "JWT_SECRET",
}

// Load reads .env (if any), then the yaml file at path (if any), then the
// environment. Later sources win.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("COSTING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range legacyEnv {
		prefixed := "COSTING_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, name); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
