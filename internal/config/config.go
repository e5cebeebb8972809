package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process and the operator CLI.
// All values come from env (optionally seeded from a .env file).
// No business logic should depend on raw environment variables.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Redis     RedisConfig
	HTTP      HTTPConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Env  string
	Port int
}

// StoreConfig selects the persistence backend.
// DatabaseURL presence gates whether Postgres persistence is attempted at all.
type StoreConfig struct {
	Backend     string
	DatabaseURL string
}

// RedisConfig locates the redis backend. URL, when set, replaces Host/Port/Password/DB.
type RedisConfig struct {
	URL       string
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

type HTTPConfig struct {
	AllowedOrigins []string
}

type DashboardConfig struct {
	InitialBalance float64
	CostPerMinute  float64
}

const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.Store.DatabaseURL = strings.TrimSpace(firstEnv("DATABASE_URL", "POSTGRES_URL"))
	c.Store.Backend = strings.ToLower(strings.TrimSpace(os.Getenv("STORE_BACKEND")))

	c.Redis.URL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := strings.TrimSpace(os.Getenv("REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			parseErrs = append(parseErrs, fmt.Errorf("REDIS_DB must be a non-negative integer, got %q", v))
		}
		c.Redis.DB = n
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, fmt.Errorf("REDIS_PORT must be an integer, got %q", v))
		}
		c.Redis.Port = n
	}
	c.Redis.KeyPrefix = strings.TrimSpace(os.Getenv("REDIS_KEY_PREFIX"))

	c.HTTP.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	{
		f, err := optionalFloat("INITIAL_BALANCE")
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.Dashboard.InitialBalance = f
	}
	{
		f, err := optionalFloat("COST_PER_MINUTE")
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.Dashboard.CostPerMinute = f
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the config and fills in defaults.
// Defaults are written through the pointer receiver so callers see them.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Store.Backend == "" {
		if c.Store.DatabaseURL != "" {
			c.Store.Backend = BackendPostgres
		} else {
			c.Store.Backend = BackendMemory
		}
	}
	switch c.Store.Backend {
	case BackendPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendRedis:
		if c.Redis.URL != "" {
			break
		}
		if c.Redis.Host == "" {
			errs = append(errs, errors.New("REDIS_HOST or REDIS_URL is required for the redis backend"))
		}
		if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
			errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
		}
	case BackendMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("STORE_BACKEND=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be one of postgres, redis, memory, got %q", c.Store.Backend))
	}

	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "callboard"
	}
	if len(c.HTTP.AllowedOrigins) == 0 {
		c.HTTP.AllowedOrigins = []string{"*"}
	}

	if c.Dashboard.InitialBalance == 0 {
		c.Dashboard.InitialBalance = 15000
	}
	if c.Dashboard.InitialBalance < 0 {
		errs = append(errs, fmt.Errorf("INITIAL_BALANCE must not be negative, got %v", c.Dashboard.InitialBalance))
	}
	if c.Dashboard.CostPerMinute == 0 {
		c.Dashboard.CostPerMinute = 0.50
	}
	if c.Dashboard.CostPerMinute < 0 {
		errs = append(errs, fmt.Errorf("COST_PER_MINUTE must not be negative, got %v", c.Dashboard.CostPerMinute))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalFloat(key string) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, v)
	}
	return f, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
