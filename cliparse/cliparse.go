package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// StoreConfig selects and configures the vote store. PostgREST wins when
// PostgrestURL is set; otherwise DatabaseURL is opened with DatabaseType.
type StoreConfig struct {
	DatabaseURL    string        `env:"DATABASE_URL"`
	DatabaseType   string        `env:"DATABASE_TYPE" env-default:"postgres"`
	PostgrestURL   string        `env:"POSTGREST_URL"`
	PostgrestKey   string        `env:"POSTGREST_KEY"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" env-default:"0"`
	TotalsCacheTTL time.Duration `env:"TOTALS_CACHE_TTL" env-default:"0s"`
}

type Config struct {
	Port               int      `env:"PORT" env-default:"3318"`
	AllowedOrigins     []string `env:"ALLOWED_ORIGINS" env-separator:","`
	DeviceCookieSecret string   `env:"DEVICE_COOKIE_SECRET"`
	DeviceCookieSecure bool     `env:"DEVICE_COOKIE_SECURE" env-default:"false"`
	LogLevel           string   `env:"LOG_LEVEL" env-default:"info"`
	LogEncoding        string   `env:"LOG_ENCODING" env-default:"json"`
	Store              StoreConfig
}

// ClientConfig configures the pollctl terminal client
type ClientConfig struct {
	DeviceFile string `env:"DEVICE_FILE"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"warn"`
	Store      StoreConfig
}

// UsesPostgrest reports whether the REST backend is selected
func (c StoreConfig) UsesPostgrest() bool {
	return c.PostgrestURL != ""
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	fs := flag.NewFlagSet("ridepolls", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	origins := fs.String("origins", strings.Join(cfg.AllowedOrigins, ","), "Comma-separated CORS origins")
	fs.StringVar(&cfg.DeviceCookieSecret, "cookie-secret", cfg.DeviceCookieSecret, "Device cookie HMAC secret (prefer env)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	registerStoreFlags(fs, &cfg.Store)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.AllowedOrigins = splitList(*origins)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if err := cfg.Store.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseClientFlags parses pollctl flags and returns the remaining arguments
func ParseClientFlags(args []string) (ClientConfig, []string, error) {
	var cfg ClientConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return ClientConfig{}, nil, fmt.Errorf("reading environment: %w", err)
	}

	fs := flag.NewFlagSet("pollctl", flag.ContinueOnError)
	fs.StringVar(&cfg.DeviceFile, "device", cfg.DeviceFile, "File holding this machine's device token")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	registerStoreFlags(fs, &cfg.Store)

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, nil, err
	}

	if cfg.DeviceFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ClientConfig{}, nil, fmt.Errorf("no -device given and no user config dir: %w", err)
		}
		cfg.DeviceFile = filepath.Join(dir, "ridepolls", "device.json")
	}
	if err := cfg.Store.validate(); err != nil {
		return ClientConfig{}, nil, err
	}

	return cfg, fs.Args(), nil
}

func registerStoreFlags(fs *flag.FlagSet, sc *StoreConfig) {
	fs.StringVar(&sc.DatabaseURL, "d", sc.DatabaseURL, "Database URL")
	fs.StringVar(&sc.DatabaseType, "t", sc.DatabaseType, "Database type (postgres or sqlite)")
	fs.StringVar(&sc.PostgrestURL, "rest", sc.PostgrestURL, "PostgREST base URL, e.g. https://<project>.supabase.co/rest/v1")
	fs.StringVar(&sc.PostgrestKey, "key", sc.PostgrestKey, "PostgREST API key (prefer env)")
	fs.StringVar(&sc.RedisAddr, "redis", sc.RedisAddr, "Redis address for the totals cache")
	fs.DurationVar(&sc.TotalsCacheTTL, "cache-ttl", sc.TotalsCacheTTL, "Totals cache TTL (0 disables)")
}

func (c StoreConfig) validate() error {
	if c.UsesPostgrest() {
		return nil
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env), or -rest / POSTGREST_URL")
	}
	switch c.DatabaseType {
	case DatabasePostgres, DatabaseSQLite:
		return nil
	}
	return fmt.Errorf("unsupported database type %q (postgres or sqlite)", c.DatabaseType)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
