package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
	JWT      JWTConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	PublicDir   string
}

const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver     string
	DataDir    string
	SQLitePath string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
	PoolMinConns   int32
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AdminConfig struct {
	Username     string
	PasswordHash string
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AdminEnabled reports whether the message inbox routes can be served.
func (c Config) AdminEnabled() bool {
	return c.Admin.PasswordHash != "" && c.JWT.AccessSecret != ""
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; variables already set win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}
	def := func(key, fallback string) string {
		if v := opt(key); v != "" {
			return v
		}
		return fallback
	}
	dur := func(key string, fallback time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return fallback
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return fallback
		}
		return d
	}
	i32 := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}

	port := opt("HTTP_PORT")
	if port == "" {
		port = def("PORT", "3000")
	}

	cfg.App = AppConfig{
		AppName:     def("APP_NAME", "portfolio"),
		Environment: def("APP_ENV", "development"),
		HTTPPort:    port,
		PublicDir:   def("PUBLIC_DIR", "public"),
	}

	dataDir := def("DATA_DIR", "data")
	cfg.Store = StoreConfig{
		Driver:     strings.ToLower(def("STORE_DRIVER", StoreDriverFile)),
		DataDir:    dataDir,
		SQLitePath: def("SQLITE_PATH", filepath.Join(dataDir, "portfolio.db")),
	}
	switch cfg.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite, StoreDriverPostgres:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST"),
		DBPort:         def("DB_PORT", "5432"),
		DBName:         opt("DB_NAME"),
		DBUser:         opt("DB_USER"),
		DBPassword:     opt("DB_PASSWORD"),
		DBSSLMode:      def("DB_SSL_MODE", "disable"),
		ConnectTimeout: dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:   i32("DB_POOL_MAX_CONNS"),
		PoolMinConns:   i32("DB_POOL_MIN_CONNS"),
	}
	if cfg.Store.Driver == StoreDriverPostgres {
		for _, key := range []string{"DB_HOST", "DB_NAME", "DB_USER"} {
			if opt(key) == "" {
				missing = append(missing, key)
			}
		}
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     def("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      dur("REDIS_TTL", 10*time.Minute),
	}

	cfg.Admin = AdminConfig{
		Username:     def("ADMIN_USERNAME", "admin"),
		PasswordHash: opt("ADMIN_PASSWORD_HASH"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}
	if cfg.Admin.PasswordHash != "" {
		if cfg.JWT.AccessSecret == "" {
			missing = append(missing, "JWT_ACCESS_SECRET")
		}
		if cfg.JWT.RefreshSecret == "" {
			missing = append(missing, "JWT_REFRESH_SECRET")
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
