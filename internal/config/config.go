package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pantry-app-go/pkg/logger"
)

type Config struct {
	HTTPPort string
	Env      string
	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Groups   GroupsConfig
	Argon2   Argon2Config
	Log      LogConfig
}

type HTTPConfig struct {
	RequestTimeout     time.Duration
	CORSAllowedOrigins []string
}

type DBConfig struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GroupsConfig struct {
	CacheTTL            time.Duration
	AdminsManageMembers bool
	InviteTTL           time.Duration
}

type Argon2Config struct {
	MemoryKB    int
	Iterations  int
	Parallelism int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load resolves configuration from the process environment, then a .env
// file, then the YAML file at path (or CONFIG_FILE), then defaults.
func Load(log logger.Logger, path string) (Config, error) {
	dotenvPath, dotenv, err := readDotEnv()
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if dotenvPath != "" {
		log.Info("config: loaded .env", "path", dotenvPath, "keys", len(dotenv))
	}

	src := source{dotenv: dotenv}
	if path == "" {
		path = src.lookup("CONFIG_FILE")
	}
	src.file, err = loadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config file: %w", err)
	}
	if path != "" {
		log.Info("config: loaded file", "path", path, "keys", len(src.file))
	}

	return Config{
		HTTPPort: src.getEnv("HTTP_PORT", "8080"),
		Env:      src.getEnv("ENV", "development"),
		HTTP: HTTPConfig{
			RequestTimeout:     src.getEnvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
			CORSAllowedOrigins: src.getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		DB: DBConfig{
			Driver:          src.getEnv("DB_DRIVER", "postgres"),
			DSN:             src.getEnv("DB_DSN", ""),
			Host:            src.getEnv("DB_HOST", "localhost"),
			Port:            src.getEnv("DB_PORT", "5432"),
			User:            src.getEnv("DB_USER", "postgres"),
			Password:        src.getEnv("DB_PASSWORD", "postgres"),
			Name:            src.getEnv("DB_NAME", "pantry_app"),
			SSLMode:         src.getEnv("DB_SSLMODE", "disable"),
			TimeZone:        src.getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    src.getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    src.getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: src.getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     src.getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Addr:     src.getEnv("REDIS_ADDR", ""),
			Password: src.getEnv("REDIS_PASSWORD", ""),
			DB:       src.getEnvInt("REDIS_DB", 0),
		},
		Groups: GroupsConfig{
			CacheTTL:            src.getEnvDuration("GROUPS_CACHE_TTL", time.Minute),
			AdminsManageMembers: src.getEnvBool("AUTHZ_ADMINS_MANAGE_MEMBERS", true),
			InviteTTL:           src.getEnvDuration("INVITE_TTL", 0),
		},
		Argon2: Argon2Config{
			MemoryKB:    src.getEnvInt("ARGON2_MEMORY_KB", 64*1024),
			Iterations:  src.getEnvInt("ARGON2_ITERATIONS", 3),
			Parallelism: src.getEnvInt("ARGON2_PARALLELISM", 2),
		},
		Log: LogConfig{
			Level:  src.getEnv("LOG_LEVEL", "info"),
			Format: src.getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

// source reads a key from the environment, then .env, then the config file.
type source struct {
	dotenv map[string]string
	file   map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := s.dotenv[key]; value != "" {
		return value
	}
	return s.file[key]
}

func (s source) getEnv(key, fallback string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return fallback
}

func (s source) getEnvInt(key string, fallback int) int {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) getEnvBool(key string, fallback bool) bool {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (s source) getEnvList(key string, fallback []string) []string {
	value := s.lookup(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
