package config

import (
	"os"
	"strconv"
	"time"
)

// Config advocare-web（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Analysis  AnalysisConfig
	Upload    UploadConfig
	DBEnabled bool
	Database  DatabaseConfig
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Session SessionConfig
	Log     struct {
		Level  string
		Format string
	}
}

// AnalysisConfig external bill-analysis backend
type AnalysisConfig struct {
	BaseURL string        // analysis service address
	Timeout time.Duration // per-submission deadline
}

// UploadConfig active upload limit policy.
// MaxFiles == 0 disables the count check (size-based policy).
type UploadConfig struct {
	MaxFileSize  int64
	MaxTotalSize int64
	MaxFiles     int
}

// SessionConfig auth session tokens kept in Redis
type SessionConfig struct {
	TTL time.Duration
}

// DatabaseConfig PostgreSQL 连接配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// GetDSN 返回 lib/pq DSN
func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":3000")

	cfg.Analysis.BaseURL = getEnv("ANALYSIS_BASE_URL", "http://localhost:8000")
	cfg.Analysis.Timeout = parseDuration(getEnv("ANALYSIS_TIMEOUT", "120s"), 120*time.Second)

	// Size-based policy by default (5MB per file, 20MB combined).
	// Set UPLOAD_MAX_FILES to switch to the count-based policy.
	cfg.Upload.MaxFileSize = parseInt64(getEnv("UPLOAD_MAX_FILE_SIZE", "5242880"), 5<<20)
	cfg.Upload.MaxTotalSize = parseInt64(getEnv("UPLOAD_MAX_TOTAL_SIZE", "20971520"), 20<<20)
	cfg.Upload.MaxFiles = parseInt(getEnv("UPLOAD_MAX_FILES", "0"), 0)

	// Default to true for local dev: if DB is unavailable, advocare-web will fall back to memory repos.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "advocare")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseInt64(s string, def int64) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	return def
}

func parseDuration(s string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(s); err == nil {
		return v
	}
	return def
}
