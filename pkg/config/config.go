package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	ftpUserPrefix = "FTP_USER_"
	ftpPassPrefix = "FTP_PASS_"
)

type Config struct {
	Env  string
	Port int

	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	CORS     CORSConfig
	Log      LogConfig
	FTP      FTPConfig
	Upload   UploadConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig toggles the Redis read-through cache for directory lookups.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FTPCredentials is the login pair for one document category.
type FTPCredentials struct {
	User     string
	Password string
}

// FTPConfig describes the remote store shared by every category. A non-empty
// LocalDir replaces the FTP host with a directory tree on disk.
type FTPConfig struct {
	Host             string
	Port             int
	Secure           bool
	TLSInsecure      bool
	Timeout          time.Duration
	LocalDir         string
	DirPollAttempts  int
	DirPollInterval  time.Duration
	BreakerEnabled   bool
	BreakerFailures  uint32
	BreakerOpenFor   time.Duration
	CategoryAccounts map[string]FTPCredentials
}

// UploadConfig bounds multipart intake. RecordRetries of zero disables the
// background retry of submission records.
type UploadConfig struct {
	MaxFileSizeBytes int64
	RecordRetries    int
	RecordRetryDelay time.Duration
}

// AuthConfig controls how the submitting user is identified.
type AuthConfig struct {
	JWTSecret    string
	RequireToken bool
	UsersTable   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("CACHE_ENABLED"),
		TTL:     parseDuration(v.GetString("CACHE_TTL"), 5*time.Minute),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.FTP = FTPConfig{
		Host:             v.GetString("FTP_HOST"),
		Port:             v.GetInt("FTP_PORT"),
		Secure:           v.GetBool("FTP_SECURE"),
		TLSInsecure:      v.GetBool("FTP_TLS_INSECURE"),
		Timeout:          parseDuration(v.GetString("FTP_TIMEOUT"), 30*time.Second),
		LocalDir:         v.GetString("FTP_LOCAL_DIR"),
		DirPollAttempts:  v.GetInt("FTP_DIR_POLL_ATTEMPTS"),
		DirPollInterval:  parseDuration(v.GetString("FTP_DIR_POLL_INTERVAL"), 100*time.Millisecond),
		BreakerEnabled:   v.GetBool("FTP_BREAKER_ENABLED"),
		BreakerFailures:  uint32(v.GetInt("FTP_BREAKER_FAILURES")),
		BreakerOpenFor:   parseDuration(v.GetString("FTP_BREAKER_OPEN_FOR"), 30*time.Second),
		CategoryAccounts: categoryAccounts(v, os.Environ()),
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeBytes: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
		RecordRetries:    v.GetInt("UPLOAD_RECORD_RETRIES"),
		RecordRetryDelay: parseDuration(v.GetString("UPLOAD_RECORD_RETRY_DELAY"), 5*time.Second),
	}

	cfg.Auth = AuthConfig{
		JWTSecret:    v.GetString("AUTH_JWT_SECRET"),
		RequireToken: v.GetBool("AUTH_REQUIRE_TOKEN"),
		UsersTable:   v.GetString("AUTH_USERS_TABLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("CACHE_TTL", "5m")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("FTP_HOST", "localhost")
	v.SetDefault("FTP_PORT", 21)
	v.SetDefault("FTP_SECURE", false)
	v.SetDefault("FTP_TLS_INSECURE", false)
	v.SetDefault("FTP_TIMEOUT", "30s")
	v.SetDefault("FTP_LOCAL_DIR", "")
	v.SetDefault("FTP_DIR_POLL_ATTEMPTS", 5)
	v.SetDefault("FTP_DIR_POLL_INTERVAL", "100ms")
	v.SetDefault("FTP_BREAKER_ENABLED", false)
	v.SetDefault("FTP_BREAKER_FAILURES", 5)
	v.SetDefault("FTP_BREAKER_OPEN_FOR", "30s")

	v.SetDefault("UPLOAD_MAX_FILE_SIZE", 0)
	v.SetDefault("UPLOAD_RECORD_RETRIES", 5)

	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_REQUIRE_TOKEN", false)
	v.SetDefault("AUTH_USERS_TABLE", "auth.users")
}

// categoryAccounts collects FTP_USER_<ID>/FTP_PASS_<ID> pairs from the .env
// file and the process environment. <ID> maps to a category id by lowercasing
// and turning underscores into hyphens (FTP_USER_NFS_TOMADO -> nfs-tomado).
func categoryAccounts(v *viper.Viper, environ []string) map[string]FTPCredentials {
	keys := make(map[string]struct{})
	for _, key := range v.AllKeys() {
		upper := strings.ToUpper(key)
		if strings.HasPrefix(upper, ftpUserPrefix) {
			keys[upper] = struct{}{}
		}
	}
	for _, kv := range environ {
		name, _, found := strings.Cut(kv, "=")
		if found && strings.HasPrefix(name, ftpUserPrefix) {
			keys[name] = struct{}{}
		}
	}

	accounts := make(map[string]FTPCredentials, len(keys))
	for key := range keys {
		suffix := strings.TrimPrefix(key, ftpUserPrefix)
		user := strings.TrimSpace(v.GetString(key))
		if suffix == "" || user == "" {
			continue
		}
		category := strings.ReplaceAll(strings.ToLower(suffix), "_", "-")
		accounts[category] = FTPCredentials{
			User:     user,
			Password: v.GetString(ftpPassPrefix + suffix),
		}
	}
	return accounts
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
