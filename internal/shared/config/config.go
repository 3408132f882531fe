package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	FrontendURL    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig

	RateLimit RateLimitConfig
	Upload    UploadConfig
	Email     EmailConfig
	Kafka     KafkaConfig

	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// JWTConfig holds token issuance configuration. Secret is mandatory:
// the process refuses to start without it.
type JWTConfig struct {
	Secret           string
	Issuer           string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
	VerificationTTL  time.Duration
}

// PasswordConfig holds the password complexity policy enforced at
// registration and password reset.
type PasswordConfig struct {
	MinLength    int
	RequireUpper bool
	RequireLower bool
	RequireDigit bool
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool
	WindowDuration  time.Duration
	DefaultRequests int
	PublicRequests  int
	AuthRequests    int
	AdminRequests   int
	UploadRequests  int
	HealthRequests  int
	WhitelistedIPs  []string
}

// UploadConfig holds profile image upload constraints
type UploadConfig struct {
	MaxSize      int64
	Path         string
	AllowedTypes []string
}

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	Timeout      time.Duration
}

// KafkaConfig holds the notification broker configuration
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
	GroupID string
	Workers int
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "campus_db"),
			User:     getEnv("DB_USER", "campus_user"),
			Password: getEnv("DB_PASSWORD", "campus_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		JWT: JWTConfig{
			Secret:           os.Getenv("JWT_SECRET"),
			Issuer:           getEnv("JWT_ISSUER", "campus"),
			AccessExpiresIn:  getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshExpiresIn: getDurationEnvSeconds("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
			VerificationTTL:  getDurationEnv("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		},

		Password: PasswordConfig{
			MinLength:    getIntEnv("PASSWORD_MIN_LENGTH", 8),
			RequireUpper: getBoolEnv("PASSWORD_REQUIRE_UPPER", true),
			RequireLower: getBoolEnv("PASSWORD_REQUIRE_LOWER", true),
			RequireDigit: getBoolEnv("PASSWORD_REQUIRE_DIGIT", true),
		},

		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:    getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			UploadRequests:  getIntEnv("RATE_LIMIT_UPLOAD_REQUESTS", 20),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Upload: UploadConfig{
			MaxSize:      getInt64Env("MAX_UPLOAD_SIZE", 5*1024*1024), // 5 MB
			Path:         getEnv("UPLOAD_PATH", "./uploads"),
			AllowedTypes: getStringSliceEnv("UPLOAD_ALLOWED_TYPES", []string{"image/jpeg", "image/jpg", "image/png"}),
		},

		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@campus.edu"),
			FromName:     getEnv("FROM_NAME", "Campus"),
			Timeout:      getDurationEnv("SMTP_TIMEOUT", 10*time.Second),
		},

		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_NOTIFICATION_TOPIC", "campus.notifications.email"),
			GroupID: getEnv("KAFKA_CONSUMER_GROUP", "campus-notifications"),
			Workers: getIntEnv("KAFKA_CONSUMER_WORKERS", 3),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// MustLoad loads configuration and exits if a required value is missing.
// A missing signing secret makes every issued token unverifiable, so the
// process must not come up without one.
func MustLoad() *Config {
	cfg := Load()
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET is required and must be set before startup")
	}
	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds gets an environment variable as seconds (int) and converts to time.Duration
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
