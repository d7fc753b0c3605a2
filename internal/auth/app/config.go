package app

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultTokenTTL     = time.Hour
	DefaultStoreTimeout = 2 * time.Second
)

type Config struct {
	Secret       string        `validate:"required,min=32" secret:"true"` // Required: HMAC signing secret, at least 32 bytes
	TokenTTL     time.Duration `validate:"gt=0"`                          // Token lifetime (default: 1h)
	HeaderScheme string        `validate:"required"`                      // Authorization header prefix (default: "Bearer ")
	Issuer       string        `validate:"required"`                      // iss claim (default: gatekeeper)
	ClockSkew    time.Duration `validate:"gte=0"`                         // Leeway for exp/nbf checks (default: 0)

	PasswordHasher string `validate:"oneof=argon2id bcrypt"` // argon2id or bcrypt (default: argon2id)
	BcryptCost     int    `validate:"min=4,max=31"`          // bcrypt work factor (default: 12)
	PepperFile     string `validate:"required"`              // Pepper for argon2id (default: ./pepper)

	DatabaseFile  string        `validate:"required"` // SQLite database file (default: ./auth.db)
	StoreTimeout  time.Duration `validate:"gt=0"`     // Per-lookup deadline (default: 2s)
	SeedDemoUsers bool                                // Create admin/admin123 and user/user123 on start (default: false)

	Env                 string        `validate:"required"`                    // Environment (dev, test, prod) (default: dev)
	LogLevel            string        `validate:"oneof=debug info warn error"` // Log level (default: info)
	LogFormat           string        `validate:"oneof=json text"`             // Log format (default: json)
	Port                int           `validate:"min=1,max=65535"`             // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration `validate:"gt=0"`                        // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Secret:       os.Getenv("AUTH_SECRET"),
		TokenTTL:     getEnvDurationOrDefault("AUTH_TOKEN_TTL", DefaultTokenTTL),
		HeaderScheme: getEnvOrDefault("AUTH_HEADER_SCHEME", "Bearer "),
		Issuer:       getEnvOrDefault("AUTH_ISSUER", "gatekeeper"),
		ClockSkew:    getEnvDurationOrDefault("AUTH_CLOCK_SKEW", 0),

		PasswordHasher: strings.ToLower(getEnvOrDefault("AUTH_PASSWORD_HASHER", "argon2id")),
		BcryptCost:     getEnvIntOrDefault("AUTH_BCRYPT_COST", 12),
		PepperFile:     getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		DatabaseFile:  getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		StoreTimeout:  getEnvDurationOrDefault("AUTH_STORE_TIMEOUT", DefaultStoreTimeout),
		SeedDemoUsers: getEnvBoolOrDefault("AUTH_SEED_DEMO_USERS", false),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:           strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// String renders the config with secret fields redacted.
func (c Config) String() string {
	v := reflect.ValueOf(c)
	t := v.Type()

	var sb strings.Builder
	sb.WriteString("Config{")
	for i := range t.NumField() {
		field := t.Field(i)
		value := fmt.Sprintf("%v", v.Field(i).Interface())
		if field.Tag.Get("secret") == "true" {
			value = "***REDACTED***"
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(field.Name + ": " + value)
	}
	sb.WriteString("}")
	return sb.String()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
