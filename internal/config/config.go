package config

import (
	"errors"  // Validation errors
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // List parsing
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
)

// Supported store drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	DBDriver     string        // mysql, postgres or sqlite
	DBDSN        string        // Full DSN, overrides the DB_* parts
	DBUser       string        // Database user
	DBPassword   string        // Database password
	DBHost       string        // Database host
	DBPort       string        // Database port
	DBName       string        // Database name
	JWTSecret    string        // JWT secret key
	TokenTTL     time.Duration // Session token lifetime
	RedisAddr    string        // Redis server address, empty disables caching
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	CacheTTL     time.Duration // TTL of cached reads
	KafkaBrokers []string      // Kafka brokers, empty disables transfer events
	KafkaTopic   string        // Topic for transfer events
	CORSOrigins  []string      // Allowed CORS origins
	LogLevel     string        // logrus level name
	IsProd       bool          // Is production environment
}

// LoadConfig loads configuration from a .env file, if present, and the environment
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:      getEnv("PORT", "5000"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBDSN:        os.Getenv("DB_DSN"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBHost:       getEnv("DB_HOST", "127.0.0.1"),
		DBPort:       os.Getenv("DB_PORT"),
		DBName:       getEnv("DB_NAME", "fastpay"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     getDuration("TOKEN_TTL", time.Hour),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      redisDB,
		CacheTTL:     getDuration("CACHE_TTL", 60*time.Second),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "transfer_completed"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		IsProd:       os.Getenv("IS_PROD") == "true",
	}
}

// Validate reports configuration that the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
	case DriverSQLite:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}
	return errors.Join(errs...)
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}

// getEnv returns the variable or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
