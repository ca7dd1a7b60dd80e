package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration. URI wins over the Atlas pieces when set.
type MongoConfig struct {
	URI      string
	User     string
	Password string
	Host     string
	AppName  string
	Database string
}

// Stripe configuration
type StripeConfig struct {
	SecretKey string
}

// CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// GuardConfig controls the admin access guard
type GuardConfig struct {
	Enabled bool
}

// PaymentsConfig holds payment lookup settings
type PaymentsConfig struct {
	LookupMonth string
}

// TelemetryConfig configures OpenTelemetry tracing
type TelemetryConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
}

// Config holds all application configuration
type Config struct {
	Environment  string
	Server       ServerConfig
	Mongo        MongoConfig
	Stripe       StripeConfig
	CORS         CORSConfig
	Guard        GuardConfig
	Payments     PaymentsConfig
	Telemetry    TelemetryConfig
	RateLimitRPM int
}

// Default configuration values
const (
	DefaultEnvironment       = "development"
	DefaultServerPort        = "5000"
	DefaultServerHost        = ""
	DefaultMongoHost         = "cluster0.oj7uysy.mongodb.net"
	DefaultMongoAppName      = "Cluster0"
	DefaultMongoDB           = "worktrack"
	DefaultLookupMonth       = "2024-01"
	DefaultRateLimitRPM      = 600
	DefaultServiceName       = "worktrack-server"
	DefaultGuardEnabled      = false
	DefaultTelemetryInsecure = true
	DefaultCORSCredentials   = true
)

// DefaultCORSOrigins are the front-end deployments allowed to call the API.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"https://worktrack-employee-management.netlify.app",
}

// New loads an optional .env file and returns a Config built from the
// environment with default values.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", DefaultEnvironment),
		Server: ServerConfig{
			Port: getEnv("PORT", DefaultServerPort),
			Host: getEnv("HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASS", ""),
			Host:     getEnv("MONGO_HOST", DefaultMongoHost),
			AppName:  getEnv("MONGO_APP_NAME", DefaultMongoAppName),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", DefaultCORSOrigins),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", DefaultCORSCredentials),
		},
		Guard: GuardConfig{
			Enabled: getEnvBool("ADMIN_GUARD_ENABLED", DefaultGuardEnabled),
		},
		Payments: PaymentsConfig{
			LookupMonth: getEnv("PAYMENT_LOOKUP_MONTH", DefaultLookupMonth),
		},
		Telemetry: TelemetryConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", DefaultTelemetryInsecure),
			ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		},
		RateLimitRPM: getEnvInt("RATE_LIMIT_RPM", DefaultRateLimitRPM),
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, DefaultEnvironment)
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// ConnectionURI returns the MongoDB connection string. An explicit URI is
// returned unchanged; otherwise an Atlas SRV string is assembled from the
// credentials, host and app name.
func (m *MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority&appName=%s",
		url.QueryEscape(m.User),
		url.QueryEscape(m.Password),
		m.Host,
		url.QueryEscape(m.AppName),
	)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		switch strings.ToLower(value) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		var cleaned []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			return cleaned
		}
	}
	return defaultValue
}
