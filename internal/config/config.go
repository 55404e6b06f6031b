package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Identity backends understood by the server.
const (
	BackendLocal    = "local"
	BackendFirebase = "firebase"
)

// Provider exposes configuration to components that should not depend on the
// concrete Config struct (handlers, tests).
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetIdentityBackend() string
	GetFirebaseAPIKey() string
	GetFirebaseAuthURL() string
	GetDataDir() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr      string
	AppBaseURL      string
	SessionSecret   string
	IdentityBackend string
	FirebaseAPIKey  string
	FirebaseAuthURL string
	DataDir         string
	TracingEnabled  bool
	TracingService  string
	ZipkinURL       string
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment without
// touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerAddr:      getenv("SERVER_ADDR", ":8080"),
		AppBaseURL:      getenv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		IdentityBackend: getenv("IDENTITY_BACKEND", BackendLocal),
		FirebaseAPIKey:  os.Getenv("FIREBASE_API_KEY"),
		FirebaseAuthURL: getenv("FIREBASE_AUTH_URL", "https://identitytoolkit.googleapis.com"),
		DataDir:         getenv("DATA_DIR", "data"),
		TracingService:  getenv("PUBSUB_TRACING_SERVICE_NAME", "examwhispers"),
		ZipkinURL:       getenv("PUBSUB_TRACING_ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
	}
	if v := os.Getenv("PUBSUB_TRACING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.TracingEnabled = enabled
		}
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("required environment variable SESSION_SECRET is not set")
	}
	switch cfg.IdentityBackend {
	case BackendLocal:
	case BackendFirebase:
		if cfg.FirebaseAPIKey == "" {
			return nil, errors.New("IDENTITY_BACKEND=firebase requires FIREBASE_API_KEY")
		}
	default:
		return nil, errors.New("IDENTITY_BACKEND must be one of: local, firebase")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetServerAddr() string      { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string      { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string   { return c.SessionSecret }
func (c *Config) GetIdentityBackend() string { return c.IdentityBackend }
func (c *Config) GetFirebaseAPIKey() string  { return c.FirebaseAPIKey }
func (c *Config) GetFirebaseAuthURL() string { return c.FirebaseAuthURL }
func (c *Config) GetDataDir() string         { return c.DataDir }
