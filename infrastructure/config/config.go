package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Lambda configuration
	IsLambda bool

	// External services
	OpenRouterAPIKey   string
	OpenRouterEndpoint string
	AppURL             string
	UnsplashAccessKey  string
	UnsplashEndpoint   string
	StripeSecretKey    string
	StripeEndpoint     string
	GatewayTimeout     time.Duration

	// Authentication
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// Rate limiting, requests per minute
	IPRateLimit   int
	UserRateLimit int

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", ""),
		EventBusName:  getEnv("EVENT_BUS_NAME", "flashcards-events"),

		IsLambda: getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "",

		OpenRouterAPIKey:   getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterEndpoint: getEnv("OPENROUTER_ENDPOINT", ""),
		AppURL:             getEnv("APP_URL", "http://localhost:3000"),
		UnsplashAccessKey:  getEnv("UNSPLASH_ACCESS_KEY", ""),
		UnsplashEndpoint:   getEnv("UNSPLASH_ENDPOINT", ""),
		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		StripeEndpoint:     getEnv("STRIPE_ENDPOINT", ""),
		GatewayTimeout:     time.Duration(getEnvInt("GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "flashcard-backend"),
		JWTAudience: getEnv("JWT_AUDIENCE", ""),

		IPRateLimit:   getEnvInt("IP_RATE_LIMIT", 120),
		UserRateLimit: getEnvInt("USER_RATE_LIMIT", 60),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", false),
		EnableTracing: getEnvBool("ENABLE_TRACING", false),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Development convenience only; production must name its table.
	if cfg.DynamoDBTable == "" && cfg.Environment != "production" {
		cfg.DynamoDBTable = "flashcards"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required in production")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
