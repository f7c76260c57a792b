package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// QR renderer service
	QRServiceURL     string
	QRServiceTimeout time.Duration

	// Rate limiting
	RateLimitGenerate string
	RateLimitValidate string
	RateLimitGlobal   string

	// Background cleanup of consumed/expired codes
	CodeCleanupInterval  time.Duration
	CodeCleanupRetention time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "loyalty-backend")
	viper.SetDefault("QR_SERVICE_URL", "http://localhost:8000")
	viper.SetDefault("QR_SERVICE_TIMEOUT", "5s")
	viper.SetDefault("RATE_LIMIT_GENERATE", "30-M")
	viper.SetDefault("RATE_LIMIT_VALIDATE", "60-M")
	viper.SetDefault("RATE_LIMIT_GLOBAL", "300-M")
	viper.SetDefault("CODE_CLEANUP_INTERVAL", "10m")
	viper.SetDefault("CODE_CLEANUP_RETENTION", "24h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.QRServiceURL = viper.GetString("QR_SERVICE_URL")
	qrTimeoutStr := viper.GetString("QR_SERVICE_TIMEOUT")
	qrTimeout, err := time.ParseDuration(qrTimeoutStr)
	if err != nil {
		qrTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for QR_SERVICE_TIMEOUT ('%s'). Defaulting to %s.\n", qrTimeoutStr, qrTimeout.String())
	}
	cfg.QRServiceTimeout = qrTimeout

	cfg.RateLimitGenerate = viper.GetString("RATE_LIMIT_GENERATE")
	cfg.RateLimitValidate = viper.GetString("RATE_LIMIT_VALIDATE")
	cfg.RateLimitGlobal = viper.GetString("RATE_LIMIT_GLOBAL")

	cleanupIntervalStr := viper.GetString("CODE_CLEANUP_INTERVAL")
	cleanupInterval, err := time.ParseDuration(cleanupIntervalStr)
	if err != nil {
		cleanupInterval = 10 * time.Minute
		log.Printf("Warning: Invalid value for CODE_CLEANUP_INTERVAL ('%s'). Defaulting to %s.\n", cleanupIntervalStr, cleanupInterval.String())
	}
	cfg.CodeCleanupInterval = cleanupInterval

	cleanupRetentionStr := viper.GetString("CODE_CLEANUP_RETENTION")
	cleanupRetention, err := time.ParseDuration(cleanupRetentionStr)
	if err != nil {
		cleanupRetention = 24 * time.Hour
		log.Printf("Warning: Invalid value for CODE_CLEANUP_RETENTION ('%s'). Defaulting to %s.\n", cleanupRetentionStr, cleanupRetention.String())
	}
	cfg.CodeCleanupRetention = cleanupRetention

	return cfg, nil
}
