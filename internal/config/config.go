package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecretKey string
	DatabasePath string

	// SMS provider credentials. When empty, verification codes are written
	// to the log instead of being delivered (development mode).
	SMSAccessKey  string
	SMSTemplateID int
	SMSAPIURL     string

	CountriesAPIURL string

	// Bounds of the simulated reply delay window.
	ReplyMinDelay time.Duration
	ReplyMaxDelay time.Duration

	Environment string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		JWTSecretKey:    getEnv("JWT_SECRET_KEY", ""),
		DatabasePath:    getEnv("DATABASE_PATH", "chatspark.db"),
		SMSAccessKey:    getEnv("SMS_ACCESS_KEY", ""),
		SMSTemplateID:   getEnvAsInt("SMS_TEMPLATE_ID", 0),
		SMSAPIURL:       getEnv("SMS_API_URL", ""),
		CountriesAPIURL: getEnv("COUNTRIES_API_URL", "https://restcountries.com/v3.1/all?fields=name,idd,flags,cca2"),
		ReplyMinDelay:   time.Duration(getEnvAsInt("REPLY_MIN_DELAY_MS", 1500)) * time.Millisecond,
		ReplyMaxDelay:   time.Duration(getEnvAsInt("REPLY_MAX_DELAY_MS", 3500)) * time.Millisecond,
		Environment:     env,
	}

	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.SMSAccessKey == "" {
			missing = append(missing, "SMS_ACCESS_KEY")
		}
		if cfg.SMSAPIURL == "" {
			missing = append(missing, "SMS_API_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
