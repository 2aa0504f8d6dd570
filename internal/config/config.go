package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	Facebook  PlatformConfig
	Instagram PlatformConfig
	Google    PlatformConfig

	FacebookVerifyToken string
}

// PlatformConfig holds the app-level credentials for one external platform.
// Page-level access tokens live on social_pages rows, not here.
type PlatformConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	accessExpiry, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRY", "24h"))
	if err != nil {
		accessExpiry = 24 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:       getEnvOrPanic("JWT_SECRET"),
		JWTAccessExpiry: accessExpiry,

		Facebook: PlatformConfig{
			ClientID:     getEnv("FACEBOOK_APP_ID", ""),
			ClientSecret: getEnv("FACEBOOK_APP_SECRET", ""),
			RedirectURL:  getEnv("FACEBOOK_REDIRECT_URL", ""),
		},
		Instagram: PlatformConfig{
			ClientID:     getEnv("INSTAGRAM_APP_ID", ""),
			ClientSecret: getEnv("INSTAGRAM_APP_SECRET", ""),
			RedirectURL:  getEnv("INSTAGRAM_REDIRECT_URL", ""),
		},
		Google: PlatformConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},

		FacebookVerifyToken: getEnv("FACEBOOK_VERIFY_TOKEN", ""),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}
