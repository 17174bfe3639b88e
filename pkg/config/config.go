package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Email    EmailConfig
	Storage  StorageConfig
	AppURL   string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	ResendAPIKey string
	AdminInbox   string
}

type StorageConfig struct {
	R2AccountID string
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string
	R2PublicURL string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			AdminInbox:   getEnv("ADMIN_INBOX", "hola@devri.com.mx"),
		},
		Storage: StorageConfig{
			R2AccountID: getEnv("R2_ACCOUNT_ID", ""),
			R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
			R2SecretKey: getEnv("R2_SECRET_KEY", ""),
			R2Bucket:    getEnv("R2_BUCKET", "devri-content"),
			R2PublicURL: getEnv("R2_PUBLIC_URL", ""),
		},
		AppURL: getEnv("APP_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
