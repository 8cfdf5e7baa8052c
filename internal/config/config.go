package config

import (
	"os"
	"strconv"
)

// MongoConfig holds document store connection settings.
type MongoConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	AuthSource string
	TimeoutSec int
}

// MinIOConfig holds object storage settings for MinIO.
// RootPrefix is the top of the resource folder tree inside the bucket.
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	RootPrefix string
	UseSSL     bool
}

// AuthConfig holds settings for verifying bearer credentials issued by the
// external identity service.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Mongo   MongoConfig
	MinIO   MinIOConfig
	Auth    AuthConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Mongo: MongoConfig{
			Host:       getEnv("MONGO_HOST", ""),
			Port:       getEnv("MONGO_PORT", "27017"),
			User:       getEnv("MONGO_USER", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Name:       getEnv("MONGO_DB", "studyvault"),
			AuthSource: getEnv("MONGO_AUTH_SOURCE", "admin"),
			TimeoutSec: getEnvInt("MONGO_TIMEOUT_SEC", 10),
		},
		MinIO: MinIOConfig{
			Endpoint:   getEnv("MINIO_ENDPOINT", ""),
			AccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:  getEnv("MINIO_SECRET_KEY", ""),
			Bucket:     getEnv("MINIO_BUCKET", ""),
			RootPrefix: getEnv("MINIO_ROOT_PREFIX", "resources"),
			UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_ISSUER", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
