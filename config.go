package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	JWTSecret    string
	TokenTTL     time.Duration
	GinMode      string
	LogLevel     string
	FrontendURL  string
	UploadDir    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// LoadConfig reads the process environment. Call LoadEnv first to pick up
// a local .env file.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GinMode:       os.Getenv("GIN_MODE"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		StoreDriver:   getEnv("STORE_DRIVER", "mongo"),
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017/eventmarket"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is missing")
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.ReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 15*time.Second); err != nil {
		return cfg, err
	}
	if cfg.WriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return cfg, err
	}

	switch cfg.StoreDriver {
	case "mongo":
	case "postgres":
		if cfg.DatabaseURL == "" {
			if cfg.DatabaseURL, err = postgresDSNFromParts(); err != nil {
				return cfg, err
			}
		}
	default:
		return cfg, fmt.Errorf("STORE_DRIVER must be mongo or postgres, got %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// postgresDSNFromParts builds a DSN from the DB_* variables.
func postgresDSNFromParts() (string, error) {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASS")
	name := os.Getenv("DB_NAME")
	port := getEnv("DB_PORT", "5432")

	if host == "" || user == "" || name == "" {
		return "", errors.New("database env missing: set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, pass, name, port,
	), nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("30s") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
