package config

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Config struct {
	DB        *sql.DB
	Logger    *zap.Logger
	Port      string
	JWTSecret string
}

var AppConfig *Config

// Load reads .env (if present), connects to Postgres and builds the shared
// logger. Call once at startup before anything touches GetDB/GetLogger.
func Load() error {
	// Missing .env is fine, real deployments use the environment directly.
	_ = godotenv.Load()

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_PORT", "5432"),
			envOr("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_NAME", "pgmanager"),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		return fmt.Errorf("cannot establish database connection: %w", err)
	}
	logger.Info("database connected")

	AppConfig = &Config{
		DB:        db,
		Logger:    logger,
		Port:      envOr("PORT", "3000"),
		JWTSecret: envOr("JWT_SECRET", "pg-manager-dev-secret"),
	}
	return nil
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func GetLogger() *zap.Logger {
	return AppConfig.Logger
}

func GetJWTSecret() []byte {
	return []byte(AppConfig.JWTSecret)
}
