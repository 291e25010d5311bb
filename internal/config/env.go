package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env carries everything a deployment binary needs. It is loaded once in
// main and handed to the router and services; nothing reads os.Getenv
// after startup.
type Env struct {
	AppAddr    string
	GinMode    string
	JWTSecret  string
	SessionTTL time.Duration

	DBUser string
	DBPass string
	DBHost string
	DBName string
}

func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	ttl := 30 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_MIN")); raw != "" {
		if min, err := strconv.Atoi(raw); err == nil && min > 0 {
			ttl = time.Duration(min) * time.Minute
		}
	}

	dbUser := strings.TrimSpace(os.Getenv("DB_USER"))
	if dbUser == "" {
		dbUser = "root"
	}
	dbHost := strings.TrimSpace(os.Getenv("DB_HOST"))
	if dbHost == "" {
		dbHost = "127.0.0.1:3306"
	}
	dbName := strings.TrimSpace(os.Getenv("DB_NAME"))
	if dbName == "" {
		dbName = "busdesk"
	}

	return Env{
		AppAddr:    appAddr,
		GinMode:    strings.TrimSpace(os.Getenv("GIN_MODE")),
		JWTSecret:  secret,
		SessionTTL: ttl,
		DBUser:     dbUser,
		DBPass:     os.Getenv("DB_PASS"),
		DBHost:     dbHost,
		DBName:     dbName,
	}
}
