package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// DBUrl vazio liga o modo degradado: somente o cache local.
	DBUrl    string
	RedisURL string

	JWTSecret  string
	ServerPort string

	// AdminPIN é comparado em claro quando AdminPINHash não está definido.
	AdminPIN     string
	AdminPINHash string

	GeminiAPIKey string
	GeminiModel  string

	Timezone       string
	LocalStorePath string

	RefreshInterval time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	return &Config{
		DBUrl:    os.Getenv("DATABASE_URL"),
		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret:  getEnv("JWT_SECRET", "changeme"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		AdminPIN:     getEnv("ADMIN_PIN", "1234"),
		AdminPINHash: os.Getenv("ADMIN_PIN_HASH"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		Timezone:       getEnv("TIMEZONE", "America/Sao_Paulo"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "data/appointments.json"),

		RefreshInterval: getEnvAsSeconds("REFRESH_INTERVAL_SECONDS", 30),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsSeconds(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
