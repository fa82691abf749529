package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	AdminEmail    string
	AdminPassword string

	// printer/cash-drawer bridge (raw 9100 TCP)
	PrinterAddr    string
	PrinterTimeout time.Duration

	// seat/table identifiers shown on the floor plan
	Tables []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:       getEnv("DB_SOURCE", "pos.db"),
		Port:           getEnv("PORT", "8000"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         getDurationEnv("JWT_TTL", 24*time.Hour),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		PrinterAddr:    getEnv("PRINTER_ADDR", "192.168.0.104:9100"),
		PrinterTimeout: getDurationEnv("PRINTER_TIMEOUT", 5*time.Second),
		Tables:         strings.Split(getEnv("TABLES", "A1,A2,A3,A4,A5,A6,A7,A8"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
	}
	return fallback
}
