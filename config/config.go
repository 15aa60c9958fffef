package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DBDriver selects the backing store: "postgres" (default) or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite file path

	JWTAccessSecret   string
	JWTAccessTTLHours int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Default admin seeded at first startup.
	AdminUsername string
	AdminPassword string
	AdminEmail    string

	BackupDir string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	accessTTL, _ := strconv.Atoi(os.Getenv("JWT_ACCESS_TTL_HOURS"))
	if accessTTL == 0 {
		accessTTL = 168 // one week
	}
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	cfg := &Config{
		Port: os.Getenv("PORT"),

		DBDriver:   os.Getenv("DB_DRIVER"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPath:     os.Getenv("DB_PATH"),

		JWTAccessSecret:   os.Getenv("JWT_ACCESS_SECRET"),
		JWTAccessTTLHours: accessTTL,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),

		BackupDir: os.Getenv("BACKUP_DIR"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@example.com"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "./backups"
	}

	return cfg
}
