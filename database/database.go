package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gorgui02/rental-management-backend/config"
)

var DB *gorm.DB

// Connect opens the backing store selected by DB_DRIVER. Business logic is
// written once against the repositories, so postgres and sqlite are
// interchangeable here.
func Connect(cfg *config.Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.DBDriver {
	case "sqlite":
		path := cfg.DBPath
		if path == "" {
			path = "rental.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect to database (%s): %v", cfg.DBDriver, err)
	}

	DB = db
	return db
}
