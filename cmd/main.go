package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/config"
	"github.com/gorgui02/rental-management-backend/database"
	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/auth"
	"github.com/gorgui02/rental-management-backend/internal/expense"
	"github.com/gorgui02/rental-management-backend/internal/payment"
	"github.com/gorgui02/rental-management-backend/internal/property"
	"github.com/gorgui02/rental-management-backend/internal/settings"
	"github.com/gorgui02/rental-management-backend/internal/tenant"
	"github.com/gorgui02/rental-management-backend/internal/unit"
	"github.com/gorgui02/rental-management-backend/internal/user"
	"github.com/gorgui02/rental-management-backend/middleware"
	"github.com/gorgui02/rental-management-backend/routes"
	"github.com/gorgui02/rental-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	tokens, err := utils.NewRedisTokenStore(cfg)
	if err != nil {
		log.Fatalf("redis init failed: %v", err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&settings.Settings{},
		&property.Property{},
		&unit.Unit{},
		&tenant.Tenant{},
		&payment.Payment{},
		&expense.Expense{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	if err := auth.SeedAdminUser(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg, tokens)

	utils.Logger().WithField("port", cfg.Port).Info("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
