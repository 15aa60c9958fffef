package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gorgui02/rental-management-backend/config"
	"github.com/gorgui02/rental-management-backend/database"
	"github.com/gorgui02/rental-management-backend/internal/auditlog"
	"github.com/gorgui02/rental-management-backend/internal/auth"
	"github.com/gorgui02/rental-management-backend/internal/backup"
	"github.com/gorgui02/rental-management-backend/internal/expense"
	"github.com/gorgui02/rental-management-backend/internal/payment"
	"github.com/gorgui02/rental-management-backend/internal/property"
	"github.com/gorgui02/rental-management-backend/internal/reports"
	"github.com/gorgui02/rental-management-backend/internal/settings"
	"github.com/gorgui02/rental-management-backend/internal/tenant"
	"github.com/gorgui02/rental-management-backend/internal/unit"
	"github.com/gorgui02/rental-management-backend/internal/user"
	"github.com/gorgui02/rental-management-backend/middleware"
	"github.com/gorgui02/rental-management-backend/utils"
)

// Setup wires repositories, services and handlers onto the router.
func Setup(r *gin.Engine, cfg *config.Config, tokens utils.TokenStore) {
	db := database.DB
	api := r.Group("/api/v1")

	// ===== Audit Logs =====
	auditRepo := auditlog.NewRepository(db)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ===== Auth =====
	userRepo := user.NewRepository(db)
	authSvc := auth.NewService(userRepo, tokens, cfg)
	authHandler := auth.NewHandler(authSvc, auditSvc, cfg.JWTAccessTTLHours)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.LoginRateLimiter())
	{
		authGroup.POST("", authHandler.Login)
		authGroup.GET("", authHandler.Session)
		authGroup.DELETE("", authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.Auth(authSvc))

	// ===== Users (admin only) =====
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	userRoutes := protected.Group("/users")
	userRoutes.Use(middleware.RequireAdmin())
	{
		userRoutes.GET("", userHandler.ListUsers)
		userRoutes.POST("", userHandler.CreateUser)
		userRoutes.GET("/:id", userHandler.GetUser)
		userRoutes.PUT("/:id", userHandler.UpdateUser)
		userRoutes.DELETE("/:id", userHandler.DeleteUser)
	}

	// ===== Properties =====
	propertyRepo := property.NewRepository(db)
	propertySvc := property.NewService(propertyRepo)
	propertyHandler := property.NewHandler(propertySvc)

	propertyRoutes := protected.Group("/properties")
	{
		propertyRoutes.GET("", propertyHandler.ListProperties)
		propertyRoutes.POST("", propertyHandler.CreateProperty)
		propertyRoutes.GET("/:id", propertyHandler.GetProperty)
		propertyRoutes.PUT("/:id", propertyHandler.UpdateProperty)
		propertyRoutes.DELETE("/:id", propertyHandler.DeleteProperty)
	}

	// ===== Units =====
	unitRepo := unit.NewRepository(db)
	unitSvc := unit.NewService(unitRepo, db)
	unitHandler := unit.NewHandler(unitSvc)

	unitRoutes := protected.Group("/units")
	{
		unitRoutes.GET("", unitHandler.ListUnits)
		unitRoutes.POST("", unitHandler.CreateUnit)
		unitRoutes.GET("/:id", unitHandler.GetUnit)
		unitRoutes.PUT("/:id", unitHandler.UpdateUnit)
		unitRoutes.DELETE("/:id", unitHandler.DeleteUnit)
	}

	// ===== Tenants =====
	tenantRepo := tenant.NewRepository(db)
	tenantSvc := tenant.NewService(tenantRepo, unitRepo, db, auditSvc)
	tenantHandler := tenant.NewHandler(tenantSvc)

	tenantRoutes := protected.Group("/tenants")
	{
		tenantRoutes.GET("", tenantHandler.ListTenants)
		tenantRoutes.POST("", tenantHandler.CreateTenant)
		tenantRoutes.GET("/:id", tenantHandler.GetTenant)
		tenantRoutes.PUT("/:id", tenantHandler.UpdateTenant)
		tenantRoutes.DELETE("/:id", tenantHandler.DeleteTenant)
	}

	// ===== Settings =====
	settingsSvc := settings.NewService(db)
	settingsHandler := settings.NewHandler(settingsSvc)

	settingsRoutes := protected.Group("/settings")
	{
		settingsRoutes.GET("", settingsHandler.GetSettings)
		settingsRoutes.PUT("", settingsHandler.UpdateSettings)
	}

	// ===== Payments =====
	paymentRepo := payment.NewRepository(db)
	paymentSvc := payment.NewService(paymentRepo, tenantRepo, db, auditSvc)
	receiptGen := payment.NewReceiptGenerator(paymentSvc, settingsSvc)
	paymentHandler := payment.NewHandler(paymentSvc, receiptGen)

	paymentRoutes := protected.Group("/payments")
	{
		paymentRoutes.GET("", paymentHandler.ListPayments)
		paymentRoutes.POST("", paymentHandler.RecordPayment)
		paymentRoutes.PUT("", paymentHandler.GeneratePayments)
		paymentRoutes.GET("/:id", paymentHandler.GetPayment)
		paymentRoutes.PUT("/:id", paymentHandler.UpdatePayment)
		paymentRoutes.DELETE("/:id", paymentHandler.DeletePayment)
		paymentRoutes.POST("/:id/receipt", paymentHandler.GenerateReceipt)
	}

	// ===== Expenses =====
	expenseRepo := expense.NewRepository(db)
	expenseSvc := expense.NewService(expenseRepo, db)
	expenseHandler := expense.NewHandler(expenseSvc)

	expenseRoutes := protected.Group("/expenses")
	{
		expenseRoutes.GET("", expenseHandler.ListExpenses)
		expenseRoutes.POST("", expenseHandler.CreateExpense)
		expenseRoutes.GET("/:id", expenseHandler.GetExpense)
		expenseRoutes.PUT("/:id", expenseHandler.UpdateExpense)
		expenseRoutes.DELETE("/:id", expenseHandler.DeleteExpense)
	}

	// ===== Reports & Dashboard =====
	reportsRepo := reports.NewRepository(db)
	reportsSvc := reports.NewService(reportsRepo)
	reportsHandler := reports.NewHandler(reportsSvc, reports.NewExporter())

	protected.GET("/dashboard", reportsHandler.GetDashboard)
	protected.GET("/reports", reportsHandler.GetReport)
	protected.GET("/reports/export", reportsHandler.ExportReport)

	// ===== Backups (admin only) =====
	backupSvc := backup.NewService(db, cfg.BackupDir, auditSvc)
	backupHandler := backup.NewHandler(backupSvc)

	backupRoutes := protected.Group("/backup")
	backupRoutes.Use(middleware.RequireAdmin())
	{
		backupRoutes.POST("", backupHandler.CreateBackup)
		backupRoutes.GET("", backupHandler.ListBackups)
		backupRoutes.GET("/:filename", backupHandler.DownloadBackup)
		backupRoutes.DELETE("/:filename", backupHandler.DeleteBackup)
		backupRoutes.POST("/:filename/restore", backupHandler.RestoreBackup)
	}

	// ===== Audit Logs (admin only) =====
	auditRoutes := protected.Group("/auditlogs")
	auditRoutes.Use(middleware.RequireAdmin())
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
	}
}
