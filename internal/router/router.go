package router

import (
	"net/http"

	"shop-ledger/internal/config"
	"shop-ledger/internal/handler"
	"shop-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter configures Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	// static files and templates
	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	// Home -> login page
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "Shop Ledger - Login",
		})
	})

	r.GET("/sales", func(c *gin.Context) {
		c.HTML(http.StatusOK, "sales.html", gin.H{
			"title":      "Shop Ledger - Daily Sales",
			"shops":      cfg.App.Shops,
			"categories": cfg.App.ExpenseCategories,
		})
	})

	r.GET("/bank", func(c *gin.Context) {
		c.HTML(http.StatusOK, "bank.html", gin.H{
			"title": "Shop Ledger - Bank Transactions",
			"shops": cfg.App.Shops,
		})
	})

	r.GET("/statistics", func(c *gin.Context) {
		c.HTML(http.StatusOK, "statistics.html", gin.H{
			"title": "Shop Ledger - Sales Visualization",
			"shops": cfg.App.Shops,
		})
	})

	r.GET("/prediction", func(c *gin.Context) {
		c.HTML(http.StatusOK, "prediction.html", gin.H{
			"title": "Shop Ledger - Stock Prediction",
		})
	})

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	txHandler := handler.NewTransactionHandler(db, cfg.App.Shops, cfg.App.ExpenseCategories)
	protected.POST("/transactions", txHandler.CreateTransaction)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.GET("/deposits", txHandler.ListDeposits)

	chequeHandler := handler.NewChequeHandler(db, cfg.App.Shops, cfg.App.Currency)
	protected.POST("/cheques", chequeHandler.CreateCheque)
	protected.GET("/cheques", chequeHandler.ListCheques)
	protected.POST("/cheques/:id/status", chequeHandler.UpdateChequeStatus)
	protected.GET("/balance", chequeHandler.GetBalance)

	statsHandler := handler.NewStatsHandler(db, cfg.App.Shops)
	protected.GET("/stats", statsHandler.GetStats)

	predictionHandler := handler.NewPredictionHandler(cfg.App.PredictionFile)
	protected.GET("/predictions", predictionHandler.GetPredictions)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
