package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"shop-ledger/internal/database"
	"shop-ledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret = "test-secret"
	testUser   = "shopkeeper"
	testPass   = "letmein123"
)

var (
	testShops      = []string{"Gampaha", "Nittambuwa"}
	testCategories = []string{
		"Salary", "Rent", "Light Bill", "Phone Bill",
		"Water Bill", "Petty Cash", "Home", "Other Expenses",
	}
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// setupRouter wires the API the same way the production router does,
// minus templates and static files.
func setupRouter(t *testing.T, db *gorm.DB, predictionFile string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")

	authHandler := NewAuthHandler(db, testSecret, 1, 4)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(testSecret, db))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", GetMe)

	txHandler := NewTransactionHandler(db, testShops, testCategories)
	protected.POST("/transactions", txHandler.CreateTransaction)
	protected.GET("/transactions", txHandler.ListTransactions)
	protected.GET("/deposits", txHandler.ListDeposits)

	chequeHandler := NewChequeHandler(db, testShops, "LKR")
	protected.POST("/cheques", chequeHandler.CreateCheque)
	protected.GET("/cheques", chequeHandler.ListCheques)
	protected.POST("/cheques/:id/status", chequeHandler.UpdateChequeStatus)
	protected.GET("/balance", chequeHandler.GetBalance)

	statsHandler := NewStatsHandler(db, testShops)
	protected.GET("/stats", statsHandler.GetStats)

	predictionHandler := NewPredictionHandler(predictionFile)
	protected.GET("/predictions", predictionHandler.GetPredictions)

	exportHandler := NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}

type envelope struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w, env
}

// registerAndLogin creates the test account and returns a live token.
func registerAndLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": testUser,
		"password": testPass,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": testUser,
		"password": testPass,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	token, _ := env.Data["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}
