package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"amanah/internal/anomaly"
	"amanah/internal/handlers"
	"amanah/internal/logger"
	"amanah/internal/middleware"
	"amanah/internal/models"
	"amanah/internal/services"
	"amanah/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Transaction{},
		&models.AnomalyFlag{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite, wired the same way as the production router.
func setupApp(t *testing.T) *testApp {
	return setupAppWithConfig(t, anomaly.DefaultConfig())
}

// setupAppWithConfig is setupApp with operator-tuned detection thresholds.
func setupAppWithConfig(t *testing.T, cfg anomaly.Config) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	scorer := anomaly.NewScorer(cfg)
	detectionService := services.NewDetectionService(db, scorer)
	reviewService := services.NewReviewService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	detectionHandler := handlers.NewDetectionHandler(detectionService, 5*time.Second)
	flagHandler := handlers.NewFlagHandler(reviewService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	v1.POST("/detect", detectionHandler.DetectTransaction)

	flags := v1.Group("/flags")
	flags.GET("", flagHandler.ListFlags)
	flags.GET("/:id", flagHandler.GetFlagByID)
	flags.PUT("/:id/review", flagHandler.ReviewFlag)

	transactions := v1.Group("/transactions")
	transactions.GET("/:id", flagHandler.GetTransaction)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// detect submits a transaction and returns the parsed verdict.
func (app *testApp) detect(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", "/api/v1/detect", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("detect failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}
