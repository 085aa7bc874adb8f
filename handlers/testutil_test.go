package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"recipe-market-api/config"
	"recipe-market-api/database"
	"recipe-market-api/handlers"
	"recipe-market-api/middleware"
	"recipe-market-api/models"
	"recipe-market-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates a throwaway sqlite database for one test. The pool
// is bounded to a single connection so concurrent writers queue on the
// pool instead of tripping sqlite's busy error.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.Load()
	cfg.DBDriver = "sqlite"
	cfg.DBDSN = filepath.Join(t.TempDir(), "test.db")
	cfg.DBMaxOpenConns = 1
	cfg.DBMaxIdleConns = 1

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestRouter builds the full route table over the given database with
// a pass-through authenticator and a seeded RNG.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := testLogger()
	rng := rand.New(rand.NewSource(1))

	r := gin.New()
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(db, []byte("test-secret"), log),
		Orders:  handlers.NewOrderHandler(db, log, rng),
		Reviews: handlers.NewReviewHandler(db, log),
		Catalog: handlers.NewCatalogHandler(db, log, rng),
		Recipes: handlers.NewRecipeHandler(db, log),
		Admin:   handlers.NewAdminHandler(db, log),
	}
	routes.SetupRoutes(r, h, middleware.NewAllowAll(log))
	return r
}

// seedCustomer creates an active customer account. Orders and reviews
// carry enforced foreign keys to users, so tests exercising those
// workflows need real account rows.
func seedCustomer(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "x",
		AccountType:   models.TypeCustomer,
		AccountStatus: models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
