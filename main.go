package main

import (
	"net/http"

	"recipe-market-api/config"
	"recipe-market-api/database"
	"recipe-market-api/handlers"
	"recipe-market-api/middleware"
	"recipe-market-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	log := newLogger(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	var auth middleware.Authenticator
	switch cfg.AuthMode {
	case "none":
		auth = middleware.NewAllowAll(log)
	default:
		auth = &middleware.JWTAuthenticator{Secret: cfg.JWTSecret}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Recipe Marketplace API",
		})
	})

	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(db, cfg.JWTSecret, log),
		Orders:  handlers.NewOrderHandler(db, log, nil),
		Reviews: handlers.NewReviewHandler(db, log),
		Catalog: handlers.NewCatalogHandler(db, log, nil),
		Recipes: handlers.NewRecipeHandler(db, log),
		Admin:   handlers.NewAdminHandler(db, log),
	}
	routes.SetupRoutes(r, h, auth)

	log.Infof("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
