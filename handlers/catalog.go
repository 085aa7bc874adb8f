package handlers

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CatalogHandler assembles the public recipe feed from active-account
// listings.
type CatalogHandler struct {
	DB  *gorm.DB
	log *logrus.Entry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCatalogHandler wires the catalog read workflow. rng drives the
// recommendation sampling and may be nil outside tests.
func NewCatalogHandler(db *gorm.DB, log *logrus.Logger, rng *rand.Rand) *CatalogHandler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CatalogHandler{
		DB:  db,
		log: log.WithField("component", "catalog"),
		rng: rng,
	}
}

// FeedRecipe is a recipe row joined with its owner's username for the
// public feed.
type FeedRecipe struct {
	models.Recipe  `gorm:"embedded"`
	RestaurantName string `json:"restaurant_name"`
}

// GetPublicFeed returns the five top-rated recipes plus ten recipes
// sampled uniformly at random from the rest, both drawn only from
// recipes whose owner is active. The sample is re-drawn on every call.
func (h *CatalogHandler) GetPublicFeed(c *gin.Context) {
	db := h.DB.WithContext(c.Request.Context())

	popular := []FeedRecipe{}
	err := db.Model(&models.Recipe{}).
		Select("recipes.*, users.username AS restaurant_name").
		Joins("JOIN users ON users.id = recipes.user_id").
		Where("users.account_status = ?", models.StatusActive).
		Order("recipes.avg_rating DESC, recipes.rating_count DESC").
		Limit(5).
		Scan(&popular).Error
	if err != nil {
		h.log.WithError(err).WithField("op", "GetPublicFeed").Error("fetch popular recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recipes."})
		return
	}

	popularIDs := make([]uint, len(popular))
	for i, r := range popular {
		popularIDs[i] = r.ID
	}

	rest := []FeedRecipe{}
	query := db.Model(&models.Recipe{}).
		Select("recipes.*, users.username AS restaurant_name").
		Joins("JOIN users ON users.id = recipes.user_id").
		Where("users.account_status = ?", models.StatusActive)
	if len(popularIDs) > 0 {
		query = query.Where("recipes.id NOT IN ?", popularIDs)
	}
	if err := query.Scan(&rest).Error; err != nil {
		h.log.WithError(err).WithField("op", "GetPublicFeed").Error("fetch recommendation pool")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recipes."})
		return
	}

	recommended := h.sample(rest, 10)

	c.JSON(http.StatusOK, gin.H{
		"popular":     popular,
		"recommended": recommended,
	})
}

// sample picks up to n recipes uniformly at random. Sampling happens
// in-process rather than via ORDER BY RAND() so the randomness source
// stays swappable and the SQL works on both drivers.
func (h *CatalogHandler) sample(pool []FeedRecipe, n int) []FeedRecipe {
	h.mu.Lock()
	h.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	h.mu.Unlock()
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
