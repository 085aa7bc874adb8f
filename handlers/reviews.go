package handlers

import (
	"errors"
	"net/http"

	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewHandler owns the review workflow: inserting a review and
// recomputing the owning recipe's aggregate rating fields as one atomic
// unit. This is the only code path that writes avg_rating/rating_count.
type ReviewHandler struct {
	DB  *gorm.DB
	log *logrus.Entry
}

func NewReviewHandler(db *gorm.DB, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{DB: db, log: log.WithField("component", "reviews")}
}

type PostReviewRequest struct {
	RecipeID uint   `json:"recipe_id" binding:"required"`
	UserID   uint   `json:"user_id" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

// PostReview inserts the review and writes the recipe's recomputed
// COUNT(*)/AVG(rating) back in the same transaction. The recipe row is
// locked first so concurrent reviewers of the same recipe serialize
// their recompute and no committed review is ever lost from the
// aggregates.
func (h *ReviewHandler) PostReview(c *gin.Context) {
	var req PostReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required review fields."})
		return
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&recipe, req.RecipeID).Error; err != nil {
			return err
		}

		review := models.Review{
			RecipeID: req.RecipeID,
			UserID:   req.UserID,
			Rating:   req.Rating,
			Comment:  req.Comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		var agg struct {
			Count int64
			Avg   float64
		}
		if err := tx.Model(&models.Review{}).
			Where("recipe_id = ?", req.RecipeID).
			Select("COUNT(*) AS count, AVG(rating) AS avg").
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Recipe{}).
			Where("id = ?", recipe.ID).
			Updates(map[string]interface{}{
				"rating_count": agg.Count,
				"avg_rating":   agg.Avg,
			}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found."})
		return
	}
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":        "PostReview",
			"recipe_id": req.RecipeID,
			"user_id":   req.UserID,
		}).Error("review transaction rolled back")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add review."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully!"})
}
