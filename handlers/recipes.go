package handlers

import (
	"net/http"

	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecipeHandler owns restaurant-facing recipe management. Aggregate
// rating fields are never writable here; only the review workflow
// touches them.
type RecipeHandler struct {
	DB  *gorm.DB
	log *logrus.Entry
}

func NewRecipeHandler(db *gorm.DB, log *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{DB: db, log: log.WithField("component", "recipes")}
}

type CreateRecipeRequest struct {
	UserID      uint   `json:"userId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ServingSize string `json:"servingSize"`
	PrepTime    string `json:"prepTime"`
	CuisineType string `json:"cuisineType"`
	ImageURL    string `json:"imageUrl"`
	Ingredients string `json:"ingredients" binding:"required"`
	Steps       string `json:"steps" binding:"required"`
}

type UpdateRecipeRequest struct {
	ImageURL    *string `json:"imageUrl"`
	Ingredients *string `json:"ingredients"`
	Steps       *string `json:"steps"`
}

// ListByOwner returns all recipes belonging to a restaurant user
func (h *RecipeHandler) ListByOwner(c *gin.Context) {
	userID := c.Param("userId")

	recipes := []models.Recipe{}
	if err := h.DB.Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":      "ListByOwner",
			"user_id": userID,
		}).Error("fetch recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch recipes."})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Create adds a new recipe listing
func (h *RecipeHandler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required recipe fields."})
		return
	}

	recipe := models.Recipe{
		UserID:      req.UserID,
		Name:        req.Name,
		ServingSize: req.ServingSize,
		PrepTime:    req.PrepTime,
		CuisineType: req.CuisineType,
		ImageURL:    req.ImageURL,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
	}
	if err := h.DB.Create(&recipe).Error; err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":      "Create",
			"user_id": req.UserID,
		}).Error("create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create recipe."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Recipe created successfully!",
		"recipeId": recipe.ID,
	})
}

// Update modifies the mutable fields of a recipe (image, ingredients,
// steps)
func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID := c.Param("recipeId")

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields provided to update."})
		return
	}

	updates := map[string]interface{}{}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Ingredients != nil {
		updates["ingredients"] = *req.Ingredients
	}
	if req.Steps != nil {
		updates["steps"] = *req.Steps
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No fields provided to update."})
		return
	}

	result := h.DB.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates)
	if result.Error != nil {
		h.log.WithError(result.Error).WithFields(logrus.Fields{
			"op":        "Update",
			"recipe_id": recipeID,
		}).Error("update recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update recipe."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully."})
}

// Delete removes a recipe; its reviews cascade with it
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID := c.Param("recipeId")

	result := h.DB.Delete(&models.Recipe{}, recipeID)
	if result.Error != nil {
		h.log.WithError(result.Error).WithFields(logrus.Fields{
			"op":        "Delete",
			"recipe_id": recipeID,
		}).Error("delete recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete recipe."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipe not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully."})
}
