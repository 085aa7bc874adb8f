package handlers

import (
	"net/http"

	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminHandler owns administrative user management.
type AdminHandler struct {
	DB  *gorm.DB
	log *logrus.Entry
}

func NewAdminHandler(db *gorm.DB, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{DB: db, log: log.WithField("component", "admin")}
}

type userRow struct {
	ID            uint                 `json:"id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	AccountType   models.AccountType   `json:"account_type"`
	AccountStatus models.AccountStatus `json:"account_status"`
}

type UpdateStatusRequest struct {
	Status models.AccountStatus `json:"status"`
}

type UpdateTypeRequest struct {
	Type models.AccountType `json:"type"`
}

// ListUsers returns every non-admin account
func (h *AdminHandler) ListUsers(c *gin.Context) {
	rows := []userRow{}
	err := h.DB.Model(&models.User{}).
		Where("account_type <> ?", models.TypeAdmin).
		Scan(&rows).Error
	if err != nil {
		h.log.WithError(err).WithField("op", "ListUsers").Error("fetch users")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch users."})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DeleteUser removes an account. Recipes, reviews, orders and order
// items owned by the account cascade with it at the schema level.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	result := h.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		h.log.WithError(result.Error).WithFields(logrus.Fields{
			"op":      "DeleteUser",
			"user_id": id,
		}).Error("delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete user."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// UpdateStatus activates or suspends an account
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		(req.Status != models.StatusActive && req.Status != models.StatusSuspended) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status provided."})
		return
	}

	result := h.DB.Model(&models.User{}).Where("id = ?", id).
		Update("account_status", req.Status)
	if result.Error != nil {
		h.log.WithError(result.Error).WithFields(logrus.Fields{
			"op":      "UpdateStatus",
			"user_id": id,
		}).Error("update account status")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user status."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User status updated successfully."})
}

// UpdateType promotes a customer account to a restaurant account
func (h *AdminHandler) UpdateType(c *gin.Context) {
	id := c.Param("id")

	var req UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Type != models.TypeRestaurant {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid type provided."})
		return
	}

	result := h.DB.Model(&models.User{}).Where("id = ?", id).
		Update("account_type", req.Type)
	if result.Error != nil {
		h.log.WithError(result.Error).WithFields(logrus.Fields{
			"op":      "UpdateType",
			"user_id": id,
		}).Error("update account type")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update user type."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User type updated successfully."})
}
