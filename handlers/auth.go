package handlers

import (
	"net/http"

	"recipe-market-api/middleware"
	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler owns account signup, login and password reset. These are
// single-statement operations; the transactional workflows never call
// into them.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret []byte
	log       *logrus.Entry
}

func NewAuthHandler(db *gorm.DB, jwtSecret []byte, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{DB: db, JWTSecret: jwtSecret, log: log.WithField("component", "auth")}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// Signup creates a new customer account
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all fields."})
		return
	}

	var existing models.User
	if err := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Username or email already exists."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.WithError(err).WithField("op", "Signup").Error("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	user := models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  string(hash),
		AccountType:   models.TypeCustomer,
		AccountStatus: models.StatusActive,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":       "Signup",
			"username": req.Username,
		}).Error("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
}

// Login authenticates by username or email and returns a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide credentials."})
		return
	}

	var user models.User
	if err := h.DB.Where("username = ? OR email = ?", req.Identifier, req.Identifier).
		First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
		return
	}

	if user.AccountStatus != models.StatusActive {
		c.JSON(http.StatusForbidden, gin.H{"message": "Account is suspended or not active."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password."})
		return
	}

	token, err := middleware.GenerateToken(h.JWTSecret, &user)
	if err != nil {
		h.log.WithError(err).WithField("op", "Login").Error("generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"type":     user.AccountType,
		},
	})
}

// ResetPassword sets a new password for the account with the given email
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and new password are required."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.log.WithError(err).WithField("op", "ResetPassword").Error("hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while resetting the password."})
		return
	}

	result := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Update("password_hash", string(hash))
	if result.Error != nil {
		h.log.WithError(result.Error).WithField("op", "ResetPassword").Error("update password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occurred while resetting the password."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No account found with that email address."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset successfully."})
}
