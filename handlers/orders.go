package handlers

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"recipe-market-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderHandler owns the order workflows: placing an order with its line
// items as one atomic unit, and reading back a user's order history.
type OrderHandler struct {
	DB  *gorm.DB
	log *logrus.Entry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewOrderHandler wires the order workflows. rng drives the placeholder
// arrival estimate and may be nil outside tests.
func NewOrderHandler(db *gorm.DB, log *logrus.Logger, rng *rand.Rand) *OrderHandler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &OrderHandler{
		DB:  db,
		log: log.WithField("component", "orders"),
		rng: rng,
	}
}

type OrderItemInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
}

type PlaceOrderRequest struct {
	UserID     uint             `json:"user_id" binding:"required"`
	RecipeName string           `json:"recipe_name" binding:"required"`
	TotalCost  float64          `json:"total_cost" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder persists a new order and all its items in one transaction.
// Either every row is committed or none are.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required order fields."})
		return
	}

	order := models.Order{
		UserID:           req.UserID,
		RecipeName:       req.RecipeName,
		TotalCost:        req.TotalCost,
		EstimatedArrival: h.estimatedArrival(),
	}
	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{IngredientName: item.Name, Price: item.Price}
	}

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":      "PlaceOrder",
			"user_id": req.UserID,
		}).Error("order transaction rolled back")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"orderId": order.ID,
	})
}

// GetOrderHistory returns the user's orders, most recent first, each with
// its items attached. The order list and the item fetch are separate
// statements; no isolation is needed across them because orders and items
// are immutable once placed.
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	userID := c.Param("userId")

	orders := []models.Order{}
	err := h.DB.WithContext(c.Request.Context()).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"op":      "GetOrderHistory",
			"user_id": userID,
		}).Error("fetch orders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order history."})
		return
	}

	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []models.OrderItem{}
		}
	}
	c.JSON(http.StatusOK, orders)
}

// estimatedArrival produces the placeholder ETA: a uniformly random
// integer number of minutes in [20, 45]. Nothing downstream depends on
// its value.
func (h *OrderHandler) estimatedArrival() string {
	h.mu.Lock()
	minutes := 20 + h.rng.Intn(26)
	h.mu.Unlock()
	return fmt.Sprintf("%d minutes", minutes)
}
