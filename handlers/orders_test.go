package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"recipe-market-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, r http.Handler, userID uint, recipeName string, total float64, items []map[string]interface{}) {
	t.Helper()
	w := performRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":     userID,
		"recipe_name": recipeName,
		"total_cost":  total,
		"items":       items,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPlaceOrderAndHistoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := seedCustomer(t, db, "alice")

	w := performRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":     user.ID,
		"recipe_name": "Margherita Pizza",
		"total_cost":  12.0,
		"items":       []map[string]interface{}{{"name": "Tomato", "price": 1.5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message string `json:"message"`
		OrderID uint   `json:"orderId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.OrderID)

	w = performRequest(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, created.OrderID, order.ID)
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, "Margherita Pizza", order.RecipeName)
	assert.Equal(t, 12.0, order.TotalCost)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Tomato", order.Items[0].IngredientName)
	assert.Equal(t, 1.5, order.Items[0].Price)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	// Placeholder ETA: integer minutes in [20, 45]
	matches := regexp.MustCompile(`^(\d+) minutes$`).FindStringSubmatch(order.EstimatedArrival)
	require.NotNil(t, matches, "unexpected ETA format: %q", order.EstimatedArrival)
	minutes, err := strconv.Atoi(matches[1])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, minutes, 20)
	assert.LessOrEqual(t, minutes, 45)
}

func TestPlaceOrderEmptyItemsRejected(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":     1,
		"recipe_name": "Pad Thai",
		"total_cost":  9.5,
		"items":       []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "rejected order must not persist")
}

func TestPlaceOrderMissingFieldsRejected(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	cases := []map[string]interface{}{
		{"recipe_name": "Ramen", "total_cost": 8.0, "items": []map[string]interface{}{{"name": "Noodles", "price": 2.0}}},
		{"user_id": 1, "total_cost": 8.0, "items": []map[string]interface{}{{"name": "Noodles", "price": 2.0}}},
		{"user_id": 1, "recipe_name": "Ramen", "items": []map[string]interface{}{{"name": "Noodles", "price": 2.0}}},
		{"user_id": 1, "recipe_name": "Ramen", "total_cost": 0, "items": []map[string]interface{}{{"name": "Noodles", "price": 2.0}}},
	}
	for _, body := range cases {
		w := performRequest(r, http.MethodPost, "/api/orders", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %v", body)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderRollsBackWhenItemsFail(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := seedCustomer(t, db, "grace")

	// Fail the second statement of the transaction: the order row insert
	// succeeds, the item bulk insert cannot.
	require.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	w := performRequest(r, http.MethodPost, "/api/orders", map[string]interface{}{
		"user_id":     user.ID,
		"recipe_name": "Lasagna",
		"total_cost":  15.0,
		"items":       []map[string]interface{}{{"name": "Pasta", "price": 3.0}},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Failed to place order."))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "order row must roll back with its items")
}

func TestOrderHistoryOrderingAndIsolationPerUser(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := seedCustomer(t, db, "alice")
	bob := seedCustomer(t, db, "bob")

	for i, name := range []string{"First", "Second", "Third"} {
		placeOrder(t, r, alice.ID, name, float64(i+1), []map[string]interface{}{{"name": "Salt", "price": 0.2}})
		time.Sleep(5 * time.Millisecond) // distinct order_date values
	}
	placeOrder(t, r, bob.ID, "Other", 4.0, []map[string]interface{}{{"name": "Pepper", "price": 0.3}})

	w := performRequest(r, http.MethodGet, fmt.Sprintf("/api/orders/%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 3)

	assert.Equal(t, "Third", orders[0].RecipeName)
	assert.Equal(t, "Second", orders[1].RecipeName)
	assert.Equal(t, "First", orders[2].RecipeName)
	for i := 1; i < len(orders); i++ {
		assert.True(t, orders[i-1].OrderDate.After(orders[i].OrderDate),
			"orders must be sorted by order_date descending")
	}
}

func TestOrderHistoryEmptyIsAnEmptyList(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performRequest(r, http.MethodGet, "/api/orders/42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
