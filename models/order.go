package models

import "time"

// Order records a placed order. RecipeName is a denormalized snapshot of
// the recipe at order time, not a foreign key. An order and its items are
// created in a single transaction and never mutated afterwards.
type Order struct {
	ID               uint        `json:"id" gorm:"primaryKey"`
	UserID           uint        `json:"user_id" gorm:"not null;index"`
	User             User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RecipeName       string      `json:"recipe_name" gorm:"not null"`
	TotalCost        float64     `json:"total_cost" gorm:"not null"`
	EstimatedArrival string      `json:"estimated_arrival"`
	OrderDate        time.Time   `json:"order_date" gorm:"column:order_date;autoCreateTime"`
	Items            []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	OrderID        uint    `json:"order_id" gorm:"not null;index"`
	IngredientName string  `json:"ingredient_name" gorm:"not null"`
	Price          float64 `json:"price" gorm:"not null"`
}
