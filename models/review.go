package models

import "time"

// Review is immutable once created; posting one is the sole trigger for
// recomputing the owning recipe's aggregate rating fields.
type Review struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	RecipeID uint   `json:"recipe_id" gorm:"not null;index"`
	Recipe   Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	UserID   uint   `json:"user_id" gorm:"not null"`
	User     User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rating   int    `json:"rating" gorm:"not null"`
	Comment  string `json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}
