package models

import "time"

// Recipe is a listing owned by a restaurant user. AvgRating and
// RatingCount are derived from the recipe's reviews and are only ever
// written by the review workflow's transactional recompute, never
// directly by recipe CRUD.
type Recipe struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	UserID      uint    `json:"user_id" gorm:"not null;index"`
	User        User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name        string  `json:"name" gorm:"not null"`
	ServingSize string  `json:"serving_size"`
	PrepTime    string  `json:"prep_time"`
	CuisineType string  `json:"cuisine_type"`
	ImageURL    string  `json:"image_url"`
	Ingredients string  `json:"ingredients" gorm:"type:text"`
	Steps       string  `json:"steps" gorm:"type:text"`
	AvgRating   float64 `json:"avg_rating" gorm:"not null;default:0"`
	RatingCount int     `json:"rating_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
