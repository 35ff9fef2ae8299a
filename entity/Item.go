package entity

import (
	"gorm.io/gorm"
)

type Item struct {
	gorm.Model
	ItemName      string  `gorm:"not null" json:"itemName"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	AverageRating float64 `json:"averageRating"`
	Available     bool    `gorm:"not null;default:true" json:"available"`

	CategoryID *uint     `json:"categoryId"`
	Category   *Category `json:"category,omitempty"`

	RestaurantID uint        `gorm:"index" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"` // preload when needed
}
