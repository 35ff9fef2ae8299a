package entity

import (
	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	UserID uint  `gorm:"index" json:"userId"`
	User   *User `json:"user,omitempty"`

	OrderID      uint        `json:"orderId"`
	RestaurantID uint        `gorm:"index" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`

	ItemReviews          []ItemReview `json:"itemReviews" gorm:"constraint:OnDelete:CASCADE;"`
	RestaurantRating     *int         `json:"restaurantRating"`
	RestaurantReviewText string       `gorm:"size:1000" json:"restaurantReviewText"`
}

type ItemReview struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	ReviewID   uint  `gorm:"index" json:"reviewId"`
	ItemID     uint  `gorm:"index" json:"foodItemId"`
	FoodItem   *Item `gorm:"foreignKey:ItemID" json:"foodItem,omitempty"`
	ItemRating int   `json:"itemRating"`
}
