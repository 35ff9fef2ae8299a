package entity

import (
	"gorm.io/gorm"
)

const (
	RestaurantPending  = "Pending"
	RestaurantApproved = "Approved"
	RestaurantRejected = "Rejected"
)

type Restaurant struct {
	gorm.Model
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	OpeningTime string   `json:"openingTime"`
	ClosingTime string   `json:"closingTime"`
	Cuisines    []string `gorm:"serializer:json" json:"cuisines"`
	Address     string   `json:"address"`
	Phoneno     string   `json:"phoneno"`
	City        string   `gorm:"index" json:"city"`
	Status      string   `gorm:"not null;default:Pending" json:"status"`

	OwnerID uint   `json:"restaurantOwner"`
	Owner   *Owner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	AverageRestaurantRating float64 `json:"averageRestaurantRating"`
	ReviewCount             int     `json:"reviewCount"`

	// preloaded by the super admin listing only
	Items      []Item     `json:"items,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Reviews    []Review   `json:"reviews,omitempty"`
}
