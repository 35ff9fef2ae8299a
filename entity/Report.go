package entity

import (
	"time"

	"gorm.io/gorm"
)

type Report struct {
	gorm.Model
	Reason      string    `gorm:"not null" json:"reason"`
	Description string    `json:"description"`
	ReportedAt  time.Time `json:"reportedAt"`

	UserID       uint        `json:"userId"`
	User         *User       `json:"user,omitempty"`
	ItemID       uint        `json:"itemId"`
	Item         *Item       `json:"item,omitempty"`
	RestaurantID uint        `gorm:"index" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
}
