package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser        = "user"
	RoleSuperAdmin  = "superadmin"
	RoleOwner       = "owner"
	RoleDeliveryBoy = "deliveryboy"
)

type User struct {
	gorm.Model
	Fullname     string `json:"fullname"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Phoneno      string `json:"phoneno"`
	Password     string `json:"-"`
	ProfileImage string `json:"profileImage"`
	Role         string `gorm:"not null;default:user" json:"role"`

	// preloaded by the favorites endpoints only
	FavoriteRestaurants []FavoriteRestaurant `json:"favoriteRestaurants,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	FavoriteItems       []FavoriteItem       `json:"favoriteItems,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}

type FavoriteRestaurant struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"uniqueIndex:idx_fav_rest" json:"userId"`
	RestaurantID uint       `gorm:"uniqueIndex:idx_fav_rest" json:"restaurantId"`
	Restaurant   Restaurant `json:"restaurant"`
	Link         string     `json:"link"`
	AddedAt      time.Time  `json:"addedAt"`
}

type FavoriteItem struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"uniqueIndex:idx_fav_item" json:"userId"`
	ItemID  uint      `gorm:"uniqueIndex:idx_fav_item" json:"itemId"`
	Item    Item      `json:"item"`
	Link    string    `json:"link"`
	AddedAt time.Time `json:"addedAt"`
}
