package entity

import "gorm.io/gorm"

// Category names are unique per restaurant.
type Category struct {
	gorm.Model
	Name         string `gorm:"not null;uniqueIndex:idx_category_name_restaurant" json:"name"`
	Slug         string `json:"slug"`
	RestaurantID uint   `gorm:"not null;uniqueIndex:idx_category_name_restaurant" json:"restaurantId"`
}
