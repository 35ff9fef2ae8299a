package entity

import (
	"time"

	"gorm.io/gorm"
)

// Cart is keyed by (user, restaurant).
type Cart struct {
	gorm.Model
	UserID       uint      `json:"userId" gorm:"uniqueIndex:idx_cart_user_restaurant"`
	RestaurantID uint      `json:"restaurantId" gorm:"uniqueIndex:idx_cart_user_restaurant"`
	TotalAmount  float64   `json:"totalAmount"`
	LastUpdated  time.Time `json:"lastUpdated" gorm:"index"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Recalculate sums price × quantity over the lines.
func (c *Cart) Recalculate() {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.TotalAmount = total
}
