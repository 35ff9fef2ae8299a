package entity

import "gorm.io/gorm"

// Owner is a restaurant operator account, separate from User.
type Owner struct {
	gorm.Model
	Fullname      string `json:"fullname"`
	Cnicno        string `json:"cnicno"`
	ProfileImg    string `json:"profileImg"`
	Phoneno       string `json:"phoneno"`
	BusinessEmail string `gorm:"uniqueIndex;not null" json:"businessemail"`
	Password      string `json:"-"`
	Role          string `gorm:"not null;default:owner" json:"role"`

	RestaurantID *uint       `json:"restaurantId"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}
