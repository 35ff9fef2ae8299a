package entity

import "gorm.io/gorm"

// City is a service area opened by the super admin.
type City struct {
	gorm.Model
	City  string `gorm:"uniqueIndex;not null" json:"city"`
	Image string `json:"image"`
}
