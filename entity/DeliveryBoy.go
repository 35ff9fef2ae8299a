package entity

import (
	"time"

	"gorm.io/gorm"
)

type DeliveryBoy struct {
	gorm.Model
	Fullname      string    `json:"fullname"`
	Cnicno        string    `json:"cnicno"`
	Dob           time.Time `json:"dob"`
	Phoneno       string    `json:"phoneno"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `json:"-"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	NumberPlate   string    `json:"numberPlate"`
	Gender        string    `json:"gender"`
	VehicleType   string    `json:"vehicleType"`
	LicenseNo     string    `json:"licenseNo"`
	LicenseExpiry time.Time `json:"licenseExpiry"`
	Picture       string    `json:"picture"`
	Role          string    `gorm:"not null;default:deliveryboy" json:"role"`
}
