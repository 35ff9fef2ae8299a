package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PayoutPending   = "Pending"
	PayoutCompleted = "Completed"

	AcceptPending  = "Pending"
	AcceptAccepted = "Accepted"
)

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phoneno    string `json:"phoneno"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

type Order struct {
	gorm.Model
	UserID uint  `gorm:"index" json:"userId"`
	User   *User `json:"user,omitempty"`

	RestaurantID uint        `gorm:"index" json:"restaurantId"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`

	Items           []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE;"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"not null;default:cash" json:"paymentMethod"`
	StripeSessionID string          `json:"-"`

	Status       string `gorm:"index;not null;default:Pending" json:"status"`
	PayoutStatus string `gorm:"not null;default:Pending" json:"payoutStatus"`

	DeliveryBoyID *uint        `gorm:"index" json:"deliveryBoyId"`
	DeliveryBoy   *DeliveryBoy `json:"deliveryBoy,omitempty"`
	AcceptStatus  string       `gorm:"not null;default:Pending" json:"acceptStatus"`

	AcceptAt    *time.Time `json:"acceptAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	PaidAt      *time.Time `json:"paidAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	ReturnedAt  *time.Time `json:"returnedAt"`

	ReviewPromptDismissed bool `json:"reviewPromptDismissed"`
	ReviewedOrder         bool `json:"reviewedOrder"`

	// hidden from the customer's history; restaurant and payout views still see it
	RemovedByUser bool `gorm:"not null;default:false" json:"-"`
}
