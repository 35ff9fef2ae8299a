package entity

// CartItem snapshots the item at the time it was added.
type CartItem struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	CartID   uint    `gorm:"index" json:"cartId"`
	ItemID   uint    `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}
