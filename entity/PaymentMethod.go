package entity

const (
	PaymentCash = "cash"
	PaymentCard = "card"
)
