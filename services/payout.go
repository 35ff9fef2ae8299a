package services

import "math"

const (
	DeliveryCharge             = 200.0
	ServiceCharge              = 20.0
	CommissionRate             = 0.10
	DeliveryBoyEarningPerOrder = 200.0
	CheckoutCurrency           = "pkr"

	// flat fees carried by every order
	orderFees = DeliveryCharge + ServiceCharge
)

// OrderTotal adds the flat fees to the items subtotal.
func OrderTotal(itemsTotal float64) float64 {
	return itemsTotal + orderFees
}

// RestaurantNet is what the restaurant keeps from one order.
func RestaurantNet(total float64) float64 {
	return total - (orderFees + (total-orderFees)*CommissionRate)
}

// PlatformRevenue is the commission earned on one delivered order.
func PlatformRevenue(total float64) float64 {
	return math.Max(total-orderFees, 0) * CommissionRate
}

// PayoutAmount is the platform's share of one order: commission plus the service charge.
func PayoutAmount(total float64) float64 {
	return (total-orderFees)*CommissionRate + ServiceCharge
}

// NetRevenue is the commission over a bucket of n orders grossing `gross`.
func NetRevenue(gross float64, n int) float64 {
	return (gross - orderFees*float64(n)) * CommissionRate
}

// CommissionOverviewTotal keeps the dashboard headline figure: gross × rate − fees × n.
func CommissionOverviewTotal(gross float64, n int) float64 {
	return gross*CommissionRate - orderFees*float64(n)
}

// RestaurantFees is the fee breakdown of the restaurant dashboard.
type RestaurantFees struct {
	TotalDeliveryCharges     float64 `json:"totalDeliveryCharges"`
	TotalServiceCharges      float64 `json:"totalServiceCharges"`
	CommissionCharges        float64 `json:"commissionCharges"`
	TotalEarningsWithoutFees float64 `json:"totalEarningsWithoutFees"`
}

func ComputeRestaurantFees(gross float64, delivered int) RestaurantFees {
	base := gross - orderFees*float64(delivered)
	commission := base * CommissionRate
	return RestaurantFees{
		TotalDeliveryCharges:     DeliveryCharge * float64(delivered),
		TotalServiceCharges:      ServiceCharge * float64(delivered),
		CommissionCharges:        commission,
		TotalEarningsWithoutFees: base - commission,
	}
}

// PayoutSum is ServiceCharge·n + (Σtotal − 220·n)·rate.
func PayoutSum(totals []float64) float64 {
	var sum float64
	for _, t := range totals {
		sum += t
	}
	n := float64(len(totals))
	return ServiceCharge*n + (sum-orderFees*n)*CommissionRate
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
