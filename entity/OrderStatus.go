package entity

const (
	StatusPending        = "Pending"
	StatusAccepted       = "Accepted"
	StatusPreparing      = "Preparing"
	StatusReadyForPickup = "Ready for pickup"
	StatusOutForDelivery = "Out for delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
	StatusReturned       = "Returned"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []string{
	StatusPending, StatusAccepted, StatusPreparing, StatusReadyForPickup,
	StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusReturned,
}

var orderTransitions = map[string][]string{
	StatusPending:        {StatusAccepted, StatusPreparing, StatusCancelled},
	StatusAccepted:       {StatusPreparing, StatusReadyForPickup, StatusOutForDelivery, StatusCancelled},
	StatusPreparing:      {StatusReadyForPickup, StatusOutForDelivery, StatusCancelled},
	StatusReadyForPickup: {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered, StatusReturned},
}

func IsOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Delivered, Cancelled and Returned are terminal.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SourcesOf returns every status that may move to the given one.
func SourcesOf(to string) []string {
	var out []string
	for _, from := range OrderStatuses {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}
