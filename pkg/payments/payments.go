package payments

import "context"

// LineItem is one row on the checkout page. UnitAmount is in major units.
type LineItem struct {
	Name       string
	Image      string
	UnitAmount float64
	Quantity   int64
}

type CheckoutRequest struct {
	OrderID    uint
	Currency   string
	Items      []LineItem
	SuccessURL string
	CancelURL  string
}

type Session struct {
	ID  string
	URL string
}

// CompletedCheckout is a paid session reported by the webhook.
type CompletedCheckout struct {
	SessionID string
	OrderID   uint
}

type Checkout interface {
	CreateSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	// ParseWebhook verifies the payload. It returns nil for events other than a completed checkout.
	ParseWebhook(payload []byte, signature string) (*CompletedCheckout, error)
}
