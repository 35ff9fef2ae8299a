package events

import (
	"context"
	"errors"
	"strings"
	"time"
)

// OrderEvent is emitted every time an order changes status.
type OrderEvent struct {
	OrderID        uint      `json:"orderId"`
	UserID         uint      `json:"userId"`
	RestaurantID   uint      `json:"restaurantId"`
	DeliveryBoyID  *uint     `json:"deliveryBoyId,omitempty"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Status         string    `json:"status"`
	At             time.Time `json:"at"`
}

// RoutingKey renders "order.status.out_for_delivery".
func (e OrderEvent) RoutingKey() string {
	return "order.status." + strings.ReplaceAll(strings.ToLower(e.Status), " ", "_")
}

type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error { return nil }

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e OrderEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, p := range f {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
