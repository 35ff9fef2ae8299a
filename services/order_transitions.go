package services

import (
	"context"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

func errTransition() error {
	return newErr(ErrInvalidTransition, "invalid state or already updated")
}

// stampColumn names the timestamp written when an order enters a terminal status.
func stampColumn(status string) string {
	switch status {
	case entity.StatusDelivered:
		return "delivered_at"
	case entity.StatusCancelled:
		return "cancelled_at"
	case entity.StatusReturned:
		return "returned_at"
	}
	return ""
}

type StatusResult struct {
	Status      string     `json:"status"`
	DeliveredAt *time.Time `json:"deliveredAt"`
}

// transition moves o to the target status with a compare-and-set on its current status.
func (s *OrderService) transition(ctx context.Context, o *entity.Order, to string) error {
	if !entity.CanTransition(o.Status, to) {
		return errTransition()
	}
	now := s.now()
	extra := map[string]any{}
	if col := stampColumn(to); col != "" {
		extra[col] = now
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to, extra)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errTransition()
		}
		return nil
	})
	if err != nil {
		return err
	}

	prev := o.Status
	o.Status = to
	switch to {
	case entity.StatusDelivered:
		o.DeliveredAt = &now
	case entity.StatusCancelled:
		o.CancelledAt = &now
	case entity.StatusReturned:
		o.ReturnedAt = &now
	}
	s.publish(ctx, o, prev)
	return nil
}

// ----- Owner actions -----

func (s *OrderService) UpdateStatus(ctx context.Context, restaurantID, orderID uint, status string) (*StatusResult, error) {
	if !entity.IsOrderStatus(status) {
		return nil, invalid("unknown status %q", status)
	}
	o, err := s.Repo.FindByID(orderID)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if o.RestaurantID != restaurantID {
		return nil, notFound("Order not found")
	}
	if err := s.transition(ctx, o, status); err != nil {
		return nil, err
	}
	return &StatusResult{Status: o.Status, DeliveredAt: o.DeliveredAt}, nil
}

// ----- Customer actions -----

func (s *OrderService) Cancel(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.GetForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, o, entity.StatusCancelled); err != nil {
		return nil, err
	}
	return o, nil
}

// ----- Delivery boy actions -----

// Accept claims an unassigned order for the delivery boy.
// Two riders racing for the same order get one success and one conflict.
func (s *OrderService) Accept(ctx context.Context, deliveryBoyID, orderID uint, status string) (*entity.Order, error) {
	if status == "" {
		status = entity.StatusOutForDelivery
	}
	o, err := s.Repo.FindByID(orderID)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if o.DeliveryBoyID != nil {
		return nil, conflict("Order already accepted")
	}
	if !entity.CanTransition(o.Status, status) {
		return nil, errTransition()
	}

	now := s.now()
	var affected int64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		affected, err = s.Repo.Accept(tx, o.ID, deliveryBoyID, o.Status, status, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		cur, err := s.Repo.FindByID(orderID)
		if err == nil && cur.DeliveryBoyID != nil {
			return nil, conflict("Order already accepted")
		}
		return nil, errTransition()
	}

	prev := o.Status
	o.Status = status
	o.DeliveryBoyID = &deliveryBoyID
	o.AcceptStatus = entity.AcceptAccepted
	o.AcceptAt = &now
	s.publish(ctx, o, prev)
	return o, nil
}

func (s *OrderService) assigned(deliveryBoyID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.FindByID(orderID)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	if o.DeliveryBoyID == nil || *o.DeliveryBoyID != deliveryBoyID {
		return nil, forbidden("Order is not assigned to you")
	}
	return o, nil
}

func (s *OrderService) Deliver(ctx context.Context, deliveryBoyID, orderID uint, status string) (*entity.Order, error) {
	if status == "" {
		status = entity.StatusDelivered
	}
	o, err := s.assigned(deliveryBoyID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, o, status); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) Return(ctx context.Context, deliveryBoyID, orderID uint) (*entity.Order, error) {
	o, err := s.assigned(deliveryBoyID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, o, entity.StatusReturned); err != nil {
		return nil, err
	}
	return o, nil
}
