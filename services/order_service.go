package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/events"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/payments"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

const userHistoryWindow = 7 * 24 * time.Hour

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	ItemRepo  *repository.ItemRepository
	RestRepo  *repository.RestaurantRepository
	Events    events.Publisher
	Checkout  payments.Checkout // nil when card payments are off
	ClientURL string
	Log       *logger.Logger

	now func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	itemRepo *repository.ItemRepository,
	restRepo *repository.RestaurantRepository,
	pub events.Publisher,
	checkout payments.Checkout,
	clientURL string,
	log *logger.Logger,
) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &OrderService{
		DB: db, Repo: repo, CartRepo: cartRepo, ItemRepo: itemRepo, RestRepo: restRepo,
		Events: pub, Checkout: checkout, ClientURL: strings.TrimRight(clientURL, "/"), Log: log,
		now: time.Now,
	}
}

// ----- DTOs from Controller -----
type OrderItemIn struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	Items           []OrderItemIn          `json:"items" binding:"required,min=1,dive"`
	ShippingDetails entity.ShippingAddress `json:"shippingDetails"`
	PaymentMethod   string                 `json:"paymentMethod"`
	RestaurantID    uint                   `json:"restaurantId" binding:"required"`
}

type CreateOrderRes struct {
	OrderID    uint   `json:"orderId,omitempty"`
	Method     string `json:"method,omitempty"`
	SessionURL string `json:"sessionURL,omitempty"`
}

// ----- Create -----

// Create prices the order from the item rows, stores it and empties the cart in one transaction.
// Card orders then get a checkout session.
func (s *OrderService) Create(ctx context.Context, userID uint, req CreateOrderReq) (*CreateOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, invalid("items is required")
	}
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))
	if method == "" {
		method = entity.PaymentCash
	}
	if method != entity.PaymentCash && s.Checkout == nil {
		return nil, invalid("Card payments are not available")
	}
	if _, err := s.RestRepo.FindByID(req.RestaurantID); err != nil {
		return nil, orNotFound(err, "Restaurant not found")
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ItemID)
	}
	items, err := s.ItemRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		UserID:          userID,
		RestaurantID:    req.RestaurantID,
		ShippingAddress: req.ShippingDetails,
		PaymentMethod:   method,
		Status:          entity.StatusPending,
		PayoutStatus:    entity.PayoutPending,
		AcceptStatus:    entity.AcceptPending,
	}
	var subtotal float64
	for _, in := range req.Items {
		it, ok := items[in.ItemID]
		if !ok {
			return nil, notFound("Item %d not found", in.ItemID)
		}
		if it.RestaurantID != req.RestaurantID {
			return nil, invalid("Item %d does not belong to this restaurant", in.ItemID)
		}
		if in.Quantity <= 0 {
			return nil, invalid("Quantity must be at least 1")
		}
		subtotal += it.Price * float64(in.Quantity)
		order.Items = append(order.Items, entity.OrderItem{
			ItemID: it.ID, Name: it.ItemName, Image: it.Image, Quantity: in.Quantity, Price: it.Price,
		})
	}
	order.TotalAmount = OrderTotal(subtotal)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, &order); err != nil {
			return err
		}
		return s.CartRepo.Clear(tx, userID, req.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, &order, "")

	if method == entity.PaymentCash {
		return &CreateOrderRes{OrderID: order.ID, Method: method}, nil
	}

	sess, err := s.Checkout.CreateSession(ctx, s.checkoutRequest(&order))
	if err != nil {
		return nil, err
	}
	if _, err := s.Repo.Updates(s.DB, order.ID, map[string]any{"stripe_session_id": sess.ID}); err != nil {
		return nil, err
	}
	return &CreateOrderRes{SessionURL: sess.URL}, nil
}

func (s *OrderService) checkoutRequest(o *entity.Order) payments.CheckoutRequest {
	req := payments.CheckoutRequest{
		OrderID:    o.ID,
		Currency:   CheckoutCurrency,
		SuccessURL: fmt.Sprintf("%s/order-confirm?orderId=%d", s.ClientURL, o.ID),
		CancelURL:  fmt.Sprintf("%s/cancel?success=false&orderId=%d", s.ClientURL, o.ID),
	}
	for _, it := range o.Items {
		req.Items = append(req.Items, payments.LineItem{
			Name: it.Name, Image: it.Image, UnitAmount: it.Price, Quantity: int64(it.Quantity),
		})
	}
	req.Items = append(req.Items,
		payments.LineItem{Name: "Delivery Charges", UnitAmount: DeliveryCharge, Quantity: 1},
		payments.LineItem{Name: "Service Charges", UnitAmount: ServiceCharge, Quantity: 1},
	)
	return req
}

// MarkPaid records a completed card payment.
func (s *OrderService) MarkPaid(sessionID string, orderID uint) error {
	n, err := s.Repo.SetPaidBySession(sessionID, orderID, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		s.Log.Warn("order_mark_paid", "", "no unpaid order matched the session",
			slog.String("session_id", sessionID), slog.Uint64("order_id", uint64(orderID)))
	}
	return nil
}

// ----- Customer views -----

func (s *OrderService) GetForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.FindForUser(userID, orderID)
	if err != nil {
		return nil, orNotFound(err, "Order not found")
	}
	return o, nil
}

func (s *OrderService) ListForUser(userID uint) ([]entity.Order, error) {
	return s.Repo.ListForUserSince(userID, s.now().Add(-userHistoryWindow))
}

func (s *OrderService) StatusForUser(userID, orderID uint) (string, error) {
	o, err := s.GetForUser(userID, orderID)
	if err != nil {
		return "", err
	}
	return o.Status, nil
}

func (s *OrderService) RemoveForUser(userID, orderID uint) error {
	n, err := s.Repo.RemoveForUser(userID, orderID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Order not found")
	}
	return nil
}

func (s *OrderService) DismissReviewPrompt(userID, orderID uint) error {
	if _, err := s.GetForUser(userID, orderID); err != nil {
		return err
	}
	_, err := s.Repo.Updates(s.DB, orderID, map[string]any{"review_prompt_dismissed": true})
	return err
}

// ----- Restaurant views -----

func (s *OrderService) ListForRestaurant(restaurantID uint) ([]entity.Order, error) {
	orders, err := s.Repo.ListForRestaurant(restaurantID, "")
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFound("No orders found")
	}
	return orders, nil
}

func (s *OrderService) ListForRestaurantByStatus(restaurantID uint, status string) ([]entity.Order, error) {
	if !entity.IsOrderStatus(status) {
		return nil, invalid("unknown status %q", status)
	}
	return s.Repo.ListForRestaurant(restaurantID, status)
}

// ----- Delivery views -----

func (s *OrderService) ListByCity(city string) ([]entity.Order, error) {
	orders, err := s.Repo.ListByCity(city)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFound("No orders found for this city")
	}
	return orders, nil
}

func (s *OrderService) ListForDeliveryBoy(deliveryBoyID uint) ([]entity.Order, error) {
	orders, err := s.Repo.ListForDeliveryBoy(deliveryBoyID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, notFound("No orders found")
	}
	return orders, nil
}

// AuthorizeTracking lets the customer, the restaurant owner and the assigned rider follow an order.
// It returns the current status.
func (s *OrderService) AuthorizeTracking(orderID, accountID uint, role string) (string, error) {
	o, err := s.Repo.FindByID(orderID)
	if err != nil {
		return "", orNotFound(err, "Order not found")
	}
	switch role {
	case entity.RoleUser, entity.RoleSuperAdmin:
		if o.UserID == accountID || role == entity.RoleSuperAdmin {
			return o.Status, nil
		}
	case entity.RoleOwner:
		rest, err := s.RestRepo.FindByID(o.RestaurantID)
		if err == nil && rest.OwnerID == accountID {
			return o.Status, nil
		}
	case entity.RoleDeliveryBoy:
		if o.DeliveryBoyID != nil && *o.DeliveryBoyID == accountID {
			return o.Status, nil
		}
	}
	return "", forbidden("no access")
}

func (s *OrderService) publish(ctx context.Context, o *entity.Order, previous string) {
	ev := events.OrderEvent{
		OrderID:        o.ID,
		UserID:         o.UserID,
		RestaurantID:   o.RestaurantID,
		DeliveryBoyID:  o.DeliveryBoyID,
		PreviousStatus: previous,
		Status:         o.Status,
		At:             s.now(),
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		s.Log.Warn("order_event", "", "failed to publish order event",
			slog.Uint64("order_id", uint64(o.ID)), slog.String("reason", err.Error()))
	}
}
