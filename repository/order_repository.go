package repository

import (
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) FindByID(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Preload("Items").Preload("Restaurant").Preload("DeliveryBoy").
		Where("id = ? AND user_id = ? AND removed_by_user = ?", orderID, userID, false).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListForUserSince(userID uint, since time.Time) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").Preload("Restaurant").Preload("DeliveryBoy").
		Where("user_id = ? AND removed_by_user = ? AND created_at >= ?", userID, false, since).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListForRestaurant returns the restaurant's orders, optionally in one status.
func (r *OrderRepository) ListForRestaurant(restaurantID uint, status string) ([]entity.Order, error) {
	q := r.DB.Preload("Items").Preload("User").Preload("DeliveryBoy").
		Where("restaurant_id = ?", restaurantID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []entity.Order
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListByCity returns orders whose restaurant is in the city.
func (r *OrderRepository) ListByCity(city string) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").Preload("User").Preload("Restaurant").
		Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
		Where("LOWER(restaurants.city) = ?", strings.ToLower(city)).
		Order("orders.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListForDeliveryBoy(deliveryBoyID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.Preload("Items").Preload("User").Preload("Restaurant").
		Where("delivery_boy_id = ?", deliveryBoyID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// OrderFilter narrows the reporting queries. Zero values mean no filter.
type OrderFilter struct {
	RestaurantID uint
	Status       string
	PayoutStatus string
	City         string
	Since        time.Time
	Until        time.Time
}

// List returns orders matching the filter with their restaurant loaded.
func (r *OrderRepository) List(f OrderFilter) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{}).Preload("Restaurant")
	if f.RestaurantID != 0 {
		q = q.Where("orders.restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.PayoutStatus != "" {
		q = q.Where("orders.payout_status = ?", f.PayoutStatus)
	}
	if f.City != "" {
		q = q.Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("LOWER(restaurants.city) = ?", strings.ToLower(f.City))
	}
	if !f.Since.IsZero() {
		q = q.Where("orders.created_at >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		q = q.Where("orders.created_at < ?", f.Until)
	}
	var out []entity.Order
	err := q.Order("orders.created_at ASC").Find(&out).Error
	return out, err
}

func (r *OrderRepository) CountByStatus(restaurantID uint) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	q := r.DB.Model(&entity.Order{}).Select("status, COUNT(*) AS n").Group("status")
	if restaurantID != 0 {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		out[s] = 0
	}
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}

// ---------------- Guarded writes ----------------

// UpdateStatusGuard moves the order to `to` only while it is still in `from`.
// Extra columns are written in the same statement.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string, extra map[string]any) (int64, error) {
	fields := map[string]any{"status": to}
	for k, v := range extra {
		fields[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// Accept assigns the delivery boy only while nobody holds the order.
func (r *OrderRepository) Accept(tx *gorm.DB, orderID, deliveryBoyID uint, from, to string, now time.Time) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND delivery_boy_id IS NULL AND status = ?", orderID, from).
		Updates(map[string]any{
			"delivery_boy_id": deliveryBoyID,
			"accept_status":   entity.AcceptAccepted,
			"accept_at":       now,
			"status":          to,
		})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) Updates(tx *gorm.DB, orderID uint, fields map[string]any) (int64, error) {
	res := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) RemoveForUser(userID, orderID uint) (int64, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("id = ? AND user_id = ? AND removed_by_user = ?", orderID, userID, false).
		Update("removed_by_user", true)
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) SetPaidBySession(sessionID string, orderID uint, now time.Time) (int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("paid_at IS NULL")
	if orderID != 0 {
		q = q.Where("id = ?", orderID)
	} else {
		q = q.Where("stripe_session_id = ?", sessionID)
	}
	res := q.Update("paid_at", now)
	return res.RowsAffected, res.Error
}

// CompletePayouts settles every delivered, unpaid-out order of the restaurant.
func (r *OrderRepository) CompletePayouts(restaurantID uint, now time.Time) (int64, error) {
	res := r.DB.Model(&entity.Order{}).
		Where("restaurant_id = ? AND status = ? AND payout_status = ?", restaurantID, entity.StatusDelivered, entity.PayoutPending).
		Updates(map[string]any{"payout_status": entity.PayoutCompleted, "paid_at": now})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) CountDistinctCustomers(restaurantID uint) (int64, error) {
	var n int64
	q := r.DB.Model(&entity.Order{}).Distinct("user_id")
	if restaurantID != 0 {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	err := q.Count(&n).Error
	return n, err
}
