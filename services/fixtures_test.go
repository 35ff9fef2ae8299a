package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/configs"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/events"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/payments"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

// newTestDB opens a migrated sqlite file private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := configs.OpenDB("sqlite", path+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name, city string) *entity.Restaurant {
	t.Helper()
	owner := &entity.Owner{Fullname: name + " owner", BusinessEmail: name + "@owner.test", Password: "x"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	rest := &entity.Restaurant{Name: name, City: city, Status: entity.RestaurantApproved, OwnerID: owner.ID}
	if err := db.Create(rest).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	if err := db.Model(owner).Update("restaurant_id", rest.ID).Error; err != nil {
		t.Fatalf("link owner: %v", err)
	}
	return rest
}

func seedItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64) *entity.Item {
	t.Helper()
	it := &entity.Item{ItemName: name, Price: price, Available: true, RestaurantID: restaurantID}
	if err := db.Create(it).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return it
}

// seedOrderAt inserts o as if it had been placed at `at`.
func seedOrderAt(t *testing.T, db *gorm.DB, o entity.Order, at time.Time) *entity.Order {
	t.Helper()
	o.CreatedAt, o.UpdatedAt = at, at
	if o.Status == "" {
		o.Status = entity.StatusPending
	}
	if o.PayoutStatus == "" {
		o.PayoutStatus = entity.PayoutPending
	}
	if o.AcceptStatus == "" {
		o.AcceptStatus = entity.AcceptPending
	}
	if err := db.Create(&o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return &o
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := &entity.User{Fullname: "Customer", Email: email, Password: "x", Role: entity.RoleUser}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

type recordingPublisher struct {
	mu  sync.Mutex
	got []events.OrderEvent
}

func (r *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return nil
}
func (r *recordingPublisher) Close() error { return nil }

type fakeCheckout struct {
	last payments.CheckoutRequest
}

func (f *fakeCheckout) CreateSession(_ context.Context, req payments.CheckoutRequest) (*payments.Session, error) {
	f.last = req
	return &payments.Session{ID: "cs_test_1", URL: "https://checkout.test/cs_test_1"}, nil
}

func (f *fakeCheckout) ParseWebhook([]byte, string) (*payments.CompletedCheckout, error) {
	return nil, nil
}

func newOrderService(db *gorm.DB, pub events.Publisher, checkout payments.Checkout) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewItemRepository(db),
		repository.NewRestaurantRepository(db),
		pub, checkout, "https://shop.test/", logger.Discard())
}
