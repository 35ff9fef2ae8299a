package services

import (
	"errors"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

func newSuperAdminService(db *gorm.DB) *SuperAdminService {
	return NewSuperAdminService(db,
		repository.NewUserRepository(db),
		repository.NewOwnerRepository(db),
		repository.NewDeliveryBoyRepository(db),
		repository.NewRestaurantRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCityRepository(db),
	)
}

func TestSuperAdmin_UpdateRestaurantStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newSuperAdminService(db)

	approved := seedRestaurant(t, db, "Grill", "Lahore")
	db.Model(approved).Update("status", entity.RestaurantPending)
	if err := svc.UpdateRestaurantStatus(approved.ID, entity.RestaurantApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	var got entity.Restaurant
	db.First(&got, approved.ID)
	if got.Status != entity.RestaurantApproved {
		t.Fatalf("status = %q", got.Status)
	}

	rejected := seedRestaurant(t, db, "Wok", "Karachi")
	seedItem(t, db, rejected.ID, "Noodles", 300)
	if err := svc.UpdateRestaurantStatus(rejected.ID, entity.RestaurantRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	var n int64
	db.Unscoped().Model(&entity.Restaurant{}).Where("id = ?", rejected.ID).Count(&n)
	if n != 0 {
		t.Fatal("rejected restaurant should be removed")
	}
	db.Unscoped().Model(&entity.Owner{}).Where("id = ?", rejected.OwnerID).Count(&n)
	if n != 0 {
		t.Fatal("owner of a rejected restaurant should be removed")
	}
	db.Unscoped().Model(&entity.Item{}).Where("restaurant_id = ?", rejected.ID).Count(&n)
	if n != 0 {
		t.Fatal("menu of a rejected restaurant should be removed")
	}

	if err := svc.UpdateRestaurantStatus(approved.ID, "Maybe"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status: err = %v", err)
	}
	if err := svc.UpdateRestaurantStatus(999, entity.RestaurantApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing restaurant: err = %v", err)
	}
}

func TestSuperAdmin_Cities(t *testing.T) {
	db := newTestDB(t)
	svc := newSuperAdminService(db)

	if _, err := svc.Cities(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty list: err = %v", err)
	}
	c, err := svc.AddCity("  lahore ", "https://img.test/lahore.png")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.City != "Lahore" {
		t.Fatalf("city = %q, want Lahore", c.City)
	}
	if _, err := svc.AddCity("LAHORE", "https://img.test/x.png"); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate: err = %v", err)
	}
	if _, err := svc.AddCity("Multan", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing image: err = %v", err)
	}
	list, err := svc.Cities()
	if err != nil || len(list) != 1 {
		t.Fatalf("cities = %d err=%v", len(list), err)
	}
}

func seedDeliveredOrder(t *testing.T, db *gorm.DB, restaurantID, userID uint, total float64) {
	t.Helper()
	o := &entity.Order{
		UserID: userID, RestaurantID: restaurantID, TotalAmount: total,
		Status: entity.StatusDelivered, PayoutStatus: entity.PayoutPending, AcceptStatus: entity.AcceptAccepted,
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func TestSuperAdmin_DashboardAndPayout(t *testing.T) {
	db := newTestDB(t)
	svc := newSuperAdminService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	seedDeliveredOrder(t, db, rest.ID, 1, 1220)
	seedDeliveredOrder(t, db, rest.ID, 2, 720)

	d, err := svc.Dashboard()
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.TotalDeliveredOrders != 2 || d.TotalOrders != 2 || d.TotalRevenue != 150 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.TotalApprovedRestaurants != 1 || d.TotalRestaurantAdmins != 1 {
		t.Fatalf("unexpected counts %+v", d)
	}

	n, err := svc.CompletePayout(rest.ID)
	if err != nil || n != 2 {
		t.Fatalf("payout: n=%d err=%v", n, err)
	}
	n, err = svc.CompletePayout(rest.ID)
	if err != nil || n != 0 {
		t.Fatalf("second payout should be a no-op: n=%d err=%v", n, err)
	}
	if _, err := svc.CompletePayout(0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero id: err = %v", err)
	}
}

func TestSuperAdmin_CommissionOverviewCityFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newSuperAdminService(db)
	lahore := seedRestaurant(t, db, "Grill", "Lahore")
	karachi := seedRestaurant(t, db, "Wok", "Karachi")
	seedDeliveredOrder(t, db, lahore.ID, 1, 1220)
	seedDeliveredOrder(t, db, karachi.ID, 1, 720)

	all, err := svc.CommissionOverview("all", "")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if all.TotalOrders != 2 || len(all.RestaurantCommissionDetails) != 2 || all.CommissionRate != 10 {
		t.Fatalf("unexpected overview %+v", all)
	}

	one, err := svc.CommissionOverview("lahore", "year")
	if err != nil {
		t.Fatalf("lahore: %v", err)
	}
	if one.TotalOrders != 1 || one.TotalEarnings != 1220 {
		t.Fatalf("unexpected filtered overview %+v", one)
	}
	if d := one.RestaurantCommissionDetails; len(d) != 1 || d[0].RestaurantName != "Grill" || d[0].TotalCommission != 100 {
		t.Fatalf("unexpected details %+v", d)
	}
}

func TestRangeStart(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	tests := map[string]time.Time{
		"today":        time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		"yesterday":    time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
		"week":         now.AddDate(0, 0, -7),
		"month":        now.AddDate(0, -1, 0),
		"three_months": now.AddDate(0, -3, 0),
		"year":         now.AddDate(-1, 0, 0),
		"all":          {},
		"":             {},
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := RangeStart(in, now); !got.Equal(want) {
				t.Fatalf("RangeStart(%q) = %s, want %s", in, got, want)
			}
		})
	}
}
