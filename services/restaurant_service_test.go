package services

import (
	"errors"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

var dashboardNow = time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC)

func newRestaurantService(db *gorm.DB) *RestaurantService {
	svc := NewRestaurantService(db,
		repository.NewRestaurantRepository(db),
		repository.NewOwnerRepository(db),
		repository.NewOrderRepository(db),
		repository.NewReviewRepository(db),
		repository.NewItemRepository(db),
		repository.NewCategoryRepository(db),
	)
	svc.now = func() time.Time { return dashboardNow }
	return svc
}

func validRestaurantIn() RestaurantIn {
	return RestaurantIn{
		Name: "Grill House", Description: "Charcoal grills", OpeningTime: "10:00", ClosingTime: "23:00",
		Cuisines: "BBQ, Pakistani ,", Address: "Main Blvd", Phoneno: "0300", City: "Lahore",
	}
}

func TestRestaurantService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantService(db)
	owner := &entity.Owner{Fullname: "Sara", BusinessEmail: "sara@owner.test", Password: "x"}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}

	missingCity := validRestaurantIn()
	missingCity.City = " "
	tests := []struct {
		name    string
		in      RestaurantIn
		image   string
		wantMsg string
	}{
		{"missing city", missingCity, "https://img.test/r.png", "city is required"},
		{"missing image", validRestaurantIn(), "", "image is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(owner.ID, tt.in, tt.image)
			if !errors.Is(err, ErrValidation) || err.Error() != tt.wantMsg {
				t.Fatalf("err = %v, want %q", err, tt.wantMsg)
			}
		})
	}

	rest, err := svc.Create(owner.ID, validRestaurantIn(), "https://img.test/r.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rest.Status != entity.RestaurantPending || len(rest.Cuisines) != 2 || rest.Cuisines[1] != "Pakistani" {
		t.Fatalf("unexpected restaurant %+v", rest)
	}
	var linked entity.Owner
	db.First(&linked, owner.ID)
	if linked.RestaurantID == nil || *linked.RestaurantID != rest.ID {
		t.Fatalf("owner not linked: %+v", linked.RestaurantID)
	}
	if _, err := svc.Create(owner.ID, validRestaurantIn(), "https://img.test/r.png"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second restaurant: err = %v", err)
	}

	st, err := svc.CreationStatus(rest.ID)
	if err != nil || st.Status != entity.RestaurantPending {
		t.Fatalf("creation status %+v err=%v", st, err)
	}
	if _, err := svc.CreationStatus(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing restaurant: err = %v", err)
	}
}

func TestRestaurantService_Update(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	other := seedRestaurant(t, db, "Wok", "Karachi")

	if _, err := svc.Update(rest.ID, other.ID, RestaurantIn{Name: "Mine now"}, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign restaurant: err = %v", err)
	}
	got, err := svc.Update(rest.ID, rest.ID, RestaurantIn{Name: "Grill Deluxe", Cuisines: "BBQ"}, "https://img.test/new.png")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Grill Deluxe" || got.City != "Lahore" || got.Image != "https://img.test/new.png" {
		t.Fatalf("unexpected restaurant %+v", got)
	}
	if len(got.Cuisines) != 1 || got.Cuisines[0] != "BBQ" {
		t.Fatalf("cuisines = %v", got.Cuisines)
	}
}

func TestRestaurantService_ListByCityAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantService(db)
	grill := seedRestaurant(t, db, "Grill", "Lahore")
	wok := seedRestaurant(t, db, "Wok", "lahore")
	tikka := seedRestaurant(t, db, "Tikka Grill", "LAHORE")
	seedRestaurant(t, db, "Karahi", "Karachi")
	db.Model(grill).Updates(map[string]any{"average_restaurant_rating": 3.5, "review_count": 10})
	db.Model(wok).Updates(map[string]any{"average_restaurant_rating": 4.8, "review_count": 2})
	db.Model(tikka).Updates(map[string]any{"average_restaurant_rating": 4.1, "review_count": 30})

	tests := []struct {
		sortBy string
		want   []uint
	}{
		{"rating", []uint{wok.ID, tikka.ID, grill.ID}},
		{"reviews", []uint{tikka.ID, grill.ID, wok.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			got, err := svc.ListByCity("Lahore", tt.sortBy)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d restaurants, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d = %s, want id %d", i, got[i].Name, id)
				}
			}
		})
	}

	unsorted, err := svc.ListByCity("lAhOrE", "newest")
	if err != nil || len(unsorted) != 3 {
		t.Fatalf("unsorted: %d err=%v", len(unsorted), err)
	}
	if _, err := svc.ListByCity("Quetta", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty city: err = %v", err)
	}

	found, err := svc.Search("lahore", "GRILL")
	if err != nil || len(found) != 2 {
		t.Fatalf("search: %d err=%v", len(found), err)
	}
	if found, _ := svc.Search("karachi", "grill"); len(found) != 0 {
		t.Fatalf("search leaked across cities: %+v", found)
	}
}

func TestRestaurantService_Popular(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantService(db)
	grill := seedRestaurant(t, db, "Grill", "Lahore")
	wok := seedRestaurant(t, db, "Wok", "Lahore")
	tikka := seedRestaurant(t, db, "Tikka", "Lahore")
	karahi := seedRestaurant(t, db, "Karahi", "Karachi")

	recent := dashboardNow.AddDate(0, 0, -2)
	for _, id := range []uint{grill.ID, grill.ID, wok.ID, wok.ID, tikka.ID, karahi.ID, karahi.ID, karahi.ID} {
		seedOrderAt(t, db, entity.Order{UserID: 1, RestaurantID: id, TotalAmount: 500}, recent)
	}
	// outside the 40 day window
	for i := 0; i < 5; i++ {
		seedOrderAt(t, db, entity.Order{UserID: 1, RestaurantID: wok.ID, TotalAmount: 500}, dashboardNow.AddDate(0, 0, -41))
	}
	five := 5
	if err := db.Create(&entity.Review{UserID: 1, RestaurantID: tikka.ID, RestaurantRating: &five}).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}

	got, err := svc.Popular("lahore")
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	want := []struct {
		id     uint
		orders int
		score  float64
	}{
		{tikka.ID, 1, 5},
		// equal scores fall back to id order
		{grill.ID, 2, 2},
		{wok.ID, 2, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d restaurants, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w.id || got[i].TotalOrders != w.orders || got[i].Score != w.score {
			t.Fatalf("position %d = {id %d orders %d score %v}, want %+v", i, got[i].ID, got[i].TotalOrders, got[i].Score, w)
		}
	}
	if got[0].TotalReviews != 1 || got[0].AverageRating == nil || *got[0].AverageRating != 5 {
		t.Fatalf("tikka rating %+v", got[0])
	}
	if got[1].AverageRating != nil {
		t.Fatalf("unreviewed restaurant should have no average, got %v", *got[1].AverageRating)
	}

	none, err := svc.Popular("Quetta")
	if err != nil || len(none) != 0 {
		t.Fatalf("empty city: %+v err=%v", none, err)
	}
}

func TestRestaurantService_Dashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newRestaurantService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	seedItem(t, db, rest.ID, "Burger", 450)
	seedItem(t, db, rest.ID, "Fries", 150)
	if err := db.Create(&entity.Category{Name: "Mains", Slug: "mains", RestaurantID: rest.ID}).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	paidAt := dashboardNow.AddDate(0, 0, -1)
	seedOrderAt(t, db, entity.Order{
		UserID: 1, RestaurantID: rest.ID, TotalAmount: 1220,
		Status: entity.StatusDelivered, PayoutStatus: entity.PayoutCompleted, PaidAt: &paidAt,
	}, dashboardNow.AddDate(0, 0, -2))
	seedOrderAt(t, db, entity.Order{
		UserID: 2, RestaurantID: rest.ID, TotalAmount: 720, Status: entity.StatusDelivered,
	}, dashboardNow.Add(-2*time.Hour))
	seedOrderAt(t, db, entity.Order{UserID: 3, RestaurantID: rest.ID, TotalAmount: 500}, dashboardNow.Add(-time.Hour))
	other := seedRestaurant(t, db, "Wok", "Karachi")
	seedOrderAt(t, db, entity.Order{UserID: 4, RestaurantID: other.ID, TotalAmount: 900, Status: entity.StatusDelivered}, dashboardNow)

	d, err := svc.Dashboard(rest.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if len(d.OrdersByStatus) != len(entity.OrderStatuses) {
		t.Fatalf("ordersByStatus has %d keys, want every status", len(d.OrdersByStatus))
	}
	wantStatus := map[string]int64{entity.StatusDelivered: 2, entity.StatusPending: 1, entity.StatusCancelled: 0, entity.StatusReadyForPickup: 0}
	for status, n := range wantStatus {
		if d.OrdersByStatus[status] != n {
			t.Errorf("ordersByStatus[%q] = %d, want %d", status, d.OrdersByStatus[status], n)
		}
	}

	counts := []struct {
		name      string
		got, want float64
	}{
		{"totalMenuItems", float64(d.TotalMenuItems), 2},
		{"totalCategories", float64(d.TotalCategories), 1},
		{"totalOrders", float64(d.TotalOrders), 3},
		{"totalUsers", float64(d.TotalUsers), 3},
		{"totalRevenue", d.TotalRevenue, 1940},
		{"dailyOrders", float64(d.DailyOrders), 1},
		{"weeklyOrders", float64(d.WeeklyOrders), 2},
		{"monthlyOrders", float64(d.MonthlyOrders), 2},
		{"totalDeliveryCharges", d.TotalDeliveryCharges, 400},
		{"totalServiceCharges", d.TotalServiceCharges, 40},
		{"commissionCharges", d.CommissionCharges, 150},
		{"totalEarningsWithoutFees", d.TotalEarningsWithoutFees, 1350},
		{"totalPayoutPaid", d.TotalPayoutPaid, 120},
		{"totalPayoutRemainingAmount", d.TotalPayoutRemainingAmount, 70},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if len(d.WeeklyRevenue) != 7 || len(d.YearlyRevenue) != 12 {
		t.Fatalf("series lengths weekly=%d yearly=%d", len(d.WeeklyRevenue), len(d.YearlyRevenue))
	}
	var weekSum float64
	for _, p := range d.WeeklyRevenue {
		weekSum += p.Revenue
	}
	if weekSum != 1350 {
		t.Fatalf("weekly revenue sums to %v, want 1350", weekSum)
	}
	last := d.YearlyRevenue[len(d.YearlyRevenue)-1]
	if last.Label != "March 2025" || last.Revenue != 1350 || last.Orders != 2 {
		t.Fatalf("current month %+v", last)
	}
	if d.YearlyRevenue[0].Label != "April 2024" || d.YearlyRevenue[0].Orders != 0 {
		t.Fatalf("first month %+v", d.YearlyRevenue[0])
	}

	if _, err := svc.Dashboard(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing restaurant: err = %v", err)
	}
}
