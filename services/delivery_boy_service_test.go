package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"
)

func riderForm() DeliveryBoyIn {
	return DeliveryBoyIn{
		Fullname: "Ali Rider", Cnicno: "35202-1234567-1", Dob: "1995-04-02", Phoneno: "03001234567",
		Email: "Ali@Rider.test", Password: "secret123", Address: "Street 1", City: "Lahore",
		NumberPlate: "LEA-123", Gender: "male", VehicleType: "bike", LicenseNo: "L-1", LicenseExpiry: "2030-01-01",
	}
}

func TestDeliveryBoyService_RegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryBoyService(repository.NewDeliveryBoyRepository(db), repository.NewOrderRepository(db), "test-secret", time.Hour)

	if _, err := svc.Register(riderForm(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing picture: err = %v", err)
	}
	bad := riderForm()
	bad.Dob = "02/04/1995"
	if _, err := svc.Register(bad, "pic.png"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad date: err = %v", err)
	}

	res, err := svc.Register(riderForm(), "pic.png")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.DeliveryBoy.Email != "ali@rider.test" || res.DeliveryBoy.Password == "secret123" {
		t.Fatalf("email should be normalised and password hashed: %+v", res.DeliveryBoy)
	}
	claims, err := utils.ParseToken(res.Token, "test-secret")
	if err != nil || claims.Role != entity.RoleDeliveryBoy || claims.UserID != res.DeliveryBoy.ID {
		t.Fatalf("unexpected token claims %+v err=%v", claims, err)
	}

	if _, err := svc.Register(riderForm(), "pic.png"); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate: err = %v", err)
	}

	if _, err := svc.Login("35202-1234567-1", "ali@rider.test", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Login("35202-1234567-1", "ali@rider.test", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, err := svc.Login("00000-0000000-0", "ali@rider.test", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong cnic: err = %v", err)
	}
	if _, err := svc.Login("x", "nobody@rider.test", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown rider: err = %v", err)
	}
}

func TestDeliveryBoyService_Dashboard(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryBoyService(repository.NewDeliveryBoyRepository(db), repository.NewOrderRepository(db), "s", time.Hour)
	now := time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC) // Wednesday
	svc.now = func() time.Time { return now }

	res, err := svc.Register(riderForm(), "pic.png")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rider := res.DeliveryBoy.ID
	rest := seedRestaurant(t, db, "Grill", "Lahore")

	recent := now.Add(-time.Hour)
	old := time.Date(2025, time.January, 31, 18, 0, 0, 0, time.UTC)
	seed := func(status string, deliveredAt *time.Time) {
		o := &entity.Order{
			UserID: 1, RestaurantID: rest.ID, TotalAmount: 720, Status: status,
			DeliveryBoyID: &rider, AcceptStatus: entity.AcceptAccepted, DeliveredAt: deliveredAt,
		}
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
	seed(entity.StatusDelivered, &recent)
	seed(entity.StatusDelivered, &old)
	seed(entity.StatusReturned, nil)
	seed(entity.StatusOutForDelivery, nil)

	d, err := svc.Dashboard(rider)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Delivered != 2 || d.Returned != 1 || d.InProgress != 1 {
		t.Fatalf("unexpected counts %+v", d)
	}
	if d.CompletionRate != 66.67 {
		t.Fatalf("completion rate = %v, want 66.67", d.CompletionRate)
	}
	if d.TotalEarnings != 400 || d.TodayEarnings != 200 {
		t.Fatalf("earnings = %v / %v", d.TotalEarnings, d.TodayEarnings)
	}
	want := DeliveriesTimeline{Daily: 1, Weekly: 1, Monthly: 1, Total: 2}
	if d.DeliveriesTimeline != want {
		t.Fatalf("timeline = %+v, want %+v", d.DeliveriesTimeline, want)
	}
	if len(d.WeeklyEarnings) != 1 || d.WeeklyEarnings[0].Name != "Wednesday - Week 2 of March 2025" {
		t.Fatalf("weekly = %+v", d.WeeklyEarnings)
	}
	if len(d.MonthlyEarnings) != 2 || d.MonthlyEarnings[0].Name != "Week 5 of January 2025" {
		t.Fatalf("monthly should be chronological: %+v", d.MonthlyEarnings)
	}
	if len(d.YearlyEarnings) != 2 || d.YearlyEarnings[1].Name != "March 2025" || d.YearlyEarnings[1].Amount != 200 {
		t.Fatalf("yearly = %+v", d.YearlyEarnings)
	}
	if len(d.RecentDeliveries) != 3 {
		t.Fatalf("recent deliveries = %d, want 3", len(d.RecentDeliveries))
	}

	if _, err := svc.Dashboard(rider + 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown rider: err = %v", err)
	}
}

func TestDeliveryBoyService_DashboardInProgressAndEmptyLists(t *testing.T) {
	db := newTestDB(t)
	svc := NewDeliveryBoyService(repository.NewDeliveryBoyRepository(db), repository.NewOrderRepository(db), "s", time.Hour)
	svc.now = func() time.Time { return time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC) }

	res, err := svc.Register(riderForm(), "pic.png")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rider := res.DeliveryBoy.ID

	d, err := svc.Dashboard(rider)
	if err != nil {
		t.Fatalf("empty dashboard: %v", err)
	}
	body, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !bytes.Contains(body, []byte(`"recentDeliveries":[]`)) {
		t.Fatalf("recentDeliveries should be an empty list: %s", body)
	}

	rest := seedRestaurant(t, db, "Grill", "Lahore")
	for _, status := range []string{
		entity.StatusAccepted, entity.StatusPreparing, entity.StatusReadyForPickup,
		entity.StatusOutForDelivery, entity.StatusCancelled,
	} {
		o := &entity.Order{
			UserID: 1, RestaurantID: rest.ID, TotalAmount: 720, Status: status,
			DeliveryBoyID: &rider, AcceptStatus: entity.AcceptAccepted,
		}
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	d, err = svc.Dashboard(rider)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.InProgress != 4 || d.Cancelled != 1 {
		t.Fatalf("inProgress = %d cancelled = %d, want 4 and 1", d.InProgress, d.Cancelled)
	}
	if len(d.RecentDeliveries) != 1 || d.RecentDeliveries[0].Status != entity.StatusCancelled {
		t.Fatalf("recent deliveries should hold only finished orders: %+v", d.RecentDeliveries)
	}
}
