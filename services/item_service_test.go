package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

func newItemService(db *gorm.DB) *ItemService {
	svc := NewItemService(
		repository.NewItemRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewRestaurantRepository(db))
	svc.now = func() time.Time { return dashboardNow }
	return svc
}

func seedCategory(t *testing.T, db *gorm.DB, restaurantID uint, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name, Slug: name, RestaurantID: restaurantID}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func TestItemService_Create(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	other := seedRestaurant(t, db, "Wok", "Karachi")
	mains := seedCategory(t, db, rest.ID, "Mains")
	foreign := seedCategory(t, db, other.ID, "Noodles")
	catID := strconv.FormatUint(uint64(mains.ID), 10)

	tests := []struct {
		name    string
		in      ItemIn
		image   string
		wantErr error
		wantMsg string
	}{
		{"missing name", ItemIn{Description: "d", Price: "10", Category: catID}, "img", ErrValidation, "itemName is required"},
		{"missing image", ItemIn{ItemName: "Burger", Description: "d", Price: "10", Category: catID}, "", ErrValidation, "image is required"},
		{"price not a number", ItemIn{ItemName: "Burger", Description: "d", Price: "ten", Category: catID}, "img", ErrValidation, "price must be a non-negative number"},
		{"negative price", ItemIn{ItemName: "Burger", Description: "d", Price: "-1", Category: catID}, "img", ErrValidation, "price must be a non-negative number"},
		{"category id not numeric", ItemIn{ItemName: "Burger", Description: "d", Price: "10", Category: "mains"}, "img", ErrValidation, "category is invalid"},
		{"category of another restaurant", ItemIn{ItemName: "Burger", Description: "d", Price: "10", Category: strconv.FormatUint(uint64(foreign.ID), 10)}, "img", ErrNotFound, "Category not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(rest.ID, tt.in, tt.image)
			if !errors.Is(err, tt.wantErr) || err.Error() != tt.wantMsg {
				t.Fatalf("err = %v, want %q", err, tt.wantMsg)
			}
		})
	}

	it, err := svc.Create(rest.ID, ItemIn{ItemName: " Burger ", Description: "Beef", Price: "450.5", Category: catID}, "https://img.test/b.png")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.ItemName != "Burger" || it.Price != 450.5 || !it.Available || it.CategoryID == nil || *it.CategoryID != mains.ID {
		t.Fatalf("unexpected item %+v", it)
	}
}

func TestItemService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	other := seedRestaurant(t, db, "Wok", "Karachi")
	drinks := seedCategory(t, db, rest.ID, "Drinks")
	burger := seedItem(t, db, rest.ID, "Burger", 450)

	tests := []struct {
		name         string
		restaurantID uint
		in           ItemIn
		wantErr      error
	}{
		{"another restaurant's item", other.ID, ItemIn{ItemName: "Mine"}, ErrNotFound},
		{"bad price", rest.ID, ItemIn{Price: "-5"}, ErrValidation},
		{"bad availability", rest.ID, ItemIn{Available: "sometimes"}, ErrValidation},
		{"unknown category", rest.ID, ItemIn{Category: "999"}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(tt.restaurantID, burger.ID, tt.in, ""); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, err := svc.Update(rest.ID, burger.ID, ItemIn{
		Price:     "500",
		Available: "false",
		Category:  strconv.FormatUint(uint64(drinks.ID), 10),
	}, "https://img.test/new.png")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ItemName != "Burger" || got.Price != 500 || got.Available || got.Image != "https://img.test/new.png" {
		t.Fatalf("unexpected item %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != drinks.ID {
		t.Fatalf("category = %v, want %d", got.CategoryID, drinks.ID)
	}

	if err := svc.Delete(other.ID, burger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete from another restaurant: err = %v", err)
	}
	if err := svc.Delete(rest.ID, burger.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(rest.ID, burger.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v", err)
	}
}

func TestItemService_Browse(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	empty := seedRestaurant(t, db, "Empty", "Lahore")
	seedCategory(t, db, rest.ID, "Mains")
	burger := seedItem(t, db, rest.ID, "Beef Burger", 450)
	fries := seedItem(t, db, rest.ID, "Fries", 150)
	chicken := seedItem(t, db, rest.ID, "Chicken Burger", 400)
	db.Model(burger).Update("average_rating", 3.2)
	db.Model(fries).Update("average_rating", 4.9)
	db.Model(chicken).Update("average_rating", 4.1)

	menu, err := svc.Menu(rest.ID)
	if err != nil || len(menu.RestaurantItems) != 3 || len(menu.Categories) != 1 || menu.Restaurant.ID != rest.ID {
		t.Fatalf("menu %+v err=%v", menu, err)
	}
	if _, err := svc.Menu(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("menu of unknown restaurant: err = %v", err)
	}

	found, err := svc.Search(rest.ID, "BURGER")
	if err != nil || len(found) != 2 {
		t.Fatalf("search: %d err=%v", len(found), err)
	}

	ranked, err := svc.ByRating(rest.ID)
	if err != nil {
		t.Fatalf("by rating: %v", err)
	}
	wantOrder := []uint{fries.ID, chicken.ID, burger.ID}
	for i, id := range wantOrder {
		if ranked[i].ID != id {
			t.Fatalf("position %d = %s, want id %d", i, ranked[i].ItemName, id)
		}
	}
	if _, err := svc.ByRating(empty.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty restaurant: err = %v", err)
	}
}

func TestItemService_Popular(t *testing.T) {
	db := newTestDB(t)
	svc := newItemService(db)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	burger := seedItem(t, db, rest.ID, "Burger", 450)
	fries := seedItem(t, db, rest.ID, "Fries", 150)
	shake := seedItem(t, db, rest.ID, "Shake", 300)

	order := func(at time.Time, lines map[uint]int) {
		o := seedOrderAt(t, db, entity.Order{UserID: 1, RestaurantID: rest.ID, TotalAmount: 1000}, at)
		for itemID, qty := range lines {
			if err := db.Create(&entity.OrderItem{OrderID: o.ID, ItemID: itemID, Quantity: qty}).Error; err != nil {
				t.Fatalf("seed order item: %v", err)
			}
		}
	}
	recent := dashboardNow.AddDate(0, 0, -3)
	order(recent, map[uint]int{burger.ID: 2, fries.ID: 1})
	order(recent, map[uint]int{fries.ID: 4})
	// older than 30 days
	order(dashboardNow.AddDate(0, 0, -31), map[uint]int{shake.ID: 50, burger.ID: 10})

	got, err := svc.Popular()
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	if got[0].Item.ID != fries.ID || got[0].TotalQuantity != 5 {
		t.Fatalf("first = %s x%d, want Fries x5", got[0].Item.ItemName, got[0].TotalQuantity)
	}
	if got[1].Item.ID != burger.ID || got[1].TotalQuantity != 2 {
		t.Fatalf("second = %s x%d, want Burger x2", got[1].Item.ItemName, got[1].TotalQuantity)
	}
}
