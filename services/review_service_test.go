package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
)

func intPtr(v int) *int { return &v }

func TestReviewService_CreateRefreshesAggregates(t *testing.T) {
	db := newTestDB(t)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	item := seedItem(t, db, rest.ID, "Burger", 500)
	svc := NewReviewService(db, repository.NewReviewRepository(db), repository.NewRestaurantRepository(db))

	order := &entity.Order{UserID: 1, RestaurantID: rest.ID, Status: entity.StatusDelivered, TotalAmount: 720}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	_, err := svc.Create(1, CreateReviewIn{
		RestaurantID:         rest.ID,
		StatusOrderID:        order.ID,
		ItemReviews:          []ItemRatingIn{{FoodItemID: item.ID, ItemRating: 4}},
		RestaurantRating:     intPtr(4),
		RestaurantReviewText: "Good",
	})
	if err != nil {
		t.Fatalf("first review: %v", err)
	}
	_, err = svc.Create(2, CreateReviewIn{
		RestaurantID:         rest.ID,
		ItemReviews:          []ItemRatingIn{{FoodItemID: item.ID, ItemRating: 5}},
		RestaurantRating:     intPtr(5),
		RestaurantReviewText: "Great",
	})
	if err != nil {
		t.Fatalf("second review: %v", err)
	}

	var gotItem entity.Item
	db.First(&gotItem, item.ID)
	if gotItem.AverageRating != 4.5 {
		t.Fatalf("item average = %v, want 4.5", gotItem.AverageRating)
	}
	var gotRest entity.Restaurant
	db.First(&gotRest, rest.ID)
	if gotRest.AverageRestaurantRating != 4.5 || gotRest.ReviewCount != 2 {
		t.Fatalf("restaurant aggregates = %v/%d", gotRest.AverageRestaurantRating, gotRest.ReviewCount)
	}
	var gotOrder entity.Order
	db.First(&gotOrder, order.ID)
	if !gotOrder.ReviewedOrder || !gotOrder.ReviewPromptDismissed {
		t.Fatalf("order flags not set: %+v", gotOrder)
	}

	rating, err := svc.ItemRating(item.ID)
	if err != nil {
		t.Fatalf("item rating: %v", err)
	}
	if len(rating.RatingData) != 2 || rating.AverageRating == nil || *rating.AverageRating != 4.5 {
		t.Fatalf("unexpected item rating %+v", rating)
	}
}

func TestReviewService_CreateValidation(t *testing.T) {
	db := newTestDB(t)
	rest := seedRestaurant(t, db, "Grill", "Lahore")
	svc := NewReviewService(db, repository.NewReviewRepository(db), repository.NewRestaurantRepository(db))

	tests := []struct {
		name string
		in   CreateReviewIn
		want error
	}{
		{"missing text", CreateReviewIn{RestaurantID: rest.ID}, ErrValidation},
		{"text too long", CreateReviewIn{RestaurantID: rest.ID, RestaurantReviewText: strings.Repeat("a", 1001)}, ErrValidation},
		{"rating out of range", CreateReviewIn{RestaurantID: rest.ID, RestaurantReviewText: "x", RestaurantRating: intPtr(6)}, ErrValidation},
		{"item rating out of range", CreateReviewIn{
			RestaurantID: rest.ID, RestaurantReviewText: "x",
			ItemReviews: []ItemRatingIn{{FoodItemID: 1, ItemRating: 0}},
		}, ErrValidation},
		{"unknown restaurant", CreateReviewIn{RestaurantID: 999, RestaurantReviewText: "x"}, ErrNotFound},
		{"someone else's order", CreateReviewIn{RestaurantID: rest.ID, RestaurantReviewText: "x", StatusOrderID: 999}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(1, tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	list, err := svc.ListForRestaurant(rest.ID)
	if err != nil || len(list) != 0 {
		t.Fatalf("rejected reviews must not be stored: %d err=%v", len(list), err)
	}
}
