package repository

import (
	"database/sql"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(tx *gorm.DB, rv *entity.Review) error {
	return tx.Create(rv).Error
}

func (r *ReviewRepository) ListForRestaurant(restaurantID uint) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.
		Preload("User").Preload("ItemReviews").Preload("ItemReviews.FoodItem").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// ListForRestaurants loads reviews with their restaurant, optionally limited to some restaurants.
func (r *ReviewRepository) ListForRestaurants(restaurantIDs []uint) ([]entity.Review, error) {
	q := r.DB.Preload("Restaurant").Order("created_at DESC")
	if restaurantIDs != nil {
		q = q.Where("restaurant_id IN ?", restaurantIDs)
	}
	var out []entity.Review
	err := q.Find(&out).Error
	return out, err
}

// ListItemReviews returns the item's ratings with their parent review loaded.
func (r *ReviewRepository) ListItemReviews(itemID uint) ([]entity.ItemReview, []entity.Review, error) {
	var irs []entity.ItemReview
	if err := r.DB.Where("item_id = ?", itemID).Order("id DESC").Find(&irs).Error; err != nil {
		return nil, nil, err
	}
	ids := make([]uint, 0, len(irs))
	for _, ir := range irs {
		ids = append(ids, ir.ReviewID)
	}
	var reviews []entity.Review
	if len(ids) > 0 {
		if err := r.DB.Preload("User").Preload("Restaurant").Where("id IN ?", ids).Find(&reviews).Error; err != nil {
			return nil, nil, err
		}
	}
	return irs, reviews, nil
}

func (r *ReviewRepository) AverageItemRating(tx *gorm.DB, itemID uint) (float64, error) {
	var avg sql.NullFloat64
	err := tx.Model(&entity.ItemReview{}).
		Joins("JOIN reviews ON reviews.id = item_reviews.review_id AND reviews.deleted_at IS NULL").
		Where("item_reviews.item_id = ?", itemID).
		Select("AVG(item_reviews.item_rating)").
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReviewRepository) AverageRestaurantRating(tx *gorm.DB, restaurantID uint) (float64, error) {
	var avg sql.NullFloat64
	err := tx.Model(&entity.Review{}).
		Where("restaurant_id = ? AND restaurant_rating IS NOT NULL", restaurantID).
		Select("AVG(restaurant_rating)").
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReviewRepository) CountForRestaurant(restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Review{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

type RatingStat struct {
	RestaurantID  uint
	TotalReviews  int64
	AverageRating *float64
}

// RatingStats aggregates restaurant ratings per restaurant.
func (r *ReviewRepository) RatingStats(restaurantIDs []uint) (map[uint]RatingStat, error) {
	out := map[uint]RatingStat{}
	if len(restaurantIDs) == 0 {
		return out, nil
	}
	var rows []RatingStat
	err := r.DB.Model(&entity.Review{}).
		Select("restaurant_id, COUNT(*) AS total_reviews, AVG(restaurant_rating) AS average_rating").
		Where("restaurant_id IN ?", restaurantIDs).
		Group("restaurant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RestaurantID] = row
	}
	return out, nil
}
