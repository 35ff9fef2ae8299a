package repository

import (
	"context"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

// CatalogRepository serves the menu helper's read queries.
type CatalogRepository struct{ DB *gorm.DB }

func NewCatalogRepository(db *gorm.DB) *CatalogRepository { return &CatalogRepository{DB: db} }

func (r *CatalogRepository) RestaurantsByName(ctx context.Context, name, city string, limit int) ([]entity.Restaurant, error) {
	q := r.DB.WithContext(ctx)
	if name != "" {
		q = q.Where("LOWER(name) LIKE ?", like(name))
	}
	if city != "" {
		q = q.Where("LOWER(city) LIKE ?", like(city))
	}
	var out []entity.Restaurant
	err := q.Limit(limit).Find(&out).Error
	return out, err
}

func (r *CatalogRepository) RestaurantsByIDs(ctx context.Context, ids []uint) ([]entity.Restaurant, error) {
	out := []entity.Restaurant{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *CatalogRepository) RestaurantIDsInCity(ctx context.Context, city string) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("LOWER(city) LIKE ?", like(city)).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CatalogRepository) ItemsOf(ctx context.Context, restaurantIDs []uint, limit int) ([]entity.Item, error) {
	out := []entity.Item{}
	if len(restaurantIDs) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).Preload("Category").
		Where("restaurant_id IN ?", restaurantIDs).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *CatalogRepository) AvailableItemsByName(ctx context.Context, name string, limit int) ([]entity.Item, error) {
	q := r.DB.WithContext(ctx).Where("available = ?", true)
	if strings.TrimSpace(name) != "" {
		q = q.Where("LOWER(item_name) LIKE ?", like(name))
	}
	var out []entity.Item
	err := q.Limit(limit).Find(&out).Error
	return out, err
}

// CategoriesByName filters by restaurant only when restaurantIDs is non-nil.
func (r *CatalogRepository) CategoriesByName(ctx context.Context, name string, restaurantIDs []uint) ([]entity.Category, error) {
	out := []entity.Category{}
	if restaurantIDs != nil && len(restaurantIDs) == 0 {
		return out, nil
	}
	q := r.DB.WithContext(ctx).Where("LOWER(name) LIKE ?", like(name))
	if restaurantIDs != nil {
		q = q.Where("restaurant_id IN ?", restaurantIDs)
	}
	err := q.Find(&out).Error
	return out, err
}

func (r *CatalogRepository) Reviews(ctx context.Context, limit int) ([]entity.Review, error) {
	var out []entity.Review
	err := r.DB.WithContext(ctx).Preload("Restaurant").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
