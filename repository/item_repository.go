package repository

import (
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(it *entity.Item) error {
	return r.DB.Create(it).Error
}

func (r *ItemRepository) FindByID(id uint) (*entity.Item, error) {
	var it entity.Item
	if err := r.DB.First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepository) FindInRestaurant(restaurantID, id uint) (*entity.Item, error) {
	var it entity.Item
	if err := r.DB.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// FindByIDs returns the items keyed by id.
func (r *ItemRepository) FindByIDs(ids []uint) (map[uint]entity.Item, error) {
	out := make(map[uint]entity.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.Item
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, it := range rows {
		out[it.ID] = it
	}
	return out, nil
}

func (r *ItemRepository) Updates(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.Item{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ItemRepository) Delete(restaurantID, id uint) (int64, error) {
	res := r.DB.Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&entity.Item{})
	return res.RowsAffected, res.Error
}

func (r *ItemRepository) ListByRestaurant(restaurantID uint) ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").Where("restaurant_id = ?", restaurantID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *ItemRepository) ListByCategory(restaurantID, categoryID uint) ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").
		Where("restaurant_id = ? AND category_id = ?", restaurantID, categoryID).
		Find(&out).Error
	return out, err
}

func (r *ItemRepository) Search(restaurantID uint, term string) ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").
		Where("restaurant_id = ? AND LOWER(item_name) LIKE ?", restaurantID, like(term)).
		Find(&out).Error
	return out, err
}

func (r *ItemRepository) ListByRating(restaurantID uint) ([]entity.Item, error) {
	var out []entity.Item
	err := r.DB.Preload("Category").
		Where("restaurant_id = ?", restaurantID).
		Order("average_rating DESC").
		Find(&out).Error
	return out, err
}

func (r *ItemRepository) CountByRestaurant(restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Item{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

// SearchAvailable matches available items by name, optionally limited to some restaurants.
func (r *ItemRepository) SearchAvailable(term string, restaurantIDs []uint) ([]entity.Item, error) {
	q := r.DB.Preload("Restaurant").Where("available = ? AND LOWER(item_name) LIKE ?", true, like(term))
	if restaurantIDs != nil {
		q = q.Where("restaurant_id IN ?", restaurantIDs)
	}
	var out []entity.Item
	err := q.Find(&out).Error
	return out, err
}

type PopularItem struct {
	ItemID        uint `json:"itemId"`
	TotalQuantity int  `json:"totalQuantity"`
}

// PopularSince sums ordered quantities per item since the given time.
func (r *ItemRepository) PopularSince(since time.Time, limit int) ([]PopularItem, error) {
	var out []PopularItem
	err := r.DB.Table("order_items").
		Select("order_items.item_id AS item_id, SUM(order_items.quantity) AS total_quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.deleted_at IS NULL", since).
		Group("order_items.item_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
