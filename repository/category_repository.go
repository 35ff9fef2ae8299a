package repository

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct{ DB *gorm.DB }

func NewCategoryRepository(db *gorm.DB) *CategoryRepository { return &CategoryRepository{DB: db} }

func (r *CategoryRepository) Exists(restaurantID uint, name string, exceptID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Category{}).
		Where("restaurant_id = ? AND LOWER(name) = ? AND id <> ?", restaurantID, strings.ToLower(name), exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(c *entity.Category) error {
	return r.DB.Create(c).Error
}

func (r *CategoryRepository) FindInRestaurant(restaurantID, id uint) (*entity.Category, error) {
	var c entity.Category
	if err := r.DB.Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Save(c *entity.Category) error {
	return r.DB.Save(c).Error
}

func (r *CategoryRepository) ListByRestaurant(restaurantID uint) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.Where("restaurant_id = ?", restaurantID).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&entity.Category{}, id).Error
}

func (r *CategoryRepository) CountItems(restaurantID, categoryID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Item{}).
		Where("restaurant_id = ? AND category_id = ?", restaurantID, categoryID).
		Count(&n).Error
	return n, err
}

func (r *CategoryRepository) CountByRestaurant(restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Category{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

// SearchByName matches category names, optionally limited to some restaurants.
func (r *CategoryRepository) SearchByName(term string, restaurantIDs []uint) ([]entity.Category, error) {
	q := r.DB.Where("LOWER(name) LIKE ?", like(term))
	if restaurantIDs != nil {
		q = q.Where("restaurant_id IN ?", restaurantIDs)
	}
	var out []entity.Category
	err := q.Find(&out).Error
	return out, err
}
