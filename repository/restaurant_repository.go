package repository

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(tx *gorm.DB, rest *entity.Restaurant) error {
	return tx.Create(rest).Error
}

func (r *RestaurantRepository) FindByID(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindWithOwner(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.Preload("Owner").First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Updates(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Updates(fields).Error
}

// ListByCity matches the city case-insensitively. sortBy is "rating", "reviews" or anything else.
func (r *RestaurantRepository) ListByCity(city, sortBy string) ([]entity.Restaurant, error) {
	q := r.DB.Where("LOWER(city) = ?", strings.ToLower(city))
	switch sortBy {
	case "rating":
		q = q.Order("average_restaurant_rating DESC")
	case "reviews":
		q = q.Order("review_count DESC")
	}
	var out []entity.Restaurant
	err := q.Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) SearchByName(city, term string) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.
		Where("LOWER(city) = ? AND LOWER(name) LIKE ?", strings.ToLower(city), like(term)).
		Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) IDsInCity(city string) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.Restaurant{}).
		Where("LOWER(city) = ?", strings.ToLower(city)).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *RestaurantRepository) ListByStatus(status string) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.Preload("Owner").Where("status = ?", status).Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListDetailed loads everything the super admin overview shows.
func (r *RestaurantRepository) ListDetailed() ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.
		Preload("Owner").
		Preload("Items").
		Preload("Categories").
		Preload("Reviews").Preload("Reviews.User").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) CountByStatus(status string) (int64, error) {
	var n int64
	q := r.DB.Model(&entity.Restaurant{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *RestaurantRepository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the row for good so the owner can apply again.
func (r *RestaurantRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Restaurant{}, id).Error
}

func (r *RestaurantRepository) FindByIDs(ids []uint) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	if len(ids) == 0 {
		return out, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func like(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
