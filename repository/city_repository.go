package repository

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type CityRepository struct{ DB *gorm.DB }

func NewCityRepository(db *gorm.DB) *CityRepository { return &CityRepository{DB: db} }

func (r *CityRepository) Exists(name string) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.City{}).Where("LOWER(city) = ?", strings.ToLower(name)).Count(&n).Error
	return n > 0, err
}

func (r *CityRepository) Create(c *entity.City) error {
	return r.DB.Create(c).Error
}

func (r *CityRepository) List() ([]entity.City, error) {
	var out []entity.City
	err := r.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}
