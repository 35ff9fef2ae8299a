package repository

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type DeliveryBoyRepository struct{ DB *gorm.DB }

func NewDeliveryBoyRepository(db *gorm.DB) *DeliveryBoyRepository {
	return &DeliveryBoyRepository{DB: db}
}

func (r *DeliveryBoyRepository) Create(d *entity.DeliveryBoy) error {
	return r.DB.Create(d).Error
}

func (r *DeliveryBoyRepository) FindByID(id uint) (*entity.DeliveryBoy, error) {
	var d entity.DeliveryBoy
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryBoyRepository) FindByEmail(email string) (*entity.DeliveryBoy, error) {
	var d entity.DeliveryBoy
	if err := r.DB.Where("LOWER(email) = ?", strings.ToLower(email)).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DeliveryBoyRepository) Updates(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.DeliveryBoy{}).Where("id = ?", id).Updates(fields).Error
}

func (r *DeliveryBoyRepository) List() ([]entity.DeliveryBoy, error) {
	var out []entity.DeliveryBoy
	err := r.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}
