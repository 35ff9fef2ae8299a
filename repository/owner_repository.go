package repository

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type OwnerRepository struct {
	DB *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{DB: db}
}

func (r *OwnerRepository) Create(o *entity.Owner) error {
	return r.DB.Create(o).Error
}

func (r *OwnerRepository) FindByID(id uint) (*entity.Owner, error) {
	var o entity.Owner
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OwnerRepository) FindWithRestaurant(id uint) (*entity.Owner, error) {
	var o entity.Owner
	if err := r.DB.Preload("Restaurant").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OwnerRepository) FindByEmail(email string) (*entity.Owner, error) {
	var o entity.Owner
	err := r.DB.Where("LOWER(business_email) = ?", strings.ToLower(email)).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OwnerRepository) EmailTaken(email string, exceptID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.Owner{}).
		Where("LOWER(business_email) = ? AND id <> ?", strings.ToLower(email), exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *OwnerRepository) Updates(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.Owner{}).Where("id = ?", id).Updates(fields).Error
}

func (r *OwnerRepository) LinkRestaurant(tx *gorm.DB, ownerID, restaurantID uint) error {
	return tx.Model(&entity.Owner{}).Where("id = ?", ownerID).Update("restaurant_id", restaurantID).Error
}

func (r *OwnerRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&entity.Owner{}, id).Error
}

func (r *OwnerRepository) List() ([]entity.Owner, error) {
	var out []entity.Owner
	err := r.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *OwnerRepository) Count() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Owner{}).Count(&n).Error
	return n, err
}
