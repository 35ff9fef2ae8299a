package repository

import (
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *entity.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) ListForRestaurant(restaurantID uint) ([]entity.Report, error) {
	var out []entity.Report
	err := r.DB.
		Preload("User").Preload("Restaurant").Preload("Item").
		Where("restaurant_id = ?", restaurantID).
		Order("reported_at DESC").
		Find(&out).Error
	return out, err
}
