package repository

import (
	"errors"
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("LOWER(email) = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailTaken reports whether another user already owns the email.
func (r *UserRepository) EmailTaken(email string, exceptID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *UserRepository) Updates(id uint, fields map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) ListByRole(role string) ([]entity.User, error) {
	var out []entity.User
	err := r.DB.Where("role = ?", role).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *UserRepository) CountByRole(role string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Where("role = ?", role).Count(&n).Error
	return n, err
}

// ---------------- Favorites ----------------

// AddFavoriteRestaurant returns gorm.ErrDuplicatedKey when the pair already exists.
func (r *UserRepository) AddFavoriteRestaurant(f *entity.FavoriteRestaurant) error {
	var n int64
	if err := r.DB.Model(&entity.FavoriteRestaurant{}).
		Where("user_id = ? AND restaurant_id = ?", f.UserID, f.RestaurantID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.DB.Create(f).Error
}

func (r *UserRepository) RemoveFavoriteRestaurant(userID, restaurantID uint) error {
	return r.DB.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&entity.FavoriteRestaurant{}).Error
}

func (r *UserRepository) ListFavoriteRestaurants(userID uint) ([]entity.FavoriteRestaurant, error) {
	var out []entity.FavoriteRestaurant
	err := r.DB.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&out).Error
	return out, err
}

func (r *UserRepository) AddFavoriteItem(f *entity.FavoriteItem) error {
	var n int64
	if err := r.DB.Model(&entity.FavoriteItem{}).
		Where("user_id = ? AND item_id = ?", f.UserID, f.ItemID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.DB.Create(f).Error
}

func (r *UserRepository) RemoveFavoriteItem(userID, itemID uint) error {
	return r.DB.Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&entity.FavoriteItem{}).Error
}

func (r *UserRepository) ListFavoriteItems(userID uint) ([]entity.FavoriteItem, error) {
	var out []entity.FavoriteItem
	err := r.DB.Preload("Item").Preload("Item.Category").Preload("Item.Restaurant").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&out).Error
	return out, err
}

// IsNotFound hides the gorm sentinel from callers outside this package.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
