package repository

import (
	"errors"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// Find returns the (user, restaurant) cart with its lines, or nil when none exists.
func (r *CartRepository) Find(db *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := db.Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") }).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindForUpdate is Find with the cart row locked until tx ends. SQLite has no
// row locks; there the immediate transaction already holds the write lock.
func (r *CartRepository) FindForUpdate(tx *gorm.DB, userID, restaurantID uint) (*entity.Cart, error) {
	return r.Find(tx.Clauses(clause.Locking{Strength: "UPDATE"}), userID, restaurantID)
}

// Save writes the cart header and replaces its lines with c.Items.
func (r *CartRepository) Save(tx *gorm.DB, c *entity.Cart) error {
	items := c.Items
	if err := tx.Omit("Items").Save(c).Error; err != nil {
		return err
	}
	if err := tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].CartID = c.ID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	c.Items = items
	return nil
}

// Clear removes the (user, restaurant) cart and its lines.
func (r *CartRepository) Clear(tx *gorm.DB, userID, restaurantID uint) error {
	var ids []uint
	if err := tx.Model(&entity.Cart{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return deleteCarts(tx, ids)
}

// PurgeOlderThan deletes carts untouched since cutoff and returns how many went.
func (r *CartRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	var n int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&entity.Cart{}).Where("last_updated < ?", cutoff).Pluck("id", &ids).Error; err != nil {
			return err
		}
		n = int64(len(ids))
		return deleteCarts(tx, ids)
	})
	return n, err
}

func deleteCarts(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("cart_id IN ?", ids).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Where("id IN ?", ids).Delete(&entity.Cart{}).Error
}
