package services

import (
	"errors"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	ItemRepo *repository.ItemRepository
	now      func() time.Time
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, ir *repository.ItemRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ItemRepo: ir, now: time.Now}
}

type AddToCartIn struct {
	ItemID       uint `json:"itemId" binding:"required"`
	Quantity     int  `json:"quantity"`
	RestaurantID uint `json:"restaurantId" binding:"required"`
}

// Get returns the cart, or an empty one when none exists.
func (s *CartService) Get(userID, restaurantID uint) (*entity.Cart, error) {
	c, err := s.CartRepo.Find(s.DB, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &entity.Cart{UserID: userID, RestaurantID: restaurantID, Items: []entity.CartItem{}}, nil
	}
	return c, nil
}

// Add merges the quantity into the line; a line that drops to zero or below goes away.
func (s *CartService) Add(userID uint, in AddToCartIn) (*entity.Cart, error) {
	it, err := s.ItemRepo.FindByID(in.ItemID)
	if err != nil {
		return nil, orNotFound(err, "Item not found")
	}
	if it.RestaurantID != in.RestaurantID {
		return nil, invalid("Item does not belong to this restaurant")
	}

	out, err := s.addOnce(userID, it, in)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// a concurrent first add created the cart; merge into it
		out, err = s.addOnce(userID, it, in)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CartService) addOnce(userID uint, it *entity.Item, in AddToCartIn) (*entity.Cart, error) {
	var out *entity.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.FindForUpdate(tx, userID, in.RestaurantID)
		if err != nil {
			return err
		}
		if c == nil {
			c = &entity.Cart{UserID: userID, RestaurantID: in.RestaurantID}
		}
		if err := applyQuantity(c, it, in.Quantity); err != nil {
			return err
		}
		c.Recalculate()
		c.LastUpdated = s.now()
		if err := s.CartRepo.Save(tx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyQuantity adjusts the cart lines in place. Prices come from the item row.
func applyQuantity(c *entity.Cart, it *entity.Item, qty int) error {
	for i := range c.Items {
		if c.Items[i].ItemID != it.ID {
			continue
		}
		c.Items[i].Quantity += qty
		c.Items[i].Price = it.Price
		c.Items[i].Name = it.ItemName
		c.Items[i].Image = it.Image
		if c.Items[i].Quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		}
		return nil
	}
	if qty <= 0 {
		return invalid("Quantity must be at least 1")
	}
	c.Items = append(c.Items, entity.CartItem{
		ItemID:   it.ID,
		Name:     it.ItemName,
		Price:    it.Price,
		Image:    it.Image,
		Quantity: qty,
	})
	return nil
}

// RemoveOne takes one unit of the item out of the cart.
func (s *CartService) RemoveOne(userID, itemID, restaurantID uint) (*entity.Cart, error) {
	return s.mutate(userID, restaurantID, func(c *entity.Cart) error {
		for i := range c.Items {
			if c.Items[i].ItemID == itemID {
				c.Items[i].Quantity--
				if c.Items[i].Quantity <= 0 {
					c.Items = append(c.Items[:i], c.Items[i+1:]...)
				}
				return nil
			}
		}
		return nil
	})
}

// RemoveLine drops the item from the cart entirely.
func (s *CartService) RemoveLine(userID, itemID, restaurantID uint) (*entity.Cart, error) {
	return s.mutate(userID, restaurantID, func(c *entity.Cart) error {
		for i := range c.Items {
			if c.Items[i].ItemID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return notFound("Item not found in cart")
	})
}

func (s *CartService) mutate(userID, restaurantID uint, fn func(*entity.Cart) error) (*entity.Cart, error) {
	var out *entity.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		c, err := s.CartRepo.FindForUpdate(tx, userID, restaurantID)
		if err != nil {
			return err
		}
		if c == nil {
			return notFound("Cart not found")
		}
		if err := fn(c); err != nil {
			return err
		}
		c.Recalculate()
		c.LastUpdated = s.now()
		if err := s.CartRepo.Save(tx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeStale deletes carts untouched for longer than ttl.
func (s *CartService) PurgeStale(ttl time.Duration) (int64, error) {
	return s.CartRepo.PurgeOlderThan(s.now().Add(-ttl))
}
