package rag

import (
	"context"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
)

// Catalog is the read-only view of the marketplace the helper answers from.
// An empty city or name means no filter.
type Catalog interface {
	RestaurantsByName(ctx context.Context, name, city string, limit int) ([]entity.Restaurant, error)
	RestaurantsByIDs(ctx context.Context, ids []uint) ([]entity.Restaurant, error)
	RestaurantIDsInCity(ctx context.Context, city string) ([]uint, error)
	ItemsOf(ctx context.Context, restaurantIDs []uint, limit int) ([]entity.Item, error)
	AvailableItemsByName(ctx context.Context, name string, limit int) ([]entity.Item, error)
	CategoriesByName(ctx context.Context, name string, restaurantIDs []uint) ([]entity.Category, error)
	Reviews(ctx context.Context, limit int) ([]entity.Review, error)
}
