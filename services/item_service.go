package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
)

const popularItemsWindow = 30 * 24 * time.Hour

type ItemService struct {
	Repo     *repository.ItemRepository
	CatRepo  *repository.CategoryRepository
	RestRepo *repository.RestaurantRepository
	now      func() time.Time
}

func NewItemService(items *repository.ItemRepository, cats *repository.CategoryRepository, rests *repository.RestaurantRepository) *ItemService {
	return &ItemService{Repo: items, CatRepo: cats, RestRepo: rests, now: time.Now}
}

type ItemIn struct {
	ItemName    string `form:"itemName" json:"itemName"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Category    string `form:"category" json:"category"`
	Available   string `form:"available" json:"available"`
}

func (s *ItemService) categoryID(restaurantID uint, raw string) (*uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return nil, invalid("category is invalid")
	}
	if _, err := s.CatRepo.FindInRestaurant(restaurantID, uint(id)); err != nil {
		return nil, orNotFound(err, "Category not found")
	}
	v := uint(id)
	return &v, nil
}

func parsePrice(raw string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || p < 0 {
		return 0, invalid("price must be a non-negative number")
	}
	return p, nil
}

// CheckCreate runs every Create check that does not need the image and
// resolves the price and category.
func (s *ItemService) CheckCreate(restaurantID uint, in ItemIn) (float64, *uint, error) {
	if err := requireFields(
		field{"itemName", in.ItemName},
		field{"description", in.Description},
		field{"price", in.Price},
		field{"category", in.Category},
	); err != nil {
		return 0, nil, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return 0, nil, err
	}
	catID, err := s.categoryID(restaurantID, in.Category)
	if err != nil {
		return 0, nil, err
	}
	return price, catID, nil
}

func (s *ItemService) Create(restaurantID uint, in ItemIn, imageURL string) (*entity.Item, error) {
	price, catID, err := s.CheckCreate(restaurantID, in)
	if err != nil {
		return nil, err
	}
	if err := requireFields(field{"image", imageURL}); err != nil {
		return nil, err
	}
	it := &entity.Item{
		ItemName:     strings.TrimSpace(in.ItemName),
		Description:  strings.TrimSpace(in.Description),
		Price:        price,
		Image:        imageURL,
		Available:    true,
		CategoryID:   catID,
		RestaurantID: restaurantID,
	}
	if err := s.Repo.Create(it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update changes the given fields of an item that belongs to the restaurant.
func (s *ItemService) Update(restaurantID, id uint, in ItemIn, imageURL string) (*entity.Item, error) {
	if _, err := s.Repo.FindInRestaurant(restaurantID, id); err != nil {
		return nil, orNotFound(err, "Item not found")
	}
	updates := map[string]any{}
	if v := strings.TrimSpace(in.ItemName); v != "" {
		updates["item_name"] = v
	}
	if v := strings.TrimSpace(in.Description); v != "" {
		updates["description"] = v
	}
	if strings.TrimSpace(in.Price) != "" {
		p, err := parsePrice(in.Price)
		if err != nil {
			return nil, err
		}
		updates["price"] = p
	}
	if strings.TrimSpace(in.Category) != "" {
		catID, err := s.categoryID(restaurantID, in.Category)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = *catID
	}
	if v := strings.TrimSpace(in.Available); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, invalid("available must be true or false")
		}
		updates["available"] = b
	}
	if imageURL != "" {
		updates["image"] = imageURL
	}
	if len(updates) > 0 {
		if err := s.Repo.Updates(id, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(id)
}

func (s *ItemService) Delete(restaurantID, id uint) error {
	n, err := s.Repo.Delete(restaurantID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("Item not found")
	}
	return nil
}

func (s *ItemService) ListForRestaurant(restaurantID uint) ([]entity.Item, error) {
	return s.Repo.ListByRestaurant(restaurantID)
}

func (s *ItemService) ListByCategory(restaurantID, categoryID uint) ([]entity.Item, error) {
	return s.Repo.ListByCategory(restaurantID, categoryID)
}

type RestaurantMenu struct {
	RestaurantItems []entity.Item      `json:"restaurantItems"`
	Restaurant      *entity.Restaurant `json:"restaurant"`
	Categories      []entity.Category  `json:"categories"`
}

// Menu is the public view of a restaurant's items and categories.
func (s *ItemService) Menu(restaurantID uint) (*RestaurantMenu, error) {
	rest, err := s.RestRepo.FindByID(restaurantID)
	if err != nil {
		return nil, orNotFound(err, "Restaurant not found")
	}
	items, err := s.Repo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	cats, err := s.CatRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return &RestaurantMenu{RestaurantItems: items, Restaurant: rest, Categories: cats}, nil
}

func (s *ItemService) Search(restaurantID uint, term string) ([]entity.Item, error) {
	return s.Repo.Search(restaurantID, term)
}

func (s *ItemService) ByRating(restaurantID uint) ([]entity.Item, error) {
	items, err := s.Repo.ListByRating(restaurantID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, notFound("No items found")
	}
	return items, nil
}

type PopularItemView struct {
	Item          entity.Item `json:"item"`
	TotalQuantity int         `json:"totalQuantity"`
}

// Popular returns the ten most ordered items of the last 30 days.
func (s *ItemService) Popular() ([]PopularItemView, error) {
	rows, err := s.Repo.PopularSince(s.now().Add(-popularItemsWindow), 10)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ItemID)
	}
	items, err := s.Repo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]PopularItemView, 0, len(rows))
	for _, r := range rows {
		it, ok := items[r.ItemID]
		if !ok {
			continue
		}
		out = append(out, PopularItemView{Item: it, TotalQuantity: r.TotalQuantity})
	}
	return out, nil
}
