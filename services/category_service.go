package services

import (
	"strings"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

func (s *CategoryService) Create(restaurantID uint, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Category name is required")
	}
	exists, err := s.Repo.Exists(restaurantID, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("Category already exists")
	}
	c := &entity.Category{Name: name, Slug: utils.Slugify(name), RestaurantID: restaurantID}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(restaurantID, id uint, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("Category name is required")
	}
	c, err := s.Repo.FindInRestaurant(restaurantID, id)
	if err != nil {
		return nil, orNotFound(err, "Category not found")
	}
	exists, err := s.Repo.Exists(restaurantID, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, conflict("Category already exists")
	}
	c.Name = name
	c.Slug = utils.Slugify(name)
	if err := s.Repo.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) List(restaurantID uint) ([]entity.Category, error) {
	return s.Repo.ListByRestaurant(restaurantID)
}

// Delete refuses while items still point at the category.
func (s *CategoryService) Delete(restaurantID, id uint) error {
	if _, err := s.Repo.FindInRestaurant(restaurantID, id); err != nil {
		return orNotFound(err, "Category not found")
	}
	n, err := s.Repo.CountItems(restaurantID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return conflict("Can't delete this category because it has items.")
	}
	return s.Repo.Delete(id)
}

// HasItems backs the pre-delete check used by the dashboard.
func (s *CategoryService) HasItems(restaurantID, categoryID uint) (bool, error) {
	n, err := s.Repo.CountItems(restaurantID, categoryID)
	return n > 0, err
}
