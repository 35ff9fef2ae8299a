package services

import (
	"sort"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

const popularRestaurantWindow = 40 * 24 * time.Hour

type RestaurantService struct {
	DB         *gorm.DB
	Repo       *repository.RestaurantRepository
	OwnerRepo  *repository.OwnerRepository
	OrderRepo  *repository.OrderRepository
	ReviewRepo *repository.ReviewRepository
	ItemRepo   *repository.ItemRepository
	CatRepo    *repository.CategoryRepository

	now func() time.Time
}

func NewRestaurantService(
	db *gorm.DB,
	repo *repository.RestaurantRepository,
	owners *repository.OwnerRepository,
	orders *repository.OrderRepository,
	reviews *repository.ReviewRepository,
	items *repository.ItemRepository,
	cats *repository.CategoryRepository,
) *RestaurantService {
	return &RestaurantService{
		DB: db, Repo: repo, OwnerRepo: owners, OrderRepo: orders,
		ReviewRepo: reviews, ItemRepo: items, CatRepo: cats, now: time.Now,
	}
}

type RestaurantIn struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	OpeningTime string `form:"openingTime" json:"openingTime"`
	ClosingTime string `form:"closingTime" json:"closingTime"`
	Cuisines    string `form:"cuisines" json:"cuisines"`
	Address     string `form:"address" json:"address"`
	Phoneno     string `form:"phoneno" json:"phoneno"`
	City        string `form:"city" json:"city"`
}

// SplitCuisines turns "Pakistani, BBQ" into ["Pakistani" "BBQ"].
func SplitCuisines(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CheckCreate runs every Create check that does not need the image.
func (s *RestaurantService) CheckCreate(ownerID uint, in RestaurantIn) error {
	if err := requireFields(
		field{"name", in.Name},
		field{"description", in.Description},
		field{"openingTime", in.OpeningTime},
		field{"closingTime", in.ClosingTime},
		field{"cuisines", in.Cuisines},
		field{"address", in.Address},
		field{"phoneno", in.Phoneno},
		field{"city", in.City},
	); err != nil {
		return err
	}
	owner, err := s.OwnerRepo.FindByID(ownerID)
	if err != nil {
		return orNotFound(err, "Owner not found")
	}
	if owner.RestaurantID != nil {
		return conflict("Owner already has a restaurant")
	}
	return nil
}

// Create opens a pending restaurant and links it to the owner in one transaction.
func (s *RestaurantService) Create(ownerID uint, in RestaurantIn, imageURL string) (*entity.Restaurant, error) {
	if err := s.CheckCreate(ownerID, in); err != nil {
		return nil, err
	}
	if err := requireFields(field{"image", imageURL}); err != nil {
		return nil, err
	}

	rest := &entity.Restaurant{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Image:       imageURL,
		OpeningTime: in.OpeningTime,
		ClosingTime: in.ClosingTime,
		Cuisines:    SplitCuisines(in.Cuisines),
		Address:     strings.TrimSpace(in.Address),
		Phoneno:     strings.TrimSpace(in.Phoneno),
		City:        strings.TrimSpace(in.City),
		Status:      entity.RestaurantPending,
		OwnerID:     ownerID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, rest); err != nil {
			return err
		}
		return s.OwnerRepo.LinkRestaurant(tx, ownerID, rest.ID)
	})
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *RestaurantService) Get(id uint) (*entity.Restaurant, error) {
	r, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, orNotFound(err, "Restaurant not found")
	}
	return r, nil
}

// Update applies the non-empty fields to the caller's own restaurant.
func (s *RestaurantService) Update(callerRestaurantID, id uint, in RestaurantIn, imageURL string) (*entity.Restaurant, error) {
	if callerRestaurantID != id {
		return nil, forbidden("You can only manage your own restaurant")
	}
	updates := map[string]any{}
	set := func(col, v string) {
		if v = strings.TrimSpace(v); v != "" {
			updates[col] = v
		}
	}
	set("name", in.Name)
	set("description", in.Description)
	set("opening_time", in.OpeningTime)
	set("closing_time", in.ClosingTime)
	set("address", in.Address)
	set("phoneno", in.Phoneno)
	set("city", in.City)
	set("image", imageURL)
	if strings.TrimSpace(in.Cuisines) != "" {
		rest := entity.Restaurant{Cuisines: SplitCuisines(in.Cuisines)}
		// the json serializer has to run, so write the column through the model
		if err := s.DB.Model(&entity.Restaurant{}).Where("id = ?", id).Select("cuisines").Updates(&rest).Error; err != nil {
			return nil, err
		}
	}
	if len(updates) > 0 {
		if err := s.Repo.Updates(id, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(id)
}

func (s *RestaurantService) ListByCity(city, sortBy string) ([]entity.Restaurant, error) {
	rests, err := s.Repo.ListByCity(city, sortBy)
	if err != nil {
		return nil, err
	}
	if len(rests) == 0 {
		return nil, notFound("No restaurants found in %s", city)
	}
	return rests, nil
}

func (s *RestaurantService) Search(city, term string) ([]entity.Restaurant, error) {
	return s.Repo.SearchByName(city, term)
}

type CreationStatus struct {
	Status     string             `json:"status"`
	Restaurant *entity.Restaurant `json:"restaurant"`
}

func (s *RestaurantService) CreationStatus(id uint) (*CreationStatus, error) {
	r, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &CreationStatus{Status: r.Status, Restaurant: r}, nil
}

type PopularRestaurant struct {
	entity.Restaurant
	TotalOrders   int      `json:"totalOrders"`
	TotalReviews  int64    `json:"totalReviews"`
	AverageRating *float64 `json:"averageRating"`
	Score         float64  `json:"score"`
}

// Popular ranks the city's restaurants by recent orders weighted by rating.
func (s *RestaurantService) Popular(city string) ([]PopularRestaurant, error) {
	orders, err := s.OrderRepo.List(repository.OrderFilter{City: city, Since: s.now().Add(-popularRestaurantWindow)})
	if err != nil {
		return nil, err
	}
	counts := map[uint]int{}
	var ids []uint
	for _, o := range orders {
		if counts[o.RestaurantID] == 0 {
			ids = append(ids, o.RestaurantID)
		}
		counts[o.RestaurantID]++
	}

	rests, err := s.Repo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	stats, err := s.ReviewRepo.RatingStats(ids)
	if err != nil {
		return nil, err
	}

	out := make([]PopularRestaurant, 0, len(rests))
	for _, r := range rests {
		st := stats[r.ID]
		weight := 1.0
		var avg *float64
		if st.AverageRating != nil {
			v := round1(*st.AverageRating)
			avg = &v
			weight = *st.AverageRating
		}
		out = append(out, PopularRestaurant{
			Restaurant:    r,
			TotalOrders:   counts[r.ID],
			TotalReviews:  st.TotalReviews,
			AverageRating: avg,
			Score:         float64(counts[r.ID]) * weight,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}
