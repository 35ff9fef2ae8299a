package services

import (
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"

	"gorm.io/gorm"
)

// SuperAdminService backs the platform console: approvals, directories, cities and money overviews.
type SuperAdminService struct {
	DB        *gorm.DB
	UserRepo  *repository.UserRepository
	OwnerRepo *repository.OwnerRepository
	DBoyRepo  *repository.DeliveryBoyRepository
	RestRepo  *repository.RestaurantRepository
	OrderRepo *repository.OrderRepository
	CityRepo  *repository.CityRepository

	now func() time.Time
}

func NewSuperAdminService(
	db *gorm.DB,
	users *repository.UserRepository,
	owners *repository.OwnerRepository,
	dboys *repository.DeliveryBoyRepository,
	rests *repository.RestaurantRepository,
	orders *repository.OrderRepository,
	cities *repository.CityRepository,
) *SuperAdminService {
	return &SuperAdminService{
		DB: db, UserRepo: users, OwnerRepo: owners, DBoyRepo: dboys,
		RestRepo: rests, OrderRepo: orders, CityRepo: cities,
		now: time.Now,
	}
}

// ----- Restaurant approvals -----

func (s *SuperAdminService) CreationRequests() ([]entity.Restaurant, error) {
	return s.RestRepo.ListByStatus(entity.RestaurantPending)
}

// UpdateRestaurantStatus approves a restaurant, or on rejection removes it with its owner.
func (s *SuperAdminService) UpdateRestaurantStatus(restaurantID uint, status string) error {
	status = strings.TrimSpace(status)
	if restaurantID == 0 || status == "" {
		return invalid("Invalid data!")
	}
	rest, err := s.RestRepo.FindByID(restaurantID)
	if err != nil {
		return orNotFound(err, "Restaurant not found!")
	}

	switch status {
	case entity.RestaurantApproved:
		return s.RestRepo.UpdateStatus(rest.ID, entity.RestaurantApproved)
	case entity.RestaurantRejected:
		return s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Where("restaurant_id = ?", rest.ID).Delete(&entity.Item{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("restaurant_id = ?", rest.ID).Delete(&entity.Category{}).Error; err != nil {
				return err
			}
			if err := s.RestRepo.Delete(tx, rest.ID); err != nil {
				return err
			}
			return s.OwnerRepo.Delete(tx, rest.OwnerID)
		})
	default:
		return invalid("status must be %s or %s", entity.RestaurantApproved, entity.RestaurantRejected)
	}
}

// ----- Directories -----

func (s *SuperAdminService) Restaurants() ([]entity.Restaurant, error) {
	return s.RestRepo.ListDetailed()
}

func (s *SuperAdminService) Users() ([]entity.User, error) {
	return s.UserRepo.ListByRole(entity.RoleUser)
}

func (s *SuperAdminService) Owners() ([]entity.Owner, error) {
	return s.OwnerRepo.List()
}

func (s *SuperAdminService) DeliveryPartners() ([]entity.DeliveryBoy, error) {
	return s.DBoyRepo.List()
}

// ----- Cities -----

// AddCity stores the name capitalised; duplicates are detected case-insensitively.
func (s *SuperAdminService) AddCity(name, imageURL string) (*entity.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("City name is required!")
	}
	if imageURL == "" {
		return nil, invalid("City image is required!")
	}
	exists, err := s.CityRepo.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, invalid("City already exists!")
	}
	c := &entity.City{City: utils.Capitalize(name), Image: imageURL}
	if err := s.CityRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SuperAdminService) Cities() ([]entity.City, error) {
	cities, err := s.CityRepo.List()
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, notFound("No cities found!")
	}
	return cities, nil
}

// ----- Dashboard -----

type AdminDashboard struct {
	TotalUsers                  int64            `json:"totalUsers"`
	TotalRestaurantAdmins       int64            `json:"totalRestaurantAdmins"`
	TotalRevenue                float64          `json:"totalRevenue"`
	TotalRestaurants            int64            `json:"totalRestaurants"`
	PendingRestaurantsApprovals int64            `json:"pendingRestaurantsApprovals"`
	TotalApprovedRestaurants    int64            `json:"totalApprovedRestaurants"`
	TotalPendingOrders          int64            `json:"totalPendingOrders"`
	TotalAcceptedOrders         int64            `json:"totalAcceptedOrders"`
	TotalPreparingOrders        int64            `json:"totalPreparingOrders"`
	TotalReadyForPickupOrders   int64            `json:"totalReadyForPickupOrders"`
	TotalOutForDeliveryOrders   int64            `json:"totalOutForDeliveryOrders"`
	TotalDeliveredOrders        int64            `json:"totalDeliveredOrders"`
	TotalCancelledOrders        int64            `json:"totalCancelledOrders"`
	TotalReturnedOrders         int64            `json:"totalReturnedOrders"`
	TotalOrders                 int64            `json:"totalOrders"`
	OrdersByStatus              map[string]int64 `json:"ordersByStatus"`
}

func (s *SuperAdminService) Dashboard() (*AdminDashboard, error) {
	d := &AdminDashboard{}
	var err error
	if d.TotalUsers, err = s.UserRepo.CountByRole(entity.RoleUser); err != nil {
		return nil, err
	}
	if d.TotalRestaurantAdmins, err = s.OwnerRepo.Count(); err != nil {
		return nil, err
	}
	if d.TotalRestaurants, err = s.RestRepo.CountByStatus(""); err != nil {
		return nil, err
	}
	if d.PendingRestaurantsApprovals, err = s.RestRepo.CountByStatus(entity.RestaurantPending); err != nil {
		return nil, err
	}
	if d.TotalApprovedRestaurants, err = s.RestRepo.CountByStatus(entity.RestaurantApproved); err != nil {
		return nil, err
	}
	if d.OrdersByStatus, err = s.OrderRepo.CountByStatus(0); err != nil {
		return nil, err
	}
	by := d.OrdersByStatus
	d.TotalPendingOrders = by[entity.StatusPending]
	d.TotalAcceptedOrders = by[entity.StatusAccepted]
	d.TotalPreparingOrders = by[entity.StatusPreparing]
	d.TotalReadyForPickupOrders = by[entity.StatusReadyForPickup]
	d.TotalOutForDeliveryOrders = by[entity.StatusOutForDelivery]
	d.TotalDeliveredOrders = by[entity.StatusDelivered]
	d.TotalCancelledOrders = by[entity.StatusCancelled]
	d.TotalReturnedOrders = by[entity.StatusReturned]
	for _, n := range by {
		d.TotalOrders += n
	}

	delivered, err := s.OrderRepo.List(repository.OrderFilter{Status: entity.StatusDelivered})
	if err != nil {
		return nil, err
	}
	for _, o := range delivered {
		d.TotalRevenue += PlatformRevenue(o.TotalAmount)
	}
	d.TotalRevenue = round2(d.TotalRevenue)
	return d, nil
}

// CompletePayout settles the restaurant's delivered orders that still await payout.
func (s *SuperAdminService) CompletePayout(restaurantID uint) (int64, error) {
	if restaurantID == 0 {
		return 0, invalid("restaurantId is required")
	}
	if _, err := s.RestRepo.FindByID(restaurantID); err != nil {
		return 0, orNotFound(err, "Restaurant not found!")
	}
	return s.OrderRepo.CompletePayouts(restaurantID, s.now())
}
