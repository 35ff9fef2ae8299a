package services

import (
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB       *gorm.DB
	Repo     *repository.ReviewRepository
	RestRepo *repository.RestaurantRepository
}

func NewReviewService(db *gorm.DB, repo *repository.ReviewRepository, rests *repository.RestaurantRepository) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, RestRepo: rests}
}

type ItemRatingIn struct {
	FoodItemID uint `json:"foodItemId"`
	ItemRating int  `json:"itemRating"`
}

type CreateReviewIn struct {
	RestaurantID         uint           `json:"restaurantId" binding:"required"`
	OrderID              uint           `json:"orderId"`
	StatusOrderID        uint           `json:"statusOrderId"`
	ItemReviews          []ItemRatingIn `json:"itemReviews"`
	RestaurantRating     *int           `json:"restaurantRating"`
	RestaurantReviewText string         `json:"restaurantReviewText"`
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

// Create stores the review and refreshes the item and restaurant aggregates in one transaction.
func (s *ReviewService) Create(userID uint, in CreateReviewIn) (*entity.Review, error) {
	if err := requireFields(field{"restaurantReviewText", in.RestaurantReviewText}); err != nil {
		return nil, err
	}
	if len([]rune(in.RestaurantReviewText)) > 1000 {
		return nil, invalid("restaurantReviewText must be at most 1000 characters")
	}
	if in.RestaurantRating != nil && !validRating(*in.RestaurantRating) {
		return nil, invalid("restaurantRating must be between 1 and 5")
	}
	for _, ir := range in.ItemReviews {
		if ir.FoodItemID == 0 {
			return nil, invalid("foodItemId is required")
		}
		if !validRating(ir.ItemRating) {
			return nil, invalid("itemRating must be between 1 and 5")
		}
	}
	if _, err := s.RestRepo.FindByID(in.RestaurantID); err != nil {
		return nil, orNotFound(err, "Restaurant not found")
	}

	orderID := in.OrderID
	if orderID == 0 {
		orderID = in.StatusOrderID
	}
	rv := &entity.Review{
		UserID:               userID,
		OrderID:              orderID,
		RestaurantID:         in.RestaurantID,
		RestaurantRating:     in.RestaurantRating,
		RestaurantReviewText: in.RestaurantReviewText,
	}
	for _, ir := range in.ItemReviews {
		rv.ItemReviews = append(rv.ItemReviews, entity.ItemReview{ItemID: ir.FoodItemID, ItemRating: ir.ItemRating})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if in.StatusOrderID != 0 {
			res := tx.Model(&entity.Order{}).
				Where("id = ? AND user_id = ?", in.StatusOrderID, userID).
				Updates(map[string]any{"reviewed_order": true, "review_prompt_dismissed": true})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return notFound("Order not found")
			}
		}
		if err := s.Repo.Create(tx, rv); err != nil {
			return err
		}

		seen := map[uint]bool{}
		for _, ir := range rv.ItemReviews {
			if seen[ir.ItemID] {
				continue
			}
			seen[ir.ItemID] = true
			avg, err := s.Repo.AverageItemRating(tx, ir.ItemID)
			if err != nil {
				return err
			}
			if err := tx.Model(&entity.Item{}).Where("id = ?", ir.ItemID).
				Update("average_rating", round1(avg)).Error; err != nil {
				return err
			}
		}

		if rv.RestaurantRating != nil {
			avg, err := s.Repo.AverageRestaurantRating(tx, rv.RestaurantID)
			if err != nil {
				return err
			}
			return tx.Model(&entity.Restaurant{}).Where("id = ?", rv.RestaurantID).
				Updates(map[string]any{
					"average_restaurant_rating": round1(avg),
					"review_count":              gorm.Expr("review_count + 1"),
				}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListForRestaurant(restaurantID uint) ([]entity.Review, error) {
	return s.Repo.ListForRestaurant(restaurantID)
}

type ItemRatingRow struct {
	Rating     int                `json:"rating"`
	ReviewID   uint               `json:"reviewId"`
	ItemID     uint               `json:"itemId"`
	User       *entity.User       `json:"user"`
	Restaurant *entity.Restaurant `json:"restaurant"`
	CreatedAt  time.Time          `json:"createdAt"`
}

type ItemRating struct {
	RatingData    []ItemRatingRow `json:"ratingData"`
	AverageRating *float64        `json:"averageRating"`
}

func (s *ReviewService) ItemRating(itemID uint) (*ItemRating, error) {
	irs, reviews, err := s.Repo.ListItemReviews(itemID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.Review, len(reviews))
	for _, rv := range reviews {
		byID[rv.ID] = rv
	}

	out := &ItemRating{RatingData: []ItemRatingRow{}}
	var sum float64
	for _, ir := range irs {
		rv, ok := byID[ir.ReviewID]
		if !ok {
			continue
		}
		out.RatingData = append(out.RatingData, ItemRatingRow{
			Rating: ir.ItemRating, ReviewID: rv.ID, ItemID: ir.ItemID,
			User: rv.User, Restaurant: rv.Restaurant, CreatedAt: rv.CreatedAt,
		})
		sum += float64(ir.ItemRating)
	}
	if n := len(out.RatingData); n > 0 {
		avg := round1(sum / float64(n))
		out.AverageRating = &avg
	}
	return out, nil
}
