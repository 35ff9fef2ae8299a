package services

import (
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
)

type ReportService struct {
	repo     *repository.ReportRepository
	itemRepo *repository.ItemRepository
	now      func() time.Time
}

func NewReportService(repo *repository.ReportRepository, items *repository.ItemRepository) *ReportService {
	return &ReportService{repo: repo, itemRepo: items, now: time.Now}
}

type ReportItemIn struct {
	Item              uint   `json:"item"`
	ReportReason      string `json:"reportReason"`
	ReportDescription string `json:"reportDescription"`
	Restaurant        uint   `json:"restaurant"`
}

func (s *ReportService) ReportItem(userID uint, in ReportItemIn) (*entity.Report, error) {
	if strings.TrimSpace(in.ReportReason) == "" {
		return nil, invalid("Select a reason")
	}
	if _, err := s.itemRepo.FindInRestaurant(in.Restaurant, in.Item); err != nil {
		return nil, orNotFound(err, "Item not found")
	}
	report := &entity.Report{
		Reason:       strings.TrimSpace(in.ReportReason),
		Description:  strings.TrimSpace(in.ReportDescription),
		ReportedAt:   s.now(),
		UserID:       userID,
		ItemID:       in.Item,
		RestaurantID: in.Restaurant,
	}
	if err := s.repo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListForRestaurant(restaurantID uint) ([]entity.Report, error) {
	reports, err := s.repo.ListForRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, notFound("No report found")
	}
	return reports, nil
}
