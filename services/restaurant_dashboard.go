package services

import (
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
)

type RevenuePoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type RestaurantDashboard struct {
	TotalMenuItems          int64            `json:"totalMenuItems"`
	TotalOrders             int64            `json:"totalOrders"`
	TotalReviews            int64            `json:"totalReviews"`
	TotalCategories         int64            `json:"totalCategories"`
	OrdersByStatus          map[string]int64 `json:"ordersByStatus"`
	AverageRestaurantRating float64          `json:"averageRestaurantRating"`
	TotalRevenue            float64          `json:"totalRevenue"`
	TotalUsers              int64            `json:"totalUsers"`
	DailyOrders             int              `json:"dailyOrders"`
	WeeklyOrders            int              `json:"weeklyOrders"`
	MonthlyOrders           int              `json:"monthlyOrders"`
	RestaurantFees
	WeeklyRevenue              []RevenuePoint `json:"weeklyRevenue"`
	MonthlyRevenue             []RevenuePoint `json:"monthlyRevenue"`
	YearlyRevenue              []RevenuePoint `json:"yearlyRevenue"`
	TotalPayoutPaid            float64        `json:"totalPayoutPaid"`
	TotalPayoutRemainingAmount float64        `json:"totalPayoutRemainingAmount"`
}

// Dashboard summarises one restaurant's menu, orders and money.
func (s *RestaurantService) Dashboard(restaurantID uint) (*RestaurantDashboard, error) {
	rest, err := s.Get(restaurantID)
	if err != nil {
		return nil, err
	}
	d := &RestaurantDashboard{AverageRestaurantRating: rest.AverageRestaurantRating}

	if d.TotalMenuItems, err = s.ItemRepo.CountByRestaurant(restaurantID); err != nil {
		return nil, err
	}
	if d.TotalCategories, err = s.CatRepo.CountByRestaurant(restaurantID); err != nil {
		return nil, err
	}
	if d.TotalReviews, err = s.ReviewRepo.CountForRestaurant(restaurantID); err != nil {
		return nil, err
	}
	if d.OrdersByStatus, err = s.OrderRepo.CountByStatus(restaurantID); err != nil {
		return nil, err
	}
	for _, n := range d.OrdersByStatus {
		d.TotalOrders += n
	}
	if d.TotalUsers, err = s.OrderRepo.CountDistinctCustomers(restaurantID); err != nil {
		return nil, err
	}

	delivered, err := s.OrderRepo.List(repository.OrderFilter{RestaurantID: restaurantID, Status: entity.StatusDelivered})
	if err != nil {
		return nil, err
	}
	now := s.now()
	var paid, pending []float64
	for _, o := range delivered {
		d.TotalRevenue += o.TotalAmount
		age := now.Sub(o.CreatedAt)
		if age <= 24*time.Hour {
			d.DailyOrders++
		}
		if age <= 7*24*time.Hour {
			d.WeeklyOrders++
		}
		if age <= 30*24*time.Hour {
			d.MonthlyOrders++
		}
		if o.PayoutStatus == entity.PayoutCompleted {
			paid = append(paid, o.TotalAmount)
		} else {
			pending = append(pending, o.TotalAmount)
		}
	}
	d.RestaurantFees = ComputeRestaurantFees(d.TotalRevenue, len(delivered))
	d.TotalPayoutPaid = round2(PayoutSum(paid))
	d.TotalPayoutRemainingAmount = round2(PayoutSum(pending))

	d.WeeklyRevenue, d.MonthlyRevenue, d.YearlyRevenue = restaurantRevenueSeries(delivered, now)
	return d, nil
}

// restaurantRevenueSeries buckets restaurant net revenue by day (7 days), week (30 days) and month (12 months).
func restaurantRevenueSeries(orders []entity.Order, now time.Time) (weekly, monthly, yearly []RevenuePoint) {
	days, weeks, months := newBucketSet(), newBucketSet(), newBucketSet()

	// pre-seed so quiet periods still show up as zero
	for i := 6; i >= 0; i-- {
		t := startOfDay(now).AddDate(0, 0, -i)
		days.get(DayLabel(t), t)
	}
	for i := 11; i >= 0; i-- {
		t := startOfMonth(now).AddDate(0, -i, 0)
		months.get(MonthLabel(t), t)
	}

	weekStart := startOfDay(now).AddDate(0, 0, -6)
	monthStart := now.AddDate(0, 0, -30)
	yearStart := startOfMonth(now).AddDate(0, -11, 0)
	for _, o := range orders {
		net := RestaurantNet(o.TotalAmount)
		t := o.CreatedAt.In(now.Location())
		if !t.Before(weekStart) {
			days.add(DayLabel(t), t, o.UserID, o.TotalAmount, net)
		}
		if !t.Before(monthStart) {
			weeks.add(WeekLabel(t), t, o.UserID, o.TotalAmount, net)
		}
		if !t.Before(yearStart) {
			months.add(MonthLabel(t), t, o.UserID, o.TotalAmount, net)
		}
	}
	return revenuePoints(days), revenuePoints(weeks), revenuePoints(months)
}

func revenuePoints(s *bucketSet) []RevenuePoint {
	out := make([]RevenuePoint, 0, len(s.order))
	for _, b := range s.list() {
		out = append(out, RevenuePoint{Label: b.Label, Revenue: round2(b.Net), Orders: b.Orders})
	}
	return out
}
