package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
)

// ----- Revenue overview -----

type RevenueBucket struct {
	Date                 string  `json:"date"`
	NetRevenue           float64 `json:"netRevenue"`
	TotalDeliveredOrders int     `json:"totalDeliveredOrders"`
	TotalCustomers       int     `json:"totalCustomers"`
	AvgOrderValue        float64 `json:"avgOrderValue"`
}

type RevenueOverview struct {
	TotalRevenue         float64         `json:"totalRevenue"`
	TotalDeliveredOrders int             `json:"totalDeliveredOrders"`
	TotalCustomers       int64           `json:"totalCustomers"`
	AvgOrderValue        float64         `json:"avgOrderValue"`
	TotalDailyRevenue    []RevenueBucket `json:"totalDailyRevenue"`
	TotalWeeklyRevenue   []RevenueBucket `json:"totalWeeklyRevenue"`
	TotalMonthlyRevenue  []RevenueBucket `json:"totalMonthlyRevenue"`
	TotalYearlyRevenue   []RevenueBucket `json:"totalYearlyRevenue"`
}

func revenueBuckets(set *bucketSet) []RevenueBucket {
	out := []RevenueBucket{}
	for _, b := range set.list() {
		rb := RevenueBucket{
			Date:                 b.Label,
			NetRevenue:           round2(NetRevenue(b.Gross, b.Orders)),
			TotalDeliveredOrders: b.Orders,
			TotalCustomers:       b.Customers(),
		}
		if b.Orders > 0 {
			rb.AvgOrderValue = round2(b.Gross / float64(b.Orders))
		}
		out = append(out, rb)
	}
	return out
}

// RevenueOverview reports platform revenue from delivered orders, bucketed by day, ISO week, month and year.
func (s *SuperAdminService) RevenueOverview() (*RevenueOverview, error) {
	delivered, err := s.OrderRepo.List(repository.OrderFilter{Status: entity.StatusDelivered})
	if err != nil {
		return nil, err
	}
	out := &RevenueOverview{TotalDeliveredOrders: len(delivered)}
	if out.TotalCustomers, err = s.UserRepo.CountByRole(entity.RoleUser); err != nil {
		return nil, err
	}

	daily, weekly, monthly, yearly := newBucketSet(), newBucketSet(), newBucketSet(), newBucketSet()
	var gross float64
	for _, o := range delivered {
		gross += o.TotalAmount
		out.TotalRevenue += PlatformRevenue(o.TotalAmount)
		at := o.CreatedAt
		daily.add(ShortDayLabel(at), startOfDay(at), o.UserID, o.TotalAmount, 0)
		weekly.add(ISOWeekLabel(at), startOfDay(at), o.UserID, o.TotalAmount, 0)
		monthly.add(MonthLabel(at), startOfMonth(at), o.UserID, o.TotalAmount, 0)
		yearly.add(strconv.Itoa(at.Year()), startOfMonth(at), o.UserID, o.TotalAmount, 0)
	}
	out.TotalRevenue = round2(out.TotalRevenue)
	if len(delivered) > 0 {
		out.AvgOrderValue = round2(gross / float64(len(delivered)))
	}
	out.TotalDailyRevenue = revenueBuckets(daily)
	out.TotalWeeklyRevenue = revenueBuckets(weekly)
	out.TotalMonthlyRevenue = revenueBuckets(monthly)
	out.TotalYearlyRevenue = revenueBuckets(yearly)
	return out, nil
}

// ----- Payouts overview -----

type PayoutByDate struct {
	Date        string  `json:"date"`
	TotalAmount float64 `json:"totalAmount"`
}

type RestaurantPayout struct {
	RestaurantID      uint       `json:"restaurantId"`
	RestaurantName    string     `json:"restaurantName"`
	OrderCount        int        `json:"orderCount"`
	TotalOrdersAmount float64    `json:"totalOrdersAmount"`
	Status            string     `json:"status"`
	PaidAt            *time.Time `json:"paidAt,omitempty"`
}

type PayoutsOverview struct {
	TotalCompletedPayouts          float64                   `json:"totalCompletedPayouts"`
	TotalPendingPayouts            float64                   `json:"totalPendingPayouts"`
	SuccessRate                    float64                   `json:"successRate"`
	TotalPayoutsByDate             []PayoutByDate            `json:"totalPayoutsByDate"`
	TotalPendingPayoutsRestaurants []RestaurantPayout        `json:"totalPendingPayoutsRestaurants"`
	PendingRestaurantsByID         map[uint]RestaurantPayout `json:"pendingRestaurantsById"`
	TotalPayoutsHistory            []RestaurantPayout        `json:"totalPayoutsHistory"`
}

// payoutGroups accumulates per-restaurant payouts in first-seen order.
type payoutGroups struct {
	order []uint
	byID  map[uint]*RestaurantPayout
}

func newPayoutGroups() *payoutGroups { return &payoutGroups{byID: map[uint]*RestaurantPayout{}} }

func (g *payoutGroups) add(o entity.Order) {
	p, ok := g.byID[o.RestaurantID]
	if !ok {
		p = &RestaurantPayout{RestaurantID: o.RestaurantID, Status: o.PayoutStatus}
		if o.Restaurant != nil {
			p.RestaurantName = o.Restaurant.Name
		}
		g.byID[o.RestaurantID] = p
		g.order = append(g.order, o.RestaurantID)
	}
	p.OrderCount++
	p.TotalOrdersAmount += PayoutAmount(o.TotalAmount)
	if o.PaidAt != nil && (p.PaidAt == nil || o.PaidAt.After(*p.PaidAt)) {
		t := *o.PaidAt
		p.PaidAt = &t
	}
}

func (g *payoutGroups) list() []RestaurantPayout {
	out := make([]RestaurantPayout, 0, len(g.order))
	for _, id := range g.order {
		p := *g.byID[id]
		p.TotalOrdersAmount = round2(p.TotalOrdersAmount)
		out = append(out, p)
	}
	return out
}

func (s *SuperAdminService) PayoutsOverview() (*PayoutsOverview, error) {
	delivered, err := s.OrderRepo.List(repository.OrderFilter{Status: entity.StatusDelivered})
	if err != nil {
		return nil, err
	}
	out := &PayoutsOverview{PendingRestaurantsByID: map[uint]RestaurantPayout{}}
	var completed, pending []float64
	byDay := newBucketSet()
	pendingGroups, history := newPayoutGroups(), newPayoutGroups()

	for _, o := range delivered {
		byDay.add(PayoutDayLabel(o.CreatedAt), startOfDay(o.CreatedAt), o.UserID, PayoutAmount(o.TotalAmount), 0)
		if o.PayoutStatus == entity.PayoutCompleted {
			completed = append(completed, o.TotalAmount)
			history.add(o)
		} else {
			pending = append(pending, o.TotalAmount)
			pendingGroups.add(o)
		}
	}

	out.TotalCompletedPayouts = round2(PayoutSum(completed))
	out.TotalPendingPayouts = round2(PayoutSum(pending))
	if len(delivered) > 0 {
		out.SuccessRate = round2(float64(len(completed)) / float64(len(delivered)) * 100)
	}

	days := byDay.list()
	sort.SliceStable(days, func(i, j int) bool { return days[i].Key.Before(days[j].Key) })
	out.TotalPayoutsByDate = make([]PayoutByDate, 0, len(days))
	for _, b := range days {
		out.TotalPayoutsByDate = append(out.TotalPayoutsByDate, PayoutByDate{Date: b.Label, TotalAmount: round2(b.Gross)})
	}

	out.TotalPendingPayoutsRestaurants = pendingGroups.list()
	for _, p := range out.TotalPendingPayoutsRestaurants {
		out.PendingRestaurantsByID[p.RestaurantID] = p
	}
	out.TotalPayoutsHistory = history.list()
	return out, nil
}

// ----- Commission overview -----

type RestaurantCommission struct {
	RestaurantID    uint    `json:"restaurantId"`
	RestaurantName  string  `json:"restaurantName"`
	City            string  `json:"city"`
	TotalOrders     int     `json:"totalOrders"`
	TotalCommission float64 `json:"totalCommission"`
}

type CommissionOverview struct {
	TotalOrders                 int                    `json:"totalOrders"`
	TotalEarnings               float64                `json:"totalEarnings"`
	TotalCommission             float64                `json:"totalCommission"`
	CommissionRate              int                    `json:"commissionRate"`
	RestaurantCommissionDetails []RestaurantCommission `json:"restaurantCommissionDetails"`
}

// RangeStart maps a dashboard date range to its lower bound. The zero time means all time.
func RangeStart(dateRange string, now time.Time) time.Time {
	switch dateRange {
	case "today":
		return startOfDay(now)
	case "yesterday":
		return startOfDay(now).AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	case "three_months":
		return now.AddDate(0, -3, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	}
	return time.Time{}
}

func (s *SuperAdminService) CommissionOverview(city, dateRange string) (*CommissionOverview, error) {
	f := repository.OrderFilter{
		Status: entity.StatusDelivered,
		Since:  RangeStart(dateRange, s.now()),
	}
	if c := strings.TrimSpace(city); c != "" && !strings.EqualFold(c, "all") {
		f.City = c
	}
	orders, err := s.OrderRepo.List(f)
	if err != nil {
		return nil, err
	}

	out := &CommissionOverview{
		TotalOrders:                 len(orders),
		CommissionRate:              int(CommissionRate * 100),
		RestaurantCommissionDetails: []RestaurantCommission{},
	}
	idx := map[uint]int{}
	for _, o := range orders {
		out.TotalEarnings += o.TotalAmount
		i, ok := idx[o.RestaurantID]
		if !ok {
			rc := RestaurantCommission{RestaurantID: o.RestaurantID}
			if o.Restaurant != nil {
				rc.RestaurantName = o.Restaurant.Name
				rc.City = o.Restaurant.City
			}
			i = len(out.RestaurantCommissionDetails)
			idx[o.RestaurantID] = i
			out.RestaurantCommissionDetails = append(out.RestaurantCommissionDetails, rc)
		}
		rc := &out.RestaurantCommissionDetails[i]
		rc.TotalOrders++
		rc.TotalCommission += (o.TotalAmount - orderFees) * CommissionRate
	}
	for i := range out.RestaurantCommissionDetails {
		out.RestaurantCommissionDetails[i].TotalCommission = round2(out.RestaurantCommissionDetails[i].TotalCommission)
	}
	out.TotalCommission = round2(CommissionOverviewTotal(out.TotalEarnings, out.TotalOrders))
	return out, nil
}
