package services

import (
	"sort"
	"strings"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/entity"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/repository"
	"github.com/sudaisamin20/Food-Delivery-Website-Backend/utils"
)

const dateLayout = "2006-01-02"

type DeliveryBoyService struct {
	Repo      *repository.DeliveryBoyRepository
	OrderRepo *repository.OrderRepository
	jwtSecret string
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewDeliveryBoyService(repo *repository.DeliveryBoyRepository, orders *repository.OrderRepository, secret string, ttl time.Duration) *DeliveryBoyService {
	return &DeliveryBoyService{Repo: repo, OrderRepo: orders, jwtSecret: secret, jwtTTL: ttl, now: time.Now}
}

// DeliveryBoyIn carries the multipart profile form.
type DeliveryBoyIn struct {
	Fullname        string `form:"fullname" json:"fullname"`
	Cnicno          string `form:"cnicno" json:"cnicno"`
	Dob             string `form:"dob" json:"dob"`
	Phoneno         string `form:"phoneno" json:"phoneno"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	Address         string `form:"address" json:"address"`
	City            string `form:"city" json:"city"`
	NumberPlate     string `form:"numberPlate" json:"numberPlate"`
	Gender          string `form:"gender" json:"gender"`
	VehicleType     string `form:"vehicleType" json:"vehicleType"`
	LicenseNo       string `form:"licenseNo" json:"licenseNo"`
	LicenseExpiry   string `form:"licenseExpiry" json:"licenseExpiry"`
	CurrentPassword string `form:"currentPassword" json:"currentPassword"`
	NewPassword     string `form:"newPassword" json:"newPassword"`
}

func (in DeliveryBoyIn) complete(withPassword bool) bool {
	vals := []string{
		in.Fullname, in.Cnicno, in.Dob, in.Phoneno, in.Email, in.Address, in.City,
		in.NumberPlate, in.Gender, in.VehicleType, in.LicenseNo, in.LicenseExpiry,
	}
	if withPassword {
		vals = append(vals, in.Password)
	}
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func parseDates(in DeliveryBoyIn) (dob, expiry time.Time, err error) {
	if dob, err = time.Parse(dateLayout, strings.TrimSpace(in.Dob)); err != nil {
		return dob, expiry, invalid("dob must be a date (YYYY-MM-DD)")
	}
	if expiry, err = time.Parse(dateLayout, strings.TrimSpace(in.LicenseExpiry)); err != nil {
		return dob, expiry, invalid("licenseExpiry must be a date (YYYY-MM-DD)")
	}
	return dob, expiry, nil
}

type DeliveryBoyAuthResult struct {
	DeliveryBoy *entity.DeliveryBoy `json:"deliveryBoy"`
	Token       string              `json:"token"`
}

// Register needs every profile field and an uploaded picture.
func (s *DeliveryBoyService) Register(in DeliveryBoyIn, pictureURL string) (*DeliveryBoyAuthResult, error) {
	if !in.complete(true) || pictureURL == "" {
		return nil, invalid("Please fill all the fields")
	}
	dob, expiry, err := parseDates(in)
	if err != nil {
		return nil, err
	}
	email := normEmail(in.Email)
	if _, err := s.Repo.FindByEmail(email); err == nil {
		return nil, invalid("Delivery Boy already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	d := &entity.DeliveryBoy{
		Fullname:      strings.TrimSpace(in.Fullname),
		Cnicno:        strings.TrimSpace(in.Cnicno),
		Dob:           dob,
		Phoneno:       strings.TrimSpace(in.Phoneno),
		Email:         email,
		Password:      hashed,
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		NumberPlate:   strings.TrimSpace(in.NumberPlate),
		Gender:        strings.TrimSpace(in.Gender),
		VehicleType:   strings.TrimSpace(in.VehicleType),
		LicenseNo:     strings.TrimSpace(in.LicenseNo),
		LicenseExpiry: expiry,
		Picture:       pictureURL,
		Role:          entity.RoleDeliveryBoy,
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, err
	}
	return s.issue(d)
}

func (s *DeliveryBoyService) Login(cnicno, email, password string) (*DeliveryBoyAuthResult, error) {
	if err := requireFields(field{"cnicno", cnicno}, field{"email", email}, field{"password", password}); err != nil {
		return nil, err
	}
	d, err := s.Repo.FindByEmail(normEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, badCreds("Invalid credentials")
		}
		return nil, err
	}
	if d.Cnicno != strings.TrimSpace(cnicno) || !utils.CheckPassword(d.Password, password) {
		return nil, badCreds("Invalid credentials")
	}
	return s.issue(d)
}

func (s *DeliveryBoyService) issue(d *entity.DeliveryBoy) (*DeliveryBoyAuthResult, error) {
	token, err := utils.GenerateToken(d.ID, entity.RoleDeliveryBoy, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}
	return &DeliveryBoyAuthResult{DeliveryBoy: d, Token: token}, nil
}

func (s *DeliveryBoyService) Get(id uint) (*entity.DeliveryBoy, error) {
	d, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, orNotFound(err, "Delivery boy not found")
	}
	return d, nil
}

// UpdateProfile rewrites every profile field. A password change needs both passwords.
func (s *DeliveryBoyService) UpdateProfile(id uint, in DeliveryBoyIn, pictureURL string) (*entity.DeliveryBoy, error) {
	if !in.complete(false) {
		return nil, invalid("Please fill all the fields")
	}
	dob, expiry, err := parseDates(in)
	if err != nil {
		return nil, err
	}
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	email := normEmail(in.Email)
	if email != d.Email {
		if other, err := s.Repo.FindByEmail(email); err == nil && other.ID != id {
			return nil, invalid("Email is already in use")
		} else if err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	fields := map[string]any{
		"fullname":       strings.TrimSpace(in.Fullname),
		"cnicno":         strings.TrimSpace(in.Cnicno),
		"dob":            dob,
		"phoneno":        strings.TrimSpace(in.Phoneno),
		"email":          email,
		"address":        strings.TrimSpace(in.Address),
		"city":           strings.TrimSpace(in.City),
		"number_plate":   strings.TrimSpace(in.NumberPlate),
		"gender":         strings.TrimSpace(in.Gender),
		"vehicle_type":   strings.TrimSpace(in.VehicleType),
		"license_no":     strings.TrimSpace(in.LicenseNo),
		"license_expiry": expiry,
	}
	switch {
	case in.NewPassword != "" && in.CurrentPassword != "":
		if !utils.CheckPassword(d.Password, in.CurrentPassword) {
			return nil, badCreds("Current password is incorrect")
		}
		hashed, err := utils.HashPassword(in.NewPassword)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	case in.NewPassword != "" || in.CurrentPassword != "":
		return nil, invalid("Both current and new passwords are required to change password")
	}
	if pictureURL != "" {
		fields["picture"] = pictureURL
	}
	if err := s.Repo.Updates(id, fields); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// ----- Dashboard -----

type EarningPoint struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type DeliveriesTimeline struct {
	Daily   int `json:"Daily"`
	Weekly  int `json:"Weekly"`
	Monthly int `json:"Monthly"`
	Total   int `json:"Total"`
}

type RecentDelivery struct {
	OrderID     uint       `json:"orderId"`
	Customer    string     `json:"customer"`
	Address     string     `json:"address"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	ReturnedAt  *time.Time `json:"returnedAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
	Status      string     `json:"status"`
	Amount      float64    `json:"amount"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type DeliveryEarnings struct {
	TotalEarnings   float64        `json:"totalEarnings"`
	TodayEarnings   float64        `json:"todayEarnings"`
	WeeklyEarnings  []EarningPoint `json:"weeklyEarnings"`
	MonthlyEarnings []EarningPoint `json:"monthlyEarnings"`
	YearlyEarnings  []EarningPoint `json:"yearlyEarnings"`
}

type DeliveryDashboard struct {
	DeliveryEarnings
	DeliveriesTimeline DeliveriesTimeline `json:"deliveriesTimeline"`
	InProgress         int                `json:"inProgressDeliveries"`
	Delivered          int                `json:"deliveredOrders"`
	Cancelled          int                `json:"cancelledOrders"`
	Returned           int                `json:"returnedOrders"`
	Completed          int                `json:"completedOrders"`
	CompletionRate     float64            `json:"completionRate"`
	RecentDeliveries   []RecentDelivery   `json:"recentDeliveries"`
}

// earningSeries sums DeliveryBoyEarningPerOrder per label in chronological order.
type earningSeries struct {
	set *bucketSet
}

func newEarningSeries() *earningSeries { return &earningSeries{set: newBucketSet()} }

func (e *earningSeries) add(label string, key time.Time) {
	e.set.add(label, key, 0, DeliveryBoyEarningPerOrder, 0)
}

func (e *earningSeries) points() []EarningPoint {
	buckets := e.set.list()
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Key.Before(buckets[j].Key) })
	out := make([]EarningPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, EarningPoint{Name: b.Label, Amount: b.Gross})
	}
	return out
}

func (s *DeliveryBoyService) Dashboard(id uint) (*DeliveryDashboard, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	orders, err := s.OrderRepo.ListForDeliveryBoy(id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)
	lastWeek := today.AddDate(0, 0, -6)
	lastYear := now.AddDate(-1, 0, 0)

	d := &DeliveryDashboard{RecentDeliveries: make([]RecentDelivery, 0)}
	weekly, monthly, yearly := newEarningSeries(), newEarningSeries(), newEarningSeries()
	var accepted int

	for _, o := range orders {
		if o.AcceptStatus != entity.AcceptAccepted {
			continue
		}
		switch o.Status {
		case entity.StatusAccepted, entity.StatusPreparing, entity.StatusReadyForPickup, entity.StatusOutForDelivery:
			d.InProgress++
		case entity.StatusCancelled:
			d.Cancelled++
		case entity.StatusReturned:
			d.Returned++
		}
		if o.Status != entity.StatusCancelled && o.Status != entity.StatusReturned {
			accepted++
		}

		if isFinished(o.Status) {
			rd := RecentDelivery{
				OrderID:     o.ID,
				Address:     o.ShippingAddress.Address,
				DeliveredAt: o.DeliveredAt,
				ReturnedAt:  o.ReturnedAt,
				CancelledAt: o.CancelledAt,
				Status:      o.Status,
				Amount:      o.TotalAmount,
				CreatedAt:   o.CreatedAt,
			}
			if o.User != nil {
				rd.Customer = o.User.Fullname
			}
			d.RecentDeliveries = append(d.RecentDeliveries, rd)
		}

		if o.Status != entity.StatusDelivered {
			continue
		}
		d.Delivered++
		d.Completed++
		d.TotalEarnings += DeliveryBoyEarningPerOrder
		d.DeliveriesTimeline.Total++
		if o.DeliveredAt == nil {
			continue
		}
		at := *o.DeliveredAt
		if !at.Before(today) {
			d.DeliveriesTimeline.Daily++
			d.TodayEarnings += DeliveryBoyEarningPerOrder
		}
		if !at.Before(weekStart) {
			d.DeliveriesTimeline.Weekly++
		}
		if !at.Before(monthStart) {
			d.DeliveriesTimeline.Monthly++
		}
		day := startOfDay(at)
		if !at.Before(lastWeek) {
			weekly.add(DayLabel(at), day)
		}
		monthly.add(WeekLabel(at), day.AddDate(0, 0, -(at.Day()-1)%7))
		if !at.Before(lastYear) {
			yearly.add(MonthLabel(at), startOfMonth(at))
		}
	}

	if accepted > 0 {
		d.CompletionRate = round2(float64(d.Delivered) / float64(accepted) * 100)
	}
	d.WeeklyEarnings = weekly.points()
	d.MonthlyEarnings = monthly.points()
	d.YearlyEarnings = yearly.points()
	sort.SliceStable(d.RecentDeliveries, func(i, j int) bool {
		return d.RecentDeliveries[i].CreatedAt.After(d.RecentDeliveries[j].CreatedAt)
	})
	return d, nil
}

// Earnings is the money subset of the dashboard.
func (s *DeliveryBoyService) Earnings(id uint) (*DeliveryEarnings, error) {
	d, err := s.Dashboard(id)
	if err != nil {
		return nil, err
	}
	return &d.DeliveryEarnings, nil
}

// isFinished reports whether a rider is done with an order in this status.
func isFinished(status string) bool {
	switch status {
	case entity.StatusDelivered, entity.StatusCancelled, entity.StatusReturned:
		return true
	}
	return false
}
