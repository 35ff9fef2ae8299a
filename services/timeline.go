package services

import (
	"fmt"
	"time"
)

// WeekOfMonth numbers the days 1-7 as week 1, 8-14 as week 2 and so on.
func WeekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

// DayLabel renders "Monday - Week 2 of March 2025".
func DayLabel(t time.Time) string {
	return fmt.Sprintf("%s - %s", t.Weekday(), WeekLabel(t))
}

// WeekLabel renders "Week 2 of March 2025".
func WeekLabel(t time.Time) string {
	return fmt.Sprintf("Week %d of %s %d", WeekOfMonth(t), t.Month(), t.Year())
}

// MonthLabel renders "March 2025".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}

// ShortDayLabel renders "5-Mar-2025".
func ShortDayLabel(t time.Time) string {
	return t.Format("2-Jan-2006")
}

// ISOWeekLabel renders "Week 10 of 2025" using ISO week numbering.
func ISOWeekLabel(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("Week %d of %d", w, y)
}

// PayoutDayLabel renders "January 2".
func PayoutDayLabel(t time.Time) string {
	return t.Format("January 2")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Sunday that begins t's week.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Bucket accumulates orders under one label, keeping first-seen order.
type Bucket struct {
	Label  string
	Key    time.Time
	Gross  float64
	Net    float64
	Orders int
	users  map[uint]struct{}
}

type bucketSet struct {
	order []string
	byKey map[string]*Bucket
}

func newBucketSet() *bucketSet {
	return &bucketSet{byKey: map[string]*Bucket{}}
}

func (s *bucketSet) get(label string, key time.Time) *Bucket {
	b, ok := s.byKey[label]
	if !ok {
		b = &Bucket{Label: label, Key: key, users: map[uint]struct{}{}}
		s.byKey[label] = b
		s.order = append(s.order, label)
	}
	return b
}

func (s *bucketSet) add(label string, key time.Time, userID uint, total, net float64) {
	b := s.get(label, key)
	b.Gross += total
	b.Net += net
	b.Orders++
	b.users[userID] = struct{}{}
}

func (s *bucketSet) list() []*Bucket {
	out := make([]*Bucket, 0, len(s.order))
	for _, l := range s.order {
		out = append(out, s.byKey[l])
	}
	return out
}

func (b *Bucket) Customers() int { return len(b.users) }
