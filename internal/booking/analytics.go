package booking

import (
	"context"
	"math"
	"strings"
	"time"
)

// Window selects how far back hotel records reach.
type Window string

const (
	WindowAll    Window = "all"
	Window7Days  Window = "7days"
	Window30Days Window = "30days"
)

// ParseWindow accepts both the short form ("7days") and the prefixed form
// ("last7days"). An empty selector defaults to all time.
func ParseWindow(s string) (Window, error) {
	switch Window(strings.TrimPrefix(strings.ToLower(s), "last")) {
	case "", WindowAll:
		return WindowAll, nil
	case Window7Days:
		return Window7Days, nil
	case Window30Days:
		return Window30Days, nil
	default:
		return "", ErrInvalidWindow
	}
}

// Stats are percentages of bookings in the window, rounded to one decimal.
// They sum to roughly 100 for a non-empty window and are both zero for an
// empty one.
type Stats struct {
	ConfirmedRate float64
	CancelledRate float64
}

// Dashboard is the owner's view of their hotel over a window: the bookings
// themselves plus revenue and status breakdowns. Revenue excludes cancelled
// bookings regardless of refund progress.
type Dashboard struct {
	Bookings      []*Booking
	TotalBookings int
	TotalRevenue  int64
	Stats         Stats
}

func (s *service) HotelRecords(ctx context.Context, ownerID string, window Window) (*Dashboard, error) {
	h, err := s.hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	since := windowStart(s.now(), window)
	bookings, err := s.repo.ListByHotelSince(ctx, h.ID, since)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Bookings:      bookings,
		TotalBookings: len(bookings),
	}
	cancelled := 0
	for _, b := range bookings {
		if b.IsCancelled() {
			cancelled++
			continue
		}
		d.TotalRevenue += b.TotalPrice
	}
	if d.TotalBookings > 0 {
		d.Stats.CancelledRate = roundRate(float64(cancelled) / float64(d.TotalBookings) * 100)
		d.Stats.ConfirmedRate = roundRate(float64(d.TotalBookings-cancelled) / float64(d.TotalBookings) * 100)
	}
	return d, nil
}

// windowStart returns local midnight N days before now, or nil for the
// unbounded window. Anchoring at midnight keeps the window stable across
// requests within the same day.
func windowStart(now time.Time, window Window) *time.Time {
	var days int
	switch window {
	case Window7Days:
		days = 7
	case Window30Days:
		days = 30
	default:
		return nil
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := midnight.AddDate(0, 0, -days)
	return &since
}

func roundRate(x float64) float64 {
	return math.Round(x*10) / 10
}
