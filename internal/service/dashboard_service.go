package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/eventify/eventify-api/internal/model"
)

// BookingSource lists bookings for aggregation.
type BookingSource interface {
	List(ctx context.Context, f model.BookingFilter) ([]model.Booking, error)
}

// EventSource lists events for aggregation.
type EventSource interface {
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
}

// UserSource counts accounts for aggregation.
type UserSource interface {
	CountByRole(ctx context.Context, role model.Role) (int, error)
}

// DashboardService computes the staff dashboard as a pure fold over the
// current collections. No caching, no incremental maintenance: every call
// recomputes from scratch.
type DashboardService struct {
	bookings BookingSource
	events   EventSource
	users    UserSource
}

// NewDashboardService creates a new DashboardService with its sources.
func NewDashboardService(bookings BookingSource, events EventSource, users UserSource) *DashboardService {
	return &DashboardService{bookings: bookings, events: events, users: users}
}

// Stats aggregates events, bookings and users into the dashboard payload.
// Revenue counts only approved bookings, using the guest-declared paid
// amount; unique customers count distinct emails across all statuses;
// revenue buckets key on the booking's creation year-month (not the event
// date) and come back in chronological order.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	events, err := s.events.List(ctx, model.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	bookings, err := s.bookings.List(ctx, model.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	totalUsers, err := s.users.CountByRole(ctx, model.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	stats := &model.DashboardStats{
		TotalEvents:   len(events),
		TotalBookings: len(bookings),
		TotalUsers:    totalUsers,
	}
	for _, e := range events {
		if e.Status == model.EventActive {
			stats.ActiveEvents++
		}
	}

	emails := map[string]struct{}{}
	type bucket struct {
		label   string
		revenue float64
	}
	buckets := map[string]*bucket{}

	for _, b := range bookings {
		emails[b.Email] = struct{}{}
		switch b.Status {
		case model.BookingPending:
			stats.PendingBookings++
		case model.BookingApproved:
			stats.ApprovedBookings++
			stats.TotalRevenue += b.PaidAmount

			key := b.CreatedAt.Format("2006-01")
			if buckets[key] == nil {
				buckets[key] = &bucket{label: b.CreatedAt.Format("Jan 2006")}
			}
			buckets[key].revenue += b.PaidAmount
		case model.BookingRejected:
			stats.RejectedBookings++
		}
	}
	stats.UniqueCustomers = len(emails)

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats.RevenueOverTime = make([]model.MonthlyRevenue, 0, len(keys))
	for _, k := range keys {
		stats.RevenueOverTime = append(stats.RevenueOverTime, model.MonthlyRevenue{
			Month:   buckets[k].label,
			Revenue: buckets[k].revenue,
		})
	}
	return stats, nil
}
