package model

// MonthlyRevenue is one chronological revenue bucket for the dashboard
// chart, keyed by the booking's creation year-month.
type MonthlyRevenue struct {
	Month   string  `json:"month"` // e.g. "Jan 2026"
	Revenue float64 `json:"revenue"`
}

// DashboardStats is the read-side aggregation over events, bookings and
// users, recomputed on every request.
type DashboardStats struct {
	TotalEvents      int              `json:"totalEvents"`
	ActiveEvents     int              `json:"activeEvents"`
	TotalBookings    int              `json:"totalBookings"`
	PendingBookings  int              `json:"pendingBookings"`
	ApprovedBookings int              `json:"approvedBookings"`
	RejectedBookings int              `json:"rejectedBookings"`
	TotalRevenue     float64          `json:"totalRevenue"`
	UniqueCustomers  int              `json:"uniqueCustomers"`
	TotalUsers       int              `json:"totalUsers"`
	RevenueOverTime  []MonthlyRevenue `json:"revenueOverTime"`
}
