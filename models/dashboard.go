package models

import "time"

// DashboardStats aggregates the counters shown on a dashboard. A counter that
// could not be fetched stays at zero.
type DashboardStats struct {
	TotalUsers          int64
	TotalOrders         int64
	TotalProducts       int64
	TotalNotifications  int64
	UnreadNotifications int64
	LowStockProducts    int64
	PendingReviews      int64
	Revenue             float64
}

// ActivityLevel grades an activity entry.
type ActivityLevel string

const (
	ActivitySuccess ActivityLevel = "success"
	ActivityWarning ActivityLevel = "warning"
	ActivityError   ActivityLevel = "error"
)

// Activity is one entry of a dashboard's recent activity feed.
type Activity struct {
	Kind    string
	Message string
	Level   ActivityLevel
	At      time.Time
}

// PendingItem is a product awaiting moderation.
type PendingItem struct {
	ProductID int64
	Name      string
	SKU       string
	Submitted time.Time
}

// Dashboard is the result of one dashboard refresh.
type Dashboard struct {
	Role       Role
	Stats      DashboardStats
	Activities []Activity
	Pending    []PendingItem
	// Failed names the sources that could not be loaded.
	Failed    []string
	UpdatedAt time.Time
}
