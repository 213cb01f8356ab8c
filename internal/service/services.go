package service

import (
	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/store"
)

// moderationQueueSize is how many pending products the moderator dashboard
// shows.
const moderationQueueSize = 10

// Services groups every console service over one server adapter.
type Services struct {
	Session       *SessionManager
	Users         *UsersService
	Orders        *OrdersService
	Inventory     *InventoryService
	Notifications *NotificationsService
	Dashboard     *DashboardService
	Profile       *ProfileService
}

func NewServices(api *adapter.ServerAdapter, tokens store.TokenStore, cfg config.Console, log *logger.Logger) *Services {
	session := NewSessionManager(api.Auth, tokens, log)

	return &Services{
		Session:       session,
		Users:         NewUsersService(api.Users, cfg.PageSize, log),
		Orders:        NewOrdersService(api.Orders, cfg.PageSize, log),
		Inventory:     NewInventoryService(api.Inventory, cfg.PageSize, cfg.LowStockThreshold, log),
		Notifications: NewNotificationsService(api.Notifications, cfg.PageSize, log),
		Dashboard: NewDashboardService(
			api.Users, api.Orders, api.Inventory, api.Notifications,
			session, moderationQueueSize, log,
		),
		Profile: NewProfileService(api.Users, session, log),
	}
}
