package adapter

import (
	"github.com/MKhiriev/commerce-console/internal/config"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/internal/store"
)

// ServerAdapter groups the backend APIs sharing one authenticated [Client].
type ServerAdapter struct {
	Client        *Client
	Auth          AuthAPI
	Users         UsersAPI
	Orders        OrdersAPI
	Inventory     InventoryAPI
	Notifications NotificationsAPI
}

// NewHTTPServerAdapter builds every REST API against the gateway in cfg.
func NewHTTPServerAdapter(cfg config.Adapter, tokens store.TokenStore, log *logger.Logger) (*ServerAdapter, error) {
	client, err := NewClient(cfg, tokens, log)
	if err != nil {
		return nil, err
	}

	return &ServerAdapter{
		Client:        client,
		Auth:          &httpAuthAPI{client: client},
		Users:         &httpUsersAPI{client: client},
		Orders:        &httpOrdersAPI{client: client},
		Inventory:     &httpInventoryAPI{client: client},
		Notifications: &httpNotificationsAPI{client: client},
	}, nil
}
