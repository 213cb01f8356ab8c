// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the REST transport to the commerce platform
// gateway.
//
// Every backend API shares one [Client], which attaches the stored bearer
// token to outgoing requests and recovers from an expired access token by
// refreshing it once. Non-2xx responses become [*APIError] values wrapping
// the sentinels defined in errors.go, so callers use [errors.Is] (e.g.
// [ErrConflict] for 409, [ErrForbidden] for 403).
package adapter

import (
	"context"

	"github.com/MKhiriev/commerce-console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// AuthAPI talks to the authentication service.
type AuthAPI interface {
	// Login exchanges credentials for a token pair and the user summary.
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// Register creates a self-service account and signs it in.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Validate asks the service whether token is still accepted. A response
	// with valid=false is reported as [ErrUnauthorized].
	Validate(ctx context.Context, token string) (models.ValidateResponse, error)

	// Refresh rotates the stored token pair. See [Client.Refresh].
	Refresh(ctx context.Context) (string, error)

	// Logout invalidates the current token on the server side.
	Logout(ctx context.Context) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	// OnSessionExpired registers the handler run after an unrecoverable 401.
	OnSessionExpired(fn func())
}

// UsersAPI talks to the users service.
type UsersAPI interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[models.DirectoryUser], error)
	Get(ctx context.Context, id int64) (models.DirectoryUser, error)
	GetByUsername(ctx context.Context, username string) (models.DirectoryUser, error)
	Create(ctx context.Context, req models.CreateUserRequest) (models.DirectoryUser, error)
	Update(ctx context.Context, id int64, req models.UpdateUserRequest) (models.DirectoryUser, error)
	Delete(ctx context.Context, id int64) error

	// ToggleStatus flips the active flag of the account.
	ToggleStatus(ctx context.Context, id int64) error

	// UploadProfilePicture sends content as the multipart "file" field.
	UploadProfilePicture(ctx context.Context, id int64, fileName string, content []byte) (models.ProfilePictureResponse, error)
}

// OrdersAPI talks to the orders service.
type OrdersAPI interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[models.Order], error)
	ListByUser(ctx context.Context, userID int64) (models.Page[models.Order], error)
	Get(ctx context.Context, id int64) (models.Order, error)
	Create(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (models.Order, error)
	Cancel(ctx context.Context, id int64) (models.Order, error)
}

// InventoryAPI talks to the inventory service.
type InventoryAPI interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[models.Product], error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, req models.ProductRequest) (models.Product, error)
	Update(ctx context.Context, id int64, req models.ProductRequest) (models.Product, error)
	Delete(ctx context.Context, id int64) error
	LowStock(ctx context.Context) (models.Page[models.Product], error)
}

// NotificationsAPI talks to the notifications service.
type NotificationsAPI interface {
	List(ctx context.Context, q models.ListQuery) (models.Page[models.Notification], error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
	UnreadCount(ctx context.Context) (int64, error)
}
