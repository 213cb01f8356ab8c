package service

import (
	"context"

	"github.com/MKhiriev/commerce-console/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SessionService owns the operator session. [SessionManager] is the
// implementation; dashboards and the profile editor depend on this contract.
type SessionService interface {
	// Session returns a snapshot of the current session.
	Session() models.Session
	// Subscribe streams session changes until cancel is called.
	Subscribe() (<-chan models.Session, func())

	Initialize(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, req models.RegisterRequest) error
	Logout(ctx context.Context) error

	// UpdateUser merges patch into the signed-in user.
	UpdateUser(ctx context.Context, patch models.UserPatch) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var _ SessionService = (*SessionManager)(nil)
