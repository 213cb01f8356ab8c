package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/commerce-console/models"
)

const (
	loginPath          = "/api/auth/login"
	registerPath       = "/api/auth/register"
	validatePath       = "/api/auth/validate"
	logoutPath         = "/api/auth/logout"
	forgotPasswordPath = "/api/auth/forgot-password"
	resetPasswordPath  = "/api/auth/reset-password"
)

type httpAuthAPI struct {
	client *Client
}

func (a *httpAuthAPI) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.client.SendJSON(ctx, http.MethodPost, loginPath, jsonBody(creds), &out); err != nil {
		return models.AuthResponse{}, fmt.Errorf("login: %w", err)
	}
	if out.Access() == "" {
		return models.AuthResponse{}, fmt.Errorf("login: %w: no access token", ErrMalformedResponse)
	}
	return out, nil
}

func (a *httpAuthAPI) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := a.client.SendJSON(ctx, http.MethodPost, registerPath, jsonBody(req), &out); err != nil {
		return models.AuthResponse{}, fmt.Errorf("register: %w", err)
	}
	if out.Access() == "" {
		return models.AuthResponse{}, fmt.Errorf("register: %w: no access token", ErrMalformedResponse)
	}
	return out, nil
}

func (a *httpAuthAPI) Validate(ctx context.Context, token string) (models.ValidateResponse, error) {
	var out models.ValidateResponse
	if err := a.client.SendJSON(ctx, http.MethodPost, validatePath, jsonBody(models.ValidateRequest{Token: token}), &out); err != nil {
		return models.ValidateResponse{}, fmt.Errorf("validate: %w", err)
	}
	if !out.Valid {
		return out, fmt.Errorf("validate: %w", ErrUnauthorized)
	}
	return out, nil
}

func (a *httpAuthAPI) Refresh(ctx context.Context) (string, error) {
	return a.client.Refresh(ctx)
}

func (a *httpAuthAPI) Logout(ctx context.Context) error {
	if _, err := a.client.Send(ctx, http.MethodPost, logoutPath, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *httpAuthAPI) ForgotPassword(ctx context.Context, email string) error {
	if _, err := a.client.Send(ctx, http.MethodPost, forgotPasswordPath, jsonBody(models.ForgotPasswordRequest{Email: email})); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (a *httpAuthAPI) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := models.ResetPasswordRequest{Token: token, NewPassword: newPassword}
	if _, err := a.client.Send(ctx, http.MethodPost, resetPasswordPath, jsonBody(body)); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (a *httpAuthAPI) OnSessionExpired(fn func()) {
	a.client.OnSessionExpired(fn)
}
