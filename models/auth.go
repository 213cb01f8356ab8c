package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Credentials is the body of POST /api/auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// AuthResponse is returned by login and register. Older auth-service builds
// name the access token "token" instead of "accessToken".
type AuthResponse struct {
	AccessToken  string     `json:"accessToken"`
	Token        string     `json:"token,omitempty"`
	RefreshToken string     `json:"refreshToken"`
	Type         string     `json:"type,omitempty"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Role         Role       `json:"role,omitempty"`
	UserID       FlexibleID `json:"userId,omitempty"`
}

// Access returns the issued access token under either field name.
func (r AuthResponse) Access() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries a rotated token pair. RefreshToken may be empty
// when the service keeps the old refresh token valid.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Type         string `json:"type,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// ValidateRequest is the body of POST /api/auth/validate.
type ValidateRequest struct {
	Token string `json:"token"`
}

// ValidateResponse reports whether an access token is still accepted.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// ForgotPasswordRequest is the body of POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Tokens is the bearer pair kept in the token store.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether no access token is present.
func (t Tokens) Empty() bool {
	return t.AccessToken == ""
}

// FlexibleID decodes identifiers sent either as JSON numbers or strings.
type FlexibleID string

// UnmarshalJSON implements [json.Unmarshaler].
func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identifier must be a number or a string: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

// MarshalJSON implements [json.Marshaler]. Numeric identifiers are written
// back as numbers.
func (id FlexibleID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String implements [fmt.Stringer].
func (id FlexibleID) String() string {
	return string(id)
}
