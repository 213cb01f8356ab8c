package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status  int
		body    string
		want    error
		message string
	}{
		{status: http.StatusBadRequest, body: `{"message":"Name is required"}`, want: ErrBadRequest, message: "Name is required"},
		{status: http.StatusUnprocessableEntity, body: `{}`, want: ErrBadRequest},
		{status: http.StatusForbidden, body: `{"error":"Forbidden"}`, want: ErrForbidden},
		{status: http.StatusNotFound, body: `not json`, want: ErrNotFound},
		{status: http.StatusConflict, body: `{"message":"Username already exists"}`, want: ErrConflict, message: "Username already exists"},
		{status: http.StatusInternalServerError, body: ``, want: ErrInternalServerError},
		{status: http.StatusServiceUnavailable, body: ``, want: ErrBadGateway},
		{status: http.StatusTeapot, body: ``, want: ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, newMemTokens("tok", ""))
			_, err := a.Orders.Get(context.Background(), 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)

			msg, ok := MessageOf(err)
			assert.Equal(t, tt.message != "", ok)
			assert.Equal(t, tt.message, msg)
		})
	}
}

func TestMapHTTPError_SuccessIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, newMemTokens("tok", ""))
	assert.NoError(t, a.Notifications.MarkAllRead(context.Background()))
}

func TestValidate_InvalidTokenIsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"valid": false})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, newMemTokens("tok", ""))
	_, err := a.Auth.Validate(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&APIError{StatusCode: 503, Err: ErrBadGateway}))
	assert.False(t, IsRetryable(&APIError{StatusCode: 400, Err: ErrBadRequest}))
	assert.False(t, IsRetryable(nil))
}
