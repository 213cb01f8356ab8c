package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexibleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FlexibleID
		wantErr bool
	}{
		{name: "number", input: `42`, want: "42"},
		{name: "string", input: `"a-7"`, want: "a-7"},
		{name: "null", input: `null`, want: ""},
		{name: "object", input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id FlexibleID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestFlexibleID_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(FlexibleID("42"))
	require.NoError(t, err)
	assert.Equal(t, `42`, string(b))

	b, err = json.Marshal(FlexibleID("a-7"))
	require.NoError(t, err)
	assert.Equal(t, `"a-7"`, string(b))
}

func TestAuthResponse_Access(t *testing.T) {
	var resp AuthResponse
	require.NoError(t, json.Unmarshal([]byte(`{"token":"legacy","refreshToken":"r","userId":5,"role":"ADMIN"}`), &resp))

	assert.Equal(t, "legacy", resp.Access())
	assert.Equal(t, FlexibleID("5"), resp.UserID)
	assert.Equal(t, RoleAdmin, resp.Role)

	resp.AccessToken = "current"
	assert.Equal(t, "current", resp.Access())
}

func TestTokens_Empty(t *testing.T) {
	assert.True(t, Tokens{RefreshToken: "r"}.Empty())
	assert.False(t, Tokens{AccessToken: "a"}.Empty())
}
