package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339", input: `"2026-03-01T10:20:30Z"`, want: time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)},
		{name: "local date-time", input: `"2026-03-01T10:20:30"`, want: time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)},
		{name: "fractional seconds", input: `"2026-03-01T10:20:30.5"`, want: time.Date(2026, 3, 1, 10, 20, 30, 500000000, time.UTC)},
		{name: "date only", input: `"2026-03-01"`, want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "null", input: `null`},
		{name: "empty", input: `""`},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `1700000000`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))

	b, err = json.Marshal(NewTimestamp(time.Date(2026, 3, 1, 10, 20, 30, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T10:20:30Z"`, string(b))
}

func TestTimestamp_Unix(t *testing.T) {
	var nilTS *Timestamp
	assert.Zero(t, nilTS.Unix())
	assert.Zero(t, (&Timestamp{}).Unix())
	assert.Equal(t, int64(1700000000), NewTimestamp(time.Unix(1700000000, 0)).Unix())
}
