package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Page[int]
	}{
		{
			name:  "bare array",
			input: `[1,2,3]`,
			want:  Page[int]{Items: []int{1, 2, 3}, TotalElements: 3, TotalPages: 1},
		},
		{
			name:  "envelope",
			input: `{"content":[4,5],"totalElements":42,"totalPages":21}`,
			want:  Page[int]{Items: []int{4, 5}, TotalElements: 42, TotalPages: 21},
		},
		{
			name:  "envelope without totals",
			input: `{"content":[7]}`,
			want:  Page[int]{Items: []int{7}, TotalElements: 1, TotalPages: 1},
		},
		{
			name:  "zero total pages",
			input: `{"content":[],"totalElements":0,"totalPages":0}`,
			want:  Page[int]{Items: []int{}, TotalElements: 0, TotalPages: 1},
		},
		{
			name:  "null",
			input: `null`,
			want:  Page[int]{TotalPages: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Page[int]
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_UnmarshalJSON_Invalid(t *testing.T) {
	var got Page[int]
	assert.Error(t, json.Unmarshal([]byte(`{"content":"nope"}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &got))
}

func TestListQuery_Params(t *testing.T) {
	assert.Equal(t, map[string]string{"page": "0"}, ListQuery{}.Params())

	q := ListQuery{Page: 2, Size: 20, Search: "bob", Status: "PENDING", UnreadOnly: true, UserID: "7"}
	assert.Equal(t, map[string]string{
		"page":       "2",
		"size":       "20",
		"search":     "bob",
		"status":     "PENDING",
		"unreadOnly": "true",
		"userId":     "7",
	}, q.Params())
}
