package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       Window
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid limit only",
			w:    Window{Limit: 10},
		},
		{
			name: "valid limit and offset",
			w:    Window{Limit: 10, Offset: 5},
		},
		{
			name: "tail ignores offset (valid)",
			w:    Window{Tail: 10, Offset: 5},
		},
		{
			name:    "limit and tail mutually exclusive",
			w:       Window{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			w:       Window{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			w:       Window{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			w:       Window{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name: "zero values valid",
			w:    Window{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWindowIsActive(t *testing.T) {
	assert.False(t, Window{}.IsActive())
	assert.True(t, Window{Limit: 10}.IsActive())
	assert.True(t, Window{Offset: 5}.IsActive())
	assert.True(t, Window{Tail: 1}.IsActive())
}

func TestApply(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		w    Window
		want []int
	}{
		{"limit only", Window{Limit: 3}, []int{1, 2, 3}},
		{"offset only", Window{Offset: 5}, []int{6, 7, 8, 9, 10}},
		{"limit and offset", Window{Limit: 3, Offset: 2}, []int{3, 4, 5}},
		{"tail only", Window{Tail: 3}, []int{8, 9, 10}},
		{"offset larger than rows", Window{Offset: 20}, []int{}},
		{"limit larger than remaining", Window{Limit: 100, Offset: 5}, []int{6, 7, 8, 9, 10}},
		{"tail larger than rows", Window{Tail: 100}, rows},
		{"inactive", Window{}, rows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.w, rows))
		})
	}
}

func TestWindowCap(t *testing.T) {
	assert.Equal(t, Window{Limit: 20}, Window{}.Cap(20))
	assert.Equal(t, Window{Limit: 5}, Window{Limit: 5}.Cap(20))
	assert.Equal(t, Window{Limit: 20, Offset: 3}, Window{Limit: 50, Offset: 3}.Cap(20))
	assert.Equal(t, Window{Offset: 50, Limit: 20}, Window{Tail: 50}.Resolve(100).Cap(20))
	assert.Equal(t, Window{Offset: 97, Limit: 3}, Window{Tail: 3}.Resolve(100).Cap(20))
	assert.Equal(t, Window{Limit: 50}, Window{Limit: 50}.Cap(0))
}

func TestWindowResolve(t *testing.T) {
	assert.Equal(t, Window{Offset: 7, Limit: 3}, Window{Tail: 3}.Resolve(10))
	assert.Equal(t, Window{Offset: 0, Limit: 2}, Window{Tail: 3}.Resolve(2))
	assert.Equal(t, Window{Limit: 4, Offset: 1}, Window{Limit: 4, Offset: 1}.Resolve(10))
}
