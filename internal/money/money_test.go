package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already rounded", 12.5, 12.5},
		{"half rounds away from zero", 16.665, 16.67},
		{"four decimals", 16.6665, 16.67},
		{"down", 33.3333, 33.33},
		{"negative half", -0.125, -0.13},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(tt.in))
		})
	}
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.3, Sum(0.1, 0.2))
	assert.Equal(t, 0.0, Sum())
	assert.Equal(t, 1000.0, Sum(333.33, 333.33, 333.34))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(1000, Sum(333.33, 333.33, 333.34)))
	assert.True(t, Equal(0.3, 0.1+0.2))
	assert.True(t, Equal(16.665, 16.67))
	assert.False(t, Equal(1, Sum(0.33, 0.33, 0.33)))
	assert.False(t, Equal(1200, 1000))
}

func TestFormat(t *testing.T) {
	t.Run("known currency", func(t *testing.T) {
		assert.NotEmpty(t, Format(1200, "jpy"))
	})

	t.Run("unknown currency falls back", func(t *testing.T) {
		assert.Equal(t, "12.50 XYZ1", Format(12.5, "XYZ1"))
	})
}
