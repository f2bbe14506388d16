package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundFloat(t *testing.T) {
	tests := []struct {
		in     float64
		digits int32
		want   float64
	}{
		{8.23456, 4, 8.2346},
		{8.23454, 4, 8.2345},
		{8.23454, 3, 8.235},
		{8.23454, 2, 8.23},
		{8.23454, 1, 8.2},
		{0, 4, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundFloat(tt.in, tt.digits), "RoundFloat(%v, %d)", tt.in, tt.digits)
	}
}

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		in     string
		digits int32
		want   string
	}{
		{"8.23456", 4, "8.2346"},
		{"8.23454", 4, "8.2345"},
		{"8.23454", 1, "8.2"},
		{"1.00005", 4, "1.0001"},
		{"2.5", 0, "3"},
	}

	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in), tt.digits)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "Round(%s, %d) = %s", tt.in, tt.digits, got)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5000", Format(decimal.RequireFromString("1.5")))
	assert.Equal(t, "0.0000", Format(decimal.Zero))
	assert.Equal(t, "2.7183", Format(decimal.RequireFromString("2.71828")))
}

func TestParse(t *testing.T) {
	d, err := Parse("  12.3400 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.34").Equal(d))

	_, err = Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyAmount)

	_, err = Parse("ten")
	assert.Error(t, err)
}
