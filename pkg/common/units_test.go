package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.25", "250000000000000000"},
		{"0", "0"},
		{"0.1", "100000000000000000"},
		{"1", "1000000000000000000"},
		{" 2.5 ", "2500000000000000000"},
		{"0.000000000000000001", "1"},
		{"1000000", "1000000000000000000000000"},
		{".5", "500000000000000000"},
		{"+1", "1000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEther(tt.in)
			require.NoError(t, err)
			want, _ := new(big.Int).SetString(tt.want, 10)
			assert.Equal(t, 0, want.Cmp(got), "got %s", got)
		})
	}
}

func TestParseEther_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0.25eth", "-1", "1.2.3", "0.0000000000000000001",
		"1e2", "1E-1", "2.5E1", "1e50000000", "0x10", "1,5", "."} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseEther(in)
			require.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestFormatEther(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"250000000000000000", "0.25"},
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"12000000000000000000", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.wei, func(t *testing.T) {
			wei, _ := new(big.Int).SetString(tt.wei, 10)
			assert.Equal(t, tt.want, FormatEther(wei))
		})
	}
	assert.Equal(t, "0", FormatEther(nil))
}
