package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	oneEther := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

	tests := []struct {
		name    string
		value   string
		want    *big.Int
		wantErr bool
	}{
		{name: "whole ether", value: "1", want: oneEther},
		{name: "decimal ether", value: "1.0", want: oneEther},
		{name: "fraction", value: "0.5", want: new(big.Int).Div(oneEther, big.NewInt(2))},
		{name: "one wei", value: "0.000000000000000001", want: big.NewInt(1)},
		{name: "zero", value: "0", want: big.NewInt(0)},
		{name: "large", value: "1000000", want: new(big.Int).Mul(oneEther, big.NewInt(1000000))},
		{name: "too many decimals", value: "0.0000000000000000001", wantErr: true},
		{name: "negative", value: "-1", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "one", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEther(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, tt.want.Cmp(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "1", FormatEther(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)))
	assert.Equal(t, "0.5", FormatEther(big.NewInt(500000000000000000)))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
}
