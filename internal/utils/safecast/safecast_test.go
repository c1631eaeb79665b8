package safecast

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Uint64ToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    uint64
		want    int
		wantErr bool
	}{
		{name: "Valid uint64 within range", give: 42, want: 42},
		{name: "Max int", give: math.MaxInt, want: math.MaxInt},
		{name: "Uint64 exceeds int max value", give: math.MaxUint64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint64ToInt(tt.give)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_IntToUint64(t *testing.T) {
	t.Parallel()

	got, err := IntToUint64(85)
	require.NoError(t, err)
	assert.Equal(t, uint64(85), got)

	_, err = IntToUint64(-1)
	require.Error(t, err)
}

func Test_Uint256ToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    *uint256.Int
		want    int
		wantErr string
	}{
		{name: "Small word", give: uint256.NewInt(32), want: 32},
		{name: "Word above uint64", give: new(uint256.Int).Lsh(uint256.NewInt(1), 64), wantErr: "value 0x10000000000000000 exceeds int range"},
		{name: "Word above int", give: uint256.NewInt(math.MaxUint64), wantErr: "value 18446744073709551615 exceeds int range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Uint256ToInt(tt.give)

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_Uint256ToUint64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(7), Uint256ToUint64(uint256.NewInt(7)))
	assert.Equal(t, uint64(math.MaxUint64), Uint256ToUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 200)))
}
