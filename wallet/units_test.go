package wallet

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
		{"1", "1000000000000000000"},
		{"1.5", "1500000000000000000"},
		{" 0.000000000000000001 ", "1"},
		{"0", "0"},
		{"42.000000000000000000", "42000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEther(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEtherRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "0x10", "1e3", "2E-1"} {
		_, err := ParseEther(in)
		assert.Error(t, err, in)
	}
}

func TestParseUnitsRounds(t *testing.T) {
	got, err := ParseUnits("1.2345678", 6)
	require.NoError(t, err)
	assert.Equal(t, int64(1234568), got.Int64())
}

func TestFormatUnits(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FormatEther(wei))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "100", FormatUnits(big.NewInt(100), 0))
	assert.Equal(t, "0.000001", FormatUnits(big.NewInt(1), 6))
}
