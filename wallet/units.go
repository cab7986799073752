package wallet

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// EtherDecimals is the number of decimals between ether and wei
const EtherDecimals = 18

// ParseUnits converts a decimal string such as "1.5" into the integer amount
// of the smallest unit. Digits beyond the unit's precision are rounded.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "eE") {
		return nil, fmt.Errorf("parse units %q: exponent notation not allowed", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse units %q: %w", s, err)
	}
	return d.Shift(int32(decimals)).Round(0).BigInt(), nil
}

// ParseEther converts an ether amount into wei
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, EtherDecimals)
}

// FormatUnits renders an integer amount of the smallest unit as a decimal
// string without trailing zeros
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

// FormatEther renders wei as ether
func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}
