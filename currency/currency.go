package currency

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const EtherDecimals = 18

var (
	ErrInvalidAmount  = errors.New("currency: invalid amount")
	ErrNegativeAmount = errors.New("currency: negative amount")
	ErrTooPrecise     = errors.New("currency: more than 18 fractional digits")
)

var weiPerEther = decimal.New(1, EtherDecimals)

// ParseEther converts a decimal ether string such as "0.02" into wei.
func ParseEther(amount string) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if d.IsNegative() {
		return nil, ErrNegativeAmount
	}

	wei := d.Mul(weiPerEther)
	if !wei.Equal(wei.Truncate(0)) {
		return nil, ErrTooPrecise
	}

	return wei.BigInt(), nil
}

func MustParseEther(amount string) *big.Int {
	wei, err := ParseEther(amount)
	if err != nil {
		panic(err)
	}
	return wei
}

// FormatEther renders wei as an ether string without trailing zeros.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals).String()
}
