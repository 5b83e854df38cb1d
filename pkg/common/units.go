package common

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// plain decimal notation only, no exponent
var etherPattern = regexp.MustCompile(`^\+?\d*\.?\d+$`)

// ParseEther converts a decimal ETH string such as "0.25" into wei.
func ParseEther(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	if strings.HasPrefix(s, "-") {
		return nil, fmt.Errorf("%w %q: must not be negative", ErrInvalidAmount, s)
	}
	if !etherPattern.MatchString(s) {
		return nil, fmt.Errorf("%w %q: expected a decimal number such as 0.25", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidAmount, s, err)
	}

	wei := d.Shift(EtherDecimals)
	if !wei.IsInteger() {
		return nil, fmt.Errorf("%w %q: more than %d decimal places", ErrInvalidAmount, s, EtherDecimals)
	}
	return wei.BigInt(), nil
}

// FormatEther renders a wei amount as a trimmed decimal ETH string.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals).String()
}
