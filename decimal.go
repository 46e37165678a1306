// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"math/big"

	"github.com/avdva/fixedpoint/internal/mathutil"
	"github.com/shopspring/decimal"
)

// FromDecimal converts a decimal value into this Format,
// rounding half away from zero.
func (f *Format) FromDecimal(d decimal.Decimal) (Number, error) {
	num := new(big.Int).Lsh(d.Coefficient(), uint(f.fracBits))
	exp := int(d.Exponent())
	if exp >= 0 {
		return f.checked(num.Mul(num, mathutil.Pow10(uint(exp))))
	}
	return f.checked(mathutil.RoundQuo(num, mathutil.Pow10(uint(-exp))))
}

// Decimal returns the exact decimal representation of the value.
// A binary fraction always terminates in decimal: val/2^k == val*5^k/10^k.
func (n Number) Decimal() decimal.Decimal {
	k := int64(n.f.fracBits)
	coeff := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	coeff.Mul(coeff, n.val)
	return decimal.NewFromBigInt(coeff, -int32(k))
}
