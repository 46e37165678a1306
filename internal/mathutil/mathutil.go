package mathutil

import (
	"math/big"
)

var (
	one = big.NewInt(1)
	ten = big.NewInt(10)
)

// RoundQuo divides num by den, rounding the result half away from zero.
// den must not be zero.
func RoundQuo(num, den *big.Int) *big.Int {
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() == 0 {
		return quo
	}
	rem.Abs(rem).Lsh(rem, 1)
	if rem.CmpAbs(den) < 0 {
		return quo
	}
	if (num.Sign() < 0) != (den.Sign() < 0) {
		return quo.Sub(quo, one)
	}
	return quo.Add(quo, one)
}

// RoundShr shifts x right by n bits, rounding half away from zero.
func RoundShr(x *big.Int, n uint) *big.Int {
	if n == 0 {
		return new(big.Int).Set(x)
	}
	abs := new(big.Int).Abs(x)
	half := abs.Bit(int(n) - 1)
	abs.Rsh(abs, n)
	if half == 1 {
		abs.Add(abs, one)
	}
	if x.Sign() < 0 {
		abs.Neg(abs)
	}
	return abs
}

// Pow2 returns 2^n.
func Pow2(n uint) *big.Int {
	return new(big.Int).Lsh(one, n)
}

// Pow10 returns 10^n.
func Pow10(n uint) *big.Int {
	return new(big.Int).Exp(ten, big.NewInt(int64(n)), nil)
}

// DecimalDigitsForBits returns the number of decimal digits carried by
// 'bits' fractional binary digits. Each bit contributes log10(2) ~ 0.301
// decimal digits; the result is rounded up so that the printed resolution
// is never coarser than the binary one.
func DecimalDigitsForBits(bits int) int {
	if bits <= 0 {
		return 1
	}
	return (bits*301 + 999) / 1000
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
