// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/avdva/fixedpoint/internal/mathutil"
	"github.com/avdva/fixedpoint/internal/strutil"
)

// Number is an immutable fixed-point value: a signed scaled integer bound
// to a Format, representing scaled/2^FracBits(). Every operation returns a
// new Number, so values can be shared freely.
//
// Binary operations accept operands of different Formats: both are resolved
// to the wider of the two (the larger fraction count, and the larger or
// unbounded integer budget), and the result is produced in that Format.
// Use Convert to move the result elsewhere.
type Number struct {
	f   *Format
	val *big.Int
}

// FromInt returns a Number holding the integer v.
func (f *Format) FromInt(v int64) (Number, error) {
	return f.FromBigInt(big.NewInt(v))
}

// FromBigInt returns a Number holding the integer v.
func (f *Format) FromBigInt(v *big.Int) (Number, error) {
	return f.checked(new(big.Int).Lsh(v, uint(f.fracBits)))
}

// FromRational returns the Number closest to num/den,
// rounding half away from zero.
func (f *Format) FromRational(num, den int64) (Number, error) {
	if den == 0 {
		return Number{}, ErrDivisionByZero
	}
	scaled := new(big.Int).Lsh(big.NewInt(num), uint(f.fracBits))
	return f.checked(mathutil.RoundQuo(scaled, big.NewInt(den)))
}

// FromFloat64 returns the Number closest to v.
// Returns an error for infinities and not-a-numbers.
func (f *Format) FromFloat64(v float64) (Number, error) {
	rat := new(big.Rat).SetFloat64(v)
	if rat == nil {
		return Number{}, fmt.Errorf("bad float number")
	}
	scaled := new(big.Int).Lsh(rat.Num(), uint(f.fracBits))
	return f.checked(mathutil.RoundQuo(scaled, rat.Denom()))
}

// FromString parses a decimal string, with an optional sign, fraction and
// 'e' exponent, into a Number.
func (f *Format) FromString(s string) (Number, error) {
	neg, digits, exp, err := strutil.Parse(s)
	if err != nil {
		return Number{}, err
	}
	if len(digits) == 0 {
		return f.checked(new(big.Int))
	}
	num, _ := new(big.Int).SetString(digits, 10)
	if neg {
		num.Neg(num)
	}
	den := big.NewInt(1)
	if exp > 0 {
		num.Mul(num, mathutil.Pow10(uint(exp)))
	} else if exp < 0 {
		den = mathutil.Pow10(uint(-exp))
	}
	return f.checked(mathutil.RoundQuo(num.Lsh(num, uint(f.fracBits)), den))
}

// MustFromString is like FromString, but panics on bad input.
func (f *Format) MustFromString(s string) Number {
	n, err := f.FromString(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromScaled returns a Number for an already-scaled integer value.
func (f *Format) FromScaled(scaled *big.Int) (Number, error) {
	return f.checked(new(big.Int).Set(scaled))
}

// Convert rescales the value into the destination Format.
func (n Number) Convert(f *Format) (Number, error) {
	return f.checked(rescale(n.val, n.f.fracBits, f.fracBits))
}

// Format returns the Format the value is bound to.
func (n Number) Format() *Format {
	return n.f
}

// Scaled returns the underlying scaled integer.
func (n Number) Scaled() *big.Int {
	return new(big.Int).Set(n.val)
}

// Int returns the integer part, truncated towards zero.
func (n Number) Int() *big.Int {
	return new(big.Int).Quo(n.val, n.f.scale)
}

// Int64 returns the integer part as an int64.
func (n Number) Int64() int64 {
	return n.Int().Int64()
}

// Float64 returns the nearest floating-point value.
func (n Number) Float64() float64 {
	f, _ := new(big.Rat).SetFrac(n.val, n.f.scale).Float64()
	return f
}

// Sign returns -1 if n < 0, 0 if n == 0, 1 if n > 0.
func (n Number) Sign() int {
	return n.val.Sign()
}

// IsZero returns true for a zero value.
func (n Number) IsZero() bool {
	return n.val.Sign() == 0
}

// commonFormat resolves the Formats of two operands to the wider one.
func commonFormat(a, b *Format) *Format {
	if a.covers(b) {
		return a
	}
	if b.covers(a) {
		return b
	}
	frac := mathutil.MaxInt(a.fracBits, b.fracBits)
	if a.intBits == Unbounded || b.intBits == Unbounded {
		f, _ := NewUnbounded(frac)
		return f
	}
	f, _ := NewFormat(mathutil.MaxInt(a.intBits, b.intBits), frac)
	return f
}

func (f *Format) covers(other *Format) bool {
	if f.fracBits < other.fracBits {
		return false
	}
	if f.intBits == Unbounded {
		return true
	}
	return other.intBits != Unbounded && f.intBits >= other.intBits
}

// align brings both operands to their common Format. Widening a fraction
// part is a left shift, so alignment is always exact.
func align(a, b Number) (x, y *big.Int, f *Format) {
	f = commonFormat(a.f, b.f)
	x = new(big.Int).Lsh(a.val, uint(f.fracBits-a.f.fracBits))
	y = new(big.Int).Lsh(b.val, uint(f.fracBits-b.f.fracBits))
	return x, y, f
}

// Add returns n + other.
func (n Number) Add(other Number) (Number, error) {
	x, y, f := align(n, other)
	return f.checked(x.Add(x, y))
}

// Sub returns n - other.
func (n Number) Sub(other Number) (Number, error) {
	x, y, f := align(n, other)
	return f.checked(x.Sub(x, y))
}

// Mul returns n * other, rounding half away from zero.
func (n Number) Mul(other Number) (Number, error) {
	x, y, f := align(n, other)
	return f.checked(mathutil.RoundShr(x.Mul(x, y), uint(f.fracBits)))
}

// Div returns n / other, rounding half away from zero.
func (n Number) Div(other Number) (Number, error) {
	if other.val.Sign() == 0 {
		return Number{}, ErrDivisionByZero
	}
	x, y, f := align(n, other)
	return f.checked(mathutil.RoundQuo(x.Lsh(x, uint(f.fracBits)), y))
}

// Mod returns the remainder of n / other. The quotient is truncated
// towards zero, so the remainder takes the sign of the dividend.
func (n Number) Mod(other Number) (Number, error) {
	if other.val.Sign() == 0 {
		return Number{}, ErrDivisionByZero
	}
	x, y, f := align(n, other)
	q := new(big.Int).Quo(x, y)
	return f.checked(x.Sub(x, q.Mul(q, y)))
}

// Neg returns -n.
func (n Number) Neg() (Number, error) {
	return n.f.checked(new(big.Int).Neg(n.val))
}

// Abs returns the absolute value of n.
func (n Number) Abs() (Number, error) {
	if n.val.Sign() >= 0 {
		return n, nil
	}
	return n.Neg()
}

// Lsh returns n * 2^bits.
func (n Number) Lsh(bits uint) (Number, error) {
	return n.f.checked(new(big.Int).Lsh(n.val, bits))
}

// Rsh returns n / 2^bits, rounding half away from zero.
func (n Number) Rsh(bits uint) Number {
	return Number{f: n.f, val: mathutil.RoundShr(n.val, bits)}
}

// Cmp compares the represented values, regardless of Formats.
// Returns -1 if n < other, 0 if n == other, 1 if n > other.
func (n Number) Cmp(other Number) int {
	x, y, _ := align(n, other)
	return x.Cmp(y)
}

// Eq reports whether both values represent the same number.
// The Formats do not have to be equal.
func (n Number) Eq(other Number) bool {
	return n.Cmp(other) == 0
}
