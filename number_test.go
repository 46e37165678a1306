// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"testing"

	of "github.com/robaho/fixed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustFormat(t *testing.T, intBits, fracBits int) *Format {
	t.Helper()
	f, err := NewFormat(intBits, fracBits)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func mustUnbounded(t *testing.T, fracBits int) *Format {
	t.Helper()
	f, err := NewUnbounded(fracBits)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFromInt(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	tests := []struct {
		v   int64
		err error
	}{
		{0, nil},
		{1, nil},
		{-1, nil},
		{127, nil},
		{-128, nil},
		{128, ErrOverflow},
		{-129, ErrOverflow},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			n, err := f.FromInt(test.v)
			if test.err != nil {
				a.True(errors.Is(err, test.err))
				return
			}
			if a.NoError(err) {
				a.Equal(test.v, n.Int64())
				a.Equal(test.v*256, n.Scaled().Int64())
			}
		})
	}
}

func TestFromRational(t *testing.T) {
	a := assert.New(t)
	f80 := mustFormat(t, 8, 0)
	f88 := mustFormat(t, 8, 8)
	tests := []struct {
		f        *Format
		num, den int64
		scaled   int64
		err      error
	}{
		{f88, 1, 3, 85, nil},
		{f88, 2, 3, 171, nil}, // 170.67 rounds up
		{f88, 1, 2, 128, nil},
		{f88, -1, 2, -128, nil},
		// boundary halves round away from zero
		{f80, 1, 2, 1, nil},
		{f80, -1, 2, -1, nil},
		{f80, 3, 2, 2, nil},
		{f80, 5, 2, 3, nil},
		{f80, -5, 2, -3, nil},
		{f88, 1, 0, 0, ErrDivisionByZero},
		{f88, 1000, 1, 0, ErrOverflow},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			n, err := test.f.FromRational(test.num, test.den)
			if test.err != nil {
				a.True(errors.Is(err, test.err))
				return
			}
			if a.NoError(err) {
				a.Equal(test.scaled, n.Scaled().Int64())
			}
		})
	}
}

func TestFromFloat64(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	tests := []struct {
		v      float64
		scaled int64
		err    string
	}{
		{0, 0, ""},
		{0.5, 128, ""},
		{-0.5, -128, ""},
		{12.5, 3200, ""},
		{1.0 / 3.0, 85, ""},
		{nan(), 0, "bad float number"},
		{inf(), 0, "bad float number"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			n, err := f.FromFloat64(test.v)
			if len(test.err) > 0 {
				a.EqualError(err, test.err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.scaled, n.Scaled().Int64())
			}
		})
	}
}

func TestFromString(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	tests := []struct {
		s      string
		scaled int64
		err    string
	}{
		{"0", 0, ""},
		{"-0", 0, ""},
		{" 00000.00000 ", 0, ""},
		{`"12.5"`, 3200, ""},
		{"12.5", 3200, ""},
		{"+12.5", 3200, ""},
		{"-12.5", -3200, ""},
		{"-0.25", -64, ""},
		{".5", 128, ""},
		{"125e-1", 3200, ""},
		{"0.125e2", 3200, ""},
		{"0.3", 77, ""}, // 76.8 rounds up
		{"", 0, "empty input"},
		{"    -bad", 0, "parsing failed: unexpected symbol 'b' at pos 6"},
		{"1..2", 0, "parsing failed: unexpected delimeter at pos 3"},
		{"1000", 0, "value out of range"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			n, err := f.FromString(test.s)
			if len(test.err) > 0 {
				a.Panics(func() {
					f.MustFromString(test.s)
				})
				a.EqualError(err, test.err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.scaled, n.Scaled().Int64())
			}
		})
	}
}

func TestConvert(t *testing.T) {
	a := assert.New(t)
	f88 := mustFormat(t, 8, 8)
	f82 := mustFormat(t, 8, 2)
	f28 := mustFormat(t, 2, 8)
	u16 := mustUnbounded(t, 16)
	tests := []struct {
		s      string
		to     *Format
		scaled int64
		err    error
	}{
		{"1.5", u16, 98304, nil},
		{"1.5", f82, 6, nil},
		{"0.3", f82, 1, nil}, // 77>>6 rounds to 1
		{"1.5", f88, 384, nil},
		{"12.5", f28, 0, ErrOverflow},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			n := f88.MustFromString(test.s)
			conv, err := n.Convert(test.to)
			if test.err != nil {
				a.True(errors.Is(err, test.err))
				return
			}
			if a.NoError(err) {
				a.Equal(test.scaled, conv.Scaled().Int64())
				a.True(conv.Format().Eq(test.to))
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	type op func(Number, Number) (Number, error)
	tests := []struct {
		op     op
		x, y   string
		result string
	}{
		{Number.Add, "1.5", "0.25", "1.75"},
		{Number.Add, "-1.5", "0.25", "-1.25"},
		{Number.Sub, "1.5", "0.25", "1.25"},
		{Number.Sub, "0.25", "1.5", "-1.25"},
		{Number.Mul, "1.5", "1.5", "2.25"},
		{Number.Mul, "-1.5", "1.5", "-2.25"},
		{Number.Mul, "0", "99.5", "0"},
		{Number.Div, "3", "0.5", "6"},
		{Number.Div, "-3", "0.5", "-6"},
		{Number.Mod, "7.5", "2", "1.5"},
		{Number.Mod, "-7.5", "2", "-1.5"},
		{Number.Mod, "7.5", "-2", "1.5"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x, y := f.MustFromString(test.x), f.MustFromString(test.y)
			res, err := test.op(x, y)
			if a.NoError(err) {
				a.True(res.Eq(f.MustFromString(test.result)), res.GoString())
			}
		})
	}
}

func TestArithmeticErrors(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 4, 4)
	maxVal, err := f.FromScaled(big.NewInt(127))
	a.NoError(err)
	minVal, err := f.FromScaled(big.NewInt(-128))
	a.NoError(err)
	smallest, err := f.FromScaled(big.NewInt(1))
	a.NoError(err)

	_, err = maxVal.Add(smallest)
	a.True(errors.Is(err, ErrOverflow))
	_, err = minVal.Sub(smallest)
	a.True(errors.Is(err, ErrOverflow))
	_, err = maxVal.Mul(maxVal)
	a.True(errors.Is(err, ErrOverflow))
	_, err = minVal.Neg()
	a.True(errors.Is(err, ErrOverflow))
	_, err = minVal.Abs()
	a.True(errors.Is(err, ErrOverflow))

	zero, _ := f.FromInt(0)
	one, _ := f.FromInt(1)
	_, err = one.Div(zero)
	a.True(errors.Is(err, ErrDivisionByZero))
	_, err = one.Mod(zero)
	a.True(errors.Is(err, ErrDivisionByZero))
}

func TestUnaryAndShifts(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	n := f.MustFromString("1.5")

	neg, err := n.Neg()
	if a.NoError(err) {
		a.Equal(int64(-384), neg.Scaled().Int64())
	}
	abs, err := neg.Abs()
	if a.NoError(err) {
		a.True(abs.Eq(n))
	}
	up, err := n.Lsh(2)
	if a.NoError(err) {
		a.True(up.Eq(f.MustFromString("6")))
	}
	a.True(n.Rsh(1).Eq(f.MustFromString("0.75")))
	// half a scaled unit rounds away from zero
	tiny, _ := f.FromScaled(big.NewInt(1))
	a.Equal(int64(1), tiny.Rsh(1).Scaled().Int64())

	f44 := mustFormat(t, 4, 4)
	four, _ := f44.FromInt(4)
	_, err = four.Lsh(1)
	a.True(errors.Is(err, ErrOverflow))
}

func TestCrossFormat(t *testing.T) {
	a := assert.New(t)
	f88 := mustFormat(t, 8, 8)
	f416 := mustFormat(t, 4, 16)
	want := mustFormat(t, 8, 16)
	u4 := mustUnbounded(t, 4)

	x := f88.MustFromString("1.5")
	y := f416.MustFromString("0.25")
	sum, err := x.Add(y)
	if a.NoError(err) {
		a.True(sum.Format().Eq(want))
		a.True(sum.Eq(want.MustFromString("1.75")))
	}
	// the same result via explicit conversions
	cx, err := x.Convert(want)
	a.NoError(err)
	cy, err := y.Convert(want)
	a.NoError(err)
	sum2, err := cx.Add(cy)
	if a.NoError(err) {
		a.True(sum.Eq(sum2))
	}
	// an unbounded operand makes the result unbounded
	sum3, err := x.Add(u4.MustFromString("2"))
	if a.NoError(err) {
		a.False(sum3.Format().Bounded())
		a.Equal(8, sum3.Format().FracBits())
	}
	// equality ignores formats
	a.True(x.Eq(f416.MustFromString("1.5")))
	a.Equal(1, x.Cmp(y))
	a.Equal(-1, y.Cmp(x))
	a.Equal(0, x.Cmp(f416.MustFromString("1.5")))
}

func TestProperties(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 16, 8)
	vals := []string{"0.25", "1.5", "-2.75", "0.3", "-0.7", "33.33"}
	one, _ := f.FromInt(1)
	zero, _ := f.FromInt(0)
	for i, s := range vals {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			x := f.MustFromString(s)
			for _, s2 := range vals {
				y := f.MustFromString(s2)
				xy, err := x.Add(y)
				a.NoError(err)
				yx, err := y.Add(x)
				a.NoError(err)
				a.True(xy.Eq(yx))
				mxy, err := x.Mul(y)
				a.NoError(err)
				myx, err := y.Mul(x)
				a.NoError(err)
				a.True(mxy.Eq(myx))
			}
			if !x.IsZero() {
				q, err := x.Div(x)
				a.NoError(err)
				a.True(q.Eq(one))
			}
			d, err := x.Sub(x)
			a.NoError(err)
			a.True(d.Eq(zero))
		})
	}
}

func TestImmutability(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	x := f.MustFromString("1.5")
	y := f.MustFromString("2.25")
	xBefore, yBefore := x.Scaled(), y.Scaled()
	ops := []func(Number, Number) (Number, error){
		Number.Add, Number.Sub, Number.Mul, Number.Div, Number.Mod,
	}
	for _, op := range ops {
		_, err := op(x, y)
		a.NoError(err)
	}
	_, _ = x.Neg()
	_, _ = x.Sqrt()
	_ = x.String()
	a.Equal(xBefore, x.Scaled())
	a.Equal(yBefore, y.Scaled())
}

func TestJSON(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	n := f.MustFromString("12.5")
	data, err := json.Marshal(n)
	if a.NoError(err) {
		a.Equal(`{"s":"3200","i":8,"f":8}`, string(data))
		var back Number
		if a.NoError(json.Unmarshal(data, &back)) {
			a.True(n.Eq(back))
			a.True(n.Format().Eq(back.Format()))
		}
	}
	u := mustUnbounded(t, 16)
	n2, err := u.FromInt(3)
	a.NoError(err)
	data, err = json.Marshal(n2)
	if a.NoError(err) {
		a.Equal(`{"s":"196608","i":-1,"f":16}`, string(data))
		var back Number
		if a.NoError(json.Unmarshal(data, &back)) {
			a.True(n2.Eq(back))
			a.False(back.Format().Bounded())
		}
	}
	var bad Number
	a.Error(json.Unmarshal([]byte(`{"s":"zzz","i":8,"f":8}`), &bad))
	a.Error(json.Unmarshal([]byte(`{"s":"100000","i":8,"f":8}`), &bad))
}

func TestDecimalBridge(t *testing.T) {
	a := assert.New(t)
	f := mustFormat(t, 8, 8)
	n, err := f.FromDecimal(decimal.RequireFromString("12.5"))
	if a.NoError(err) {
		a.True(n.Eq(f.MustFromString("12.5")))
	}
	a.Equal("1.5", f.MustFromString("1.5").Decimal().String())
	third, err := f.FromRational(1, 3)
	a.NoError(err)
	// 85/256 terminates in decimal
	a.Equal("0.33203125", third.Decimal().String())
	_, err = f.FromDecimal(decimal.RequireFromString("1e10"))
	a.True(errors.Is(err, ErrOverflow))
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func inf() float64 {
	var zero float64
	return 1 / zero
}

func BenchmarkMulFixedpoint(b *testing.B) {
	f, _ := NewFormat(32, 32)
	x, _ := f.FromFloat64(123456789.0)
	y, _ := f.FromFloat64(1234.0)
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}

func BenchmarkMulOtherFixed(b *testing.B) {
	f0 := of.NewF(123456789.9)
	f1 := of.NewF(1234.9)
	for i := 0; i < b.N; i++ {
		f0.Mul(f1)
	}
}

func BenchmarkMulDecimal(b *testing.B) {
	f0 := decimal.NewFromFloat(123456789.0)
	f1 := decimal.NewFromFloat(1234.0)
	for i := 0; i < b.N; i++ {
		f0.Mul(f1)
	}
}
