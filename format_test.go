// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormat(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		intBits, fracBits int
		err               bool
	}{
		{8, 8, false},
		{0, 8, false},
		{8, 0, false},
		{1, 4, false},
		{0, 0, true},
		{-2, 8, true},
		{8, -1, true},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			f, err := NewFormat(test.intBits, test.fracBits)
			if test.err {
				a.Error(err)
				return
			}
			if a.NoError(err) {
				a.Equal(test.intBits, f.IntBits())
				a.Equal(test.fracBits, f.FracBits())
				a.Equal(test.intBits+test.fracBits, f.TotalBits())
				a.True(f.Bounded())
			}
		})
	}
}

func TestNewUnbounded(t *testing.T) {
	a := assert.New(t)
	f, err := NewUnbounded(16)
	if a.NoError(err) {
		a.Equal(Unbounded, f.IntBits())
		a.Equal(16, f.FracBits())
		a.Equal(Unbounded, f.TotalBits())
		a.False(f.Bounded())
		a.Equal(int64(1<<16), f.Scale().Int64())
	}
	_, err = NewUnbounded(-3)
	a.Error(err)
}

func TestFormatEqString(t *testing.T) {
	a := assert.New(t)
	f1, _ := NewFormat(8, 8)
	f2, _ := NewFormat(8, 8)
	f3, _ := NewFormat(4, 8)
	u, _ := NewUnbounded(8)
	a.True(f1.Eq(f2))
	a.False(f1.Eq(f3))
	a.False(f1.Eq(u))
	a.Equal("Format(8.8)", f1.String())
	a.Equal("Format(8)", u.String())
}

func TestFormatConstants(t *testing.T) {
	a := assert.New(t)
	f, err := NewUnbounded(52)
	if !a.NoError(err) {
		return
	}
	tests := []struct {
		name string
		get  func() (Number, error)
		want float64
	}{
		{"pi", f.Pi, math.Pi},
		{"ln2", f.Ln2, math.Ln2},
		{"e", f.E, math.E},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, err := test.get()
			if a.NoError(err) {
				a.InDelta(test.want, v.Float64(), 1e-12)
				// the second call is served from the cache
				v2, err := test.get()
				if a.NoError(err) {
					a.True(v.Eq(v2))
				}
			}
		})
	}
}

func TestFormatConstantOverflow(t *testing.T) {
	a := assert.New(t)
	f, err := NewFormat(1, 4)
	if !a.NoError(err) {
		return
	}
	_, err = f.Pi() // pi does not fit 1 integer bit
	a.True(errors.Is(err, ErrOverflow))
}
