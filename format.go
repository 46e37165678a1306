// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package fixedpoint implements binary fixed-point numbers of arbitrary
// resolution. A Number stores a signed scaled integer bound to a Format,
// which fixes the split between integer and fraction bits. All arithmetic,
// comparisons, and mathematical functions are computed with integer
// operations only, so results are reproducible on any platform.
package fixedpoint

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/avdva/fixedpoint/internal/mathutil"
)

// Unbounded marks a Format whose integer part is not limited by a bit budget.
const Unbounded = -1

// guardBits is the number of extra fraction bits used during iterative and
// series computations to absorb rounding error.
const guardBits = 8

type constKind int

const (
	constPi constKind = iota
	constLn2
	constE
)

type constEntry struct {
	val      *big.Int
	fracBits int
}

// Format describes a fixed-point representation: the number of integer and
// fraction bits, and the derived scale factor 2^fracBits. A bounded Format
// limits scaled values to the signed range of intBits+fracBits bits.
// Formats are immutable and may be shared by any number of Numbers.
type Format struct {
	intBits  int // Unbounded if the integer part has no bit budget
	fracBits int
	scale    *big.Int
	min, max *big.Int // nil for unbounded formats

	mu     sync.Mutex
	consts map[constKind]constEntry
}

// NewFormat returns a Format with the given integer and fraction bit counts.
// The representable scaled values span the signed two's-complement range of
// intBits+fracBits bits.
func NewFormat(intBits, fracBits int) (*Format, error) {
	if fracBits < 0 {
		return nil, fmt.Errorf("negative fraction bits")
	}
	if intBits < 0 {
		return nil, fmt.Errorf("negative integer bits")
	}
	total := intBits + fracBits
	if total == 0 {
		return nil, fmt.Errorf("format has no bits")
	}
	f := &Format{
		intBits:  intBits,
		fracBits: fracBits,
		scale:    mathutil.Pow2(uint(fracBits)),
		max:      new(big.Int).Sub(mathutil.Pow2(uint(total-1)), big.NewInt(1)),
	}
	f.min = new(big.Int).Neg(mathutil.Pow2(uint(total - 1)))
	return f, nil
}

// NewUnbounded returns a Format with the given fractional resolution and an
// unconstrained integer part.
func NewUnbounded(fracBits int) (*Format, error) {
	if fracBits < 0 {
		return nil, fmt.Errorf("negative fraction bits")
	}
	return &Format{
		intBits:  Unbounded,
		fracBits: fracBits,
		scale:    mathutil.Pow2(uint(fracBits)),
	}, nil
}

// IntBits returns the integer bit count, or Unbounded.
func (f *Format) IntBits() int {
	return f.intBits
}

// FracBits returns the fraction bit count.
func (f *Format) FracBits() int {
	return f.fracBits
}

// TotalBits returns the total bit width, or Unbounded.
func (f *Format) TotalBits() int {
	if f.intBits == Unbounded {
		return Unbounded
	}
	return f.intBits + f.fracBits
}

// Bounded reports whether the Format enforces a bit budget.
func (f *Format) Bounded() bool {
	return f.intBits != Unbounded
}

// Scale returns the scale factor 2^FracBits().
func (f *Format) Scale() *big.Int {
	return new(big.Int).Set(f.scale)
}

// Eq reports whether two Formats have the same bit layout.
func (f *Format) Eq(other *Format) bool {
	return f.intBits == other.intBits && f.fracBits == other.fracBits
}

func (f *Format) String() string {
	if f.intBits == Unbounded {
		return fmt.Sprintf("Format(%d)", f.fracBits)
	}
	return fmt.Sprintf("Format(%d.%d)", f.intBits, f.fracBits)
}

// Pi returns the value of pi in this Format.
func (f *Format) Pi() (Number, error) {
	return f.checked(f.constant(constPi, f.fracBits))
}

// Ln2 returns the natural logarithm of 2 in this Format.
func (f *Format) Ln2() (Number, error) {
	return f.checked(f.constant(constLn2, f.fracBits))
}

// E returns Euler's number in this Format.
func (f *Format) E() (Number, error) {
	return f.checked(f.constant(constE, f.fracBits))
}

// constant returns the named constant scaled to prec fraction bits.
// Values are computed with guard bits beyond the request and cached;
// a cached value is reused whenever it meets the requested precision,
// otherwise it is replaced by a more precise one.
func (f *Format) constant(k constKind, prec int) *big.Int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.consts[k]; ok && e.fracBits >= prec {
		return rescale(e.val, e.fracBits, prec)
	}
	if f.consts == nil {
		f.consts = make(map[constKind]constEntry)
	}
	val := computeConstant(k, prec+guardBits)
	f.consts[k] = constEntry{val: val, fracBits: prec + guardBits}
	return rescale(val, prec+guardBits, prec)
}

// rescale converts a scaled value between fraction bit counts,
// rounding half away from zero when narrowing.
func rescale(val *big.Int, from, to int) *big.Int {
	if to >= from {
		return new(big.Int).Lsh(val, uint(to-from))
	}
	return mathutil.RoundShr(val, uint(from-to))
}

// checked binds a scaled value to the Format, verifying the bit budget.
func (f *Format) checked(val *big.Int) (Number, error) {
	if f.min != nil && (val.Cmp(f.min) < 0 || val.Cmp(f.max) > 0) {
		return Number{}, ErrOverflow
	}
	return Number{f: f, val: val}, nil
}
