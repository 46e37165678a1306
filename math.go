// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"

	"github.com/avdva/fixedpoint/internal/mathutil"
)

// evaluator performs fixed-point arithmetic on raw scaled integers at a
// working precision. Its integer part is unbounded, so intermediate results
// never overflow and only the final rescale back to the caller's Format can
// fail.
type evaluator struct {
	frac  int
	scale *big.Int
}

func newEval(frac int) evaluator {
	return evaluator{frac: frac, scale: mathutil.Pow2(uint(frac))}
}

func (e evaluator) one() *big.Int {
	return new(big.Int).Set(e.scale)
}

func (e evaluator) fromInt(v int64) *big.Int {
	return new(big.Int).Lsh(big.NewInt(v), uint(e.frac))
}

func (e evaluator) mul(a, b *big.Int) *big.Int {
	return mathutil.RoundShr(new(big.Int).Mul(a, b), uint(e.frac))
}

func (e evaluator) div(a, b *big.Int) *big.Int {
	return mathutil.RoundQuo(new(big.Int).Lsh(a, uint(e.frac)), b)
}

func (e evaluator) divInt(a *big.Int, v int64) *big.Int {
	return mathutil.RoundQuo(a, big.NewInt(v))
}

// work moves the value to a working format with guard fraction bits.
func (n Number) work() (evaluator, *big.Int) {
	return newEval(n.f.fracBits + guardBits), new(big.Int).Lsh(n.val, guardBits)
}

// fromWork rounds a working-precision result back into n's Format.
func (n Number) fromWork(e evaluator, val *big.Int) (Number, error) {
	return n.f.checked(mathutil.RoundShr(val, uint(e.frac-n.f.fracBits)))
}

// Sqrt returns the square root of n, computed by Newton iteration.
func (n Number) Sqrt() (Number, error) {
	if n.val.Sign() < 0 {
		return Number{}, fmt.Errorf("sqrt: %w", ErrDomain)
	}
	if n.val.Sign() == 0 {
		return n, nil
	}
	e, x := n.work()
	return n.fromWork(e, e.sqrt(x))
}

func (e evaluator) sqrt(x *big.Int) *big.Int {
	// crude initial estimate from the operand's bit length
	rt := mathutil.Pow2(uint(e.frac/2 + (x.BitLen()+1)/2))
	// Newton iteration converges in O(log(bits)) steps; the cap only
	// protects against rounding-induced oscillation around the root.
	for i := 0; i < x.BitLen()+e.frac+16; i++ {
		delta := mathutil.RoundShr(new(big.Int).Sub(rt, e.div(x, rt)), 1)
		if delta.Sign() == 0 {
			break
		}
		rt.Sub(rt, delta)
	}
	return rt
}

// Exp returns e^n.
func (n Number) Exp() (Number, error) {
	e, x := n.work()
	ln2 := n.f.constant(constLn2, e.frac)
	return n.fromWork(e, e.exp(x, ln2))
}

// exp reduces x by whole multiples of ln2, evaluates the Taylor series on
// the remainder, and restores the removed power of two with a shift.
func (e evaluator) exp(x, ln2 *big.Int) *big.Int {
	num := new(big.Int).Lsh(x, 1)
	num.Add(num, ln2)
	den := new(big.Int).Lsh(ln2, 1)
	k := new(big.Int).Div(num, den) // nearest integer to x/ln2
	r := new(big.Int).Mul(k, ln2)
	r.Sub(x, r)
	ex := e.rawExp(r)
	if k.Sign() >= 0 {
		return ex.Lsh(ex, uint(k.Int64()))
	}
	return mathutil.RoundShr(ex, uint(-k.Int64()))
}

// rawExp sums the Taylor series of e^x for |x| <= ln2/2.
func (e evaluator) rawExp(x *big.Int) *big.Int {
	sum, term := e.one(), e.one()
	for idx := int64(1); term.Sign() != 0; idx++ {
		term = e.divInt(e.mul(term, x), idx)
		sum.Add(sum, term)
	}
	return sum
}

// Ln returns the natural logarithm of n.
func (n Number) Ln() (Number, error) {
	if n.val.Sign() <= 0 {
		return Number{}, fmt.Errorf("log: %w", ErrDomain)
	}
	e, x := n.work()
	ln2 := n.f.constant(constLn2, e.frac)
	m, k := e.reduce2(x)
	lg := e.rawLog(m)
	if k != 0 {
		lg.Add(lg, new(big.Int).Mul(big.NewInt(int64(k)), ln2))
	}
	return n.fromWork(e, lg)
}

// Log2 returns the base-2 logarithm of n.
func (n Number) Log2() (Number, error) {
	if n.val.Sign() <= 0 {
		return Number{}, fmt.Errorf("log2: %w", ErrDomain)
	}
	e, x := n.work()
	ln2 := n.f.constant(constLn2, e.frac)
	m, k := e.reduce2(x)
	lg := e.div(e.rawLog(m), ln2)
	lg.Add(lg, e.fromInt(int64(k)))
	return n.fromWork(e, lg)
}

// reduce2 scales x by a power of two into [1, 2), returning the reduced
// value and the number of doublings removed.
func (e evaluator) reduce2(x *big.Int) (*big.Int, int) {
	k := x.BitLen() - 1 - e.frac
	switch {
	case k > 0:
		return mathutil.RoundShr(x, uint(k)), k
	case k < 0:
		return new(big.Int).Lsh(x, uint(-k)), k
	}
	return new(big.Int).Set(x), 0
}

// rawLog sums the series ln(x) = 2*atanh((x-1)/(x+1)) for x close to 1.
func (e evaluator) rawLog(x *big.Int) *big.Int {
	z := e.div(new(big.Int).Sub(x, e.scale), new(big.Int).Add(x, e.scale))
	z2 := e.mul(z, z)
	term := new(big.Int).Lsh(z, 1)
	lg := new(big.Int)
	for idx := int64(1); term.Sign() != 0; idx += 2 {
		lg.Add(lg, e.divInt(term, idx))
		term = e.mul(term, z2)
	}
	return lg
}

// Sin returns the sine of n, interpreted as an angle in radians.
func (n Number) Sin() (Number, error) {
	e, x := n.work()
	sn, _ := e.sincos(x, n.f.constant(constPi, e.frac))
	return n.fromWork(e, sn)
}

// Cos returns the cosine of n, interpreted as an angle in radians.
func (n Number) Cos() (Number, error) {
	e, x := n.work()
	_, cs := e.sincos(x, n.f.constant(constPi, e.frac))
	return n.fromWork(e, cs)
}

// SinCos returns both the sine and the cosine of n, sharing the argument
// reduction between them.
func (n Number) SinCos() (sin, cos Number, err error) {
	e, x := n.work()
	sn, cs := e.sincos(x, n.f.constant(constPi, e.frac))
	if sin, err = n.fromWork(e, sn); err != nil {
		return Number{}, Number{}, err
	}
	if cos, err = n.fromWork(e, cs); err != nil {
		return Number{}, Number{}, err
	}
	return sin, cos, nil
}

// Tan returns the tangent of n. Fails with ErrDivisionByZero where the
// cosine vanishes at working precision.
func (n Number) Tan() (Number, error) {
	e, x := n.work()
	sn, cs := e.sincos(x, n.f.constant(constPi, e.frac))
	if cs.Sign() == 0 {
		return Number{}, fmt.Errorf("tan: %w", ErrDivisionByZero)
	}
	return n.fromWork(e, e.div(sn, cs))
}

// sincos reduces the angle to the nearest multiple of pi/2 and evaluates
// the sine series or the cosine series on the remainder, whichever the
// quadrant calls for. The reduced argument never exceeds pi/4 in
// magnitude, which keeps both series short.
func (e evaluator) sincos(x, pi *big.Int) (sn, cs *big.Int) {
	reflect := x.Sign() < 0
	ang := new(big.Int).Abs(x)
	halfPi := mathutil.RoundShr(pi, 1)
	num := new(big.Int).Lsh(ang, 1)
	num.Add(num, halfPi)
	den := new(big.Int).Lsh(halfPi, 1)
	idx := new(big.Int).Div(num, den)
	ang.Sub(ang, new(big.Int).Mul(idx, halfPi))
	osn, ocs := e.rawQsine(ang, false), e.rawQsine(ang, true)
	switch idx.Mod(idx, big.NewInt(4)).Int64() {
	case 0:
		sn, cs = osn, ocs
	case 1:
		sn, cs = ocs, new(big.Int).Neg(osn)
	case 2:
		sn, cs = new(big.Int).Neg(osn), new(big.Int).Neg(ocs)
	default:
		sn, cs = new(big.Int).Neg(ocs), osn
	}
	if reflect {
		sn = new(big.Int).Neg(sn)
	}
	return sn, cs
}

// rawQsine sums the Maclaurin series of sine or cosine for a small angle.
func (e evaluator) rawQsine(x *big.Int, doCos bool) *big.Int {
	x2 := new(big.Int).Neg(e.mul(x, x))
	sum, term := new(big.Int), e.one()
	idx := int64(2)
	if doCos {
		idx = 1
	}
	for term.Sign() != 0 {
		sum.Add(sum, term)
		term = e.divInt(e.mul(term, x2), idx*(idx+1))
		idx += 2
	}
	if doCos {
		return sum
	}
	return e.mul(x, sum)
}

// Asin returns the inverse sine of n.
func (n Number) Asin() (Number, error) {
	e, x := n.work()
	one := e.one()
	if x.CmpAbs(one) > 0 {
		return Number{}, fmt.Errorf("asin: %w", ErrDomain)
	}
	pi := n.f.constant(constPi, e.frac)
	halfPi := mathutil.RoundShr(pi, 1)
	if x.CmpAbs(one) == 0 {
		if x.Sign() < 0 {
			halfPi.Neg(halfPi)
		}
		return n.fromWork(e, halfPi)
	}
	cs2 := new(big.Int).Sub(one, e.mul(x, x))
	return n.fromWork(e, e.atan(e.div(x, e.sqrt(cs2)), pi))
}

// Acos returns the inverse cosine of n.
func (n Number) Acos() (Number, error) {
	e, x := n.work()
	one := e.one()
	if x.CmpAbs(one) > 0 {
		return Number{}, fmt.Errorf("acos: %w", ErrDomain)
	}
	pi := n.f.constant(constPi, e.frac)
	reflect := x.Sign() < 0
	arg := new(big.Int).Abs(x)
	var cs *big.Int
	switch {
	case arg.Cmp(one) == 0:
		cs = new(big.Int)
	case arg.Sign() == 0:
		cs = mathutil.RoundShr(pi, 1)
	default:
		sn2 := new(big.Int).Sub(one, e.mul(arg, arg))
		cs = e.atan(e.div(e.sqrt(sn2), arg), pi)
	}
	if reflect {
		cs.Sub(pi, cs)
	}
	return n.fromWork(e, cs)
}

// Atan returns the inverse tangent of n.
func (n Number) Atan() (Number, error) {
	e, x := n.work()
	return n.fromWork(e, e.atan(x, n.f.constant(constPi, e.frac)))
}

// atan reduces the argument by reflection, reciprocal and half-angle
// identities until it is small enough for the series to converge quickly.
func (e evaluator) atan(x, pi *big.Int) *big.Int {
	reflect, recip, double := false, false, false
	t := new(big.Int).Set(x)
	if t.Sign() < 0 {
		t.Neg(t)
		reflect = true
	}
	one := e.one()
	if t.Cmp(one) > 0 {
		t = e.div(one, t)
		recip = true
	}
	// halve the angle when t > tan(pi/8) ~ 0.414
	if new(big.Int).Mul(t, big.NewInt(1000)).Cmp(new(big.Int).Mul(one, big.NewInt(414))) > 0 {
		hyp := e.sqrt(new(big.Int).Add(one, e.mul(t, t)))
		t = e.div(hyp.Sub(hyp, one), t)
		double = true
	}
	ang := e.rawAtan(t)
	if double {
		ang.Lsh(ang, 1)
	}
	if recip {
		ang.Sub(mathutil.RoundShr(pi, 1), ang)
	}
	if reflect {
		ang.Neg(ang)
	}
	return ang
}

// rawAtan sums an accelerated arctangent series for 0 <= x < 1.
func (e evaluator) rawAtan(x *big.Int) *big.Int {
	atn := e.one()
	x2 := e.mul(x, x)
	omx2 := new(big.Int).Sub(e.scale, x2)
	opx2 := new(big.Int).Add(e.scale, x2)
	x4 := e.mul(x2, x2)
	term := new(big.Int).Set(x2)
	for idx := int64(1); ; idx++ {
		t := new(big.Int).Mul(omx2, big.NewInt(4*idx))
		t.Add(t, opx2)
		delta := e.divInt(e.mul(term, t), 16*idx*idx-1)
		if delta.Sign() == 0 {
			break
		}
		atn.Sub(atn, delta)
		term = e.mul(term, x4)
	}
	return e.mul(x, atn)
}

// Pow returns n raised to the given exponent. Integer exponents take a
// repeated-squaring fast path; fractional exponents are computed as
// exp(exponent * ln(n)) and require a positive base.
func (n Number) Pow(exponent Number) (Number, error) {
	if n.val.Sign() == 0 {
		if exponent.val.Sign() <= 0 {
			return Number{}, fmt.Errorf("pow: %w", ErrDomain)
		}
		return n.f.checked(new(big.Int))
	}
	if exponent.val.Sign() == 0 {
		return n.f.FromInt(1)
	}
	ipwr, frac := new(big.Int).QuoRem(exponent.val, exponent.f.scale, new(big.Int))
	if !ipwr.IsInt64() {
		return Number{}, ErrOverflow
	}
	if frac.Sign() == 0 {
		return n.PowInt(ipwr.Int64())
	}
	if n.val.Sign() < 0 {
		return Number{}, fmt.Errorf("pow: %w", ErrDomain)
	}
	e, x := n.work()
	ln2 := n.f.constant(constLn2, e.frac)
	res := e.intPow(x, ipwr.Int64())
	fw := rescale(frac, exponent.f.fracBits, e.frac)
	m, k := e.reduce2(x)
	lnx := e.rawLog(m)
	if k != 0 {
		lnx.Add(lnx, new(big.Int).Mul(big.NewInt(int64(k)), ln2))
	}
	res = e.mul(res, e.exp(e.mul(fw, lnx), ln2))
	return n.fromWork(e, res)
}

// PowInt returns n^pwr computed by repeated squaring.
func (n Number) PowInt(pwr int64) (Number, error) {
	if n.val.Sign() == 0 {
		if pwr <= 0 {
			return Number{}, fmt.Errorf("pow: %w", ErrDomain)
		}
		return n.f.checked(new(big.Int))
	}
	if pwr == 0 {
		return n.f.FromInt(1)
	}
	e, x := n.work()
	return n.fromWork(e, e.intPow(x, pwr))
}

// intPow raises a nonzero value to an integer power by repeated squaring.
// Negative powers invert the base first, so no intermediate result can
// vanish under a division.
func (e evaluator) intPow(x *big.Int, pwr int64) *big.Int {
	term := new(big.Int).Set(x)
	if pwr < 0 {
		term = e.div(e.one(), term)
		pwr = -pwr
	}
	result := e.one()
	for pwr != 0 {
		if pwr&1 == 1 {
			result = e.mul(result, term)
		}
		pwr >>= 1
		if pwr != 0 {
			term = e.mul(term, term)
		}
	}
	return result
}

// computeConstant evaluates a cached constant at the given precision.
func computeConstant(k constKind, frac int) *big.Int {
	e := newEval(frac)
	switch k {
	case constPi:
		// pi = 8*atan(sqrt(2) - 1)
		rt2 := e.sqrt(e.fromInt(2))
		return new(big.Int).Lsh(e.rawAtan(rt2.Sub(rt2, e.one())), 3)
	case constLn2:
		return e.rawLog(e.fromInt(2))
	default:
		return e.rawExp(e.one())
	}
}
