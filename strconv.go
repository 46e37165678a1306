// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/avdva/fixedpoint/internal/mathutil"
)

// String returns a decimal representation of the value. The number of
// fractional digits is derived from the Format's resolution, so that no
// spurious precision is printed.
func (n Number) String() string {
	return n.DecimalString(mathutil.DecimalDigitsForBits(n.f.fracBits))
}

// DecimalString returns a decimal representation with at most the given
// number of fractional digits. Digits beyond the requested precision are
// dropped.
func (n Number) DecimalString(digits int) string {
	var b strings.Builder
	if n.val.Sign() < 0 {
		b.WriteByte('-')
	}
	abs := new(big.Int).Abs(n.val)
	whole, frac := new(big.Int).QuoRem(abs, n.f.scale, new(big.Int))
	b.WriteString(whole.String())
	if frac.Sign() != 0 && digits > 0 {
		b.WriteByte('.')
		ten := big.NewInt(10)
		for i := 0; i < digits && frac.Sign() != 0; i++ {
			frac.Mul(frac, ten)
			q, r := new(big.Int).QuoRem(frac, n.f.scale, new(big.Int))
			b.WriteString(q.String())
			frac = r
		}
	}
	return b.String()
}

// BinaryString renders the scaled integer's bit pattern. With
// twosComplement set, negative values of a bounded Format are shown in
// two's-complement form, zero-padded to the Format's total width;
// otherwise a minus sign precedes the magnitude.
func (n Number) BinaryString(twosComplement bool) string {
	return n.baseString(2, twosComplement)
}

// OctalString renders the scaled integer in base 8.
func (n Number) OctalString(twosComplement bool) string {
	return n.baseString(8, twosComplement)
}

// HexString renders the scaled integer in base 16.
func (n Number) HexString(twosComplement bool) string {
	return n.baseString(16, twosComplement)
}

func (n Number) baseString(base int, twosComplement bool) string {
	if !twosComplement || !n.f.Bounded() {
		return n.val.Text(base)
	}
	total := uint(n.f.intBits + n.f.fracBits)
	v := new(big.Int).Set(n.val)
	if v.Sign() < 0 {
		v.Add(v, mathutil.Pow2(total))
	}
	var width int
	switch base {
	case 2:
		width = int(total)
	case 8:
		width = (int(total) + 2) / 3
	default:
		width = (int(total) + 3) / 4
	}
	s := v.Text(base)
	if pad := width - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}
	return s
}

// GoString returns a debug representation carrying the raw scaled value
// and the Format, sufficient to reconstruct an equal Number.
func (n Number) GoString() string {
	return n.String() + fmt.Sprintf(" {%s, %s}", n.val, n.f)
}
