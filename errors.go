// Copyright 2020 Aleksandr Demakin. All rights reserved.

package fixedpoint

import "errors"

var (
	// ErrOverflow is returned when a result does not fit
	// the representable range of its Format.
	ErrOverflow = errors.New("value out of range")
	// ErrDomain is returned when an argument lies outside
	// the mathematical domain of a function.
	ErrDomain = errors.New("argument outside domain")
	// ErrDivisionByZero is returned when a divisor's scaled value is zero.
	ErrDivisionByZero = errors.New("division by zero")
)
